package handler

import (
	"github.com/ergolife/storefront/internal/application/marketing"
	"github.com/gin-gonic/gin"
)

// BlogHandler serves published posts publicly and the full set to admins
type BlogHandler struct {
	BaseHandler
	blogService *marketing.BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService *marketing.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// List godoc
// @Summary      List published blog posts
// @Tags         blogs
// @Produce      json
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Param        search    query string false "Title search"
// @Success      200 {object} dto.Response{data=[]marketing.BlogResponse,meta=dto.Meta}
// @Router       /api/blogs [get]
func (h *BlogHandler) List(c *gin.Context) {
	var query marketing.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.blogService.ListPublished(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Get godoc
// @Summary      Get a published blog post
// @Tags         blogs
// @Produce      json
// @Param        id path int true "Blog ID"
// @Success      200 {object} dto.Response{data=marketing.BlogResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/blogs/{id} [get]
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	blog, err := h.blogService.GetPublished(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, blog)
}

// AdminList godoc
// @Summary      List all blog posts, drafts included
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]marketing.BlogResponse,meta=dto.Meta}
// @Router       /api/admin/blogs [get]
func (h *BlogHandler) AdminList(c *gin.Context) {
	var query marketing.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.blogService.ListAll(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// AdminGet godoc
// @Summary      Get any blog post
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Blog ID"
// @Success      200 {object} dto.Response{data=marketing.BlogResponse}
// @Router       /api/admin/blogs/{id} [get]
func (h *BlogHandler) AdminGet(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	blog, err := h.blogService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, blog)
}

// Create godoc
// @Summary      Create a blog post
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body marketing.BlogRequest true "Post"
// @Success      201 {object} dto.Response{data=marketing.BlogResponse}
// @Router       /api/admin/blogs [post]
func (h *BlogHandler) Create(c *gin.Context) {
	var req marketing.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	blog, err := h.blogService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, blog)
}

// Update godoc
// @Summary      Update a blog post
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                   true "Blog ID"
// @Param        request body marketing.BlogRequest true "Post"
// @Success      200 {object} dto.Response{data=marketing.BlogResponse}
// @Router       /api/admin/blogs/{id} [put]
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req marketing.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	blog, err := h.blogService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, blog)
}

// Delete godoc
// @Summary      Delete a blog post
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Blog ID"
// @Success      200 {object} dto.Response
// @Router       /api/admin/blogs/{id} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.blogService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Blog deleted"})
}
