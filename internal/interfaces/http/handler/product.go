package handler

import (
	"context"

	"github.com/ergolife/storefront/internal/application/catalog"
	"github.com/ergolife/storefront/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// ReviewerLookup resolves the display name attached to a review
type ReviewerLookup interface {
	GetCurrentUser(ctx context.Context, userID uint) (*identity.UserResponse, error)
}

// ProductHandler handles catalogue HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
	reviewers      ReviewerLookup
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService, reviewers ReviewerLookup) *ProductHandler {
	return &ProductHandler{productService: productService, reviewers: reviewers}
}

// List godoc
// @Summary      List products
// @Description  Filter by category (the "Tất cả" sentinel is ignored), price range and search text; sort by price_asc, price_desc, name or newest
// @Tags         products
// @Produce      json
// @Param        category  query string false "Category"
// @Param        min_price query int    false "Minimum price (VND)"
// @Param        max_price query int    false "Maximum price (VND)"
// @Param        search    query string false "Matches name or description"
// @Param        sort      query string false "price_asc | price_desc | name | newest"
// @Success      200 {object} dto.Response{data=[]catalog.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var query catalog.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	products, err := h.productService.List(c.Request.Context(), query.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get godoc
// @Summary      Get a product with its reviews
// @Tags         products
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalog.CreateProductRequest true "Product"
// @Success      201 {object} dto.Response{data=catalog.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                          true "Product ID"
// @Param        request body catalog.UpdateProductRequest true "Product"
// @Success      200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Product ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Product deleted"})
}

// AddReview godoc
// @Summary      Review a product
// @Description  Appends a review under the caller's name and recomputes the average rating
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                      true "Product ID"
// @Param        request body catalog.AddReviewRequest true "Review"
// @Success      201 {object} dto.Response{data=catalog.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/products/{id}/reviews [post]
func (h *ProductHandler) AddReview(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalog.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.reviewers.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	product, err := h.productService.AddReview(c.Request.Context(), id, catalog.Reviewer{UserID: userID, Name: user.Name}, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}
