package handler

import (
	"github.com/ergolife/storefront/internal/application/marketing"
	"github.com/gin-gonic/gin"
)

// VoucherHandler handles voucher administration
type VoucherHandler struct {
	BaseHandler
	voucherService *marketing.VoucherService
}

// NewVoucherHandler creates a new voucher handler
func NewVoucherHandler(voucherService *marketing.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// List godoc
// @Summary      List vouchers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Param        search    query string false "Code search"
// @Success      200 {object} dto.Response{data=[]marketing.VoucherResponse,meta=dto.Meta}
// @Router       /api/admin/vouchers [get]
func (h *VoucherHandler) List(c *gin.Context) {
	var query marketing.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.voucherService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Get godoc
// @Summary      Get a voucher
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Voucher ID"
// @Success      200 {object} dto.Response{data=marketing.VoucherResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/admin/vouchers/{id} [get]
func (h *VoucherHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	voucher, err := h.voucherService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, voucher)
}

// Create godoc
// @Summary      Create a voucher
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body marketing.VoucherRequest true "Voucher"
// @Success      201 {object} dto.Response{data=marketing.VoucherResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/admin/vouchers [post]
func (h *VoucherHandler) Create(c *gin.Context) {
	var req marketing.VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	voucher, err := h.voucherService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, voucher)
}

// Update godoc
// @Summary      Update a voucher
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                      true "Voucher ID"
// @Param        request body marketing.VoucherRequest true "Voucher"
// @Success      200 {object} dto.Response{data=marketing.VoucherResponse}
// @Router       /api/admin/vouchers/{id} [put]
func (h *VoucherHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req marketing.VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	voucher, err := h.voucherService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, voucher)
}

// Delete godoc
// @Summary      Delete a voucher
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Voucher ID"
// @Success      200 {object} dto.Response
// @Router       /api/admin/vouchers/{id} [delete]
func (h *VoucherHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.voucherService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Voucher deleted"})
}
