package controllers

import (
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// CreateCoupon handles coupon creation
func (h *Handler) CreateCoupon(c *gin.Context) {
	utils.LogInfo("CreateCoupon called")
	var req struct {
		Code     string  `json:"code" binding:"required"`
		Discount float64 `json:"discount" binding:"required"`
		Active   *bool   `json:"active"`
	}
	if !bindJSON(c, &req) {
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	coupon, err := h.svc.CouponAdm.Create(c.Request.Context(), req.Code, req.Discount, active)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Coupon created successfully", coupon)
}

func (h *Handler) ListCoupons(c *gin.Context) {
	coupons, err := h.svc.CouponAdm.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Coupons retrieved successfully", coupons)
}

func (h *Handler) SetCouponActive(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	if err := h.svc.CouponAdm.SetActive(c.Request.Context(), id, *req.Active); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Coupon updated successfully", gin.H{"id": id, "active": *req.Active})
}

func (h *Handler) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")
	utils.LogInfo("DeleteCoupon called for coupon ID: %s", id)
	if err := h.svc.CouponAdm.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Coupon deleted successfully", nil)
}
