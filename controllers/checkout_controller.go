package controllers

import (
	"errors"
	"net/http"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/services"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// GetCheckout shows what would be ordered right now: the buy-now item when
// one is set, else the cart, with the session coupon applied.
func (h *Handler) GetCheckout(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	sess := loadCheckout(c, user.ID)
	summary, err := h.svc.Checkout.Summary(c.Request.Context(), user.ID, sess)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Checkout summary", summary)
}

func (h *Handler) ApplyCoupon(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	utils.LogInfo("ApplyCoupon called for user ID: %s", user.ID)

	sess := loadCheckout(c, user.ID)
	summary, err := h.svc.Checkout.ApplyCoupon(c.Request.Context(), user.ID, sess, req.Code)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !saveCheckout(c, sess) {
		return
	}
	utils.Success(c, "Coupon applied successfully", summary)
}

func (h *Handler) RemoveCoupon(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	sess := loadCheckout(c, user.ID)
	h.svc.Checkout.RemoveCoupon(sess)
	if !saveCheckout(c, sess) {
		return
	}
	utils.Success(c, "Coupon removed", nil)
}

// BuyNow starts a single-product checkout that leaves the cart alone.
func (h *Handler) BuyNow(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx := c.Request.Context()
	sess := loadCheckout(c, user.ID)
	if err := h.svc.Checkout.BuyNow(ctx, sess, req.ProductID, req.Quantity); err != nil {
		utils.RespondError(c, err)
		return
	}
	if !saveCheckout(c, sess) {
		return
	}
	summary, err := h.svc.Checkout.Summary(ctx, user.ID, sess)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Buy now item set", summary)
}

func (h *Handler) UpdateBuyNow(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	sess := loadCheckout(c, user.ID)
	if err := h.svc.Checkout.SetBuyNowQuantity(sess, req.Quantity); err != nil {
		utils.RespondError(c, err)
		return
	}
	if !saveCheckout(c, sess) {
		return
	}
	summary, err := h.svc.Checkout.Summary(c.Request.Context(), user.ID, sess)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Buy now quantity updated", summary)
}

func (h *Handler) ClearBuyNow(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	sess := loadCheckout(c, user.ID)
	h.svc.Checkout.ClearBuyNow(sess)
	if !saveCheckout(c, sess) {
		return
	}
	utils.Success(c, "Buy now item cleared", nil)
}

// PlaceOrder writes the order and resets the checkout session.
func (h *Handler) PlaceOrder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Name          string `json:"name"`
		Phone         string `json:"phone"`
		Address       string `json:"address"`
		AddressID     string `json:"address_id"`
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	utils.LogInfo("PlaceOrder called for user ID: %s", user.ID)

	billing := models.BillingInfo{Name: req.Name, Phone: req.Phone, Address: req.Address}
	if req.AddressID != "" {
		// A saved address replaces the typed billing fields.
		saved, err := h.svc.Addresses.Billing(c.Request.Context(), user.ID, req.AddressID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		billing = saved
	}
	if missing := billing.MissingFields(); len(missing) > 0 {
		utils.Error(c, http.StatusUnprocessableEntity, "Please fill all billing details", gin.H{"missing": missing})
		return
	}

	sess := loadCheckout(c, user.ID)
	order, err := h.svc.Checkout.PlaceOrder(c.Request.Context(), user, sess, billing, req.PaymentMethod)
	if errors.Is(err, services.ErrCouponWithdrawn) && !saveCheckout(c, sess) {
		return
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := utils.ClearSessionKey(c, utils.CheckoutSessionKey); err != nil {
		utils.LogError("Order %s placed but checkout session reset failed: %v", order.ID, err)
	}
	utils.Created(c, "Order placed successfully", order)
}
