package controllers

import (
	"context"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/services"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

type cartItemResponse struct {
	models.CartLineItem
	EffectivePrice float64 `json:"effective_price"`
	LineTotal      float64 `json:"line_total"`
}

type cartResponse struct {
	Items     []cartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  float64            `json:"subtotal"`
}

func toCartResponse(items []models.CartLineItem) cartResponse {
	resp := cartResponse{Items: make([]cartItemResponse, 0, len(items)), Subtotal: services.Subtotal(items)}
	for _, item := range items {
		resp.ItemCount += item.Quantity
		resp.Items = append(resp.Items, cartItemResponse{
			CartLineItem:   item,
			EffectivePrice: item.EffectivePrice(),
			LineTotal:      item.LineTotal(),
		})
	}
	return resp
}

// GetCart retrieves the user's cart with computed totals
func (h *Handler) GetCart(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogDebug("GetCart called for user ID: %s", user.ID)

	items, err := h.svc.Cart.ListItems(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Cart retrieved successfully", toCartResponse(items))
}

// AddToCart adds a catalog product to the cart. Adding a product that is
// already there is a conflict; use the quantity endpoints instead.
func (h *Handler) AddToCart(c *gin.Context) {
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
	utils.LogInfo("Adding product ID: %s with quantity: %d to cart for user ID: %s", req.ProductID, req.Quantity, user.ID)

	ctx := c.Request.Context()
	product, err := h.svc.Catalog.Get(ctx, req.ProductID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	item, err := h.svc.Cart.AddItem(ctx, user.ID, *product, req.Quantity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Product added to cart", item)
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	productID := c.Param("product_id")
	if err := h.svc.Cart.RemoveItem(c.Request.Context(), user.ID, productID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Product removed from cart", nil)
}

// SetCartQuantity overwrites the quantity of a cart line item.
func (h *Handler) SetCartQuantity(c *gin.Context) {
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
	productID := c.Param("product_id")
	if err := h.svc.Cart.SetQuantity(c.Request.Context(), user.ID, productID, req.Quantity); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Cart updated successfully", gin.H{"product_id": productID, "quantity": req.Quantity})
}

func (h *Handler) IncrementCartItem(c *gin.Context) {
	h.adjustCartItem(c, h.svc.Cart.Increment)
}

// DecrementCartItem lowers the quantity by one but never below one.
func (h *Handler) DecrementCartItem(c *gin.Context) {
	h.adjustCartItem(c, h.svc.Cart.Decrement)
}

func (h *Handler) adjustCartItem(c *gin.Context, adjust func(ctx context.Context, userID, productID string) (int, error)) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	productID := c.Param("product_id")
	quantity, err := adjust(c.Request.Context(), user.ID, productID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Cart updated successfully", gin.H{"product_id": productID, "quantity": quantity})
}

func (h *Handler) ClearCart(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("ClearCart called for user ID: %s", user.ID)
	if err := h.svc.Cart.Clear(c.Request.Context(), user.ID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Cart cleared successfully", nil)
}

// StreamCart pushes the full cart every time it changes.
func (h *Handler) StreamCart(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	feed, err := h.svc.Cart.Watch(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	streamFeed(c, "cart", feed)
}
