package controllers

import (
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetWishlist(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	items, err := h.svc.Wishlist.List(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Wishlist retrieved successfully", gin.H{"items": items, "count": len(items)})
}

func (h *Handler) AddToWishlist(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	utils.LogInfo("Adding product ID: %s to wishlist for user ID: %s", req.ProductID, user.ID)

	ctx := c.Request.Context()
	product, err := h.svc.Catalog.Get(ctx, req.ProductID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	item, err := h.svc.Wishlist.Add(ctx, user.ID, *product)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Product added to wishlist", item)
}

func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.svc.Wishlist.Remove(c.Request.Context(), user.ID, c.Param("product_id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Product removed from wishlist", nil)
}

func (h *Handler) MoveWishlistItemToCart(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.svc.Wishlist.MoveToCart(c.Request.Context(), user.ID, c.Param("product_id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Product moved to cart", nil)
}

func (h *Handler) MoveCartItemToWishlist(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.svc.Wishlist.MoveFromCart(c.Request.Context(), user.ID, c.Param("product_id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Product moved to wishlist", nil)
}
