// Package controllers holds the gin handlers for the customer and admin
// APIs. Handlers only translate HTTP to service calls; every rule lives in
// the services package.
package controllers

import (
	"github.com/Govind-619/ShopSphere/middleware"
	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/services"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// Handler serves every route over one set of services.
type Handler struct {
	svc       *services.Services
	storeName string
}

func NewHandler(svc *services.Services, storeName string) *Handler {
	if storeName == "" {
		storeName = utils.AppName
	}
	return &Handler{svc: svc, storeName: storeName}
}

// requireUser returns the authenticated user or writes a 401.
func requireUser(c *gin.Context) (models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return models.User{}, false
	}
	return user, true
}

// loadCheckout reads the checkout session of userID. A corrupt cookie, or
// one started by another user, starts over with an empty session.
func loadCheckout(c *gin.Context, userID string) *services.CheckoutSession {
	sess := &services.CheckoutSession{}
	if err := utils.LoadSessionJSON(c, utils.CheckoutSessionKey, sess); err != nil {
		utils.LogWarn("Discarding checkout session: %v", err)
		return services.NewCheckoutSession(userID)
	}
	if !sess.OwnedBy(userID) {
		if sess.UserID != "" {
			utils.LogWarn("Discarding checkout session of user ID: %s presented by user ID: %s", sess.UserID, userID)
		}
		return services.NewCheckoutSession(userID)
	}
	return sess
}

func saveCheckout(c *gin.Context, sess *services.CheckoutSession) bool {
	if err := utils.SaveSessionJSON(c, utils.CheckoutSessionKey, sess); err != nil {
		utils.LogError("Failed to save checkout session: %v", err)
		utils.InternalServerError(c, "Failed to save checkout session", nil)
		return false
	}
	return true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogDebug("Invalid request body for %s: %v", c.FullPath(), err)
		utils.BadRequest(c, utils.ErrInvalidRequest, err.Error())
		return false
	}
	return true
}
