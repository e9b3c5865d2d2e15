package controllers

import (
	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/services"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

type orderResponse struct {
	models.Order
	ItemCount int `json:"item_count"`
	// NextStatuses lists the changes the caller may request from here.
	NextStatuses []models.OrderStatus `json:"next_statuses"`
}

func toOrderResponse(order models.Order, actor services.Actor) orderResponse {
	next := services.NextStatuses(actor, order.Status)
	if next == nil {
		next = []models.OrderStatus{}
	}
	return orderResponse{Order: order, ItemCount: order.ItemCount(), NextStatuses: next}
}

func toOrderResponses(orders []models.Order, actor services.Actor) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o, actor))
	}
	return out
}

// ListOrders returns the caller's orders, newest first.
func (h *Handler) ListOrders(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogDebug("ListOrders called for user ID: %s", user.ID)

	orders, err := h.svc.Orders.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	pagination := utils.NewPagination(c)
	page := utils.Paginate(orders, pagination)
	utils.SuccessWithPagination(c, "Orders retrieved successfully", toOrderResponses(page, services.ActorCustomer), pagination)
}

func (h *Handler) GetOrder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	order, err := h.svc.Orders.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Order retrieved successfully", toOrderResponse(*order, services.ActorCustomer))
}

type reasonRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelOrder asks the admin to cancel a Placed order.
func (h *Handler) CancelOrder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req reasonRequest
	if !bindJSON(c, &req) {
		return
	}
	orderID := c.Param("id")
	utils.LogInfo("Cancel requested for order ID: %s by user ID: %s", orderID, user.ID)

	order, err := h.svc.Lifecycle.RequestCancel(c.Request.Context(), user.ID, orderID, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Cancellation requested", toOrderResponse(*order, services.ActorCustomer))
}

// ReturnOrder asks the admin to accept a return of a Delivered order.
func (h *Handler) ReturnOrder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req reasonRequest
	if !bindJSON(c, &req) {
		return
	}
	orderID := c.Param("id")
	utils.LogInfo("Return requested for order ID: %s by user ID: %s", orderID, user.ID)

	order, err := h.svc.Lifecycle.RequestReturn(c.Request.Context(), user.ID, orderID, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Return requested", toOrderResponse(*order, services.ActorCustomer))
}

// GetActionReasons lists the reasons accepted by cancel and return.
func (h *Handler) GetActionReasons(c *gin.Context) {
	utils.Success(c, "Reasons retrieved successfully", models.ActionReasons)
}

func (h *Handler) StreamOrders(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	feed, err := h.svc.Orders.WatchUser(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	streamFeed(c, "orders", feed)
}
