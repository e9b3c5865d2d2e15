package controllers

import (
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	items, err := h.svc.Inbox.List(ctx, user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	utils.Success(c, "Notifications retrieved successfully", gin.H{"items": items, "unread": unread})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.svc.Inbox.MarkRead(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Notification marked as read", nil)
}

func (h *Handler) UnreadNotificationCount(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	n, err := h.svc.Inbox.UnreadCount(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Unread count", gin.H{"unread": n})
}

func (h *Handler) StreamNotifications(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	feed, err := h.svc.Inbox.Watch(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	streamFeed(c, "notifications", feed)
}
