package controllers

import (
	"github.com/Govind-619/ShopSphere/services"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// AddAddress saves a new address to the user's address book
func (h *Handler) AddAddress(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("AddAddress called for user ID: %s", user.ID)
	var req services.AddressInput
	if !bindJSON(c, &req) {
		return
	}
	addr, err := h.svc.Addresses.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Address added successfully", addr)
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req services.AddressInput
	if !bindJSON(c, &req) {
		return
	}
	addr, err := h.svc.Addresses.Update(c.Request.Context(), user.ID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Address updated successfully", addr)
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.svc.Addresses.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Address deleted successfully", nil)
}

// ListAddresses returns the address book, newest first.
func (h *Handler) ListAddresses(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	addrs, err := h.svc.Addresses.List(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Addresses retrieved successfully", addrs)
}

func (h *Handler) StreamAddresses(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	feed, err := h.svc.Addresses.Watch(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	streamFeed(c, "addresses", feed)
}
