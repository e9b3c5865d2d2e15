package controllers

import (
	"github.com/Govind-619/ShopSphere/services"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// SaveCard records masked card details from the payment screen. Nothing is
// charged.
func (h *Handler) SaveCard(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req services.CardInput
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.svc.Payments.Record(c.Request.Context(), user.ID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Card details saved", record)
}

func (h *Handler) ListCards(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	records, err := h.svc.Payments.List(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Card details retrieved successfully", records)
}
