package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Govind-619/ShopSphere/services"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// DownloadInvoice generates and returns a PDF invoice for the order
func (h *Handler) DownloadInvoice(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	orderID := c.Param("id")
	utils.LogInfo("Processing invoice download for order ID: %s", orderID)

	order, err := h.svc.Orders.Get(c.Request.Context(), user.ID, orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteInvoice(&buf, h.storeName, *order); err != nil {
		utils.LogError("Failed to generate invoice PDF for order ID: %s: %v", orderID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%s.pdf", orderID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	utils.LogInfo("Invoice downloaded for order ID: %s", orderID)
}
