package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/services"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// statusQuery parses ?status=. An empty value means every status.
func statusQuery(c *gin.Context) (models.OrderStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return "", true
	}
	status, err := models.ParseOrderStatus(raw)
	if err != nil {
		utils.BadRequest(c, "Invalid status filter", err.Error())
		return "", false
	}
	return status, true
}

// AdminListOrders lists every user's orders, newest first.
func (h *Handler) AdminListOrders(c *gin.Context) {
	utils.LogDebug("AdminListOrders called")
	status, ok := statusQuery(c)
	if !ok {
		return
	}
	orders, err := h.svc.Orders.ListAll(c.Request.Context(), status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	pagination := utils.NewPagination(c)
	page := utils.Paginate(orders, pagination)
	utils.SuccessWithPagination(c, "Orders retrieved successfully", toOrderResponses(page, services.ActorAdmin), pagination)
}

func (h *Handler) AdminGetOrder(c *gin.Context) {
	order, err := h.svc.Orders.Get(c.Request.Context(), store.AllOwners, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Order retrieved successfully", toOrderResponse(*order, services.ActorAdmin))
}

// AdminUpdateOrderStatus applies an admin decision. The status may be sent
// in display form ("Return Approved") or upper snake form ("RETURN_APPROVED").
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	orderID := c.Param("id")
	to, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		utils.BadRequest(c, "Invalid status", err.Error())
		return
	}
	utils.LogInfo("Admin status change for order ID: %s to %s", orderID, to)

	order, err := h.svc.Lifecycle.UpdateStatus(c.Request.Context(), orderID, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Order status updated successfully", toOrderResponse(*order, services.ActorAdmin))
}

// reportOrders loads the orders selected by ?status= and the report period
// (?period=day|week|month|custom with start_date and end_date).
func (h *Handler) reportOrders(c *gin.Context) ([]models.Order, services.ReportWindow, bool) {
	status, ok := statusQuery(c)
	if !ok {
		return nil, services.ReportWindow{}, false
	}
	window, err := services.ParseReportWindow(c.Query("period"), c.Query("start_date"), c.Query("end_date"), time.Now())
	if err != nil {
		utils.LogError("Invalid report period: %v", err)
		utils.RespondError(c, err)
		return nil, services.ReportWindow{}, false
	}
	orders, err := h.svc.Orders.ListAll(c.Request.Context(), status)
	if err != nil {
		utils.RespondError(c, err)
		return nil, services.ReportWindow{}, false
	}
	return services.FilterOrders(orders, window), window, true
}

// AdminOrdersReport returns the sales summary for the selected orders.
func (h *Handler) AdminOrdersReport(c *gin.Context) {
	utils.LogInfo("AdminOrdersReport called")
	orders, window, ok := h.reportOrders(c)
	if !ok {
		return
	}
	utils.Success(c, "Sales report generated successfully", gin.H{
		"window":  window,
		"summary": services.SummarizeOrders(orders),
	})
}

// AdminExportOrders downloads the filtered orders as an xlsx workbook.
func (h *Handler) AdminExportOrders(c *gin.Context) {
	utils.LogInfo("AdminExportOrders called")
	orders, _, ok := h.reportOrders(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := services.WriteOrdersSheet(&buf, h.storeName, orders); err != nil {
		utils.LogError("Failed to generate orders spreadsheet: %v", err)
		utils.InternalServerError(c, "Failed to generate spreadsheet", nil)
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	utils.LogInfo("Exported %d orders", len(orders))
}

// AdminStreamOrders pushes the admin-wide order list on every change.
func (h *Handler) AdminStreamOrders(c *gin.Context) {
	status, ok := statusQuery(c)
	if !ok {
		return
	}
	feed, err := h.svc.Orders.WatchAll(c.Request.Context(), status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	streamFeed(c, "orders", feed)
}
