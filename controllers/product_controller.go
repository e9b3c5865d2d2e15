package controllers

import (
	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

type productRequest struct {
	Name          string   `json:"name" binding:"required"`
	Price         float64  `json:"price" binding:"required"`
	DiscountPrice *float64 `json:"discount_price"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Catalogue     string   `json:"catalogue"`
	Tags          []string `json:"tags"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
}

func (r productRequest) product() models.Product {
	return models.Product{
		Name:          r.Name,
		Price:         r.Price,
		DiscountPrice: r.DiscountPrice,
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		Catalogue:     r.Catalogue,
		Tags:          r.Tags,
		Image:         r.Image,
		Description:   r.Description,
	}
}

type productResponse struct {
	models.Product
	EffectivePrice float64 `json:"effective_price"`
	OnSale         bool    `json:"on_sale"`
}

func toProductResponse(p models.Product) productResponse {
	return productResponse{Product: p, EffectivePrice: p.EffectivePrice(), OnSale: p.HasActiveDiscount()}
}

// ListProducts returns the catalog, optionally narrowed by ?category=.
func (h *Handler) ListProducts(c *gin.Context) {
	utils.LogDebug("ListProducts called")

	products, err := h.svc.Catalog.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	pagination := utils.NewPagination(c)
	page := utils.Paginate(products, pagination)
	out := make([]productResponse, 0, len(page))
	for _, p := range page {
		out = append(out, toProductResponse(p))
	}
	utils.SuccessWithPagination(c, "Products retrieved successfully", out, pagination)
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.svc.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Product retrieved successfully", toProductResponse(*product))
}

func (h *Handler) CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.svc.Catalog.Create(c.Request.Context(), req.product())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Product created successfully", toProductResponse(*product))
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	utils.LogInfo("UpdateProduct called for product ID: %s", id)
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.svc.Catalog.Update(c.Request.Context(), id, req.product())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Product updated successfully", toProductResponse(*product))
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	utils.LogInfo("DeleteProduct called for product ID: %s", id)
	if err := h.svc.Catalog.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Product deleted successfully", nil)
}
