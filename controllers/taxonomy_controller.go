package controllers

import (
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// ListTerms lists one taxonomy kind (categories, subcategories, catalogues
// or tags). ?category= narrows subcategories to one category.
func (h *Handler) ListTerms(c *gin.Context) {
	kind := c.Param("kind")
	terms, err := h.svc.Taxonomy.List(c.Request.Context(), kind, c.Query("category"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Taxonomy retrieved successfully", terms)
}

// CreateTerm handles taxonomy entry creation
func (h *Handler) CreateTerm(c *gin.Context) {
	kind := c.Param("kind")
	utils.LogInfo("CreateTerm called for %s", kind)
	var req struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category"`
	}
	if !bindJSON(c, &req) {
		return
	}
	term, err := h.svc.Taxonomy.Create(c.Request.Context(), kind, req.Name, req.Category)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Taxonomy entry created successfully", term)
}

func (h *Handler) DeleteTerm(c *gin.Context) {
	kind, id := c.Param("kind"), c.Param("id")
	utils.LogInfo("DeleteTerm called for %s/%s", kind, id)
	if err := h.svc.Taxonomy.Delete(c.Request.Context(), kind, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Taxonomy entry deleted successfully", nil)
}
