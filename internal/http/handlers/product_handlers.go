package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/identitysvc/domain"
)

// ProductHandlers serves the product administration endpoints. Route-level
// authorization (superuser only) is enforced by the casbin middleware.
type ProductHandlers struct {
	productRepo domain.ProductRepository
}

func NewProductHandlers(productRepo domain.ProductRepository) *ProductHandlers {
	return &ProductHandlers{productRepo: productRepo}
}

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	HomeURL     string `json:"home_url"`
	ExternalID  string `json:"external_id" binding:"required"`
}

var productLabels = map[string]string{
	"Name":       "Name",
	"ExternalID": "External id",
}

// Create registers a purchasable product backing cart validation.
func (h *ProductHandlers) Create(c *gin.Context) {
	var req CreateProductRequest
	if !bindJSON(c, &req, productLabels) {
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		HomeURL:     req.HomeURL,
		ExternalID:  req.ExternalID,
	}
	if err := h.productRepo.Create(c.Request.Context(), product); err != nil {
		log.Printf("product creation failed: %v", err)
		respondUnexpected(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          product.ID,
		"name":        product.Name,
		"external_id": product.ExternalID,
	})
}

// List returns the product catalogue.
func (h *ProductHandlers) List(c *gin.Context) {
	products, err := h.productRepo.List(c.Request.Context())
	if err != nil {
		log.Printf("product listing failed: %v", err)
		respondUnexpected(c)
		return
	}

	out := make([]gin.H, 0, len(products))
	for _, p := range products {
		out = append(out, gin.H{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
			"home_url":    p.HomeURL,
			"external_id": p.ExternalID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}
