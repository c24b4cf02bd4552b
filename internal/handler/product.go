package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/reklik/reklik-server/internal/model"
	"github.com/reklik/reklik-server/internal/repository"
)

// ProductHandler serves the product catalog: CRUD, filtered listings and
// per-unit code generation.
type ProductHandler struct {
	Products  *repository.ProductRepo
	Companies *repository.CompanyRepo
	Codes     *repository.ProductCodeRepo
}

func NewProductHandler(products *repository.ProductRepo, companies *repository.CompanyRepo, codes *repository.ProductCodeRepo) *ProductHandler {
	return &ProductHandler{Products: products, Companies: companies, Codes: codes}
}

type productReq struct {
	CompanyID             uint64  `json:"company_id"`
	Name                  string  `json:"name"`
	Brand                 string  `json:"brand"`
	Description           string  `json:"description"`
	MaterialType          string  `json:"material_type"`
	WeightGrams           float64 `json:"weight_grams"`
	Recyclable            *bool   `json:"recyclable"`
	RecyclingInstructions string  `json:"recycling_instructions"`
	ImageURL              string  `json:"image_url"`
}

// Create handles POST /v1/products.
func (h *ProductHandler) Create(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	materialType := strings.TrimSpace(req.MaterialType)
	if name == "" || materialType == "" || req.CompanyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "company_id, name and material_type are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Companies.GetByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	now := time.Now().UTC()
	recyclable := true
	if req.Recyclable != nil {
		recyclable = *req.Recyclable
	}
	p, err := h.Products.Create(ctx, model.Product{
		CompanyID:             req.CompanyID,
		Name:                  name,
		Brand:                 strings.TrimSpace(req.Brand),
		Description:           strings.TrimSpace(req.Description),
		MaterialType:          materialType,
		WeightGrams:           req.WeightGrams,
		Recyclable:            recyclable,
		RecyclingInstructions: strings.TrimSpace(req.RecyclingInstructions),
		ImageURL:              strings.TrimSpace(req.ImageURL),
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create product failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /v1/products with optional ?material_type= and
// ?company_id= filters.
func (h *ProductHandler) List(c echo.Context) error {
	materialType := strings.TrimSpace(c.QueryParam("material_type"))
	var companyID uint64
	if raw := c.QueryParam("company_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company_id"})
		}
		companyID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Products.List(ctx, materialType, companyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /v1/products/:id. Empty fields keep their stored
// values.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if req.CompanyID != 0 {
		p.CompanyID = req.CompanyID
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		p.Name = name
	}
	if brand := strings.TrimSpace(req.Brand); brand != "" {
		p.Brand = brand
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		p.Description = desc
	}
	if mt := strings.TrimSpace(req.MaterialType); mt != "" {
		p.MaterialType = mt
	}
	if req.WeightGrams != 0 {
		p.WeightGrams = req.WeightGrams
	}
	if req.Recyclable != nil {
		p.Recyclable = *req.Recyclable
	}
	if ri := strings.TrimSpace(req.RecyclingInstructions); ri != "" {
		p.RecyclingInstructions = ri
	}
	if img := strings.TrimSpace(req.ImageURL); img != "" {
		p.ImageURL = img
	}
	p.UpdatedAt = time.Now().UTC()

	if err := h.Products.Update(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GenerateCodes handles POST /v1/products/:id/codes, minting count fresh
// uuid codes for a product batch.
func (h *ProductHandler) GenerateCodes(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Count       int    `json:"count"`
		BatchNumber string `json:"batch_number"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Count < 1 || req.Count > 1000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be between 1 and 1000"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if _, err := h.Products.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	now := time.Now().UTC()
	codes := make([]model.ProductCode, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		code, err := h.Codes.Create(ctx, model.ProductCode{
			ProductID:   id,
			Code:        uuid.NewString(),
			BatchNumber: strings.TrimSpace(req.BatchNumber),
			IsActive:    true,
			GeneratedAt: now,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate codes failed"})
		}
		codes = append(codes, code)
	}
	return c.JSON(http.StatusCreated, echo.Map{"items": codes})
}

// ListCodes handles GET /v1/products/:id/codes.
func (h *ProductHandler) ListCodes(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	codes, err := h.Codes.ListByProduct(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": codes})
}
