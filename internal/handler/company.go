package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reklik/reklik-server/internal/model"
	"github.com/reklik/reklik-server/internal/repository"
)

// CompanyHandler serves the producer companies behind the product catalog.
type CompanyHandler struct {
	Companies *repository.CompanyRepo
}

func NewCompanyHandler(companies *repository.CompanyRepo) *CompanyHandler {
	return &CompanyHandler{Companies: companies}
}

// Create handles POST /v1/companies (admin only).
func (h *CompanyHandler) Create(c echo.Context) error {
	var req struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		ContactPerson string `json:"contact_person"`
		Phone         string `json:"phone"`
		Address       string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	company, err := h.Companies.Create(ctx, model.Company{
		Name:          name,
		Email:         email,
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       strings.TrimSpace(req.Address),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create company failed"})
	}
	return c.JSON(http.StatusCreated, company)
}

// List handles GET /v1/companies.
func (h *CompanyHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Companies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/companies/:id.
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	company, err := h.Companies.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, company)
}
