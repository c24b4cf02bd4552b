package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reklik/reklik-server/internal/model"
	"github.com/reklik/reklik-server/internal/queue"
	"github.com/reklik/reklik-server/internal/repository"
	queue_publisher "github.com/reklik/reklik-server/internal/service"
)

// ScanHandler records product code scans and serves a user's scan and
// reward history. Reward points themselves are granted asynchronously by
// the queue consumer.
type ScanHandler struct {
	Codes    *repository.ProductCodeRepo
	Products *repository.ProductRepo
	Scans    *repository.ScanRepo
	Rewards  *repository.RewardRepo
}

func NewScanHandler(codes *repository.ProductCodeRepo, products *repository.ProductRepo, scans *repository.ScanRepo, rewards *repository.RewardRepo) *ScanHandler {
	return &ScanHandler{Codes: codes, Products: products, Scans: scans, Rewards: rewards}
}

type scanReq struct {
	Code        string `json:"code"`
	ScanType    string `json:"scan_type"`
	ScanCity    string `json:"scan_city"`
	ScanCountry string `json:"scan_country"`
	Notes       string `json:"notes"`
}

// Create handles POST /v1/scans: resolve the code, commit the scan log,
// then publish the event. The scan stands even if the broker is down; only
// the async reward is delayed to a later scan's retry of the consumer.
func (h *ScanHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req scanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}
	if !model.ValidScanType(req.ScanType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "scan_type must be info or recycle"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pc, err := h.Codes.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown code"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !pc.IsActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "code is no longer active"})
	}
	product, err := h.Products.GetByID(ctx, pc.ProductID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	scan, err := h.Scans.Create(ctx, model.ScanLog{
		ProductCodeID: pc.ID,
		UserID:        uid,
		ScanType:      req.ScanType,
		ScanCity:      strings.TrimSpace(req.ScanCity),
		ScanCountry:   strings.TrimSpace(req.ScanCountry),
		Notes:         strings.TrimSpace(req.Notes),
		ScannedAt:     time.Now().UTC(),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record scan failed"})
	}

	// A recycle scan retires the code; the same unit cannot be recycled
	// twice.
	if req.ScanType == model.ScanTypeRecycle {
		if err := h.Codes.Deactivate(ctx, code); err != nil {
			log.Printf("scan: deactivate code %s failed: %v", code, err)
		}
	}

	if err := queue_publisher.PublishScanRecorded(ctx, queue.ScanRecordedEvent{
		ScanLogID:     scan.ID,
		UserID:        uid,
		ProductCodeID: pc.ID,
		ProductID:     product.ID,
		ProductName:   product.Name,
		MaterialType:  product.MaterialType,
		ScanType:      scan.ScanType,
		ScannedAt:     scan.ScannedAt.Format(time.RFC3339),
		ScanCity:      scan.ScanCity,
		ScanCountry:   scan.ScanCountry,
	}); err != nil {
		log.Printf("scan: publish event for scan %d failed: %v", scan.ID, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"scan": scan, "product": product})
}

// List handles GET /v1/scans: the authenticated user's scan history.
func (h *ScanHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	scans, err := h.Scans.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": scans})
}

// ListRewards handles GET /v1/rewards: the authenticated user's reward
// history and point total.
func (h *ScanHandler) ListRewards(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rewards, err := h.Rewards.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	total, err := h.Rewards.TotalPoints(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rewards, "total_points": total})
}
