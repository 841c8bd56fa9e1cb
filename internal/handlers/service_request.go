package handlers

import (
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Prachiopenxcell/platform998_be/internal/models"
	"github.com/Prachiopenxcell/platform998_be/internal/routing"
)

type ServiceRequestHandler struct {
	DB *gorm.DB
}

func NewServiceRequestHandler(db *gorm.DB) *ServiceRequestHandler {
	return &ServiceRequestHandler{DB: db}
}

type createServiceRequestReq struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Budget      int64  `json:"budget"`
}

func (h *ServiceRequestHandler) Create(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req createServiceRequestReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	title := strings.TrimSpace(req.Title)
	category := strings.TrimSpace(req.Category)

	errs := FieldErrors{}
	if title == "" {
		errs.Add("title", "Title is required")
	}
	if category == "" {
		errs.Add("category", "Category is required")
	}
	if req.Budget < 0 {
		errs.Add("budget", "Budget cannot be negative")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	sr := models.ServiceRequest{
		SeekerID:    userID,
		Title:       title,
		Category:    category,
		Description: strings.TrimSpace(req.Description),
		Budget:      req.Budget,
		Status:      models.RequestOpen,
	}

	if err := h.DB.Create(&sr).Error; err != nil {
		return fail500(c, "failed to create service request")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    sr,
	})
}

func (h *ServiceRequestHandler) List(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	var requests []models.ServiceRequest
	var total int64

	q := h.DB.Model(&models.ServiceRequest{}).Where("seeker_id = ?", userID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	q.Count(&total)
	q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests)

	data := make([]fiber.Map, 0, len(requests))
	for _, r := range requests {
		data = append(data, fiber.Map{
			"id":          r.ID,
			"title":       r.Title,
			"category":    r.Category,
			"description": r.Description,
			"budget":      r.Budget,
			"status":      r.Status,
			"badge":       routing.BadgeFor(string(r.Status)),
			"created_at":  r.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"meta": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total_items": total,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// ListOpen is the provider view: open requests across the marketplace.
func (h *ServiceRequestHandler) ListOpen(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	var requests []models.ServiceRequest
	var total int64

	q := h.DB.Model(&models.ServiceRequest{}).Where("status = ?", models.RequestOpen)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	q.Count(&total)
	q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    requests,
		"meta": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total_items": total,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *ServiceRequestHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req updateStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	status := models.ServiceRequestStatus(strings.TrimSpace(req.Status))
	switch status {
	case models.RequestOpen, models.RequestInProgress, models.RequestReview, models.RequestClosed:
	default:
		return fail200(c, "invalid status")
	}

	res := h.DB.Model(&models.ServiceRequest{}).
		Where("id = ? AND seeker_id = ?", c.Params("id"), userID).
		Update("status", status)
	if res.Error != nil {
		return fail500(c, "failed to update status")
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Service request not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
