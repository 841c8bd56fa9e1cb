package handlers

import (
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Prachiopenxcell/platform998_be/internal/middleware"
	"github.com/Prachiopenxcell/platform998_be/internal/models"
	"github.com/Prachiopenxcell/platform998_be/internal/routing"
)

type WorkOrderHandler struct {
	DB *gorm.DB
}

func NewWorkOrderHandler(db *gorm.DB) *WorkOrderHandler {
	return &WorkOrderHandler{DB: db}
}

// List returns the caller's work orders; seekers see orders they raised,
// providers see orders assigned to them.
func (h *WorkOrderHandler) List(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	role, _ := middleware.RoleFromLocals(c)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	q := h.DB.Model(&models.WorkOrder{}).
		Preload("Seeker").
		Preload("Provider")
	if role.IsProvider() {
		q = q.Where("provider_id = ?", userID)
	} else {
		q = q.Where("seeker_id = ?", userID)
	}

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.WorkOrder
	var total int64
	q.Count(&total)
	q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders)

	data := make([]fiber.Map, 0, len(orders))
	for _, o := range orders {
		seekerName := ""
		if o.Seeker != nil {
			seekerName = o.Seeker.Name
		}
		providerName := ""
		if o.Provider != nil {
			providerName = o.Provider.Name
		}
		data = append(data, fiber.Map{
			"id":            o.ID,
			"order_code":    o.OrderCode,
			"title":         o.Title,
			"amount":        o.Amount,
			"status":        o.Status,
			"badge":         routing.BadgeFor(string(o.Status)),
			"due_date":      o.DueDate,
			"created_at":    o.CreatedAt,
			"seeker_name":   seekerName,
			"provider_name": providerName,
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

func (h *WorkOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req updateStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	status := models.WorkOrderStatus(strings.TrimSpace(req.Status))
	switch status {
	case models.WorkOrderActive, models.WorkOrderInactive, models.WorkOrderInProgress,
		models.WorkOrderReview, models.WorkOrderClosed:
	default:
		return fail200(c, "invalid status")
	}

	res := h.DB.Model(&models.WorkOrder{}).
		Where("id = ? AND (seeker_id = ? OR provider_id = ?)", c.Params("id"), userID, userID).
		Update("status", status)
	if res.Error != nil {
		return fail500(c, "failed to update status")
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Work order not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
