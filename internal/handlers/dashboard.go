package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Prachiopenxcell/platform998_be/internal/logger"
	"github.com/Prachiopenxcell/platform998_be/internal/middleware"
	"github.com/Prachiopenxcell/platform998_be/internal/models"
	"github.com/Prachiopenxcell/platform998_be/internal/profile"
	"github.com/Prachiopenxcell/platform998_be/internal/routing"
)

const statsCacheTTL = 60 * time.Second

type DashboardHandler struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewDashboardHandler(db *gorm.DB, rdb *redis.Client) *DashboardHandler {
	return &DashboardHandler{DB: db, RDB: rdb}
}

func (h *DashboardHandler) Routes(r fiber.Router, authMiddleware ...fiber.Handler) {
	g := r.Group("/dashboard")
	for _, m := range authMiddleware {
		g.Use(m)
	}
	g.Get("/", h.GetDashboard)
	g.Get("/notifications", h.GetNotifications)
	g.Patch("/notifications/:id/read", h.MarkNotificationRead)
}

type serviceRequestStats struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Review     int64 `json:"review"`
	Closed     int64 `json:"closed"`
}

type workOrderStats struct {
	Total       int64 `json:"total"`
	Active      int64 `json:"active"`
	InProgress  int64 `json:"in_progress"`
	Review      int64 `json:"review"`
	Closed      int64 `json:"closed"`
	TotalAmount int64 `json:"total_amount"`
}

// GetDashboard assembles the role-routed dashboard. The two stat queries
// fan out concurrently and join before the response is built; both are
// scoped to the request context so a dropped request discards the results.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication Required",
			"data":    fiber.Map{"variant": routing.Unauthenticated},
		})
	}

	role, known := middleware.RoleFromLocals(c)
	var variant routing.DashboardVariant
	if known {
		variant = routing.RouteDashboard(&role)
	} else {
		variant = routing.AccessRestricted
	}

	if variant == routing.AccessRestricted {
		// a defined terminal state, not an error
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Access Restricted",
			"data":    fiber.Map{"variant": variant},
		})
	}

	ctx := c.Context()

	srStats, woStats, err := h.loadStats(ctx, userID, role)
	if err != nil {
		logger.L().Error("dashboard stats", zap.Error(err))
		return fail500(c, "Failed to load dashboard data. Please try again.")
	}

	var notifications []models.Notification
	h.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(10).
		Find(&notifications)

	var subscriptions []models.Subscription
	h.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&subscriptions)

	recentOrders := h.recentWorkOrders(ctx, userID, role)

	completion := h.completionSummary(ctx, userID)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"variant":               variant,
			"sections":              routing.DashboardSections(variant),
			"service_request_stats": srStats,
			"work_order_stats":      woStats,
			"notifications":         notifications,
			"subscriptions":         subscriptions,
			"recent_work_orders":    recentOrders,
			"profile_completion":    completion,
		},
	})
}

// loadStats answers from the redis cache when fresh, otherwise fans the two
// stat queries out in parallel and caches the joined result.
func (h *DashboardHandler) loadStats(ctx context.Context, userID uuid.UUID, role models.Role) (serviceRequestStats, workOrderStats, error) {
	type cached struct {
		SR serviceRequestStats `json:"sr"`
		WO workOrderStats      `json:"wo"`
	}

	cacheKey := fmt.Sprintf("p998:dashstats:%s", userID)
	if raw, err := h.RDB.Get(ctx, cacheKey).Result(); err == nil {
		var cc cached
		if json.Unmarshal([]byte(raw), &cc) == nil {
			return cc.SR, cc.WO, nil
		}
	}

	var (
		wg    sync.WaitGroup
		sr    serviceRequestStats
		wo    workOrderStats
		srErr error
		woErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		srErr = h.serviceRequestStats(ctx, userID, role, &sr)
	}()
	go func() {
		defer wg.Done()
		woErr = h.workOrderStats(ctx, userID, role, &wo)
	}()
	wg.Wait()

	if srErr != nil {
		return sr, wo, srErr
	}
	if woErr != nil {
		return sr, wo, woErr
	}
	if ctx.Err() != nil {
		// request went away; drop the result instead of caching it
		return sr, wo, ctx.Err()
	}

	if b, err := json.Marshal(cached{SR: sr, WO: wo}); err == nil {
		if err := h.RDB.Set(ctx, cacheKey, b, statsCacheTTL).Err(); err != nil {
			logger.L().Warn("cache dashboard stats", zap.Error(err))
		}
	}
	return sr, wo, nil
}

func (h *DashboardHandler) serviceRequestStats(ctx context.Context, userID uuid.UUID, role models.Role, out *serviceRequestStats) error {
	q := h.DB.WithContext(ctx).Model(&models.ServiceRequest{})
	if role.IsSeeker() {
		q = q.Where("seeker_id = ?", userID)
	} else {
		// providers see the open market
		q = q.Where("status = ?", models.RequestOpen)
	}

	rows := []struct {
		Status string
		N      int64
	}{}
	if err := q.Select("status, COUNT(*) as n").Group("status").Scan(&rows).Error; err != nil {
		return err
	}
	for _, r := range rows {
		out.Total += r.N
		switch models.ServiceRequestStatus(r.Status) {
		case models.RequestOpen:
			out.Open = r.N
		case models.RequestInProgress:
			out.InProgress = r.N
		case models.RequestReview:
			out.Review = r.N
		case models.RequestClosed:
			out.Closed = r.N
		}
	}
	return nil
}

func (h *DashboardHandler) workOrderStats(ctx context.Context, userID uuid.UUID, role models.Role, out *workOrderStats) error {
	q := h.DB.WithContext(ctx).Model(&models.WorkOrder{})
	if role.IsSeeker() {
		q = q.Where("seeker_id = ?", userID)
	} else {
		q = q.Where("provider_id = ?", userID)
	}

	rows := []struct {
		Status string
		N      int64
		Amount int64
	}{}
	if err := q.Select("status, COUNT(*) as n, COALESCE(SUM(amount), 0) as amount").
		Group("status").Scan(&rows).Error; err != nil {
		return err
	}
	for _, r := range rows {
		out.Total += r.N
		out.TotalAmount += r.Amount
		switch models.WorkOrderStatus(r.Status) {
		case models.WorkOrderActive:
			out.Active = r.N
		case models.WorkOrderInProgress:
			out.InProgress = r.N
		case models.WorkOrderReview:
			out.Review = r.N
		case models.WorkOrderClosed:
			out.Closed = r.N
		}
	}
	return nil
}

func (h *DashboardHandler) recentWorkOrders(ctx context.Context, userID uuid.UUID, role models.Role) []fiber.Map {
	q := h.DB.WithContext(ctx).Model(&models.WorkOrder{})
	if role.IsSeeker() {
		q = q.Where("seeker_id = ?", userID)
	} else {
		q = q.Where("provider_id = ?", userID)
	}

	var orders []models.WorkOrder
	q.Order("created_at DESC").Limit(5).Find(&orders)

	out := make([]fiber.Map, 0, len(orders))
	for _, o := range orders {
		out = append(out, fiber.Map{
			"id":         o.ID,
			"order_code": o.OrderCode,
			"title":      o.Title,
			"amount":     o.Amount,
			"status":     o.Status,
			"badge":      routing.BadgeFor(string(o.Status)),
			"created_at": o.CreatedAt,
		})
	}
	return out
}

func (h *DashboardHandler) completionSummary(ctx context.Context, userID uuid.UUID) fiber.Map {
	var p models.Profile
	err := h.DB.WithContext(ctx).
		Preload("BankingDetails").
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return fiber.Map{"overall_percentage": 0, "fields_complete": false}
	}

	st := profile.Calculate(profile.RecordOf(&p), p.Role)
	return fiber.Map{
		"overall_percentage":        st.OverallPercentage,
		"fields_complete":           st.FieldsComplete,
		"eligible_for_permanent_id": st.EligibleForPermanentID,
		"missing_mandatory_fields":  st.MissingMandatoryFields,
		"status":                    p.Status,
	}
}

func (h *DashboardHandler) GetNotifications(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	var notifications []models.Notification
	var total int64

	q := h.DB.Model(&models.Notification{}).Where("user_id = ?", userID)
	q.Count(&total)
	q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    notifications,
		"meta": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total_items": total,
		},
	})
}

func (h *DashboardHandler) MarkNotificationRead(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail200(c, "invalid notification id")
	}

	res := h.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return fail500(c, "failed to update notification")
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Notification not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
