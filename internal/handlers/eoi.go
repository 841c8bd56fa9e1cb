package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Prachiopenxcell/platform998_be/internal/eoi"
	"github.com/Prachiopenxcell/platform998_be/internal/models"
	"github.com/Prachiopenxcell/platform998_be/internal/realtime"
)

// EOIHandler is the multi-tab Expression of Interest builder used in
// insolvency-resolution workflows.
type EOIHandler struct {
	DB       *gorm.DB
	Offsets  eoi.DayOffsets
	Notifier *realtime.Notifier
}

func NewEOIHandler(db *gorm.DB, offsets eoi.DayOffsets, notifier *realtime.Notifier) *EOIHandler {
	return &EOIHandler{DB: db, Offsets: offsets, Notifier: notifier}
}

func (h *EOIHandler) Routes(r fiber.Router, authMiddleware ...fiber.Handler) {
	g := r.Group("/eoi")
	for _, m := range authMiddleware {
		g.Use(m)
	}
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.Get)
	g.Patch("/:id/details", h.UpdateDetails)
	g.Patch("/:id/eligibility", h.UpdateEligibility)
	g.Patch("/:id/evaluation", h.UpdateEvaluation)
	g.Post("/:id/coc", h.AddCOCMember)
	g.Delete("/:id/coc/:memberId", h.RemoveCOCMember)
	g.Get("/:id/invitation", h.RenderInvitation)
	g.Post("/:id/publish", h.Publish)
}

func (h *EOIHandler) ownedEOI(c *fiber.Ctx, userID uuid.UUID) (*models.EOI, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid eoi id")
	}

	var e models.EOI
	if err := h.DB.Preload("COCMembers").
		Where("id = ? AND creator_id = ?", id, userID).
		First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "EOI not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load EOI")
	}
	return &e, nil
}

func (h *EOIHandler) Create(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	e := models.EOI{
		CreatorID:   userID,
		ReferenceNo: models.GenerateEOIReference(),
		Status:      models.EOIDraft,
	}

	if err := h.DB.Create(&e).Error; err != nil {
		return fail500(c, "failed to create EOI")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    e,
	})
}

func (h *EOIHandler) List(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	offset := (page - 1) * limit

	var eois []models.EOI
	var total int64

	q := h.DB.Model(&models.EOI{}).Where("creator_id = ?", userID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	q.Count(&total)
	q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&eois)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    eois,
		"meta": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total_items": total,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

func (h *EOIHandler) Get(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	e, err := h.ownedEOI(c, userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": e})
}

// Tab 1: invitation details. Saving a publication date recomputes the whole
// key-date timetable.
type eoiDetailsReq struct {
	CorporateDebtorName string `json:"corporate_debtor_name"`
	ProfessionalName    string `json:"professional_name"`
	RegistrationNo      string `json:"registration_no"`
	PublicationDate     string `json:"publication_date"` // YYYY-MM-DD
}

func (h *EOIHandler) UpdateDetails(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req eoiDetailsReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	e, err := h.ownedEOI(c, userID)
	if err != nil {
		return err
	}
	if e.Status != models.EOIDraft {
		return fail200(c, "EOI already published")
	}

	e.CorporateDebtorName = strings.TrimSpace(req.CorporateDebtorName)
	e.ProfessionalName = strings.TrimSpace(req.ProfessionalName)
	e.RegistrationNo = strings.TrimSpace(req.RegistrationNo)

	if raw := strings.TrimSpace(req.PublicationDate); raw != "" {
		pub, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fail200(c, "publication_date must be YYYY-MM-DD")
		}
		dates := eoi.ComputeKeyDates(pub, h.Offsets)
		e.PublicationDate = &pub
		e.SubmissionDeadline = &dates.SubmissionDeadline
		e.ProvisionalListDate = &dates.ProvisionalListDate
		e.ObjectionWindowClose = &dates.ObjectionWindowClose
		e.FinalListDate = &dates.FinalListDate
	}

	e.UpdatedAt = time.Now()
	if err := h.DB.Omit("COCMembers").Save(e).Error; err != nil {
		return fail500(c, "failed to update EOI")
	}

	return c.JSON(fiber.Map{"success": true, "data": e})
}

func (h *EOIHandler) UpdateEligibility(c *fiber.Ctx) error {
	return h.updateTab(c, func(e *models.EOI, body []byte) {
		e.Eligibility = datatypes.JSON(body)
	})
}

func (h *EOIHandler) UpdateEvaluation(c *fiber.Ctx) error {
	return h.updateTab(c, func(e *models.EOI, body []byte) {
		e.EvaluationMatrix = datatypes.JSON(body)
	})
}

// updateTab stores a free-form tab payload as JSONB.
func (h *EOIHandler) updateTab(c *fiber.Ctx, apply func(e *models.EOI, body []byte)) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	body := c.Body()
	var probe map[string]any
	if err := json.Unmarshal(body, &probe); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	e, err := h.ownedEOI(c, userID)
	if err != nil {
		return err
	}
	if e.Status != models.EOIDraft {
		return fail200(c, "EOI already published")
	}

	apply(e, body)
	e.UpdatedAt = time.Now()
	if err := h.DB.Omit("COCMembers").Save(e).Error; err != nil {
		return fail500(c, "failed to update EOI")
	}

	return c.JSON(fiber.Map{"success": true, "data": e})
}

type cocMemberReq struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	VotingShare float64 `json:"voting_share"`
}

func (h *EOIHandler) AddCOCMember(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req cocMemberReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	errs := FieldErrors{}
	if name == "" {
		errs.Add("name", "Name is required")
	}
	if problems := eoi.ValidateEmails([]string{email}); len(problems) > 0 {
		for _, p := range problems {
			errs.Add("email", p)
		}
	}
	if req.VotingShare < 0 || req.VotingShare > 100 {
		errs.Add("voting_share", "Voting share must be between 0 and 100")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	e, err := h.ownedEOI(c, userID)
	if err != nil {
		return err
	}

	member := models.COCMember{
		EOIID:       e.ID,
		Name:        name,
		Email:       email,
		VotingShare: req.VotingShare,
	}
	if err := h.DB.Create(&member).Error; err != nil {
		return fail500(c, "failed to add COC member")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    member,
	})
}

func (h *EOIHandler) RemoveCOCMember(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	e, err := h.ownedEOI(c, userID)
	if err != nil {
		return err
	}

	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return fail200(c, "invalid member id")
	}

	res := h.DB.Where("id = ? AND eoi_id = ?", memberID, e.ID).Delete(&models.COCMember{})
	if res.Error != nil {
		return fail500(c, "failed to remove COC member")
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "COC member not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *EOIHandler) RenderInvitation(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	e, err := h.ownedEOI(c, userID)
	if err != nil {
		return err
	}

	text, err := h.invitationText(e)
	if err != nil {
		return fail200(c, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"invitation": text},
	})
}

// Publish locks the invitation and notifies the creator. The invitation
// text must be renderable, which requires the details tab to be complete.
func (h *EOIHandler) Publish(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	e, err := h.ownedEOI(c, userID)
	if err != nil {
		return err
	}
	if e.Status != models.EOIDraft {
		return fail200(c, "EOI already published")
	}

	missing := []string{}
	if e.CorporateDebtorName == "" {
		missing = append(missing, "corporate_debtor_name")
	}
	if e.ProfessionalName == "" {
		missing = append(missing, "professional_name")
	}
	if e.RegistrationNo == "" {
		missing = append(missing, "registration_no")
	}
	if e.PublicationDate == nil {
		missing = append(missing, "publication_date")
	}
	if len(e.COCMembers) == 0 {
		missing = append(missing, "coc_members")
	}
	if len(missing) > 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "EOI is incomplete",
			"missing": missing,
		})
	}

	if _, err := h.invitationText(e); err != nil {
		return fail200(c, err.Error())
	}

	e.Status = models.EOIPublished
	e.UpdatedAt = time.Now()
	if err := h.DB.Omit("COCMembers").Save(e).Error; err != nil {
		return fail500(c, "failed to publish EOI")
	}

	h.Notifier.Notify(c.Context(), userID, "EOI published",
		"Expression of Interest "+e.ReferenceNo+" has been published.")

	return c.JSON(fiber.Map{"success": true, "data": e})
}

func (h *EOIHandler) invitationText(e *models.EOI) (string, error) {
	if e.PublicationDate == nil || e.SubmissionDeadline == nil {
		return "", errors.New("publication date is not set")
	}
	return eoi.RenderInvitation(eoi.InvitationData{
		ReferenceNo:         e.ReferenceNo,
		CorporateDebtorName: e.CorporateDebtorName,
		ProfessionalName:    e.ProfessionalName,
		RegistrationNo:      e.RegistrationNo,
		PublicationDate:     *e.PublicationDate,
		Dates: eoi.KeyDates{
			SubmissionDeadline:   *e.SubmissionDeadline,
			ProvisionalListDate:  *e.ProvisionalListDate,
			ObjectionWindowClose: *e.ObjectionWindowClose,
			FinalListDate:        *e.FinalListDate,
		},
	})
}
