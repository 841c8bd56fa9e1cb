package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Prachiopenxcell/platform998_be/internal/logger"
	"github.com/Prachiopenxcell/platform998_be/internal/middleware"
	"github.com/Prachiopenxcell/platform998_be/internal/models"
	"github.com/Prachiopenxcell/platform998_be/internal/profile"
	"github.com/Prachiopenxcell/platform998_be/internal/realtime"
	"github.com/Prachiopenxcell/platform998_be/internal/routing"
	"github.com/Prachiopenxcell/platform998_be/internal/services/registration"
	"github.com/Prachiopenxcell/platform998_be/internal/services/verification"
	"github.com/Prachiopenxcell/platform998_be/internal/utils"
)

type ProfileOnboardingHandler struct {
	DB            *gorm.DB
	UploadDir     string
	PublicBaseURL string
	JWTSecret     string
	ExpiresMin    int
	Verifier      verification.Service
	Registrar     *registration.Service
	Notifier      *realtime.Notifier
}

func NewProfileOnboardingHandler(
	db *gorm.DB,
	uploadDir, publicBaseURL string,
	jwtSecret string,
	expiresMin int,
	verifier verification.Service,
	registrar *registration.Service,
	notifier *realtime.Notifier,
) *ProfileOnboardingHandler {
	return &ProfileOnboardingHandler{
		DB:            db,
		UploadDir:     uploadDir,
		PublicBaseURL: publicBaseURL,
		JWTSecret:     jwtSecret,
		ExpiresMin:    expiresMin,
		Verifier:      verifier,
		Registrar:     registrar,
		Notifier:      notifier,
	}
}

func (h *ProfileOnboardingHandler) Routes(r fiber.Router, authMiddleware ...fiber.Handler) {
	g := r.Group("/profile/wizard")
	for _, m := range authMiddleware {
		g.Use(m)
	}
	g.Get("/", h.Get)
	g.Get("/completion", h.GetCompletion)
	g.Patch("/sections/:id", h.SaveSection)
	g.Post("/previous", h.Previous)
	g.Post("/skip", h.Skip)
	g.Post("/jump/:index", h.Jump)
	g.Post("/document", h.UploadDocument)
	g.Post("/submit", h.Submit)
}

// ========= Profile loading =========

func (h *ProfileOnboardingHandler) getUser(tx *gorm.DB, userID uuid.UUID) (*models.User, error) {
	var u models.User
	if err := tx.First(&u, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "user is inactive")
	}
	return &u, nil
}

func (h *ProfileOnboardingHandler) findOrCreateProfile(tx *gorm.DB, userID uuid.UUID) (*models.Profile, error) {
	u, err := h.getUser(tx, userID)
	if err != nil {
		return nil, err
	}

	var p models.Profile
	err = tx.Preload("BankingDetails", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("user_id = ?", userID).First(&p).Error

	if err == nil {
		// email stays consistent with the users table
		if p.Email != strings.ToLower(u.Email) {
			p.Email = strings.ToLower(u.Email)
			if err := tx.Save(&p).Error; err != nil {
				return nil, err
			}
		}
		return &p, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p = models.Profile{
		UserID: userID,
		Role:   u.Role,
		Status: models.ProfileDraft,
		Name:   u.Name,
		Email:  strings.ToLower(u.Email),
	}

	if err := tx.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// wizardFor rebuilds the navigation state machine around a stored profile.
func (h *ProfileOnboardingHandler) wizardFor(p *models.Profile) *profile.Wizard {
	w := profile.NewWizard(p.Role, profile.RecordOf(p), &profileStore{db: h.DB, p: p}, nil)
	_ = w.JumpTo(clampIndex(p.SectionIndex, len(w.Sections())))
	return w
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// ========= Persistence bridge =========

// profileStore writes the wizard record back into the GORM model. It is the
// Store the wizard persists through on every save-and-next.
type profileStore struct {
	db *gorm.DB
	p  *models.Profile
}

func (s *profileStore) SaveProfile(ctx context.Context, rec profile.Record, role models.Role) error {
	applyRecord(s.p, rec)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s.p.UpdatedAt = time.Now()
		if err := tx.Omit("BankingDetails").Save(s.p).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", s.p.ID).Delete(&models.BankingDetail{}).Error; err != nil {
			return err
		}
		for i := range s.p.BankingDetails {
			s.p.BankingDetails[i].ID = uuid.Nil
			s.p.BankingDetails[i].ProfileID = s.p.ID
			s.p.BankingDetails[i].Position = i
		}
		if len(s.p.BankingDetails) > 0 {
			if err := tx.Create(&s.p.BankingDetails).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// core record keys that map to dedicated columns; everything else goes to
// the Extensions JSONB column.
var coreRecordKeys = map[string]bool{
	"name": true, "email": true, "contactNumber": true,
	"address": true, "identityDocument": true, "bankingDetails": true,
}

func applyRecord(p *models.Profile, rec profile.Record) {
	str := func(path string) string {
		s, _ := profile.Resolve(rec, path).(string)
		return s
	}

	p.Name = str("name")
	p.Email = str("email")
	p.ContactNumber = str("contactNumber")
	p.AddressStreet = str("address.street")
	p.AddressCity = str("address.city")
	p.AddressState = str("address.state")
	p.AddressPinCode = str("address.pinCode")
	p.IdentityDocType = str("identityDocument.type")
	p.IdentityDocNumber = str("identityDocument.number")
	p.IdentityDocFileURL = str("identityDocument.uploadedFile")
	if vs := str("identityDocument.verificationStatus"); vs != "" {
		p.VerificationStatus = models.VerificationStatus(vs)
	}

	rows, _ := rec["bankingDetails"].([]any)
	banking := make([]models.BankingDetail, 0, len(rows))
	for _, raw := range rows {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		get := func(k string) string { s, _ := row[k].(string); return s }
		banking = append(banking, models.BankingDetail{
			BeneficiaryName:      get("beneficiaryName"),
			AccountNumber:        get("accountNumber"),
			ConfirmAccountNumber: get("confirmAccountNumber"),
			AccountType:          get("accountType"),
			IFSCCode:             get("ifscCode"),
		})
	}
	p.BankingDetails = banking

	ext := map[string]any{}
	for k, v := range rec {
		if !coreRecordKeys[k] {
			ext[k] = v
		}
	}
	if len(ext) > 0 {
		if b, err := json.Marshal(ext); err == nil {
			p.Extensions = datatypes.JSON(b)
		}
	} else {
		p.Extensions = nil
	}

	st := profile.Calculate(rec, p.Role)
	p.CompletionPct = st.OverallPercentage
}

// ========= Handlers =========

func (h *ProfileOnboardingHandler) Get(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	p, err := h.findOrCreateProfile(h.DB, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load profile")
	}

	w := h.wizardFor(p)
	role := p.Role

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"form_variant":  routing.RouteProfileForm(&role),
			"sections":      w.Sections(),
			"section_index": w.Index(),
			"record":        w.Record(),
			"completion":    w.Status(),
			"status":        p.Status,
		},
	})
}

func (h *ProfileOnboardingHandler) GetCompletion(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	p, err := h.findOrCreateProfile(h.DB, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load profile")
	}

	st := profile.Calculate(profile.RecordOf(p), p.Role)
	return c.JSON(fiber.Map{"success": true, "data": st})
}

// SaveSection applies a flat path->value map to the current record and runs
// save-and-next. On the last section it saves in place and leaves advancing
// to Submit, which is the only action that completes the wizard.
func (h *ProfileOnboardingHandler) SaveSection(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	p, err := h.findOrCreateProfile(h.DB, userID)
	if err != nil {
		return fail500(c, "failed to load profile")
	}
	if p.Status != models.ProfileDraft {
		return fail200(c, "profile already submitted/reviewed")
	}

	sectionID := c.Params("id")
	w := h.wizardFor(p)
	if idx, ok := sectionIndexByID(w.Sections(), sectionID); ok {
		_ = w.JumpTo(idx)
	} else {
		return fail200(c, "unknown section: "+sectionID)
	}

	for path, value := range fields {
		if err := w.SetField(path, value); err != nil {
			return fail200(c, fmt.Sprintf("invalid field path %q", path))
		}
	}

	ctx := c.Context()
	if w.IsLast() {
		// save progress only; Submit finishes the wizard
		if err := (&profileStore{db: h.DB, p: p}).SaveProfile(ctx, w.Record(), p.Role); err != nil {
			return fail500(c, "Failed to save profile.")
		}
	} else {
		if err := w.SaveAndNext(ctx); err != nil {
			if errors.Is(err, profile.ErrSaveInFlight) {
				return fail200(c, "A save is already in progress")
			}
			return fail500(c, "Failed to save profile.")
		}
	}

	if err := h.persistIndex(p, w.Index()); err != nil {
		return fail500(c, "failed to update wizard state")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"section_index": w.Index(),
			"completion":    w.Status(),
		},
	})
}

func (h *ProfileOnboardingHandler) Previous(c *fiber.Ctx) error {
	return h.navigate(c, func(w *profile.Wizard) error {
		w.Previous() // no-op at index 0
		return nil
	})
}

func (h *ProfileOnboardingHandler) Jump(c *fiber.Ctx) error {
	idx, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid index")
	}
	return h.navigate(c, func(w *profile.Wizard) error {
		return w.JumpTo(idx)
	})
}

// Skip advances past the current section without validation. Skipping the
// last section abandons the wizard and sends the user to the dashboard.
func (h *ProfileOnboardingHandler) Skip(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	p, err := h.findOrCreateProfile(h.DB, userID)
	if err != nil {
		return fail500(c, "failed to load profile")
	}
	if p.Status != models.ProfileDraft {
		return fail200(c, "profile already submitted/reviewed")
	}

	w := h.wizardFor(p)
	abandoned := false
	w.OnSkip = func() { abandoned = true }

	if err := w.Skip(); err != nil {
		return fail200(c, err.Error())
	}

	if err := h.persistIndex(p, w.Index()); err != nil {
		return fail500(c, "failed to update wizard state")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"section_index": w.Index(),
			"abandoned":     abandoned,
		},
	})
}

func (h *ProfileOnboardingHandler) navigate(c *fiber.Ctx, move func(w *profile.Wizard) error) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	p, err := h.findOrCreateProfile(h.DB, userID)
	if err != nil {
		return fail500(c, "failed to load profile")
	}

	w := h.wizardFor(p)
	if err := move(w); err != nil {
		return fail200(c, err.Error())
	}

	if err := h.persistIndex(p, w.Index()); err != nil {
		return fail500(c, "failed to update wizard state")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"section_index": w.Index()},
	})
}

func (h *ProfileOnboardingHandler) persistIndex(p *models.Profile, idx int) error {
	if p.SectionIndex == idx {
		return nil
	}
	p.SectionIndex = idx
	return h.DB.Model(&models.Profile{}).
		Where("id = ?", p.ID).
		Update("section_index", idx).Error
}

// UploadDocument stores the identity proof (multipart field: document) and
// runs it through the verification service.
func (h *ProfileOnboardingHandler) UploadDocument(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("document")
	if err != nil {
		return fail200(c, "document is required (multipart field: document)")
	}

	docType := strings.TrimSpace(c.FormValue("type"))
	if docType == "" {
		return fail200(c, "document type is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".pdf" {
		return fail200(c, "document must be jpg/jpeg/png/pdf")
	}

	if file.Size > 5*1024*1024 {
		return fail200(c, "document max size is 5MB")
	}

	dir := filepath.Join(h.UploadDir, "documents", userID.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create upload dir")
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dst := filepath.Join(dir, filename)

	if err := c.SaveFile(file, dst); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save file")
	}

	base := strings.TrimRight(h.PublicBaseURL, "/")
	publicURL := fmt.Sprintf("%s/uploads/documents/%s/%s", base, userID.String(), filename)
	if base == "" {
		publicURL = fmt.Sprintf("/uploads/documents/%s/%s", userID.String(), filename)
	}

	p, err := h.findOrCreateProfile(h.DB, userID)
	if err != nil {
		return fail500(c, "failed to load profile")
	}

	p.IdentityDocType = docType
	p.IdentityDocFileURL = publicURL
	p.VerificationStatus = models.VerificationPending
	p.UpdatedAt = time.Now()

	if err := h.DB.Omit("BankingDetails").Save(p).Error; err != nil {
		return fail500(c, "failed to update profile")
	}

	// Verification does not block other field edits; only this document's
	// own status is pending until the verifier answers.
	result, verr := h.Verifier.Verify(c.Context(), publicURL, docType)
	status := models.VerificationPending
	var verifyErrors []string
	switch {
	case verr != nil:
		logger.L().Warn("document verification failed", zap.Error(verr))
	case result.IsValid:
		status = models.VerificationVerified
	default:
		status = models.VerificationRejected
		verifyErrors = result.Errors
	}

	if status != models.VerificationPending {
		if err := h.DB.Model(&models.Profile{}).
			Where("id = ?", p.ID).
			Update("verification_status", status).Error; err != nil {
			return fail500(c, "failed to update verification status")
		}
		p.VerificationStatus = status
		h.Notifier.Notify(c.Context(), userID, "Document verification",
			fmt.Sprintf("Your %s document was %s.", docType, status))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "document uploaded",
		"data": fiber.Map{
			"uploaded_file":       publicURL,
			"verification_status": p.VerificationStatus,
			"verification_errors": verifyErrors,
		},
	})
}

// Submit gates final submission on the full mandatory-field table, answers
// with the missing-field list when incomplete, and issues the permanent
// registration number when the stricter gate passes.
func (h *ProfileOnboardingHandler) Submit(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	p, err := h.findOrCreateProfile(tx, userID)
	if err != nil {
		tx.Rollback()
		return fail500(c, "failed to load profile")
	}
	if p.Status != models.ProfileDraft {
		tx.Rollback()
		return fail200(c, "already submitted/reviewed")
	}

	rec := profile.RecordOf(p)
	st := profile.Calculate(rec, p.Role)

	if !st.FieldsComplete {
		tx.Rollback()
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "profile is incomplete",
			"missing": st.MissingMandatoryFields,
		})
	}
	if st.BankAccountMismatch {
		// mismatch never moved the percentage; it does block submission
		tx.Rollback()
		return fail200(c, "account number and confirmation do not match")
	}

	p.Status = models.ProfileSubmitted
	p.CompletionPct = st.OverallPercentage
	p.UpdatedAt = time.Now()

	if err := tx.Omit("BankingDetails").Save(p).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to submit")
	}

	permanentNo := ""
	if st.EligibleForPermanentID {
		no, err := h.Registrar.Issue(tx, p)
		if err != nil && !errors.Is(err, registration.ErrNotEligible) {
			tx.Rollback()
			return fail500(c, "failed to issue registration number")
		}
		if err == nil {
			permanentNo = no
			p.Status = models.ProfileApproved
			if err := tx.Model(&models.Profile{}).
				Where("id = ?", p.ID).
				Update("status", models.ProfileApproved).Error; err != nil {
				tx.Rollback()
				return fail500(c, "failed to approve profile")
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fail500(c, "failed to commit")
	}

	if permanentNo != "" {
		h.Notifier.Notify(c.Context(), userID, "Registration complete",
			"Your permanent registration number is "+permanentNo)
	} else {
		h.Notifier.Notify(c.Context(), userID, "Profile submitted",
			"Your profile was submitted for review.")
	}

	// refresh the session cookie alongside the profile milestone
	u, err := h.getUser(h.DB, userID)
	if err == nil {
		if signed, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.ExpiresMin); err == nil {
			c.Cookie(&fiber.Cookie{
				Name:     middleware.TokenCookie,
				Value:    signed,
				Path:     "/",
				HTTPOnly: true,
				Secure:   false,
				SameSite: "Lax",
				MaxAge:   h.ExpiresMin * 60,
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "profile submitted",
		"data": fiber.Map{
			"status":                    p.Status,
			"completion":                st,
			"permanent_registration_no": permanentNo,
		},
	})
}

func sectionIndexByID(sections []profile.Section, id string) (int, bool) {
	for i, s := range sections {
		if s.ID == id {
			return i, true
		}
	}
	return 0, false
}
