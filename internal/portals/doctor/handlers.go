package doctor

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/services"
	"github.com/gofiber/fiber/v2"
)

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}

// caseStatus maps case-service errors to a response. status is 0 for
// unexpected errors, which the caller logs as server errors.
func caseStatus(err error) (status int, msg string) {
	switch {
	case errors.Is(err, ErrCaseNotFound):
		return fiber.StatusNotFound, "Case not found"
	case errors.Is(err, ErrCaseTaken):
		return fiber.StatusConflict, "Case has already been accepted"
	case errors.Is(err, ErrNotAssigned):
		return fiber.StatusForbidden, "Case is not assigned to you"
	case errors.Is(err, ErrCaseResolved):
		return fiber.StatusConflict, "Case is already resolved"
	case errors.Is(err, ErrCaseNotInProgress):
		return fiber.StatusConflict, "Only in-progress cases can be resolved"
	case errors.Is(err, ErrWrongRecipient):
		return fiber.StatusBadRequest, "Recipient must be the case owner"
	case errors.Is(err, ErrEmptyDiagnosis), errors.Is(err, ErrVisitDate):
		return fiber.StatusBadRequest, err.Error()
	}
	return 0, ""
}

// currentDoctor resolves the caller's doctor profile or writes the error.
func currentDoctor(c *fiber.Ctx, profiles *ProfileService) (*models.Doctor, error) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return nil, fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	doctor, err := profiles.Current(userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileNotFound):
			return nil, fail(c, fiber.StatusNotFound, "Doctor profile not found")
		case errors.Is(err, ErrDoctorSuspended):
			return nil, fail(c, fiber.StatusForbidden, "Doctor account suspended")
		case errors.Is(err, ErrDoctorNotApproved):
			return nil, fail(c, fiber.StatusForbidden, "Doctor account not approved yet")
		}
		slog.Error("load doctor profile failed", "action", "current_doctor", "user_id", userID, "error", err)
		return nil, fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return doctor, nil
}

// --- Case Handler ---

type CaseHandler struct {
	caseService    *CaseService
	profileService *ProfileService
}

func NewCaseHandler(caseService *CaseService, profileService *ProfileService) *CaseHandler {
	return &CaseHandler{caseService: caseService, profileService: profileService}
}

func (h *CaseHandler) GetDashboard(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c, h.profileService)
	if doctor == nil {
		return err
	}
	dash, err := h.caseService.Dashboard(doctor.ID)
	if err != nil {
		slog.Error("doctor dashboard failed", "action", "doctor_dashboard", "doctor_id", doctor.ID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch dashboard")
	}
	return c.JSON(dash)
}

func (h *CaseHandler) GetCaseRequests(c *fiber.Ctx) error {
	if doctor, err := currentDoctor(c, h.profileService); doctor == nil {
		return err
	}
	rows, err := h.caseService.Requests()
	if err != nil {
		slog.Error("case requests failed", "action", "case_requests", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch case requests")
	}
	return c.JSON(rows)
}

func (h *CaseHandler) AcceptCase(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c, h.profileService)
	if doctor == nil {
		return err
	}
	caseID, err := portals.ParamID(c, "caseId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid case ID")
	}

	if err := h.caseService.Accept(doctor.ID, caseID); err != nil {
		if status, msg := caseStatus(err); status != 0 {
			return fail(c, status, msg)
		}
		slog.Error("accept case failed", "action", "accept_case", "doctor_id", doctor.ID, "case_id", caseID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to accept case")
	}
	return c.JSON(dto.MessageResponse{Message: "Case accepted successfully"})
}

func (h *CaseHandler) AddDiagnosis(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c, h.profileService)
	if doctor == nil {
		return err
	}
	caseID, err := portals.ParamID(c, "caseId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid case ID")
	}
	var req Diagnosis
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.caseService.Diagnose(doctor.ID, caseID, req); err != nil {
		if status, msg := caseStatus(err); status != 0 {
			return fail(c, status, msg)
		}
		slog.Error("add diagnosis failed", "action", "add_diagnosis", "doctor_id", doctor.ID, "case_id", caseID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to add diagnosis")
	}
	return c.JSON(dto.MessageResponse{Message: "Diagnosis added successfully"})
}

func (h *CaseHandler) ResolveCase(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c, h.profileService)
	if doctor == nil {
		return err
	}
	caseID, err := portals.ParamID(c, "caseId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid case ID")
	}

	if err := h.caseService.Resolve(doctor.ID, caseID); err != nil {
		if status, msg := caseStatus(err); status != 0 {
			return fail(c, status, msg)
		}
		slog.Error("resolve case failed", "action", "resolve_case", "doctor_id", doctor.ID, "case_id", caseID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to mark case as resolved")
	}
	return c.JSON(dto.MessageResponse{Message: "Case marked as resolved"})
}

func (h *CaseHandler) RequestPhysicalVisit(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c, h.profileService)
	if doctor == nil {
		return err
	}
	caseID, err := portals.ParamID(c, "caseId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid case ID")
	}
	var req VisitInput
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	visit, err := h.caseService.RequestVisit(doctor.ID, caseID, req)
	if err != nil {
		if status, msg := caseStatus(err); status != 0 {
			return fail(c, status, msg)
		}
		slog.Error("request visit failed", "action", "request_visit", "doctor_id", doctor.ID, "case_id", caseID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to request physical visit")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Physical visit requested",
		"visit":   visit,
	})
}

func (h *CaseHandler) GetCaseHistory(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c, h.profileService)
	if doctor == nil {
		return err
	}
	rows, err := h.caseService.History(doctor.ID, c.Query("search"))
	if err != nil {
		slog.Error("case history failed", "action", "case_history", "doctor_id", doctor.ID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch case history")
	}
	return c.JSON(rows)
}

func (h *CaseHandler) GetVisits(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c, h.profileService)
	if doctor == nil {
		return err
	}
	rows, err := h.caseService.Visits(doctor.ID)
	if err != nil {
		slog.Error("list visits failed", "action", "doctor_visits", "doctor_id", doctor.ID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch visits")
	}
	return c.JSON(rows)
}

// --- Profile Handler ---

type ProfileHandler struct {
	profileService *ProfileService
}

func NewProfileHandler(profileService *ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c, h.profileService)
	if doctor == nil {
		return err
	}
	profile, err := h.profileService.Get(doctor.ID)
	if err != nil {
		slog.Error("get doctor profile failed", "action", "doctor_profile", "doctor_id", doctor.ID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c, h.profileService)
	if doctor == nil {
		return err
	}
	var req ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.profileService.Update(doctor, req); err != nil {
		if errors.Is(err, ErrNameRequired) {
			return fail(c, fiber.StatusBadRequest, "Name is required")
		}
		slog.Error("update doctor profile failed", "action", "update_doctor_profile", "doctor_id", doctor.ID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return c.JSON(dto.MessageResponse{Message: "Profile updated successfully"})
}

// --- Message Handler ---

type MessageHandler struct {
	messageService *services.MessageService
	caseService    *CaseService
	profileService *ProfileService
}

func NewMessageHandler(messageService *services.MessageService, caseService *CaseService, profileService *ProfileService) *MessageHandler {
	return &MessageHandler{messageService: messageService, caseService: caseService, profileService: profileService}
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c, h.profileService)
	if doctor == nil {
		return err
	}
	var req struct {
		CaseID      uint   `json:"caseId"`
		RecipientID *uint  `json:"recipientId"`
		Message     string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil || req.CaseID == 0 {
		return fail(c, fiber.StatusBadRequest, "caseId and message are required")
	}

	ownerID, err := h.caseService.Recipient(doctor.ID, req.CaseID, req.RecipientID)
	if err != nil {
		if status, msg := caseStatus(err); status != 0 {
			return fail(c, status, msg)
		}
		slog.Error("message case lookup failed", "action", "doctor_send_message", "case_id", req.CaseID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to send message")
	}

	msg, err := h.messageService.Send(req.CaseID, doctor.UserID, &ownerID, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) || errors.Is(err, services.ErrMessageTooLong) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		slog.Error("send message failed", "action", "doctor_send_message", "user_id", doctor.UserID, "case_id", req.CaseID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to send message")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message sent successfully",
		"data":    msg,
	})
}

func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	doctor, err := currentDoctor(c, h.profileService)
	if doctor == nil {
		return err
	}
	caseID, err := portals.ParamID(c, "caseId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid case ID")
	}
	if _, err := h.caseService.Participant(doctor.ID, caseID); err != nil {
		if status, msg := caseStatus(err); status != 0 {
			return fail(c, status, msg)
		}
		slog.Error("message case lookup failed", "action", "doctor_get_messages", "case_id", caseID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}

	thread, err := h.messageService.Thread(caseID)
	if err != nil {
		slog.Error("get messages failed", "action", "doctor_get_messages", "case_id", caseID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}
	return c.JSON(thread)
}

// --- Notification Handler ---

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	list, err := h.notificationService.ForRole(models.RoleDoctor, c.QueryInt("limit"))
	if err != nil {
		slog.Error("doctor notifications failed", "action", "doctor_notifications", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}
	return c.JSON(list)
}
