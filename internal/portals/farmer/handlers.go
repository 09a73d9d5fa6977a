package farmer

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

func unauthorized(c *fiber.Ctx) error {
	return fail(c, fiber.StatusUnauthorized, "Unauthorized")
}

// caseStatus maps ownership errors to a response; 0 means unexpected.
func caseStatus(err error) (status int, msg string) {
	switch {
	case errors.Is(err, ErrCaseNotFound):
		return fiber.StatusNotFound, "Case not found"
	case errors.Is(err, ErrNotOwner):
		return fiber.StatusForbidden, "Case does not belong to you"
	case errors.Is(err, ErrNoDoctor):
		return fiber.StatusBadRequest, "No doctor assigned to this case yet"
	case errors.Is(err, ErrWrongRecipient):
		return fiber.StatusBadRequest, "Recipient must be the assigned doctor"
	}
	return 0, ""
}

// --- Case Handler ---

type CaseHandler struct {
	caseService   *CaseService
	doctorService *DoctorService
}

func NewCaseHandler(caseService *CaseService, doctorService *DoctorService) *CaseHandler {
	return &CaseHandler{caseService: caseService, doctorService: doctorService}
}

func (h *CaseHandler) GetDashboard(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	dash, err := h.caseService.Dashboard(userID)
	if err == nil {
		dash.NearbyDoctors, err = h.doctorService.Approved("", nearbyDoctorLimit)
	}
	if err != nil {
		slog.Error("user dashboard failed", "action", "user_dashboard", "user_id", userID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch dashboard")
	}
	return c.JSON(dash)
}

func (h *CaseHandler) SubmitCase(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req CaseInput
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	created, guess, err := h.caseService.Submit(userID, req)
	if err != nil {
		if errors.Is(err, ErrCaseIncomplete) || errors.Is(err, ErrInvalidAnimal) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		slog.Error("submit case failed", "action", "submit_case", "user_id", userID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to submit case")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Case submitted successfully",
		"caseId":       created.ID,
		"aiPrediction": guess,
	})
}

func (h *CaseHandler) GetMyCases(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	rows, err := h.caseService.List(userID)
	if err != nil {
		slog.Error("list cases failed", "action", "user_cases", "user_id", userID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch cases")
	}
	return c.JSON(rows)
}

func (h *CaseHandler) GetVisits(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	rows, err := h.caseService.Visits(userID)
	if err != nil {
		slog.Error("list visits failed", "action", "user_visits", "user_id", userID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch visits")
	}
	return c.JSON(rows)
}

func (h *CaseHandler) GetDoctors(c *fiber.Ctx) error {
	rows, err := h.doctorService.Approved(c.Query("specialization"), 0)
	if err != nil {
		slog.Error("list doctors failed", "action", "user_doctors", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch doctors")
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
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	profile, err := h.profileService.Get(userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return fail(c, fiber.StatusNotFound, "User not found")
		}
		slog.Error("get profile failed", "action", "user_profile", "user_id", userID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.profileService.Update(userID, req.Name, req.Phone); err != nil {
		if errors.Is(err, ErrNameRequired) {
			return fail(c, fiber.StatusBadRequest, "Name is required")
		}
		slog.Error("update profile failed", "action", "update_user_profile", "user_id", userID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return c.JSON(dto.MessageResponse{Message: "Profile updated successfully"})
}

// --- Message Handler ---

type MessageHandler struct {
	messageService *services.MessageService
	caseService    *CaseService
}

func NewMessageHandler(messageService *services.MessageService, caseService *CaseService) *MessageHandler {
	return &MessageHandler{messageService: messageService, caseService: caseService}
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req struct {
		CaseID      uint   `json:"caseId"`
		RecipientID *uint  `json:"recipientId"`
		Message     string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil || req.CaseID == 0 {
		return fail(c, fiber.StatusBadRequest, "caseId and message are required")
	}

	doctorUserID, err := h.caseService.DoctorContact(userID, req.CaseID)
	if err == nil && req.RecipientID != nil && *req.RecipientID != doctorUserID {
		err = ErrWrongRecipient
	}
	if err != nil {
		if status, msg := caseStatus(err); status != 0 {
			return fail(c, status, msg)
		}
		slog.Error("message case lookup failed", "action", "user_send_message", "user_id", userID, "case_id", req.CaseID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to send message")
	}

	msg, err := h.messageService.Send(req.CaseID, userID, &doctorUserID, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) || errors.Is(err, services.ErrMessageTooLong) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		slog.Error("send message failed", "action", "user_send_message", "user_id", userID, "case_id", req.CaseID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to send message")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message sent successfully",
		"data":    msg,
	})
}

func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	caseID, err := portals.ParamID(c, "caseId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid case ID")
	}
	if err := h.caseService.CheckOwner(userID, caseID); err != nil {
		if status, msg := caseStatus(err); status != 0 {
			return fail(c, status, msg)
		}
		slog.Error("message case lookup failed", "action", "user_get_messages", "case_id", caseID, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}

	thread, err := h.messageService.Thread(caseID)
	if err != nil {
		slog.Error("get messages failed", "action", "user_get_messages", "case_id", caseID, "error", err)
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
	list, err := h.notificationService.ForRole(models.RoleUser, c.QueryInt("limit"))
	if err != nil {
		slog.Error("user notifications failed", "action", "user_notifications", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}
	return c.JSON(list)
}
