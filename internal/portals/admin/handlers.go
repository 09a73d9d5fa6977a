package admin

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/services"
	"github.com/gofiber/fiber/v2"
)

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}

// --- Dashboard Handler ---

type DashboardHandler struct {
	statsService *StatsService
}

func NewDashboardHandler(statsService *StatsService) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.statsService.Dashboard()
	if err != nil {
		slog.Error("admin stats failed", "action", "admin_stats", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch dashboard stats")
	}
	return c.JSON(stats)
}

func (h *DashboardHandler) GetCaseLocations(c *fiber.Ctx) error {
	rows, err := h.statsService.CaseLocations()
	if err != nil {
		slog.Error("case locations failed", "action", "case_locations", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch case locations")
	}
	return c.JSON(rows)
}

// --- Account Handler ---

type AccountHandler struct {
	accountService *AccountService
}

func NewAccountHandler(accountService *AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) GetDoctors(c *fiber.Ctx) error {
	doctors, err := h.accountService.Doctors()
	if err != nil {
		slog.Error("list doctors failed", "action", "admin_list_doctors", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch doctors")
	}
	return c.JSON(doctors)
}

func (h *AccountHandler) ApproveDoctor(c *fiber.Ctx) error {
	return h.doctorAction(c, "approve_doctor", h.accountService.ApproveDoctor, "Doctor approved successfully")
}

func (h *AccountHandler) SuspendDoctor(c *fiber.Ctx) error {
	return h.doctorAction(c, "suspend_doctor", h.accountService.SuspendDoctor, "Doctor suspended successfully")
}

func (h *AccountHandler) doctorAction(c *fiber.Ctx, action string, fn func(uint) error, ok string) error {
	id, err := portals.ParamID(c, "doctorId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid doctor ID")
	}
	if err := fn(id); err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return fail(c, fiber.StatusNotFound, "Doctor not found")
		}
		slog.Error("doctor status update failed", "action", action, "doctor_id", id, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to update doctor")
	}
	return c.JSON(dto.MessageResponse{Message: ok})
}

func (h *AccountHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.accountService.Users()
	if err != nil {
		slog.Error("list users failed", "action", "admin_list_users", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}
	return c.JSON(users)
}

func (h *AccountHandler) SuspendUser(c *fiber.Ctx) error {
	return h.userAction(c, models.UserStatusSuspended, "User suspended successfully")
}

func (h *AccountHandler) ActivateUser(c *fiber.Ctx) error {
	return h.userAction(c, models.UserStatusActive, "User activated successfully")
}

func (h *AccountHandler) userAction(c *fiber.Ctx, status, ok string) error {
	id, err := portals.ParamID(c, "userId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}
	if err := h.accountService.SetUserStatus(id, status); err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, "User not found")
		case errors.Is(err, ErrAdminImmutable):
			return fail(c, fiber.StatusBadRequest, "Admin accounts cannot be suspended")
		}
		slog.Error("user status update failed", "action", "set_user_status", "user_id", id, "status", status, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return c.JSON(dto.MessageResponse{Message: ok})
}

// --- Disease Handler ---

type DiseaseHandler struct {
	diseaseService *DiseaseService
}

func NewDiseaseHandler(diseaseService *DiseaseService) *DiseaseHandler {
	return &DiseaseHandler{diseaseService: diseaseService}
}

func (h *DiseaseHandler) GetDiseases(c *fiber.Ctx) error {
	diseases, err := h.diseaseService.List()
	if err != nil {
		slog.Error("list diseases failed", "action", "list_diseases", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch diseases")
	}
	return c.JSON(diseases)
}

func (h *DiseaseHandler) AddDisease(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Treatment   string `json:"treatment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	disease, err := h.diseaseService.Add(req.Name, req.Description, req.Treatment)
	if err != nil {
		switch {
		case errors.Is(err, ErrDiseaseNameMissing):
			return fail(c, fiber.StatusBadRequest, "Disease name is required")
		case errors.Is(err, ErrDiseaseExists):
			return fail(c, fiber.StatusBadRequest, "Disease already exists")
		}
		slog.Error("add disease failed", "action", "add_disease", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to add disease")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Disease added successfully",
		"disease": disease,
	})
}

// --- Notification Handler ---

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) Broadcast(c *fiber.Ctx) error {
	var req struct {
		Title      string `json:"title"`
		Message    string `json:"message"`
		TargetRole string `json:"target_role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	n, err := h.notificationService.Broadcast(c.UserContext(), req.Title, req.Message, req.TargetRole)
	if err != nil {
		if errors.Is(err, services.ErrNotificationIncomplete) || errors.Is(err, services.ErrInvalidTarget) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		slog.Error("broadcast failed", "action", "broadcast_notification", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to send notification")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Notification sent successfully",
		"notification": n,
	})
}

func (h *NotificationHandler) History(c *fiber.Ctx) error {
	list, err := h.notificationService.List(c.QueryInt("limit"))
	if err != nil {
		slog.Error("list notifications failed", "action", "list_notifications", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}
	return c.JSON(list)
}
