package doctor

import (
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/config"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct {
	notificationService *services.NotificationService
	messageService      *services.MessageService
}

func New(notificationService *services.NotificationService, messageService *services.MessageService) *Plugin {
	return &Plugin{notificationService: notificationService, messageService: messageService}
}

func (p *Plugin) ID() string   { return "doctor" }
func (p *Plugin) Role() string { return models.RoleDoctor }

// Models is empty: doctors work on the shared case tables.
func (p *Plugin) Models() []interface{} { return nil }

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	// Services
	profileService := NewProfileService(db)
	caseService := NewCaseService(db)

	// Handlers
	caseHandler := NewCaseHandler(caseService, profileService)
	profileHandler := NewProfileHandler(profileService)
	messageHandler := NewMessageHandler(p.messageService, caseService, profileService)
	notificationHandler := NewNotificationHandler(p.notificationService)

	router.Get("/dashboard", caseHandler.GetDashboard)
	router.Get("/case-requests", caseHandler.GetCaseRequests)

	// Case workflow
	router.Put("/cases/:caseId/accept", caseHandler.AcceptCase)
	router.Put("/cases/:caseId/diagnosis", caseHandler.AddDiagnosis)
	router.Put("/cases/:caseId/resolve", caseHandler.ResolveCase)
	router.Post("/cases/:caseId/physical-visit", caseHandler.RequestPhysicalVisit)
	router.Get("/cases", caseHandler.GetCaseHistory)
	router.Get("/visits", caseHandler.GetVisits)

	router.Get("/profile", profileHandler.GetProfile)
	router.Put("/profile", profileHandler.UpdateProfile)

	router.Post("/messages", messageHandler.SendMessage)
	router.Get("/messages/:caseId", messageHandler.GetMessages)

	router.Get("/notifications", notificationHandler.GetNotifications)
}
