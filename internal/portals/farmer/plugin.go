// Package farmer is the portal for livestock owners, who hold the "user" role.
package farmer

import (
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/config"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/prediction"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct {
	notificationService *services.NotificationService
	messageService      *services.MessageService
	predictor           prediction.Predictor
}

func New(notificationService *services.NotificationService, messageService *services.MessageService, predictor prediction.Predictor) *Plugin {
	if predictor == nil {
		predictor = prediction.NewRandomPredictor()
	}
	return &Plugin{
		notificationService: notificationService,
		messageService:      messageService,
		predictor:           predictor,
	}
}

func (p *Plugin) ID() string   { return "farmer" }
func (p *Plugin) Role() string { return models.RoleUser }

func (p *Plugin) Models() []interface{} { return nil }

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	// Services
	caseService := NewCaseService(db, p.predictor)
	doctorService := NewDoctorService(db)
	profileService := NewProfileService(db)

	// Handlers
	caseHandler := NewCaseHandler(caseService, doctorService)
	profileHandler := NewProfileHandler(profileService)
	messageHandler := NewMessageHandler(p.messageService, caseService)
	notificationHandler := NewNotificationHandler(p.notificationService)

	router.Get("/dashboard", caseHandler.GetDashboard)
	router.Post("/cases", caseHandler.SubmitCase)
	router.Get("/cases", caseHandler.GetMyCases)
	router.Get("/visits", caseHandler.GetVisits)
	router.Get("/doctors", caseHandler.GetDoctors)

	router.Get("/profile", profileHandler.GetProfile)
	router.Put("/profile", profileHandler.UpdateProfile)

	router.Post("/messages", messageHandler.SendMessage)
	router.Get("/messages/:caseId", messageHandler.GetMessages)

	router.Get("/notifications", notificationHandler.GetNotifications)
}
