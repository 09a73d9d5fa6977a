package admin

import (
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/config"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct {
	notificationService *services.NotificationService
}

func New(notificationService *services.NotificationService) *Plugin {
	return &Plugin{notificationService: notificationService}
}

func (p *Plugin) ID() string   { return "admin" }
func (p *Plugin) Role() string { return models.RoleAdmin }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Disease{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	// Services
	statsService := NewStatsService(db)
	accountService := NewAccountService(db)
	diseaseService := NewDiseaseService(db)

	// Handlers
	dashboardHandler := NewDashboardHandler(statsService)
	accountHandler := NewAccountHandler(accountService)
	diseaseHandler := NewDiseaseHandler(diseaseService)
	notificationHandler := NewNotificationHandler(p.notificationService)

	router.Get("/stats", dashboardHandler.GetStats)
	router.Get("/cases/locations", dashboardHandler.GetCaseLocations)

	// Accounts
	router.Get("/doctors", accountHandler.GetDoctors)
	router.Put("/doctors/:doctorId/approve", accountHandler.ApproveDoctor)
	router.Put("/doctors/:doctorId/suspend", accountHandler.SuspendDoctor)
	router.Get("/users", accountHandler.GetUsers)
	router.Put("/users/:userId/suspend", accountHandler.SuspendUser)
	router.Put("/users/:userId/activate", accountHandler.ActivateUser)

	// Disease catalog
	router.Get("/diseases", diseaseHandler.GetDiseases)
	router.Post("/diseases", diseaseHandler.AddDisease)

	// Broadcasts
	router.Post("/notifications", notificationHandler.Broadcast)
	router.Get("/notifications", notificationHandler.History)
}
