// Package registry lists every portal the server mounts, so the server and
// the maintenance CLI migrate the same models.
package registry

import (
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals/admin"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals/doctor"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals/farmer"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/prediction"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/services"
)

// All builds the admin, doctor and farmer portals. Callers that only
// migrate may pass nil services; a nil predictor picks at random.
func All(notifications *services.NotificationService, messages *services.MessageService, predictor prediction.Predictor) []portals.Portal {
	return []portals.Portal{
		admin.New(notifications),
		doctor.New(notifications, messages),
		farmer.New(notifications, messages, predictor),
	}
}
