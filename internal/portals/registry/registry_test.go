package registry

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/database"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals/admin"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/testsupport"
)

func TestAllMigratesPortalModels(t *testing.T) {
	db := testsupport.NewDB(t)
	list := All(nil, nil, nil)

	roles := map[string]bool{}
	for _, p := range list {
		roles[p.Role()] = true
	}
	for _, role := range []string{"admin", "doctor", "user"} {
		if !roles[role] {
			t.Fatalf("no portal for role %q", role)
		}
	}

	if err := portals.Migrate(db, list, database.MigrateModels); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !db.Migrator().HasTable(&admin.Disease{}) {
		t.Fatal("diseases table missing after portal migration")
	}
}
