package database_test

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/database"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/testsupport"
)

func TestMigrateSharedCreatesTables(t *testing.T) {
	db := testsupport.NewDB(t)

	for _, table := range []string{"users", "doctors", "animals", "cases", "notifications", "messages", "visit_requests", "system_logs"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s not created", table)
		}
	}
	if err := database.Ping(db); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestMonthExprGroupsByMonth(t *testing.T) {
	db := testsupport.NewDB(t)
	owner := testsupport.CreateUser(t, db, "Farmer", "farmer@example.com", models.RoleUser)

	first := testsupport.CreateCase(t, db, owner.ID, "Cow", "North", "fever")
	second := testsupport.CreateCase(t, db, owner.ID, "Goat", "North", "cough")
	third := testsupport.CreateCase(t, db, owner.ID, "Cow", "South", "limp")

	jan := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
	db.Model(first).Update("created_at", jan)
	db.Model(second).Update("created_at", jan.Add(48*time.Hour))
	db.Model(third).Update("created_at", feb)

	type row struct {
		Month string
		Count int64
	}
	var rows []row
	month := database.MonthExpr(db, "created_at")
	err := db.Model(&models.Case{}).
		Select(month + " AS month, COUNT(*) AS count").
		Group(month).
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		t.Fatalf("group by month: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d month rows, want 2: %+v", len(rows), rows)
	}
	if rows[0].Month != "2025-01" || rows[0].Count != 2 {
		t.Errorf("first row = %+v, want 2025-01/2", rows[0])
	}
	if rows[1].Month != "2025-02" || rows[1].Count != 1 {
		t.Errorf("second row = %+v, want 2025-02/1", rows[1])
	}
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Cow ", "%cow%"},
		{"_", "%!_%"},
		{"100%", "%100!%%"},
		{"a!b", "%a!!b%"},
	}
	for _, tt := range tests {
		if got := database.ContainsFold(tt.in); got != tt.want {
			t.Errorf("ContainsFold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
