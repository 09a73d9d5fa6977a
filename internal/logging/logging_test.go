package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/logging"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/testsupport"
)

func TestDBHandlerPersistsErrorsOnly(t *testing.T) {
	db := testsupport.NewDB(t)
	handler := logging.NewDBHandler(db)
	logger := slog.New(handler).With("request_id", "req-1")

	logger.Info("not stored")
	logger.Error("accept case failed",
		"action", "accept_case",
		"user_id", uint(7),
		"case_id", 42,
		"error", "boom",
		"doctor_id", 3,
	)
	handler.Stop()

	var logs []models.SystemLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("query logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d system logs, want 1", len(logs))
	}

	entry := logs[0]
	if entry.Action != "accept_case" || entry.Error != "boom" || entry.RequestID != "req-1" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.UserID == nil || *entry.UserID != 7 {
		t.Errorf("user_id = %v, want 7", entry.UserID)
	}
	if entry.CaseID == nil || *entry.CaseID != 42 {
		t.Errorf("case_id = %v, want 42", entry.CaseID)
	}

	var extra map[string]interface{}
	if err := json.Unmarshal(entry.Extra, &extra); err != nil {
		t.Fatalf("extra is not JSON: %v", err)
	}
	if extra["doctor_id"] != float64(3) {
		t.Errorf("extra = %v, want doctor_id 3", extra)
	}
}

func TestDBHandlerStopIsIdempotent(t *testing.T) {
	handler := logging.NewDBHandler(testsupport.NewDB(t))
	handler.Stop()
	handler.Stop()
}

func TestPurgeOlderThan(t *testing.T) {
	db := testsupport.NewDB(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := []models.SystemLog{
		{ID: "old", Timestamp: now.AddDate(0, 0, -45), Level: "ERROR"},
		{ID: "new", Timestamp: now.AddDate(0, 0, -2), Level: "ERROR"},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed logs: %v", err)
	}

	deleted, err := logging.PurgeOlderThan(db, 30, now)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}

	var remaining int64
	db.Model(&models.SystemLog{}).Count(&remaining)
	if remaining != 1 {
		t.Fatalf("remaining = %d, want 1", remaining)
	}
}

func TestPurgeKeepsLogsWithoutRetention(t *testing.T) {
	db := testsupport.NewDB(t)
	now := time.Now()
	if err := db.Create(&models.SystemLog{ID: "recent", Timestamp: now.Add(-time.Minute), Level: "ERROR"}).Error; err != nil {
		t.Fatalf("seed logs: %v", err)
	}

	for _, days := range []int{0, -1} {
		deleted, err := logging.PurgeOlderThan(db, days, now)
		if err != nil || deleted != 0 {
			t.Fatalf("days=%d: deleted = %d, err = %v", days, deleted, err)
		}
	}

	var remaining int64
	db.Model(&models.SystemLog{}).Count(&remaining)
	if remaining != 1 {
		t.Fatalf("remaining = %d, want 1", remaining)
	}
}

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	multi := logging.NewMultiHandler(
		logging.NewJSONHandler(&infoBuf, "info"),
		logging.NewJSONHandler(&errBuf, "error"),
	)
	logger := slog.New(multi).With("component", "test")

	logger.Info("hello")
	logger.Error("failure")

	if got := bytes.Count(infoBuf.Bytes(), []byte("\n")); got != 2 {
		t.Errorf("info handler got %d lines, want 2", got)
	}
	if got := bytes.Count(errBuf.Bytes(), []byte("\n")); got != 1 {
		t.Errorf("error handler got %d lines, want 1", got)
	}
	if !bytes.Contains(errBuf.Bytes(), []byte(`"component":"test"`)) {
		t.Errorf("bound attrs not propagated: %s", errBuf.String())
	}
	if multi.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled on both handlers")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
