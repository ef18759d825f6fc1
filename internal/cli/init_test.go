package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	_ "time/tzdata"

	"financetracker/internal/config"
)

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	cfg := config.Defaults()
	logger := SetupLogger(cfg, false, &buf)

	logger.Debug("hidden")
	logger.Info("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %s", out)
	}
	if !strings.Contains(out, "component=cli") {
		t.Errorf("expected cli component, got %s", out)
	}

	buf.Reset()
	SetupLogger(cfg, true, &buf).Debug("verbose")
	if !strings.Contains(buf.String(), "verbose") {
		t.Errorf("expected debug output with --debug, got %q", buf.String())
	}
}

func TestClockUsesConfiguredZone(t *testing.T) {
	cfg := config.Defaults()
	cfg.Timezone = "Asia/Kolkata"
	now, err := Clock(cfg)
	if err != nil {
		t.Fatalf("Clock() error = %v", err)
	}
	if got := now().Location().String(); got != "Asia/Kolkata" {
		t.Errorf("location = %s, want Asia/Kolkata", got)
	}

	cfg.Timezone = "Nowhere/Special"
	if _, err := Clock(cfg); err == nil {
		t.Error("expected error for unknown zone")
	}
}
