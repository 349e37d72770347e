package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestRead(t *testing.T) {
	content := `{
		"logLevel": "debug",
		"meter": {
			"host": "192.168.8.69:502",
			"id": "64d84428-b989-4443-9a5e-aed02c224ee7",
			"unitId": 33,
			"pollIntervalSecs": 60
		},
		"dataPlatform": {
			"uploadIntervalSecs": 5,
			"bufferPath": "telemetry.sqlite",
			"supabase": {
				"url": "https://example.supabase.co",
				"schema": "energy"
			}
		}
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("got log level %q, expected debug", cfg.LogLevel)
	}
	if cfg.Meter.Host != "192.168.8.69:502" {
		t.Errorf("got host %q", cfg.Meter.Host)
	}
	if cfg.Meter.ID != uuid.MustParse("64d84428-b989-4443-9a5e-aed02c224ee7") {
		t.Errorf("got meter id %v", cfg.Meter.ID)
	}
	if cfg.Meter.UnitID != 33 {
		t.Errorf("got unit id %d, expected 33", cfg.Meter.UnitID)
	}
	if cfg.Meter.PollIntervalSecs != 60 {
		t.Errorf("got poll interval %d, expected 60", cfg.Meter.PollIntervalSecs)
	}
	if cfg.DataPlatform.Supabase.Schema != "energy" {
		t.Errorf("got schema %q, expected energy", cfg.DataPlatform.Supabase.Schema)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
