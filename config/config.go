package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

type MeterConfig struct {
	Host             string    `json:"host"`
	ID               uuid.UUID `json:"id"`
	UnitID           uint8     `json:"unitId"`
	PollIntervalSecs int       `json:"pollIntervalSecs"`
}

type SupabaseConfig struct {
	Url string `json:"url"`
	// key is specified via env var
	Schema string `json:"schema"`
}

type DataPlatformConfig struct {
	UploadIntervalSecs int            `json:"uploadIntervalSecs"`
	BufferPath         string         `json:"bufferPath"`
	Supabase           SupabaseConfig `json:"supabase"`
}

type Config struct {
	LogLevel     string             `json:"logLevel"`
	Meter        MeterConfig        `json:"meter"`
	DataPlatform DataPlatformConfig `json:"dataPlatform"`
}

func Read(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	err = json.Unmarshal(content, &config)
	if err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return config, nil
}
