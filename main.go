package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lenart/meterlogger/config"
	dataplatform "github.com/lenart/meterlogger/data_platform"
	"github.com/lenart/meterlogger/modbus"
	"github.com/lenart/meterlogger/wm3"
)

func main() {

	configPath := flag.String("config", "config.json", "path to the config file")
	flag.Parse()

	cfg, err := config.Read(*configPath)
	if err != nil {
		slog.Error("Failed to read config", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("Starting meter logger...")

	supabaseKey := os.Getenv("SUPABASE_KEY")

	ctx, cancel := context.WithCancel(context.Background())

	client, err := modbus.NewClient(cfg.Meter.Host, cfg.Meter.UnitID)
	if err != nil {
		slog.Error("Failed to create modbus client", "error", err)
		return
	}

	meter := wm3.New(cfg.Meter.ID, cfg.Meter.UnitID, client)
	go meter.Run(ctx, time.Duration(cfg.Meter.PollIntervalSecs)*time.Second)

	dataPlatform, err := dataplatform.New(
		cfg.DataPlatform.Supabase.Url,
		supabaseKey,
		cfg.DataPlatform.Supabase.Schema,
		cfg.DataPlatform.BufferPath,
		time.Duration(cfg.DataPlatform.UploadIntervalSecs)*time.Second,
	)
	if err != nil {
		slog.Error("Failed to create data platform", "error", err)
		return
	}
	go dataPlatform.Run(ctx)

	// forward meter measurements to the data platform
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case measurement := <-meter.Telemetry:
				dataPlatform.Measurements <- measurement
			}
		}
	}()

	// wait for a ctrl-c interrupt before exiting
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)
	<-signalChan

	// cancel any open go-routines and give them up to 100ms to gracefully shutdown
	cancel()
	time.Sleep(time.Millisecond * 100)

	slog.Info("Exiting")
	os.Exit(0)
}
