package dataplatform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lenart/meterlogger/repository"
	"github.com/lenart/meterlogger/telemetry"

	supa "github.com/nedpals/supabase-go"
)

// DataPlatform handles the streaming of meter telemetry to Supabase.
// Put new measurements onto the Measurements channel, they will be buffered
// on disk in a SQLite database before being uploaded to Supabase.
type DataPlatform struct {
	Measurements chan telemetry.Measurement

	repository     *repository.Repository
	supaClient     *supa.Client
	uploadInterval time.Duration
}

func New(supabaseUrl, supabaseKey, schema, bufferRepositoryFilename string, uploadInterval time.Duration) (*DataPlatform, error) {

	supaClient := supa.CreateClient(supabaseUrl, supabaseKey)

	// The supabase client library doesn't have a fully featured interface,
	// here we select the schema by adding headers to the postgrest requests.
	supaClient.DB.AddHeader("Accept-Profile", schema)
	supaClient.DB.AddHeader("Content-Profile", schema)

	repository, err := repository.New(bufferRepositoryFilename)
	if err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}

	return &DataPlatform{
		Measurements:   make(chan telemetry.Measurement, 25), // a small buffer to allow SQLite to catch up in case the disk is slow
		repository:     repository,
		supaClient:     supaClient,
		uploadInterval: uploadInterval,
	}, nil
}

// Run loops forever waiting for measurements; they are buffered to SQLite as
// they arrive and uploaded in chunks on each upload tick.
func (d *DataPlatform) Run(ctx context.Context) {

	uploadTicker := time.NewTicker(d.uploadInterval)
	defer uploadTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case measurement := <-d.Measurements:
			err := d.repository.AddMeasurement(measurement)
			if err != nil {
				slog.Error("failed to persist measurement", "error", err)
			}
			slog.Debug("Stored measurement")

		case <-uploadTicker.C:
			d.attemptUpload()
		}
	}
}

// attemptUpload attempts to upload the buffered telemetry from the repository
// into Supabase.
func (d *DataPlatform) attemptUpload() {

	// uploadChunkLimit defines how many data points we can upload in one supabase HTTP request
	uploadChunkLimit := 100

	// first attempt to upload any new measurements that have not been seen before
	freshMeasurements, err := d.repository.GetMeasurements(uploadChunkLimit, true)
	if err != nil {
		slog.Error("failed to query fresh measurements", "error", err)
	} else if len(freshMeasurements) > 0 {
		err = d.handleMeasurements(freshMeasurements)
		if err != nil {
			slog.Error("failed to handle fresh measurements", "error", err)
		}
	}

	// then attempt to upload any old measurements that have already failed an upload at least once
	oldMeasurements, err := d.repository.GetMeasurements(uploadChunkLimit, false)
	if err != nil {
		slog.Error("failed to query old measurements", "error", err)
	} else if len(oldMeasurements) > 0 {
		err = d.handleMeasurements(oldMeasurements)
		if err != nil {
			slog.Error("failed to handle old measurements", "error", err)
		}
	}
}

// handleMeasurements attempts to upload the given measurements. If
// successful, it deletes them from the buffer database, if unsuccessful, it
// increments the 'upload attempt count' column and leaves them in the
// database for another time.
func (d *DataPlatform) handleMeasurements(measurements []repository.StoredMeasurement) error {

	rows := convertMeasurements(measurements)
	uploadErr := d.supaClient.DB.From(supabaseTableName).Insert(rows).Execute(nil)
	if uploadErr != nil {
		uploadErr := fmt.Errorf("upload failed: %w", uploadErr)
		errInc := d.repository.IncrementUploadAttemptCount(measurements)
		if errInc != nil {
			return fmt.Errorf("%w: increment upload attempt count: %w", uploadErr, errInc)
		}
		return uploadErr
	}

	deleteErr := d.repository.DeleteMeasurements(measurements)
	if deleteErr != nil {
		return fmt.Errorf("delete measurements: %w", deleteErr)
	}

	slog.Info("Uploaded measurements", "db_table", supabaseTableName, "db_records", len(rows))

	return nil
}
