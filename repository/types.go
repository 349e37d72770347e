package repository

import "github.com/lenart/meterlogger/telemetry"

// StoredMeasurement represents a measurement that is persisted to the SQLite
// database, and includes a count of upload attempts.
type StoredMeasurement struct {
	telemetry.Measurement
	UploadAttemptCount uint
}

func newStoredMeasurement(measurement telemetry.Measurement) StoredMeasurement {
	return StoredMeasurement{
		Measurement:        measurement,
		UploadAttemptCount: 0,
	}
}
