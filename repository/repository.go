package repository

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/lenart/meterlogger/telemetry"
	"gorm.io/gorm"
)

// Repository stores measurements to the local file system (sqlite) before
// they are uploaded to Supabase.
type Repository struct {
	db *gorm.DB
}

func New(path string) (*Repository, error) {

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Migrate the schema
	err = db.AutoMigrate(&StoredMeasurement{})
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

func (r *Repository) AddMeasurement(measurement telemetry.Measurement) error {
	result := r.db.Create(newStoredMeasurement(measurement))
	return result.Error
}

func (r *Repository) DeleteMeasurements(measurements []StoredMeasurement) error {
	result := r.db.Delete(&measurements)
	return result.Error
}

// GetMeasurements returns up to `limit` buffered measurements. With `fresh`
// set only measurements that have never failed an upload are returned,
// otherwise only those awaiting a retry.
func (r *Repository) GetMeasurements(limit int, fresh bool) ([]StoredMeasurement, error) {
	var measurements []StoredMeasurement

	query := r.db.Limit(limit).Order("upload_attempt_count asc, time desc")
	if fresh {
		query = query.Where("upload_attempt_count = ?", 0)
	} else {
		query = query.Where("upload_attempt_count > ?", 0)
	}
	result := query.Find(&measurements)
	if result.Error != nil {
		return nil, result.Error
	}
	return measurements, nil
}

func (r *Repository) IncrementUploadAttemptCount(measurements []StoredMeasurement) error {
	result := r.db.Model(measurements).UpdateColumn("upload_attempt_count", gorm.Expr("upload_attempt_count + ?", 1))
	return result.Error
}
