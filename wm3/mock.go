package wm3

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lenart/meterlogger/sevenm24"
	"github.com/lenart/meterlogger/telemetry"
)

// MeterMock looks like a Meter but produces fake data, for running the
// pipeline without a physical device.
type MeterMock struct {
	Telemetry chan telemetry.Measurement
	id        uuid.UUID
	unitID    uint8
}

func NewMock(id uuid.UUID, unitID uint8) (*MeterMock, error) {
	return &MeterMock{
		Telemetry: make(chan telemetry.Measurement),
		id:        id,
		unitID:    unitID,
	}, nil
}

func (m *MeterMock) Run(ctx context.Context, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			u1THD := float32(2.1)
			i1THD := float32(3.4)
			m.Telemetry <- telemetry.Measurement{
				ReadingMeta: telemetry.ReadingMeta{
					ID:       uuid.New(),
					Time:     t,
					DeviceID: m.id,
				},
				UnitID:          m.unitID,
				DeviceTimestamp: 123456,
				Frequency:       50.0,
				U1:              230.0,
				I1:              10.5,
				Pt:              2300.0,
				Qt:              -120.0,
				St:              2310.0,
				Pft:             9987,
				Temp:            26.0,
				U1THD:           &u1THD,
				I1THD:           &i1THD,
				C1:              sevenm24.Counter{Exp: 1, Mantissa: 12345, Val: 123450, X10: 123456.7, Float: 123450},
				C4:              sevenm24.Counter{Exp: 0, Mantissa: 678, Val: 678, X10: 678.9, Float: 678},
				X3:              sevenm24.Counter{Exp: 1, Mantissa: 13000, Val: 130000, X10: 130001.2, Float: 130000},
			}
		}
	}
}
