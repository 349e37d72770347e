package wm3

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lenart/meterlogger/sevenm24"
	"github.com/lenart/meterlogger/telemetry"
)

// registerReader is the slice of the modbus client the driver needs: given a
// starting register address and a word count it returns that many words.
type registerReader interface {
	ReadInputRegisters(addr, qty uint16) ([]uint16, error)
}

// Meter handles communications with a 7M.24-family energy meter.
//
// Measurements are taken regularly and sent onto the `Telemetry` channel.
type Meter struct {
	Telemetry chan telemetry.Measurement

	id     uuid.UUID
	unitID uint8
	source registerReader
	logger *slog.Logger
}

func New(id uuid.UUID, unitID uint8, source registerReader) *Meter {
	return &Meter{
		Telemetry: make(chan telemetry.Measurement),
		id:        id,
		unitID:    unitID,
		source:    source,
		logger:    slog.Default().With("meter", id),
	}
}

// Run loops forever, polling a measurement from the meter every `period`,
// until ctx is cancelled. A failed poll cycle is logged and skipped.
func (m *Meter) Run(ctx context.Context, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			measurement, err := m.Poll()
			if err != nil {
				m.logger.Error("poll failed", "error", err)
				continue
			}
			m.Telemetry <- measurement
		}
	}
}

// Poll performs one full poll cycle against the fixed register map and
// assembles the measurement record. All-or-nothing: any failed read or decode
// aborts the cycle.
func (m *Meter) Poll() (telemetry.Measurement, error) {
	var zero telemetry.Measurement

	runtime, err := m.readT3(regRuntime, "runtime")
	if err != nil {
		return zero, err
	}
	frequency, err := m.readT5(regFrequency, "frequency")
	if err != nil {
		return zero, err
	}
	u1, err := m.readT5(regU1, "U1")
	if err != nil {
		return zero, err
	}
	i1, err := m.readT5(regI1, "I1")
	if err != nil {
		return zero, err
	}
	pt, err := m.readT6(regPt, "active power total")
	if err != nil {
		return zero, err
	}
	qt, err := m.readT6(regQt, "reactive power total")
	if err != nil {
		return zero, err
	}
	st, err := m.readT5(regSt, "apparent power total")
	if err != nil {
		return zero, err
	}
	pft, capacitive, err := m.readT7(regPft, "power factor total")
	if err != nil {
		return zero, err
	}
	temp, err := m.readT17(regTemp, "internal temperature")
	if err != nil {
		return zero, err
	}
	u1THD, err := m.readT17(regU1THD, "U1 THD%")
	if err != nil {
		return zero, err
	}
	i1THD, err := m.readT17(regI1THD, "I1 THD%")
	if err != nil {
		return zero, err
	}

	c1, err := m.readCounter(counterC1, "c1")
	if err != nil {
		return zero, err
	}
	c4, err := m.readCounter(counterC4, "c4")
	if err != nil {
		return zero, err
	}
	x3, err := m.readCounter(counterX3, "x3")
	if err != nil {
		return zero, err
	}

	return telemetry.Measurement{
		ReadingMeta: telemetry.ReadingMeta{
			ID:       uuid.New(),
			Time:     time.Now(),
			DeviceID: m.id,
		},
		UnitID:          m.unitID,
		DeviceTimestamp: runtime,
		Frequency:       frequency,
		U1:              u1,
		I1:              i1,
		Pt:              pt,
		Qt:              qt,
		St:              st,
		Pft:             pft,
		PftCapacitive:   capacitive,
		Temp:            temp,
		U1THD:           &u1THD,
		I1THD:           &i1THD,
		C1:              c1,
		C4:              c4,
		X3:              x3,
	}, nil
}

// readBlock fetches the raw register words for one field.
func (m *Meter) readBlock(addr, words uint16, field string) ([]uint16, error) {
	raw, err := m.source.ReadInputRegisters(addr, words)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	return raw, nil
}

func (m *Meter) readT3(addr uint16, field string) (int32, error) {
	raw, err := m.readBlock(addr, 2, field)
	if err != nil {
		return 0, err
	}
	val, err := sevenm24.T3(raw)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", field, err)
	}
	m.logger.Debug("decoded register", "field", field, "raw", raw, "value", val)
	return val, nil
}

func (m *Meter) readT5(addr uint16, field string) (float32, error) {
	raw, err := m.readBlock(addr, 2, field)
	if err != nil {
		return 0, err
	}
	val, err := sevenm24.T5(raw)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", field, err)
	}
	m.logger.Debug("decoded register", "field", field, "raw", raw, "value", val)
	return val, nil
}

func (m *Meter) readT6(addr uint16, field string) (float32, error) {
	raw, err := m.readBlock(addr, 2, field)
	if err != nil {
		return 0, err
	}
	val, err := sevenm24.T6(raw)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", field, err)
	}
	m.logger.Debug("decoded register", "field", field, "raw", raw, "value", val)
	return val, nil
}

func (m *Meter) readT7(addr uint16, field string) (int32, bool, error) {
	raw, err := m.readBlock(addr, 2, field)
	if err != nil {
		return 0, false, err
	}
	val, capacitive, err := sevenm24.T7(raw)
	if err != nil {
		return 0, false, fmt.Errorf("decode %s: %w", field, err)
	}
	m.logger.Debug("decoded register", "field", field, "raw", raw, "value", val, "capacitive", capacitive)
	return val, capacitive, nil
}

func (m *Meter) readT17(addr uint16, field string) (float32, error) {
	raw, err := m.readBlock(addr, 1, field)
	if err != nil {
		return 0, err
	}
	val, err := sevenm24.T17(raw)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", field, err)
	}
	m.logger.Debug("decoded register", "field", field, "raw", raw, "value", val)
	return val, nil
}

func (m *Meter) readCounter(regs counterRegisters, name string) (sevenm24.Counter, error) {
	var zero sevenm24.Counter

	exp, err := m.readBlock(regs.exp, 1, name+" exponent")
	if err != nil {
		return zero, err
	}
	mantissa, err := m.readBlock(regs.mantissa, 2, name+" mantissa")
	if err != nil {
		return zero, err
	}
	x10, err := m.readBlock(regs.x10, 2, name+" fine value")
	if err != nil {
		return zero, err
	}
	native, err := m.readBlock(regs.float, 2, name+" float value")
	if err != nil {
		return zero, err
	}

	counter, err := sevenm24.AssembleCounter(exp, mantissa, x10, native)
	if err != nil {
		return zero, fmt.Errorf("decode counter %s: %w", name, err)
	}
	m.logger.Debug("decoded counter",
		"counter", name,
		"exp", counter.Exp,
		"mantissa", counter.Mantissa,
		"value", counter.Val,
		"x10", counter.X10,
		"float", counter.Float,
	)
	return counter, nil
}
