package telemetry

import (
	"time"

	"github.com/google/uuid"
	"github.com/lenart/meterlogger/sevenm24"
)

// ReadingMeta holds the identity fields common to every reading taken from a
// device.
type ReadingMeta struct {
	ID       uuid.UUID
	Time     time.Time
	DeviceID uuid.UUID
}

// Measurement holds one complete poll of a 7M.24 energy meter. It is built
// fresh each poll cycle and never mutated afterwards.
type Measurement struct {
	ReadingMeta `gorm:"embedded"`

	UnitID          uint8 // modbus unit id the reading was taken from
	DeviceTimestamp int32 // meter-reported runtime counter

	Frequency     float32
	U1            float32 // line voltage
	I1            float32 // line current
	Pt            float32 // active power total
	Qt            float32 // reactive power total
	St            float32 // apparent power total
	Pft           int32   // power factor total, 4 implied decimal places
	PftCapacitive bool    // inductive/capacitive flag from the power factor decode, informational only
	Temp          float32 // internal temperature

	// Distortion percentages are optional: nil means the field was not read.
	U1THD *float32
	I1THD *float32

	C1 sevenm24.Counter `gorm:"embedded;embeddedPrefix:c1_"` // import active energy (MID certified)
	C4 sevenm24.Counter `gorm:"embedded;embeddedPrefix:c4_"` // export reactive energy (MID certified)
	X3 sevenm24.Counter `gorm:"embedded;embeddedPrefix:x3_"` // total absolute apparent energy
}
