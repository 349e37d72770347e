package dataplatform

import (
	"time"

	"github.com/google/uuid"
	"github.com/lenart/meterlogger/repository"
)

const supabaseTableName = "energy"

// supabaseMeasurement holds the json encoding schema for a meter measurement
// in supabase. The counters are flattened into one row, matching the sink
// column layout: exp, mantissa, coarse value, fine (x10) value and native
// float value per counter.
type supabaseMeasurement struct {
	ID              uuid.UUID `json:"id"`
	Time            time.Time `json:"time"`
	DeviceID        uuid.UUID `json:"device_id"`
	UnitID          uint8     `json:"unit_id"`
	DeviceTimestamp int32     `json:"device_timestamp"`

	Frequency float32  `json:"frequency"`
	U1        float32  `json:"u1"`
	I1        float32  `json:"i1"`
	Pt        float32  `json:"pt"`
	Qt        float32  `json:"qt"`
	St        float32  `json:"st"`
	Pft       int32    `json:"pft"`
	Temp      float32  `json:"int_temp"`
	U1THD     *float32 `json:"u1_thd"`
	I1THD     *float32 `json:"i1_thd"`

	C1Exp      int32   `json:"c1_exp"`
	C1Mantissa int32   `json:"c1_mantissa"`
	C1Val      float32 `json:"c1_val"`
	C1X10      float32 `json:"c1_x10"`
	C1Float    float32 `json:"c1_float"`

	C4Exp      int32   `json:"c4_exp"`
	C4Mantissa int32   `json:"c4_mantissa"`
	C4Val      float32 `json:"c4_val"`
	C4X10      float32 `json:"c4_x10"`
	C4Float    float32 `json:"c4_float"`

	X3Exp      int32   `json:"x3_exp"`
	X3Mantissa int32   `json:"x3_mantissa"`
	X3Val      float32 `json:"x3_val"`
	X3X10      float32 `json:"x3_x10"`
	X3Float    float32 `json:"x3_float"`
}

func convertMeasurements(measurements []repository.StoredMeasurement) []supabaseMeasurement {
	var rows []supabaseMeasurement
	for _, stored := range measurements {
		m := stored.Measurement
		rows = append(rows, supabaseMeasurement{
			ID:              m.ID,
			Time:            m.Time,
			DeviceID:        m.DeviceID,
			UnitID:          m.UnitID,
			DeviceTimestamp: m.DeviceTimestamp,
			Frequency:       m.Frequency,
			U1:              m.U1,
			I1:              m.I1,
			Pt:              m.Pt,
			Qt:              m.Qt,
			St:              m.St,
			Pft:             m.Pft,
			Temp:            m.Temp,
			U1THD:           m.U1THD,
			I1THD:           m.I1THD,
			C1Exp:           m.C1.Exp,
			C1Mantissa:      m.C1.Mantissa,
			C1Val:           m.C1.Val,
			C1X10:           m.C1.X10,
			C1Float:         m.C1.Float,
			C4Exp:           m.C4.Exp,
			C4Mantissa:      m.C4.Mantissa,
			C4Val:           m.C4.Val,
			C4X10:           m.C4.X10,
			C4Float:         m.C4.Float,
			X3Exp:           m.X3.Exp,
			X3Mantissa:      m.X3.Mantissa,
			X3Val:           m.X3.Val,
			X3X10:           m.X3.X10,
			X3Float:         m.X3.Float,
		})
	}
	return rows
}
