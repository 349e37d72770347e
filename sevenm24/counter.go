package sevenm24

import (
	"fmt"
	"math"
)

// Counter is one logical accumulating quantity (e.g. imported energy) that
// the meter exposes redundantly at four independent register addresses: a T2
// decade exponent, a T3 mantissa, a T3 fine value pre-scaled by 10, and a
// native IEEE 754 float. The representations are read separately and are not
// cross-validated here; disagreement between Val, X10 and Float is a data
// quality signal left to the consumer.
type Counter struct {
	Exp      int32
	Mantissa int32
	Val      float32
	X10      float32
	Float    float32
}

// AssembleCounter decodes the four register blocks of one counter and derives
// the coarse value from the exponent and mantissa.
//
// The coarse value is computed as float32(mantissa) * 10^float32(exp), with
// the exponent converted to float before the exponentiation. This matches the
// evaluation path of the reference tooling the fixtures were captured from,
// so it must not be replaced with an integer power.
func AssembleCounter(exp, mantissa, x10, native []uint16) (Counter, error) {
	e, err := T2(exp)
	if err != nil {
		return Counter{}, fmt.Errorf("exponent: %w", err)
	}
	m, err := T3(mantissa)
	if err != nil {
		return Counter{}, fmt.Errorf("mantissa: %w", err)
	}
	fine, err := T3(x10)
	if err != nil {
		return Counter{}, fmt.Errorf("fine value: %w", err)
	}
	f, err := Float(native)
	if err != nil {
		return Counter{}, fmt.Errorf("float value: %w", err)
	}

	val := float32(m) * float32(math.Pow(10, float64(float32(e))))

	return Counter{
		Exp:      int32(e),
		Mantissa: m,
		Val:      val,
		X10:      float32(fine) / 10,
		Float:    f,
	}, nil
}
