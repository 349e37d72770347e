package sevenm24

import (
	"math"
	"testing"
)

func TestAssembleCounter(t *testing.T) {
	subTests := []struct {
		name     string
		exp      []uint16
		mantissa []uint16
		x10      []uint16
		native   []uint16
		expected Counter
	}{
		{
			name:     "PositiveExponent",
			exp:      []uint16{0x0001},
			mantissa: []uint16{0x0000, 0x3039}, // 12345
			x10:      []uint16{0x0001, 0xE240}, // 123456 -> 12345.6
			native:   []uint16{0x42F6, 0xE666}, // 123.45
			expected: Counter{Exp: 1, Mantissa: 12345, Val: 123450, X10: 12345.6, Float: 123.45},
		},
		{
			name:     "NegativeExponentAndMantissa",
			exp:      []uint16{0xFFFF},         // -1
			mantissa: []uint16{0xFFFF, 0xFFFF}, // -1
			x10:      []uint16{0x0000, 0x0064}, // 100 -> 10
			native:   []uint16{0xBFC0, 0x0000}, // -1.5
			expected: Counter{Exp: -1, Mantissa: -1, Val: -0.1, X10: 10, Float: -1.5},
		},
		{
			name:     "ZeroExponent",
			exp:      []uint16{0x0000},
			mantissa: []uint16{0x0000, 0x0001},
			x10:      []uint16{0x0000, 0x000A},
			native:   []uint16{0x0000, 0x0000},
			expected: Counter{Exp: 0, Mantissa: 1, Val: 1, X10: 1, Float: 0},
		},
	}

	for _, st := range subTests {
		got, err := AssembleCounter(st.exp, st.mantissa, st.x10, st.native)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", st.name, err)
			continue
		}
		if got.Exp != st.expected.Exp {
			t.Errorf("%s: got exp %d, expected %d", st.name, got.Exp, st.expected.Exp)
		}
		if got.Mantissa != st.expected.Mantissa {
			t.Errorf("%s: got mantissa %d, expected %d", st.name, got.Mantissa, st.expected.Mantissa)
		}
		if !approxEqual(got.Val, st.expected.Val, 1e-3) {
			t.Errorf("%s: got val %v, expected %v", st.name, got.Val, st.expected.Val)
		}
		if !approxEqual(got.X10, st.expected.X10, 1e-3) {
			t.Errorf("%s: got x10 %v, expected %v", st.name, got.X10, st.expected.X10)
		}
		if got.Float != st.expected.Float {
			t.Errorf("%s: got float %v, expected %v", st.name, got.Float, st.expected.Float)
		}
	}
}

// TestAssembleCounterValEvaluation pins the coarse value to the exact
// floating-point evaluation path: mantissa as float32 times 10 raised to the
// exponent as float32, via floating-point exponentiation.
func TestAssembleCounterValEvaluation(t *testing.T) {
	exps := []int16{-3, -1, 0, 1, 2, 3}
	mantissas := []int32{-123456789, -1, 0, 1, 12345, 123456789}

	for _, e := range exps {
		for _, m := range mantissas {
			expWords := []uint16{uint16(e)}
			mantissaWords := []uint16{uint16(uint32(m) >> 16), uint16(uint32(m))}
			x10Words := []uint16{0x0000, 0x0000}
			nativeWords := []uint16{0x0000, 0x0000}

			got, err := AssembleCounter(expWords, mantissaWords, x10Words, nativeWords)
			if err != nil {
				t.Fatalf("exp=%d mantissa=%d: unexpected error: %v", e, m, err)
			}

			expected := float32(m) * float32(math.Pow(10, float64(float32(e))))
			if math.Float32bits(got.Val) != math.Float32bits(expected) {
				t.Errorf("exp=%d mantissa=%d: got val %v, expected %v", e, m, got.Val, expected)
			}
		}
	}
}

func TestAssembleCounterLengthErrors(t *testing.T) {
	exp := []uint16{0x0001}
	mantissa := []uint16{0x0000, 0x3039}
	x10 := []uint16{0x0001, 0xE240}
	native := []uint16{0x42F6, 0xE666}

	subTests := []struct {
		name     string
		exp      []uint16
		mantissa []uint16
		x10      []uint16
		native   []uint16
	}{
		{"ExponentTwoWords", []uint16{1, 2}, mantissa, x10, native},
		{"MantissaOneWord", exp, []uint16{1}, x10, native},
		{"FineOneWord", exp, mantissa, []uint16{1}, native},
		{"NativeEmpty", exp, mantissa, x10, nil},
	}

	for _, st := range subTests {
		_, err := AssembleCounter(st.exp, st.mantissa, st.x10, st.native)
		if err == nil {
			t.Errorf("%s: expected an error", st.name)
		}
	}
}
