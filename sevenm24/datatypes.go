// Package sevenm24 decodes the "7M.24" register data types used by this
// family of energy meters. Each register is a 16-bit word; each decoder takes
// the exact number of words the type occupies and returns one engineering
// value. The decoders are pure functions with no state, so they are safe to
// call from multiple goroutines.
package sevenm24

import "math"

// T1 decodes an unsigned 16 bit value.
// Example: 12345 stored as 3039(16).
func T1(words []uint16) (uint16, error) {
	if len(words) != 1 {
		return 0, &InvalidLengthError{Type: "T1", Want: 1, Got: len(words)}
	}
	return words[0], nil
}

// T2 decodes a signed 16 bit value.
// Example: -12345 stored as CFC7(16).
func T2(words []uint16) (int16, error) {
	if len(words) != 1 {
		return 0, &InvalidLengthError{Type: "T2", Want: 1, Got: len(words)}
	}
	return int16(words[0]), nil
}

// T3 decodes a signed 32 bit value from two registers, high word first.
// Example: 123456789 stored as 075B CD15(16).
func T3(words []uint16) (int32, error) {
	if len(words) != 2 {
		return 0, &InvalidLengthError{Type: "T3", Want: 2, Got: len(words)}
	}
	return int32(uint32(words[0])<<16 | uint32(words[1])), nil
}

// T5 decodes an unsigned measurement: a signed 8 bit decade exponent in the
// high byte of the first register, followed by an unsigned 24 bit magnitude.
// Example: 123456*10^-3 stored as FD01 E240(16).
func T5(words []uint16) (float32, error) {
	if len(words) != 2 {
		return 0, &InvalidLengthError{Type: "T5", Want: 2, Got: len(words)}
	}
	exp := int8(words[0] >> 8)
	val := uint32(words[0]&0xFF)<<16 | uint32(words[1])
	return float32(val) * pow10(int32(exp)), nil
}

// T6 decodes a signed measurement: like T5 but the 24 bit magnitude is two's
// complement, sign extended from bit 23.
// Example: -123456*10^-3 stored as FDFE 1DC0(16).
func T6(words []uint16) (float32, error) {
	if len(words) != 2 {
		return 0, &InvalidLengthError{Type: "T6", Want: 2, Got: len(words)}
	}
	exp := int8(words[0] >> 8)
	raw := uint32(words[0]&0xFF)<<16 | uint32(words[1])
	val := int32(raw<<8) >> 8
	return float32(val) * pow10(int32(exp)), nil
}

// T7 decodes a power factor. The high byte of the first register is the
// import/export sign (FF means export, i.e. negative), the low byte is the
// inductive/capacitive flag (FF means capacitive) which never alters the
// value, and the second register is an unsigned magnitude with 4 implied
// decimal places.
func T7(words []uint16) (int32, bool, error) {
	if len(words) != 2 {
		return 0, false, &InvalidLengthError{Type: "T7", Want: 2, Got: len(words)}
	}
	sign := int32(1)
	if words[0]>>8 == 0xFF {
		sign = -1
	}
	capacitive := words[0]&0xFF == 0xFF
	return sign * int32(words[1]), capacitive, nil
}

// T16 decodes an unsigned 16 bit value with 2 implied decimal places.
// Example: 123.45 stored as 3039(16).
func T16(words []uint16) (float32, error) {
	if len(words) != 1 {
		return 0, &InvalidLengthError{Type: "T16", Want: 1, Got: len(words)}
	}
	return float32(words[0]) / 100, nil
}

// T17 decodes a signed 16 bit value with 2 implied decimal places.
// Example: -123.45 stored as CFC7(16).
func T17(words []uint16) (float32, error) {
	if len(words) != 1 {
		return 0, &InvalidLengthError{Type: "T17", Want: 1, Got: len(words)}
	}
	return float32(int16(words[0])) / 100, nil
}

// Float decodes an IEEE 754 single precision value: sign is bit 15 of the
// first register, the exponent is bits 14..7, and the significand is the low
// 7 bits of the first register followed by all of the second.
// Example: 123.45 stored as 42F6 E666(16).
func Float(words []uint16) (float32, error) {
	if len(words) != 2 {
		return 0, &InvalidLengthError{Type: "FLOAT", Want: 2, Got: len(words)}
	}
	sign := uint32(words[0] >> 15)
	exponent := uint32(words[0] << 1 >> 8)
	significand := uint32(words[0]&0x7F)<<16 | uint32(words[1])
	return math.Float32frombits(sign<<31 | exponent<<23 | significand), nil
}

func pow10(exp int32) float32 {
	return float32(math.Pow(10, float64(exp)))
}
