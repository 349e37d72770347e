package wm3

// Input register addresses of the 7M.24 meter fields polled by this driver.
// The address/word-count/type combinations are the wire contract with the
// physical device and must not be changed.
const (
	regRuntime   uint16 = 103 // 2 words, T3
	regFrequency uint16 = 105 // 2 words, T5
	regU1        uint16 = 107 // 2 words, T5
	regI1        uint16 = 126 // 2 words, T5
	regPt        uint16 = 140 // 2 words, T6
	regQt        uint16 = 148 // 2 words, T6
	regSt        uint16 = 156 // 2 words, T5
	regPft       uint16 = 164 // 2 words, T7
	regTemp      uint16 = 181 // 1 word, T17
	regU1THD     uint16 = 182 // 1 word, T17
	regI1THD     uint16 = 188 // 1 word, T17
)

// counterRegisters groups the four independent addresses that redundantly
// represent one energy counter.
type counterRegisters struct {
	exp      uint16 // 1 word, T2
	mantissa uint16 // 2 words, T3
	x10      uint16 // 2 words, T3, value pre-scaled by 10
	float    uint16 // 2 words, IEEE 754
}

var (
	// C1 (MID certified) - import active energy
	counterC1 = counterRegisters{exp: 401, mantissa: 406, x10: 462, float: 2638}
	// C4 (MID certified) - export reactive energy
	counterC4 = counterRegisters{exp: 404, mantissa: 412, x10: 468, float: 2644}
	// X3 (not certified) - total absolute apparent energy
	counterX3 = counterRegisters{exp: 448, mantissa: 418, x10: 474, float: 2764}
)
