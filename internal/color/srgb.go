package color

import "math"

// encodeSteps is the resolution of the linear-to-sRGB table. 12 bits keep
// every 8-bit code reachable.
const encodeSteps = 4096

var (
	decodeTable = buildDecodeTable()
	encodeTable = buildEncodeTable()
)

// srgbDecode is the sRGB transfer function inverse for s in [0, 1].
func srgbDecode(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// srgbEncode is the sRGB transfer function for l in [0, 1].
func srgbEncode(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

func buildDecodeTable() [256]float32 {
	var t [256]float32
	for i := range t {
		t[i] = float32(srgbDecode(float64(i) / 255))
	}
	return t
}

func buildEncodeTable() [encodeSteps]uint8 {
	var t [encodeSteps]uint8
	for i := range t {
		v := srgbEncode(float64(i) / (encodeSteps - 1))
		t[i] = uint8(math.Round(min(max(v, 0), 1) * 255))
	}
	return t
}

// ToLinear decodes an sRGB channel byte to linear light in [0, 1].
func ToLinear(s uint8) float32 {
	return decodeTable[s]
}

// FromLinear encodes linear light to an sRGB channel byte. Input outside
// [0, 1] is clamped.
func FromLinear(l float32) uint8 {
	l = min(max(l, 0), 1)
	return encodeTable[int(l*(encodeSteps-1)+0.5)]
}
