package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type port uint16

type celsius float64

func roundTrip[T Number](t *testing.T, values ...T) {
	t.Helper()
	for _, v := range values {
		assert.Equal(t, v, FromRaw[T](ToRaw(v)))
	}
}

func TestRoundTrip_Integers(t *testing.T) {
	roundTrip(t, int8(math.MinInt8), int8(-1), int8(0), int8(math.MaxInt8))
	roundTrip(t, int16(math.MinInt16), int16(math.MaxInt16))
	roundTrip(t, int32(math.MinInt32), int32(-12345), int32(math.MaxInt32))
	roundTrip(t, int64(math.MinInt64), int64(math.MaxInt64))
	roundTrip(t, int(math.MinInt), 0, int(math.MaxInt))
	roundTrip(t, uint8(0), uint8(math.MaxUint8))
	roundTrip(t, uint16(math.MaxUint16))
	roundTrip(t, uint32(math.MaxUint32))
	roundTrip(t, uint64(math.MaxUint64), uint64(1<<63))
	roundTrip(t, uint(math.MaxUint))
	roundTrip(t, uintptr(0xdeadbeef))
	roundTrip(t, port(8443), port(0))
	roundTrip(t, 'x', rune(0x1F600))
	roundTrip(t, byte('A'))
	roundTrip(t, uint16(0xd83d))
}

func TestToRaw_Extension(t *testing.T) {
	assert.Equal(t, uint64(math.MaxUint64), ToRaw(int8(-1)))
	assert.Equal(t, uint64(0xffffffff80000000), ToRaw(int32(math.MinInt32)))
	assert.Equal(t, uint64(0xff), ToRaw(uint8(0xff)))
	assert.Equal(t, uint64(0xffff), ToRaw(port(0xffff)))
}

func TestFromRaw_Truncates(t *testing.T) {
	assert.Equal(t, int8(-1), FromRaw[int8](0x12345678ffffffff))
	assert.Equal(t, uint16(0xbeef), FromRaw[uint16](0xdeadbeef))
}

func TestRoundTrip_Float32Bits(t *testing.T) {
	patterns := []uint32{
		0x00000000,            // +0
		0x80000000,            // -0
		0x7fc00123,            // quiet NaN with payload
		0xffc00001,            // negative NaN
		0x00000001,            // smallest denormal
		0x7f800000,            // +Inf
		math.Float32bits(1.5), // ordinary value
	}

	for _, p := range patterns {
		v := math.Float32frombits(p)
		raw := ToRaw(v)
		assert.Equal(t, uint64(p), raw, "float32 bits are zero-extended")
		assert.Equal(t, p, math.Float32bits(FromRaw[float32](raw)))
	}
}

func TestRoundTrip_Float64Bits(t *testing.T) {
	patterns := []uint64{
		0x8000000000000000,
		0x7ff8000000000abc,
		0xfff0000000000001,
		0x0000000000000001,
		math.Float64bits(-3.14),
	}

	for _, p := range patterns {
		v := math.Float64frombits(p)
		assert.Equal(t, p, ToRaw(v))
		assert.Equal(t, p, math.Float64bits(FromRaw[float64](p)))
	}
}

func TestRoundTrip_NamedFloat(t *testing.T) {
	v := celsius(-273.15)
	assert.Equal(t, math.Float64bits(float64(v)), ToRaw(v))
	assert.Equal(t, v, FromRaw[celsius](ToRaw(v)))
}

func TestToRaw_NoNumericConversion(t *testing.T) {
	// 1.5 converted numerically would be 1.
	assert.NotEqual(t, uint64(1), ToRaw(1.5))
	assert.Equal(t, math.Float64bits(1.5), ToRaw(1.5))
}
