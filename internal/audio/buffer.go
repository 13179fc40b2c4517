package audio

import "math"

const (
	// SampleRate is the fixed engine sample rate. Every buffer that crosses
	// a package boundary is mono float64 at this rate.
	SampleRate = 22050
)

// Buffer is a mono audio signal, nominal range [-1, 1].
type Buffer []float64

// Clone returns an independent copy of the buffer.
func (b Buffer) Clone() Buffer {
	out := make(Buffer, len(b))
	copy(out, b)
	return out
}

// Duration returns the buffer length in seconds.
func (b Buffer) Duration() float64 {
	return float64(len(b)) / SampleRate
}

// Peak returns the maximum absolute sample value.
func (b Buffer) Peak() float64 {
	peak := 0.0
	for _, s := range b {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// Normalize scales the buffer so its peak equals target. An all-zero buffer
// is returned unchanged; callers that care about silence check Peak first.
func Normalize(b Buffer, target float64) Buffer {
	peak := b.Peak()
	if peak == 0 {
		return b
	}
	out := make(Buffer, len(b))
	gain := target / peak
	for i, s := range b {
		out[i] = s * gain
	}
	return out
}

// Resample stretches or squeezes the buffer to exactly n samples using
// linear interpolation. Pitch and duration are coupled, which is exactly
// what the segment-wise pitch shifter relies on.
func Resample(b Buffer, n int) Buffer {
	if n <= 0 {
		return Buffer{}
	}
	if len(b) == 0 {
		return make(Buffer, n)
	}
	if len(b) == n {
		return b.Clone()
	}
	out := make(Buffer, n)
	if len(b) == 1 {
		for i := range out {
			out[i] = b[0]
		}
		return out
	}
	step := float64(len(b)-1) / float64(n-1)
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= len(b)-1 {
			out[i] = b[len(b)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = b[j]*(1-frac) + b[j+1]*frac
	}
	return out
}

// Linspace fills dst with a linear ramp from start to end inclusive.
func Linspace(start, end float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
