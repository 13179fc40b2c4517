package audio

import (
	"errors"
	"fmt"
	"math"
)

// ErrFilterDesign is returned when requested band edges cannot produce a
// stable filter (degenerate band, edge at or above Nyquist). Callers recover
// by passing the signal through unfiltered.
var ErrFilterDesign = errors.New("filter design: degenerate band edges")

// biquad is a single second-order IIR section (RBJ audio EQ cookbook).
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

func (f biquad) apply(in Buffer) Buffer {
	out := make(Buffer, len(in))
	var x1, x2, y1, y2 float64
	for i, x := range in {
		y := f.b0*x + f.b1*x1 + f.b2*x2 - f.a1*y1 - f.a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		out[i] = y
	}
	return out
}

// applyZeroPhase runs the section forward then backward, cancelling phase
// distortion the way scipy's filtfilt does.
func (f biquad) applyZeroPhase(in Buffer) Buffer {
	fwd := f.apply(in)
	reverse(fwd)
	bwd := f.apply(fwd)
	reverse(bwd)
	return bwd
}

func reverse(b Buffer) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

func checkEdge(freq float64) error {
	nyquist := float64(SampleRate) / 2
	if freq <= 0 || freq >= nyquist {
		return fmt.Errorf("%w: %.1f Hz outside (0, %.0f)", ErrFilterDesign, freq, nyquist)
	}
	return nil
}

func lowpassCoeffs(cutoff float64) (biquad, error) {
	if err := checkEdge(cutoff); err != nil {
		return biquad{}, err
	}
	w0 := 2 * math.Pi * cutoff / SampleRate
	q := math.Sqrt2 / 2 // Butterworth response
	alpha := math.Sin(w0) / (2 * q)
	cosw := math.Cos(w0)
	a0 := 1 + alpha
	return biquad{
		b0: (1 - cosw) / 2 / a0,
		b1: (1 - cosw) / a0,
		b2: (1 - cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}, nil
}

func highpassCoeffs(cutoff float64) (biquad, error) {
	if err := checkEdge(cutoff); err != nil {
		return biquad{}, err
	}
	w0 := 2 * math.Pi * cutoff / SampleRate
	q := math.Sqrt2 / 2
	alpha := math.Sin(w0) / (2 * q)
	cosw := math.Cos(w0)
	a0 := 1 + alpha
	return biquad{
		b0: (1 + cosw) / 2 / a0,
		b1: -(1 + cosw) / a0,
		b2: (1 + cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}, nil
}

func bandpassCoeffs(low, high float64) (biquad, error) {
	if low >= high {
		return biquad{}, fmt.Errorf("%w: low %.1f >= high %.1f", ErrFilterDesign, low, high)
	}
	if err := checkEdge(low); err != nil {
		return biquad{}, err
	}
	if err := checkEdge(high); err != nil {
		return biquad{}, err
	}
	center := math.Sqrt(low * high)
	w0 := 2 * math.Pi * center / SampleRate
	bw := high - low
	q := center / bw
	alpha := math.Sin(w0) / (2 * q)
	cosw := math.Cos(w0)
	a0 := 1 + alpha
	return biquad{
		b0: alpha / a0,
		b1: 0,
		b2: -alpha / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}, nil
}

// Lowpass applies a zero-phase second-order Butterworth low-pass.
func Lowpass(in Buffer, cutoff float64) (Buffer, error) {
	f, err := lowpassCoeffs(cutoff)
	if err != nil {
		return nil, err
	}
	return f.applyZeroPhase(in), nil
}

// Highpass applies a zero-phase second-order Butterworth high-pass.
func Highpass(in Buffer, cutoff float64) (Buffer, error) {
	f, err := highpassCoeffs(cutoff)
	if err != nil {
		return nil, err
	}
	return f.applyZeroPhase(in), nil
}

// Bandpass applies a zero-phase band-pass between low and high Hz.
// order must be 2 or 4; order 4 cascades two identical sections.
func Bandpass(in Buffer, low, high float64, order int) (Buffer, error) {
	f, err := bandpassCoeffs(low, high)
	if err != nil {
		return nil, err
	}
	out := f.applyZeroPhase(in)
	if order >= 4 {
		out = f.applyZeroPhase(out)
	}
	return out, nil
}
