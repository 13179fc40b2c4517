package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestResampleLength(t *testing.T) {
	in := make(Buffer, 1000)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 440 * float64(i) / SampleRate)
	}

	for _, n := range []int{1, 10, 500, 1000, 2500} {
		out := Resample(in, n)
		if len(out) != n {
			t.Errorf("Resample to %d returned %d samples", n, len(out))
		}
	}
}

func TestResampleEndpoints(t *testing.T) {
	in := Buffer{0, 0.25, 0.5, 0.75, 1.0}
	out := Resample(in, 9)

	if out[0] != in[0] {
		t.Errorf("first sample changed: %f", out[0])
	}
	if math.Abs(out[8]-in[4]) > 1e-9 {
		t.Errorf("last sample changed: %f", out[8])
	}
}

func TestNormalize(t *testing.T) {
	in := Buffer{0.1, -0.5, 0.3}
	out := Normalize(in, 0.9)

	if math.Abs(out.Peak()-0.9) > 1e-9 {
		t.Errorf("expected peak 0.9, got %f", out.Peak())
	}
}

func TestNormalizeSilence(t *testing.T) {
	in := make(Buffer, 100)
	out := Normalize(in, 0.9)

	if out.Peak() != 0 {
		t.Errorf("silent input should stay silent, peak %f", out.Peak())
	}
	if len(out) != 100 {
		t.Errorf("length changed: %d", len(out))
	}
}

func TestBandpassPassesCenter(t *testing.T) {
	// 1 kHz tone through a 500–2000 Hz band should survive,
	// through a 4000–8000 Hz band it should mostly die.
	n := SampleRate / 2
	tone := make(Buffer, n)
	for i := range tone {
		tone[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / SampleRate)
	}

	passed, err := Bandpass(tone, 500, 2000, 2)
	if err != nil {
		t.Fatalf("bandpass failed: %v", err)
	}
	blocked, err := Bandpass(tone, 4000, 8000, 2)
	if err != nil {
		t.Fatalf("bandpass failed: %v", err)
	}

	if passed.Peak() < 0.5 {
		t.Errorf("in-band tone attenuated too much: peak %f", passed.Peak())
	}
	if blocked.Peak() > passed.Peak()/2 {
		t.Errorf("out-of-band tone not attenuated: %f vs %f", blocked.Peak(), passed.Peak())
	}
}

func TestBandpassDegenerateEdges(t *testing.T) {
	in := make(Buffer, 256)

	cases := []struct {
		low, high float64
	}{
		{2000, 500},    // inverted
		{0, 500},       // zero edge
		{500, 12000},   // above Nyquist
		{-100, 500},    // negative
	}
	for _, c := range cases {
		if _, err := Bandpass(in, c.low, c.high, 2); err == nil {
			t.Errorf("expected design error for band %.0f-%.0f", c.low, c.high)
		}
	}
}

func TestHighpassRemovesDC(t *testing.T) {
	in := make(Buffer, SampleRate)
	for i := range in {
		in[i] = 0.8
	}

	out, err := Highpass(in, 100)
	if err != nil {
		t.Fatalf("highpass failed: %v", err)
	}

	// Check the steady-state middle, away from filter edge transients.
	mid := out[len(out)/4 : 3*len(out)/4]
	if Buffer(mid).Peak() > 0.05 {
		t.Errorf("DC not removed: peak %f", Buffer(mid).Peak())
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	b := make(Buffer, 100)
	data := EncodeWAV(b)

	if len(data) != 44+200 {
		t.Fatalf("expected %d bytes, got %d", 44+200, len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != SampleRate {
		t.Errorf("expected sample rate %d, got %d", SampleRate, rate)
	}
	if channels := binary.LittleEndian.Uint16(data[22:24]); channels != 1 {
		t.Errorf("expected mono, got %d channels", channels)
	}
}

func TestEncodeWAVClips(t *testing.T) {
	b := Buffer{2.0, -2.0}
	data := EncodeWAV(b)

	s0 := int16(binary.LittleEndian.Uint16(data[44:46]))
	s1 := int16(binary.LittleEndian.Uint16(data[46:48]))
	if s0 != 32767 {
		t.Errorf("positive overflow not clipped: %d", s0)
	}
	if s1 != -32767 {
		t.Errorf("negative overflow not clipped: %d", s1)
	}
}
