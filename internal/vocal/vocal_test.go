package vocal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/NoahWolk1/SongNote/internal/audio"
	"github.com/NoahWolk1/SongNote/internal/melody"
	"github.com/NoahWolk1/SongNote/internal/model"
	"github.com/NoahWolk1/SongNote/internal/prosody"
)

func speechFixture(seconds float64) audio.Buffer {
	n := int(seconds * audio.SampleRate)
	b := make(audio.Buffer, n)
	for i := range b {
		t := float64(i) / audio.SampleRate
		b[i] = 0.5 * math.Sin(2*math.Pi*baseSpeakingFreq*t)
	}
	return b
}

func melodyFixture(text string, style model.Style) melody.Melody {
	return melody.Generate(prosody.SegmentPhrases(text), style)
}

func TestTransformTargetDuration(t *testing.T) {
	m := melodyFixture("hello world tonight", model.StylePop)
	out := Transform(speechFixture(1.0), m)

	want := TargetLength(m)
	if len(out) != want {
		t.Errorf("got %d samples, want %d", len(out), want)
	}
	wantSec := float64(len(m)) * SyllableDuration
	if math.Abs(out.Duration()-wantSec) > 0.01 {
		t.Errorf("duration %.3fs, want %.3fs", out.Duration(), wantSec)
	}
}

func TestTransformEmptyInputs(t *testing.T) {
	m := melodyFixture("hello", model.StylePop)

	if out := Transform(nil, m); len(out) != 0 {
		t.Errorf("empty speech should pass through, got %d samples", len(out))
	}
	speech := speechFixture(0.5)
	if out := Transform(speech, nil); len(out) != len(speech) {
		t.Errorf("empty melody should pass speech through, got %d samples", len(out))
	}
}

func TestTransformBounded(t *testing.T) {
	m := melodyFixture("love and light and time", model.StyleBallad)
	out := Transform(speechFixture(2.0), m)

	if out.Peak() > 1.5 {
		t.Errorf("transform blew up: peak %f", out.Peak())
	}
	if out.Peak() == 0 {
		t.Error("transform silenced the signal")
	}
}

func TestTransformCrossfadeFadesBoundary(t *testing.T) {
	m := melody.Melody{
		{Frequency: baseSpeakingFreq},
		{Frequency: baseSpeakingFreq},
	}
	speech := make(audio.Buffer, TargetLength(m))
	for i := range speech {
		speech[i] = 0.5
	}

	out := Transform(speech, m)
	segLen := len(out) / 2

	if math.Abs(out[segLen/2]-0.5) > 1e-6 {
		t.Errorf("mid-segment level changed: %f", out[segLen/2])
	}
	// The first segment's tail fades out toward the boundary.
	if math.Abs(out[segLen-1]) > 0.05 {
		t.Errorf("tail before boundary not faded out: %f", out[segLen-1])
	}
	// The second segment's head fades back in from silence.
	if math.Abs(out[segLen]) > 1e-6 {
		t.Errorf("head after boundary should start at zero: %f", out[segLen])
	}
}

func TestFitSegmentLengths(t *testing.T) {
	seg := speechFixture(0.1)
	for _, n := range []int{len(seg), len(seg) / 2, len(seg) * 2} {
		if got := fitSegment(seg.Clone(), n); len(got) != n {
			t.Errorf("fitSegment to %d returned %d", n, len(got))
		}
	}
}

func TestFitSegmentPadFadesToZero(t *testing.T) {
	seg := make(audio.Buffer, 100)
	for i := range seg {
		seg[i] = 1
	}
	out := fitSegment(seg, 200)
	if out[99] != 0 {
		t.Errorf("last original sample should fade to zero, got %f", out[99])
	}
	if out[150] != 0 {
		t.Errorf("padding should be silent, got %f", out[150])
	}
}

func TestAdjustPitchPreservesLength(t *testing.T) {
	in := speechFixture(0.5)
	for _, s := range []float64{-5, -1, 0, 2, 7} {
		out := AdjustPitch(in, s)
		if len(out) != len(in) {
			t.Errorf("%+.0f semitones: got %d samples, want %d", s, len(out), len(in))
		}
	}
}

func TestAdjustPitchShiftsFrequency(t *testing.T) {
	in := speechFixture(1.0)
	out := AdjustPitch(in, 12) // one octave up

	count := func(b audio.Buffer) int {
		c := 0
		for i := 1; i < len(b); i++ {
			if (b[i-1] < 0) != (b[i] < 0) {
				c++
			}
		}
		return c
	}
	// An octave up doubles the zero-crossing rate over the surviving half.
	inRate := float64(count(in)) / float64(len(in))
	outHalf := audio.Buffer(out[:len(out)/2])
	outRate := float64(count(outHalf)) / float64(len(outHalf))
	if outRate < inRate*1.7 {
		t.Errorf("expected roughly doubled zero-crossing rate: %f vs %f", outRate, inRate)
	}
}

func TestApplyEffectsPeak(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	out := ApplyEffects(speechFixture(1.0), rng)

	if math.Abs(out.Peak()-vocalPeak) > 1e-9 {
		t.Errorf("expected peak %.2f, got %f", vocalPeak, out.Peak())
	}
}

func TestApplyEffectsEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	if out := ApplyEffects(nil, rng); len(out) != 0 {
		t.Errorf("expected empty output, got %d samples", len(out))
	}
}

func TestApplyEffectsDeterministicForSeed(t *testing.T) {
	in := speechFixture(0.5)
	a := ApplyEffects(in, rand.New(rand.NewSource(9)))
	b := ApplyEffects(in, rand.New(rand.NewSource(9)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestApplyPhrasingKeepsLength(t *testing.T) {
	in := speechFixture(1.0)
	for _, style := range model.ValidStyles {
		out := ApplyPhrasing(in, style)
		if len(out) != len(in) {
			t.Errorf("%s: length changed %d -> %d", style, len(in), len(out))
		}
	}
}

func TestApplyPhrasingReverbTail(t *testing.T) {
	in := make(audio.Buffer, audio.SampleRate/2)
	in[0] = 1 // impulse
	out := ApplyPhrasing(in, model.StylePlain)

	delay := audio.SampleRate / 10
	if out[delay] == 0 {
		t.Error("expected reverb echo at the delay offset")
	}
}
