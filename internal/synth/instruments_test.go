package synth

import (
	"math"
	"math/rand"
	"testing"

	"github.com/NoahWolk1/SongNote/internal/audio"
	"github.com/NoahWolk1/SongNote/internal/melody"
	"github.com/NoahWolk1/SongNote/internal/model"
)

func testProgression() melody.Progression {
	return melody.BuildProgression(melody.Melody{
		{Frequency: 261.63}, {Frequency: 329.63}, {Frequency: 392.00},
	}, model.StylePop, model.MoodHappy)
}

func TestAccompanimentExactLength(t *testing.T) {
	prog := testProgression()
	// Durations chosen so slice length does not divide evenly.
	for _, dur := range []float64{1.0, 2.3, 3.7, 0.41} {
		for _, style := range model.ValidStyles {
			s := New(rand.New(rand.NewSource(1)))
			out := s.Accompaniment(prog, style, dur)
			want := int(dur * audio.SampleRate)
			if len(out) != want {
				t.Errorf("%s/%.2fs: got %d samples, want %d", style, dur, len(out), want)
			}
		}
	}
}

func TestAccompanimentNonSilent(t *testing.T) {
	s := New(rand.New(rand.NewSource(1)))
	out := s.Accompaniment(testProgression(), model.StylePop, 2.0)
	if out.Peak() == 0 {
		t.Error("accompaniment is silent")
	}
}

func TestAccompanimentDeterministicForSeed(t *testing.T) {
	prog := testProgression()
	a := New(rand.New(rand.NewSource(42))).Accompaniment(prog, model.StylePop, 1.5)
	b := New(rand.New(rand.NewSource(42))).Accompaniment(prog, model.StylePop, 1.5)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestAccompanimentEmptyProgression(t *testing.T) {
	s := New(rand.New(rand.NewSource(1)))
	out := s.Accompaniment(nil, model.StylePop, 1.0)
	if len(out) != audio.SampleRate {
		t.Errorf("expected silent target-length buffer, got %d samples", len(out))
	}
	if out.Peak() != 0 {
		t.Error("expected silence for empty progression")
	}
}

func TestChordTrackEnvelopeStartsQuiet(t *testing.T) {
	out := chordTrack(testProgression(), model.StyleBallad, 4*audio.SampleRate)
	if out[0] != 0 {
		t.Errorf("attack should start from zero, got %g", out[0])
	}
}

func TestBassTrackUsesHalvedRoot(t *testing.T) {
	prog := testProgression()
	out := bassTrack(prog, model.StyleBallad, 2*audio.SampleRate)

	// Count zero crossings in the first chord slice to estimate frequency.
	slice := out[len(out)/8 : len(out)/4]
	crossings := 0
	for i := 1; i < len(slice); i++ {
		if (slice[i-1] < 0) != (slice[i] < 0) {
			crossings++
		}
	}
	est := float64(crossings) / 2 * audio.SampleRate / float64(len(slice))
	want := prog[0].Frequencies[0] / 2
	if math.Abs(est-want) > want*0.25 {
		t.Errorf("estimated bass frequency %.1f, want about %.1f", est, want)
	}
}

func TestDrumTrackKickOnDownbeat(t *testing.T) {
	s := New(rand.New(rand.NewSource(7)))
	out := s.drumTrack(model.StylePop, 2*audio.SampleRate)

	kick := audio.Buffer(out[:audio.SampleRate/10]).Peak()
	if kick == 0 {
		t.Error("no kick at the first downbeat")
	}
}
