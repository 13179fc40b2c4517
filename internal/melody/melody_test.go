package melody

import (
	"math"
	"testing"

	"github.com/NoahWolk1/SongNote/internal/model"
	"github.com/NoahWolk1/SongNote/internal/prosody"
)

func TestGenerateNotePerSyllable(t *testing.T) {
	texts := []string{
		"Hello world",
		"I love the night and the light of your heart",
		"beautiful dreamer wake unto me",
	}
	for _, text := range texts {
		phrases := prosody.SegmentPhrases(text)
		for _, style := range model.ValidStyles {
			m := Generate(phrases, style)
			if len(m) != prosody.TotalSyllables(phrases) {
				t.Errorf("%s/%q: %d notes for %d syllables",
					style, text, len(m), prosody.TotalSyllables(phrases))
			}
		}
	}
}

func TestGenerateWithinVocalRange(t *testing.T) {
	phrases := prosody.SegmentPhrases("love light dream heart night time life world feel know")

	cases := []struct {
		style     model.Style
		low, high float64
	}{
		{model.StylePop, 220, 500},
		{model.StyleBallad, 180, 400},
		{model.StyleJazz, 200, 450},
		{model.StylePlain, 200, 450},
	}
	for _, c := range cases {
		for i, n := range Generate(phrases, c.style) {
			if n.Frequency < c.low || n.Frequency > c.high {
				t.Errorf("%s note %d: %.2f Hz outside [%.0f, %.0f]",
					c.style, i, n.Frequency, c.low, c.high)
			}
		}
	}
}

func TestGenerateStepClamp(t *testing.T) {
	phrases := prosody.SegmentPhrases("wonderful wonderful wonderful the a an it wonderful")
	m := Generate(phrases, model.StylePop)

	scale := styleScales[model.StylePop].freqs
	idxOf := func(f float64) int {
		for i, s := range scale {
			if math.Abs(s-f) < 1e-6 {
				return i
			}
		}
		t.Fatalf("frequency %.2f not in scale", f)
		return -1
	}
	for i := 1; i < len(m); i++ {
		// Phrase-final resolution can add a second step, so allow two.
		if d := idxOf(m[i].Frequency) - idxOf(m[i-1].Frequency); d > 2 || d < -2 {
			t.Errorf("note %d jumped %d scale steps", i, d)
		}
	}
}

func TestGenerateArcTurnsAtFlooredMidpoint(t *testing.T) {
	phrase := prosody.Phrase{
		{Word: "alleluia", Syllables: 5, Emphasis: model.EmphasisHigh},
	}
	m := Generate([]prosody.Phrase{phrase}, model.StylePop)
	if len(m) != 5 {
		t.Fatalf("expected 5 notes, got %d", len(m))
	}

	// An odd phrase peaks before its middle syllable: the third of five
	// descends from the second.
	if m[2].Frequency >= m[1].Frequency {
		t.Errorf("middle syllable did not turn down: %.2f then %.2f",
			m[1].Frequency, m[2].Frequency)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	phrases := prosody.SegmentPhrases("sing me a song about the world tonight")
	a := Generate(phrases, model.StyleJazz)
	b := Generate(phrases, model.StyleJazz)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("note %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	if m := Generate(nil, model.StylePop); len(m) != 0 {
		t.Errorf("expected empty melody, got %d notes", len(m))
	}
}

func TestBuildProgressionLength(t *testing.T) {
	phrases := prosody.SegmentPhrases("hello world")
	m := Generate(phrases, model.StylePop)

	for _, style := range model.ValidStyles {
		for _, mood := range model.ValidMoods {
			p := BuildProgression(m, style, mood)
			if len(p) != 4 {
				t.Errorf("%s/%s: expected 4 chords, got %d", style, mood, len(p))
			}
		}
	}
}

func TestBuildProgressionRootIsMelodyMin(t *testing.T) {
	m := Melody{
		{Frequency: 329.63}, {Frequency: 261.63}, {Frequency: 440.00},
	}
	p := BuildProgression(m, model.StylePop, model.MoodHappy)

	// pop/happy opens on the tonic, so the first chord root is the key root.
	if math.Abs(p[0].Frequencies[0]-261.63) > 1e-6 {
		t.Errorf("expected tonic root 261.63, got %.2f", p[0].Frequencies[0])
	}
}

func TestBuildProgressionEmptyMelodyFallback(t *testing.T) {
	p := BuildProgression(nil, model.StyleBallad, model.MoodSad)
	if math.Abs(p[0].Frequencies[0]-fallbackRoot) > 1e-6 {
		t.Errorf("expected fallback root %.2f, got %.2f", fallbackRoot, p[0].Frequencies[0])
	}
}

func TestBuildProgressionTriadIntervals(t *testing.T) {
	m := Melody{{Frequency: 261.63}}

	// jazz opens on ii, a minor triad.
	p := BuildProgression(m, model.StyleJazz, model.MoodCalm)
	minor := p[0]
	root := minor.Frequencies[0]
	if math.Abs(minor.Frequencies[1]/root-math.Pow(2, 3.0/12)) > 1e-9 {
		t.Errorf("minor third wrong: %.4f", minor.Frequencies[1]/root)
	}
	if math.Abs(minor.Frequencies[2]/root-math.Pow(2, 7.0/12)) > 1e-9 {
		t.Errorf("fifth wrong: %.4f", minor.Frequencies[2]/root)
	}

	// ballad opens on I, a major triad.
	p = BuildProgression(m, model.StyleBallad, model.MoodCalm)
	major := p[0]
	if math.Abs(major.Frequencies[1]/major.Frequencies[0]-math.Pow(2, 4.0/12)) > 1e-9 {
		t.Errorf("major third wrong: %.4f", major.Frequencies[1]/major.Frequencies[0])
	}
}
