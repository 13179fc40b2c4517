package melody

import (
	"math"
	"strings"

	"github.com/NoahWolk1/SongNote/internal/model"
)

// Chord is a triad expressed as absolute frequencies in Hz.
type Chord struct {
	Frequencies [3]float64
}

// Progression is an ordered chord sequence, always four chords long.
type Progression []Chord

// fallbackRoot is middle C, used when the melody is empty.
const fallbackRoot = 261.63

// majorScaleIntervals are semitone offsets of the diatonic degrees.
var majorScaleIntervals = [7]int{0, 2, 4, 5, 7, 9, 11}

var numeralDegrees = map[string]int{
	"i": 0, "ii": 1, "iii": 2, "iv": 3, "v": 4, "vi": 5, "vii": 6,
}

func progressionNumerals(style model.Style, mood model.Mood) []string {
	switch style {
	case model.StylePop:
		if mood == model.MoodHappy {
			return []string{"I", "V", "vi", "IV"}
		}
		return []string{"vi", "IV", "I", "V"}
	case model.StyleBallad:
		return []string{"I", "vi", "IV", "V"}
	case model.StyleJazz:
		return []string{"ii", "V", "I", "vi"}
	default:
		return []string{"I", "IV", "V", "I"}
	}
}

func semitones(n float64) float64 {
	return math.Pow(2, n/12)
}

// BuildProgression derives a four-chord progression from the melody. The key
// root is the lowest positive melody frequency; each roman numeral maps to a
// diatonic degree, minor (lowercase) triads use a three-semitone third.
func BuildProgression(m Melody, style model.Style, mood model.Mood) Progression {
	root := 0.0
	for _, n := range m {
		if n.Frequency > 0 && (root == 0 || n.Frequency < root) {
			root = n.Frequency
		}
	}
	if root == 0 {
		root = fallbackRoot
	}

	numerals := progressionNumerals(style, mood)
	prog := make(Progression, 0, len(numerals))
	for _, numeral := range numerals {
		degree := numeralDegrees[strings.ToLower(numeral)]
		chordRoot := root * semitones(float64(majorScaleIntervals[degree]))
		third := 4.0
		if numeral == strings.ToLower(numeral) {
			third = 3.0
		}
		prog = append(prog, Chord{Frequencies: [3]float64{
			chordRoot,
			chordRoot * semitones(third),
			chordRoot * semitones(7),
		}})
	}
	return prog
}
