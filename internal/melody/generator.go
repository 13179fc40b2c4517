package melody

import (
	"github.com/NoahWolk1/SongNote/internal/model"
	"github.com/NoahWolk1/SongNote/internal/prosody"
)

// Note is one melody pitch assigned to a single syllable.
type Note struct {
	Frequency float64
	Word      string
	Emphasis  model.Emphasis
}

// Melody is the per-syllable pitch sequence for a whole lyric.
type Melody []Note

// scaleDef pairs an ordered pitch scale with the vocal range it must stay in.
type scaleDef struct {
	freqs    []float64
	low, high float64
}

var styleScales = map[model.Style]scaleDef{
	model.StylePop: {
		freqs: []float64{261.63, 293.66, 329.63, 392.00, 440.00},
		low:   220, high: 500,
	},
	model.StyleBallad: {
		freqs: []float64{196.00, 220.00, 246.94, 261.63, 293.66, 329.63, 349.23},
		low:   180, high: 400,
	},
	model.StyleJazz: {
		freqs: []float64{220.00, 261.63, 293.66, 329.63, 415.30},
		low:   200, high: 450,
	},
}

var defaultScale = scaleDef{
	freqs: []float64{261.63, 293.66, 329.63, 349.23, 392.00, 440.00},
	low:   200, high: 450,
}

func scaleFor(style model.Style) scaleDef {
	if s, ok := styleScales[style]; ok {
		return s
	}
	return defaultScale
}

func clampIndex(idx, max int) int {
	if idx < 0 {
		return 0
	}
	if idx > max {
		return max
	}
	return idx
}

// Generate walks every syllable of every phrase through the melodic arc.
// The note index starts at 2, moves at most one scale step per syllable
// toward an emphasis-driven target, stays inside the vocal range, resolves
// one step down at each phrase end, and carries across phrases. The result
// always has exactly one note per syllable.
func Generate(phrases []prosody.Phrase, style model.Style) Melody {
	scale := scaleFor(style)
	top := len(scale.freqs) - 1
	middle := len(scale.freqs) / 2

	noteIdx := clampIndex(2, top)
	var out Melody

	for _, phrase := range phrases {
		total := phrase.SyllableCount()
		if total == 0 {
			continue
		}
		pos := 0
		phraseStart := len(out)

		for _, word := range phrase {
			for s := 0; s < word.Syllables; s++ {
				// The peak is the floored midpoint, so odd phrases
				// turn down on their middle syllable.
				arc := 1
				if pos >= total/2 {
					arc = -1
				}

				target := noteIdx
				switch word.Emphasis {
				case model.EmphasisHigh:
					if float64(pos) > 0.7*float64(total) {
						target = noteIdx - 1
					} else {
						target = noteIdx + arc
					}
				case model.EmphasisLow:
					target = noteIdx - 1
				default:
					// Medium drifts back toward the scale middle.
					if noteIdx < middle {
						target = noteIdx + 1
					} else if noteIdx > middle {
						target = noteIdx - 1
					}
				}

				if target > noteIdx {
					noteIdx++
				} else if target < noteIdx {
					noteIdx--
				}
				noteIdx = clampIndex(noteIdx, top)

				freq := scale.freqs[noteIdx]
				if freq < scale.low {
					noteIdx = clampIndex(noteIdx+1, top)
					freq = scale.freqs[noteIdx]
				} else if freq > scale.high {
					noteIdx = clampIndex(noteIdx-1, top)
					freq = scale.freqs[noteIdx]
				}

				out = append(out, Note{
					Frequency: freq,
					Word:      word.Word,
					Emphasis:  word.Emphasis,
				})
				pos++
			}
		}

		// Melodic resolution: end the phrase one scale step down.
		if len(out) > phraseStart {
			noteIdx = clampIndex(noteIdx-1, top)
			out[len(out)-1].Frequency = scale.freqs[noteIdx]
		}
	}

	return out
}
