package tts

import (
	"context"
	"math"

	"github.com/NoahWolk1/SongNote/internal/audio"
	"github.com/NoahWolk1/SongNote/internal/prosody"
)

// Phonetic is the terminal fallback: a voiced tone per word whose base
// frequency tracks the word's first vowel. It needs no external service and
// never fails.
type Phonetic struct{}

const wordDuration = 0.5

var vowelFrequencies = map[rune]float64{
	'a': 180, 'e': 160, 'i': 200, 'o': 140, 'u': 120,
}

const defaultVowelFreq = 150

func NewPhonetic() *Phonetic {
	return &Phonetic{}
}

func (p *Phonetic) Name() string {
	return "phonetic"
}

// Synthesize renders each word as a harmonic tone with a short attack and
// decay. The error return is always nil.
func (p *Phonetic) Synthesize(_ context.Context, text string) (audio.Buffer, error) {
	var words []string
	for _, phrase := range prosody.SegmentPhrases(text) {
		for _, unit := range phrase {
			words = append(words, unit.Word)
		}
	}
	if len(words) == 0 {
		return audio.Buffer{}, nil
	}

	wordLen := int(wordDuration * audio.SampleRate)
	out := make(audio.Buffer, 0, wordLen*len(words))
	for _, word := range words {
		out = append(out, renderWord(word, wordLen)...)
	}
	return out, nil
}

func renderWord(word string, n int) audio.Buffer {
	freq := float64(defaultVowelFreq)
	for _, ch := range word {
		if f, ok := vowelFrequencies[ch]; ok {
			freq = f
			break
		}
	}

	buf := make(audio.Buffer, n)
	edge := n / 10
	for i := range buf {
		t := float64(i) / audio.SampleRate
		v := 0.5*math.Sin(2*math.Pi*freq*t) +
			0.2*math.Sin(2*math.Pi*2*freq*t) +
			0.1*math.Sin(2*math.Pi*3*freq*t)
		switch {
		case i < edge:
			v *= float64(i) / float64(edge)
		case i >= n-edge:
			v *= float64(n-i) / float64(edge)
		}
		buf[i] = v
	}
	return buf
}
