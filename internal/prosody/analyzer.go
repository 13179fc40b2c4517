package prosody

import (
	"regexp"
	"strings"

	"github.com/NoahWolk1/SongNote/internal/model"
)

// WordUnit is one lyric word with its syllable count and musical emphasis.
type WordUnit struct {
	Word      string
	Syllables int
	Emphasis  model.Emphasis
}

// Phrase is a syllable-bounded run of words, the unit of melodic phrasing.
type Phrase []WordUnit

// SyllableCount returns the total syllables in the phrase.
func (p Phrase) SyllableCount() int {
	total := 0
	for _, w := range p {
		total += w.Syllables
	}
	return total
}

// TotalSyllables sums syllables across all phrases.
func TotalSyllables(phrases []Phrase) int {
	total := 0
	for _, p := range phrases {
		total += p.SyllableCount()
	}
	return total
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// emphasisWords are content words that get melodic emphasis regardless of length.
var emphasisWords = map[string]bool{
	"love": true, "heart": true, "dream": true, "night": true, "light": true,
	"time": true, "life": true, "world": true, "feel": true, "know": true,
}

// breakWords end the current phrase early at a natural linguistic seam.
var breakWords = map[string]bool{
	"and": true, "but": true, "so": true, "then": true,
}

const phraseSyllableLimit = 8

// CountSyllables estimates syllables by counting vowel-group transitions.
// A trailing silent "e" is discounted when the word has more than one group.
// Every word counts as at least one syllable.
func CountSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, ch := range word {
		isVowel := strings.ContainsRune("aeiouy", ch)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// ClassifyEmphasis assigns emphasis from content-word membership and length.
func ClassifyEmphasis(word string) model.Emphasis {
	if emphasisWords[word] || len(word) > 6 {
		return model.EmphasisHigh
	}
	if len(word) > 3 {
		return model.EmphasisMedium
	}
	return model.EmphasisLow
}

// SegmentPhrases tokenizes lyric text into phrases of word units. A phrase
// ends once it has accumulated at least phraseSyllableLimit syllables or
// after a break word. Pure function of the input text.
func SegmentPhrases(text string) []Phrase {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	var phrases []Phrase
	var current Phrase
	syllables := 0

	for _, word := range words {
		n := CountSyllables(word)
		current = append(current, WordUnit{
			Word:      word,
			Syllables: n,
			Emphasis:  ClassifyEmphasis(word),
		})
		syllables += n

		if syllables >= phraseSyllableLimit || breakWords[word] {
			phrases = append(phrases, current)
			current = nil
			syllables = 0
		}
	}

	if len(current) > 0 {
		phrases = append(phrases, current)
	}

	return phrases
}
