package mix

import (
	"log"
	"math"

	"github.com/NoahWolk1/SongNote/internal/audio"
)

// Options carries the per-invocation mix levels. Values are read once at
// call time and never mutated.
type Options struct {
	VocalLevel float64
	MusicLevel float64
}

// DefaultOptions returns the canonical vocal-forward balance.
func DefaultOptions() Options {
	return Options{VocalLevel: 0.9, MusicLevel: 0.15}
}

const (
	clarityHighpassHz = 100
	presenceLowHz     = 2000
	presenceHighHz    = 5000
	duckLowpassHz     = 200
	duckHighpassHz    = 4000

	compressorThreshold = 0.6
	compressorRatio     = 3.0
	finalPeak           = 0.9
)

// Mix combines the vocal and accompaniment into the final master. Both
// inputs are truncated to the shorter length; the vocal gets a clarity pass,
// the accompaniment is ducked out of the vocal's way, then the weighted sum
// is soft-compressed and normalized to 0.9. A filter design failure on any
// step falls back to that step's unprocessed signal.
func Mix(vocal, accompaniment audio.Buffer, opts Options) audio.Buffer {
	n := len(vocal)
	if len(accompaniment) < n {
		n = len(accompaniment)
	}
	vocal = vocal[:n]
	accompaniment = accompaniment[:n]
	if n == 0 {
		return audio.Buffer{}
	}

	vocal = clarify(vocal)
	accompaniment = duck(accompaniment)

	out := make(audio.Buffer, n)
	for i := range out {
		out[i] = vocal[i]*opts.VocalLevel + accompaniment[i]*opts.MusicLevel
	}

	compress(out)

	if out.Peak() == 0 {
		log.Printf("Warning: mix produced silence")
		return out
	}
	return audio.Normalize(out, finalPeak)
}

// clarify removes rumble below 100 Hz and adds a presence boost.
func clarify(vocal audio.Buffer) audio.Buffer {
	if cleaned, err := audio.Highpass(vocal, clarityHighpassHz); err == nil {
		vocal = cleaned
	} else {
		log.Printf("Warning: vocal high-pass skipped: %v", err)
	}
	if presence, err := audio.Bandpass(vocal, presenceLowHz, presenceHighHz, 2); err == nil {
		out := vocal.Clone()
		for i := range out {
			out[i] += 0.3 * presence[i]
		}
		return out
	}
	return vocal
}

// duck rebuilds the accompaniment from only its lows and highs, leaving the
// mid band where the vocal sits to the vocal alone.
func duck(acc audio.Buffer) audio.Buffer {
	lows, err := audio.Lowpass(acc, duckLowpassHz)
	if err != nil {
		log.Printf("Warning: accompaniment duck skipped: %v", err)
		return acc
	}
	highs, err := audio.Highpass(acc, duckHighpassHz)
	if err != nil {
		log.Printf("Warning: accompaniment duck skipped: %v", err)
		return acc
	}
	out := make(audio.Buffer, len(acc))
	for i := range out {
		out[i] = 0.7*lows[i] + 0.5*highs[i]
	}
	return out
}

// compress applies a soft knee above the threshold in place.
func compress(b audio.Buffer) {
	for i, v := range b {
		if a := math.Abs(v); a > compressorThreshold {
			reduced := compressorThreshold + (a-compressorThreshold)/compressorRatio
			b[i] = math.Copysign(reduced, v)
		}
	}
}
