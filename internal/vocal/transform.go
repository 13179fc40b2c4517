package vocal

import (
	"math"

	"github.com/NoahWolk1/SongNote/internal/audio"
	"github.com/NoahWolk1/SongNote/internal/melody"
)

const (
	// SyllableDuration is the sung length of one syllable in seconds.
	SyllableDuration = 0.4

	// baseSpeakingFreq is the assumed fundamental of the input speech.
	baseSpeakingFreq = 200.0
)

// TargetLength returns the sample count a melody's vocal should occupy.
func TargetLength(m melody.Melody) int {
	return int(float64(len(m)) * SyllableDuration * audio.SampleRate)
}

// Transform time-stretches the speech to the melody's target duration and
// pitch-shifts each equal-length segment toward its melody note. Pitch and
// duration are coupled through resampling, so each shifted segment is fitted
// back to its slot. At each boundary the previous segment's written tail
// fades out and the next segment's head fades in, so segments are processed
// strictly in order.
func Transform(speech audio.Buffer, m melody.Melody) audio.Buffer {
	if len(m) == 0 || len(speech) == 0 {
		return speech
	}

	stretched := audio.Resample(speech, TargetLength(m))
	segLen := len(stretched) / len(m)
	if segLen == 0 {
		return stretched
	}

	out := make(audio.Buffer, len(stretched))
	// Tail samples past the last full segment pass through unshifted.
	copy(out[segLen*len(m):], stretched[segLen*len(m):])

	crossfade := segLen / 8
	if crossfade > 256 {
		crossfade = 256
	}

	for i, note := range m {
		seg := stretched[i*segLen : (i+1)*segLen]

		ratio := note.Frequency / baseSpeakingFreq
		if ratio < 0.7 {
			ratio = 0.7
		} else if ratio > 1.5 {
			ratio = 1.5
		}

		shifted := audio.Resample(seg, int(float64(segLen)/ratio))
		shifted = fitSegment(shifted, segLen)

		start := i * segLen
		copy(out[start:], shifted)

		if i > 0 && crossfade > 0 && crossfade <= segLen {
			for j := 0; j < crossfade; j++ {
				w := float64(j) / float64(crossfade)
				out[start-crossfade+j] *= 1 - w
				out[start+j] = shifted[j] * w
			}
		}
	}
	return out
}

// fitSegment restores a pitch-shifted segment to its slot length. Shorter
// segments fade to zero before the padding, longer ones are cropped with a
// gentle end fade to hide the cut.
func fitSegment(seg audio.Buffer, n int) audio.Buffer {
	if len(seg) == n {
		return seg
	}
	if len(seg) < n {
		out := make(audio.Buffer, n)
		copy(out, seg)
		fade := n - len(seg)
		if max := len(seg) / 10; fade > max {
			fade = max
		}
		for j := 0; j < fade; j++ {
			out[len(seg)-fade+j] *= 1 - float64(j+1)/float64(fade)
		}
		return out
	}
	out := seg[:n].Clone()
	fade := n / 20
	if fade > 50 {
		fade = 50
	}
	for j := 0; j < fade; j++ {
		out[n-fade+j] *= 1 - 0.2*float64(j+1)/float64(fade)
	}
	return out
}

// AdjustPitch shifts the whole buffer by the given number of semitones via
// resampling, then pads or trims back to the original length.
func AdjustPitch(in audio.Buffer, semitones float64) audio.Buffer {
	if semitones == 0 || len(in) == 0 {
		return in
	}
	factor := math.Pow(2, -semitones/12)
	shifted := audio.Resample(in, int(float64(len(in))*factor))
	if len(shifted) >= len(in) {
		return shifted[:len(in)]
	}
	out := make(audio.Buffer, len(in))
	copy(out, shifted)
	return out
}
