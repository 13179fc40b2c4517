package vocal

import (
	"math"
	"math/rand"

	"github.com/NoahWolk1/SongNote/internal/audio"
	"github.com/NoahWolk1/SongNote/internal/model"
)

// formantCenters are fixed vowel formant frequencies emphasized to make the
// transformed speech read as a singing voice.
var formantCenters = [3]float64{650, 1080, 2650}

const vocalPeak = 0.6

// ApplyEffects runs the vocal polish chain: vibrato, formant emphasis,
// breath noise, amplitude envelope, then peak normalization to 0.6.
// Filter design failures skip that component rather than failing the chain.
func ApplyEffects(in audio.Buffer, rng *rand.Rand) audio.Buffer {
	if len(in) == 0 {
		return in
	}

	out := in.Clone()
	for i := range out {
		t := float64(i) / audio.SampleRate
		out[i] *= 1 + 0.005*math.Sin(2*math.Pi*4.2*t)
	}

	for _, f := range formantCenters {
		band, err := audio.Bandpass(out, 0.8*f, 1.2*f, 2)
		if err != nil {
			continue
		}
		for i := range out {
			out[i] += 0.2 * band[i]
		}
	}

	noise := make(audio.Buffer, len(out))
	for i := range noise {
		noise[i] = rng.NormFloat64() * 0.01
	}
	if breath, err := audio.Bandpass(noise, 300, 3000, 4); err == nil {
		for i := range out {
			out[i] += 0.05 * breath[i]
		}
	}

	applyEnvelope(out)
	return audio.Normalize(out, vocalPeak)
}

// applyEnvelope shapes the onset and tail: 50 ms attack from 0.3 to full,
// 100 ms release down to 0.2.
func applyEnvelope(b audio.Buffer) {
	attack := audio.SampleRate / 20
	if attack > len(b) {
		attack = len(b)
	}
	for i := 0; i < attack; i++ {
		b[i] *= 0.3 + 0.7*float64(i)/float64(attack)
	}

	release := audio.SampleRate / 10
	if release > len(b) {
		release = len(b)
	}
	for i := 0; i < release; i++ {
		pos := len(b) - release + i
		b[pos] *= 1 - 0.8*float64(i)/float64(release)
	}
}

// ApplyPhrasing overlays a style-dependent dynamic curve and a short reverb
// tail. Used for vocals-only renditions where no mix stage adds space.
func ApplyPhrasing(in audio.Buffer, style model.Style) audio.Buffer {
	if len(in) == 0 {
		return in
	}
	d := in.Duration()
	out := make(audio.Buffer, len(in))
	for i, v := range in {
		t := float64(i) / audio.SampleRate
		var gain float64
		switch style {
		case model.StyleBallad:
			gain = 0.5 + 0.3*math.Sin(math.Pi*t/d)
		case model.StylePop:
			gain = 0.7 + 0.2*t/d
		default:
			gain = 0.6 + 0.2*math.Sin(math.Pi*t/d)
		}
		out[i] = v * gain
	}

	delay := audio.SampleRate / 10
	for i := delay; i < len(out); i++ {
		out[i] += 0.15 * out[i-delay]
	}
	return out
}
