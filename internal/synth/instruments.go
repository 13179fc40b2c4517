package synth

import (
	"math"
	"math/rand"
	"sync"

	"github.com/NoahWolk1/SongNote/internal/audio"
	"github.com/NoahWolk1/SongNote/internal/melody"
	"github.com/NoahWolk1/SongNote/internal/model"
)

// Track weights for the accompaniment sum.
const (
	chordWeight = 0.3
	bassWeight  = 0.4
	drumWeight  = 0.2
)

// Synthesizer renders the instrumental accompaniment. The random source
// feeds percussion noise only, so a fixed seed gives identical output.
type Synthesizer struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Synthesizer {
	return &Synthesizer{rng: rng}
}

func styleBPM(style model.Style) float64 {
	switch style {
	case model.StyleBallad:
		return 70
	case model.StylePop:
		return 120
	default:
		return 100
	}
}

func sineAt(freq, t float64) float64 {
	return math.Sin(2 * math.Pi * freq * t)
}

// Accompaniment renders chord pad, bass, and drums for the progression over
// the given duration and sums them at fixed weights. The three tracks have
// no shared state and render concurrently. Every track is padded or
// truncated to the target length, so the result is always exactly
// duration * SampleRate samples.
func (s *Synthesizer) Accompaniment(prog melody.Progression, style model.Style, duration float64) audio.Buffer {
	target := int(duration * audio.SampleRate)
	if target <= 0 || len(prog) == 0 {
		return make(audio.Buffer, maxInt(target, 0))
	}

	var chords, bass, drums audio.Buffer
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		chords = chordTrack(prog, style, target)
	}()
	go func() {
		defer wg.Done()
		bass = bassTrack(prog, style, target)
	}()
	go func() {
		defer wg.Done()
		drums = s.drumTrack(style, target)
	}()
	wg.Wait()

	out := make(audio.Buffer, target)
	for _, track := range []struct {
		buf    audio.Buffer
		weight float64
	}{
		{chords, chordWeight},
		{bass, bassWeight},
		{drums, drumWeight},
	} {
		buf := fitToTarget(track.buf, target)
		for i, v := range buf {
			out[i] += v * track.weight
		}
	}
	return out
}

// fitToTarget zero-pads or truncates so every track lines up sample-exact.
func fitToTarget(b audio.Buffer, target int) audio.Buffer {
	if len(b) == target {
		return b
	}
	if len(b) > target {
		return b[:target]
	}
	out := make(audio.Buffer, target)
	copy(out, b)
	return out
}

func chordTrack(prog melody.Progression, style model.Style, target int) audio.Buffer {
	sliceLen := target / len(prog)
	if sliceLen == 0 {
		return make(audio.Buffer, target)
	}

	attackFrac, releaseFrac := 0.05, 0.1
	if style == model.StyleBallad {
		attackFrac, releaseFrac = 0.1, 0.2
	}
	attack := int(float64(sliceLen) * attackFrac)
	release := int(float64(sliceLen) * releaseFrac)

	out := make(audio.Buffer, 0, sliceLen*len(prog))
	for _, chord := range prog {
		slice := make(audio.Buffer, sliceLen)
		for i := range slice {
			t := float64(i) / audio.SampleRate
			v := 0.0
			for _, f := range chord.Frequencies {
				v += sineAt(f, t) + 0.1*sineAt(2*f, t) + 0.05*sineAt(3*f, t)
			}
			slice[i] = v * 0.3
		}
		for i := 0; i < attack && i < sliceLen; i++ {
			slice[i] *= float64(i) / float64(attack)
		}
		for i := 0; i < release && i < sliceLen; i++ {
			pos := sliceLen - release + i
			slice[pos] *= 1 - 0.7*float64(i)/float64(release)
		}
		out = append(out, slice...)
	}
	return out
}

func bassTrack(prog melody.Progression, style model.Style, target int) audio.Buffer {
	sliceLen := target / len(prog)
	if sliceLen == 0 {
		return make(audio.Buffer, target)
	}

	out := make(audio.Buffer, 0, sliceLen*len(prog))
	for _, chord := range prog {
		root := chord.Frequencies[0] / 2
		slice := make(audio.Buffer, sliceLen)

		switch style {
		case model.StylePop:
			hitLen := sliceLen / 4
			for hit := 0; hit < 4; hit++ {
				for i := 0; i < hitLen; i++ {
					t := float64(i) / audio.SampleRate
					v := 0.5*sineAt(root, t) + 0.2*sineAt(2*root, t)
					slice[hit*hitLen+i] = v * math.Exp(-3*t)
				}
			}
		case model.StyleBallad:
			attack := sliceLen / 10
			for i := range slice {
				t := float64(i) / audio.SampleRate
				v := 0.3*sineAt(root, t) + 0.1*sineAt(2*root, t)
				if i < attack {
					v *= float64(i) / float64(attack)
				}
				slice[i] = v
			}
		default:
			for i := range slice {
				t := float64(i) / audio.SampleRate
				slice[i] = 0.4 * sineAt(root, t) * math.Exp(-0.5*t)
			}
		}
		out = append(out, slice...)
	}
	return out
}

func (s *Synthesizer) drumTrack(style model.Style, target int) audio.Buffer {
	out := make(audio.Buffer, target)
	beatLen := int(60.0 / styleBPM(style) * audio.SampleRate)
	if beatLen == 0 {
		return out
	}

	for beat, start := 0, 0; start < target; beat, start = beat+1, start+beatLen {
		switch {
		case beat%4 == 0:
			s.addKick(out, start)
		case beat%2 == 1:
			s.addHiHat(out, start)
		}
	}
	return out
}

func (s *Synthesizer) addKick(out audio.Buffer, start int) {
	n := audio.SampleRate / 10 // 100 ms
	freqs := audio.Linspace(60, 40, n)
	phase := 0.0
	for i := 0; i < n && start+i < len(out); i++ {
		t := float64(i) / audio.SampleRate
		phase += 2 * math.Pi * freqs[i] / audio.SampleRate
		body := 0.5 * math.Sin(phase)
		click := 0.2 * s.rng.NormFloat64() * math.Exp(-50*t)
		out[start+i] += (body + click) * math.Exp(-8*t)
	}
}

func (s *Synthesizer) addHiHat(out audio.Buffer, start int) {
	n := audio.SampleRate / 20 // 50 ms
	noise := make([]float64, n)
	for i := range noise {
		noise[i] = 0.1 * s.rng.NormFloat64()
	}
	// First difference acts as a crude high-pass.
	for i := 0; i < n-1 && start+i < len(out); i++ {
		t := float64(i) / audio.SampleRate
		out[start+i] += (noise[i+1] - noise[i]) * math.Exp(-20*t)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
