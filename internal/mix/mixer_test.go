package mix

import (
	"math"
	"testing"

	"github.com/NoahWolk1/SongNote/internal/audio"
)

func tone(freq float64, n int) audio.Buffer {
	b := make(audio.Buffer, n)
	for i := range b {
		b[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/audio.SampleRate)
	}
	return b
}

func TestMixTruncatesToShorter(t *testing.T) {
	vocal := tone(300, audio.SampleRate)
	acc := tone(200, audio.SampleRate/2)

	out := Mix(vocal, acc, DefaultOptions())
	if len(out) != audio.SampleRate/2 {
		t.Errorf("expected %d samples, got %d", audio.SampleRate/2, len(out))
	}
}

func TestMixFinalPeak(t *testing.T) {
	out := Mix(tone(300, audio.SampleRate), tone(150, audio.SampleRate), DefaultOptions())
	if math.Abs(out.Peak()-finalPeak) > 1e-9 {
		t.Errorf("expected peak %.2f, got %f", finalPeak, out.Peak())
	}
}

func TestMixSilenceStaysSilent(t *testing.T) {
	vocal := make(audio.Buffer, 1000)
	acc := make(audio.Buffer, 1000)

	out := Mix(vocal, acc, DefaultOptions())
	if out.Peak() != 0 {
		t.Errorf("silent inputs should mix to silence, peak %f", out.Peak())
	}
	if len(out) != 1000 {
		t.Errorf("length changed: %d", len(out))
	}
}

func TestMixEmptyInput(t *testing.T) {
	if out := Mix(nil, tone(200, 100), DefaultOptions()); len(out) != 0 {
		t.Errorf("expected empty mix, got %d samples", len(out))
	}
}

func TestMixLevelsRespected(t *testing.T) {
	vocal := tone(300, audio.SampleRate)
	acc := tone(250, audio.SampleRate)

	loudVocal := Mix(vocal, make(audio.Buffer, audio.SampleRate), Options{VocalLevel: 1, MusicLevel: 0})
	if loudVocal.Peak() == 0 {
		t.Error("vocal-only mix is silent")
	}
	silent := Mix(vocal, acc, Options{VocalLevel: 0, MusicLevel: 0})
	if silent.Peak() != 0 {
		t.Errorf("zero levels should be silent, peak %f", silent.Peak())
	}
}

func TestCompressSoftKnee(t *testing.T) {
	b := audio.Buffer{0.5, 0.9, -0.9}
	compress(b)

	if b[0] != 0.5 {
		t.Errorf("below-threshold sample changed: %f", b[0])
	}
	want := compressorThreshold + (0.9-compressorThreshold)/compressorRatio
	if math.Abs(b[1]-want) > 1e-9 {
		t.Errorf("compressed sample %f, want %f", b[1], want)
	}
	if math.Abs(b[2]+want) > 1e-9 {
		t.Errorf("negative sample not mirrored: %f", b[2])
	}
}

func TestDuckReducesLows(t *testing.T) {
	low := tone(80, audio.SampleRate)
	out := duck(low)

	if out.Peak() > low.Peak()*0.85 {
		t.Errorf("low content not ducked: %f vs %f", out.Peak(), low.Peak())
	}
}

func TestDuckDiscardsMidBand(t *testing.T) {
	mid := tone(1000, audio.SampleRate)
	out := duck(mid)

	// 1 kHz sits in the vocal pocket and should all but vanish.
	if out.Peak() > 0.05 {
		t.Errorf("mid band not ducked: peak %f of input %f", out.Peak(), mid.Peak())
	}
}
