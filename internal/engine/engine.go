package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/NoahWolk1/SongNote/internal/audio"
	"github.com/NoahWolk1/SongNote/internal/melody"
	"github.com/NoahWolk1/SongNote/internal/mix"
	"github.com/NoahWolk1/SongNote/internal/model"
	"github.com/NoahWolk1/SongNote/internal/prosody"
	"github.com/NoahWolk1/SongNote/internal/synth"
	"github.com/NoahWolk1/SongNote/internal/tts"
	"github.com/NoahWolk1/SongNote/internal/vocal"
)

// Options configures one rendition. The struct is read-only once Render
// starts; mutate a copy for the next request.
type Options struct {
	Style                model.Style
	Mood                 model.Mood
	IncludeAccompaniment bool
	VocalLevel           float64
	MusicLevel           float64
	PitchAdjustment      float64
	Seed                 int64
	// TTSEngine pins speech synthesis to one provider by name; empty or
	// "auto" tries the whole chain.
	TTSEngine string
}

// DefaultOptions returns a full-mix pop rendition at the canonical levels.
func DefaultOptions() Options {
	levels := mix.DefaultOptions()
	return Options{
		Style:                model.StylePop,
		Mood:                 model.MoodHappy,
		IncludeAccompaniment: true,
		VocalLevel:           levels.VocalLevel,
		MusicLevel:           levels.MusicLevel,
	}
}

// Result is the rendered song plus the metadata the job result reports.
type Result struct {
	Audio           audio.Buffer
	DurationSeconds float64
	SynthesisMethod string
	Notes           []model.NoteInfo
	PhraseCount     int
}

// Engine renders lyrics into a sung recording. It holds no per-request
// state, so one engine serves concurrent jobs.
type Engine struct {
	chain *tts.Chain
}

func New(chain *tts.Chain) *Engine {
	return &Engine{chain: chain}
}

// Render runs the full pipeline: prosody, melody, speech acquisition,
// vocal transform, and (optionally) accompaniment and mixdown. The vocal
// transform and the accompaniment render have no data dependency and run
// concurrently. All randomness derives from the seed, so a fixed seed
// reproduces the output exactly.
func (e *Engine) Render(ctx context.Context, lyrics string, opts Options) (*Result, error) {
	phrases := prosody.SegmentPhrases(lyrics)
	if len(phrases) == 0 {
		return nil, fmt.Errorf("no singable words in lyrics")
	}

	mel := melody.Generate(phrases, opts.Style)

	speech, method, err := e.chain.Restrict(opts.TTSEngine).Synthesize(ctx, lyrics)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	if opts.PitchAdjustment != 0 {
		speech = vocal.AdjustPitch(speech, opts.PitchAdjustment)
	}

	// Independent random streams keep the parallel tracks race-free and
	// the whole render reproducible.
	vocalRng := rand.New(rand.NewSource(opts.Seed))
	synthRng := rand.New(rand.NewSource(opts.Seed + 1))

	var (
		sung          audio.Buffer
		accompaniment audio.Buffer
	)
	if opts.IncludeAccompaniment {
		duration := float64(len(mel)) * vocal.SyllableDuration
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			prog := melody.BuildProgression(mel, opts.Style, opts.Mood)
			accompaniment = synth.New(synthRng).Accompaniment(prog, opts.Style, duration)
		}()
		sung = vocal.ApplyEffects(vocal.Transform(speech, mel), vocalRng)
		wg.Wait()

		sung = mix.Mix(sung, accompaniment, mix.Options{
			VocalLevel: opts.VocalLevel,
			MusicLevel: opts.MusicLevel,
		})
	} else {
		sung = vocal.ApplyEffects(vocal.Transform(speech, mel), vocalRng)
		sung = vocal.ApplyPhrasing(sung, opts.Style)
	}

	notes := make([]model.NoteInfo, len(mel))
	for i, n := range mel {
		notes[i] = model.NoteInfo{
			Word:      n.Word,
			Frequency: n.Frequency,
			Duration:  vocal.SyllableDuration,
			Emphasis:  n.Emphasis,
		}
	}

	return &Result{
		Audio:           sung,
		DurationSeconds: sung.Duration(),
		SynthesisMethod: method,
		Notes:           notes,
		PhraseCount:     len(phrases),
	}, nil
}
