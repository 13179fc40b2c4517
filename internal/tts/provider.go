package tts

import (
	"context"
	"log"

	"github.com/NoahWolk1/SongNote/internal/audio"
)

// Provider converts lyric text into raw speech audio.
type Provider interface {
	// Name identifies the provider in results and health reports.
	Name() string
	// Synthesize produces speech for the text at the engine sample rate.
	Synthesize(ctx context.Context, text string) (audio.Buffer, error)
}

// Chain tries providers in priority order and falls back to the next on
// failure. Construct it with the phonetic synthesizer last so synthesis
// as a whole cannot fail.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Synthesize returns the first successful provider's speech along with that
// provider's name.
func (c *Chain) Synthesize(ctx context.Context, text string) (audio.Buffer, string, error) {
	var lastErr error
	for _, p := range c.providers {
		speech, err := p.Synthesize(ctx, text)
		if err != nil {
			log.Printf("Warning: tts provider %s failed: %v", p.Name(), err)
			lastErr = err
			continue
		}
		return speech, p.Name(), nil
	}
	return nil, "", lastErr
}

// Restrict returns a chain holding only the named provider. An empty name
// or "auto", or a name no provider matches, returns the chain unchanged.
func (c *Chain) Restrict(name string) *Chain {
	if name == "" || name == "auto" {
		return c
	}
	for _, p := range c.providers {
		if p.Name() == name {
			return &Chain{providers: []Provider{p}}
		}
	}
	log.Printf("Warning: unknown tts engine %q, using full chain", name)
	return c
}

// Names lists the configured providers in priority order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}
