package service

import (
	"context"
	"hash/fnv"
	"log"
	"math/rand"

	"github.com/NoahWolk1/SongNote/internal/client"
	"github.com/NoahWolk1/SongNote/internal/model"
)

// MelodyService extracts a melody from existing audio via the pitch-detection
// sidecar, with a deterministic mock when the sidecar is not configured.
type MelodyService struct {
	extractor client.MelodyExtractor
}

func NewMelodyService(extractor client.MelodyExtractor) *MelodyService {
	return &MelodyService{extractor: extractor}
}

// Extract returns detected notes for the referenced audio.
func (s *MelodyService) Extract(ctx context.Context, req *model.MelodyExtractRequest) (*model.MelodyExtractResponse, error) {
	if s.extractor != nil && s.extractor.IsConfigured() {
		result, err := s.extractor.Extract(ctx, req)
		if err == nil {
			return result, nil
		}
		log.Printf("Warning: melody extraction failed, using mock: %v", err)
	}
	return mockExtraction(req.AudioURL), nil
}

// mockExtraction produces a plausible note sequence seeded by the URL, so
// repeated calls for the same audio agree.
func mockExtraction(audioURL string) *model.MelodyExtractResponse {
	h := fnv.New64a()
	h.Write([]byte(audioURL))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	scale := []float64{261.63, 293.66, 329.63, 349.23, 392.00, 440.00}
	count := 8 + rng.Intn(8)
	notes := make([]model.MelodyNote, count)
	t := 0.0
	for i := range notes {
		dur := 0.25 + 0.25*float64(rng.Intn(3))
		notes[i] = model.MelodyNote{
			Frequency: scale[rng.Intn(len(scale))],
			StartTime: t,
			Duration:  dur,
		}
		t += dur
	}

	return &model.MelodyExtractResponse{
		Notes:  notes,
		Tempo:  100,
		Source: "mock",
	}
}
