package worker

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/NoahWolk1/SongNote/internal/audio"
	"github.com/NoahWolk1/SongNote/internal/client"
	"github.com/NoahWolk1/SongNote/internal/engine"
	"github.com/NoahWolk1/SongNote/internal/model"
	"github.com/NoahWolk1/SongNote/internal/service"
	"github.com/NoahWolk1/SongNote/internal/websocket"
)

// SingingWorker processes singing generation jobs
type SingingWorker struct {
	singingService *service.SingingService
	engine         *engine.Engine
	r2Client       client.StorageClient
	hub            *websocket.Hub
}

// NewSingingWorker creates a new singing worker
func NewSingingWorker(singingService *service.SingingService, eng *engine.Engine, r2Client client.StorageClient, hub *websocket.Hub) *SingingWorker {
	return &SingingWorker{
		singingService: singingService,
		engine:         eng,
		r2Client:       r2Client,
		hub:            hub,
	}
}

// ProcessTask handles singing task processing
func (w *SingingWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var taskPayload struct {
		JobID   string          `json:"jobId"`
		Payload json.RawMessage `json:"payload"`
	}

	if err := json.Unmarshal(t.Payload(), &taskPayload); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	jobID := taskPayload.JobID
	log.Printf("Starting singing job: %s", jobID)

	var payload model.SingingJobPayload
	if err := json.Unmarshal(taskPayload.Payload, &payload); err != nil {
		w.failJob(ctx, jobID, "Invalid payload")
		return fmt.Errorf("failed to unmarshal singing payload: %w", err)
	}

	if w.singingService.IsCanceled(ctx, jobID) {
		log.Printf("Singing job %s canceled before start", jobID)
		return nil
	}

	req := payload.Request
	opts := buildOptions(&req)

	w.updateProgress(ctx, jobID, 10, "Analyzing lyrics...")
	w.updateProgress(ctx, jobID, 30, "Synthesizing and transforming vocals...")

	res, err := w.engine.Render(ctx, req.Lyrics, opts)
	if err != nil {
		w.failJob(ctx, jobID, fmt.Sprintf("Singing synthesis failed: %v", err))
		return err
	}

	if w.singingService.IsCanceled(ctx, jobID) {
		log.Printf("Singing job %s canceled during render", jobID)
		return nil
	}

	w.updateProgress(ctx, jobID, 85, "Encoding audio...")
	wav := audio.EncodeWAV(res.Audio)

	w.updateProgress(ctx, jobID, 95, "Storing result...")
	audioURL, err := w.storeAudio(ctx, jobID, wav)
	if err != nil {
		w.failJob(ctx, jobID, fmt.Sprintf("Audio storage failed: %v", err))
		return err
	}

	result := &model.SingingResultResponse{
		ID:              uuid.New().String(),
		AudioURL:        audioURL,
		Format:          "wav",
		DurationSeconds: res.DurationSeconds,
		SynthesisMethod: res.SynthesisMethod,
		Style:           opts.Style,
		Mood:            opts.Mood,
		IncludesMusic:   opts.IncludeAccompaniment,
		Notes:           res.Notes,
		Phrases:         res.PhraseCount,
		CreatedAt:       time.Now(),
	}

	if err := w.singingService.CompleteJob(ctx, jobID, result); err != nil {
		w.failJob(ctx, jobID, "Failed to save result")
		return err
	}

	w.hub.BroadcastComplete(jobID, result)
	log.Printf("Singing job %s completed (%.1fs of audio)", jobID, res.DurationSeconds)
	return nil
}

// buildOptions translates the API request into engine options, filling the
// canonical defaults for everything left unset.
func buildOptions(req *model.SingingGenerateRequest) engine.Options {
	opts := engine.DefaultOptions()
	if req.Style != "" {
		opts.Style = req.Style
	}
	if req.Mood != "" {
		opts.Mood = req.Mood
	}
	if req.IncludeAccompaniment != nil {
		opts.IncludeAccompaniment = *req.IncludeAccompaniment
	}
	if req.VocalLevel != nil {
		opts.VocalLevel = *req.VocalLevel
	}
	if req.MusicLevel != nil {
		opts.MusicLevel = *req.MusicLevel
	}
	opts.PitchAdjustment = req.PitchAdjustment
	opts.TTSEngine = req.TTSEngine
	if req.Seed != nil {
		opts.Seed = *req.Seed
	} else {
		opts.Seed = time.Now().UnixNano()
	}
	return opts
}

// storeAudio uploads the WAV to R2 when storage is configured, otherwise
// inlines it as a data URL.
func (w *SingingWorker) storeAudio(ctx context.Context, jobID string, wav []byte) (string, error) {
	if w.r2Client != nil {
		key := fmt.Sprintf("singing/%s.wav", jobID)
		url, err := w.r2Client.Upload(ctx, key, bytes.NewReader(wav), "audio/wav")
		if err != nil {
			return "", fmt.Errorf("failed to upload audio: %w", err)
		}
		return url, nil
	}
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav), nil
}

func (w *SingingWorker) updateProgress(ctx context.Context, jobID string, progress int, step string) {
	if err := w.singingService.UpdateJobProgress(ctx, jobID, progress, step); err != nil {
		log.Printf("Failed to update progress: %v", err)
	}
	w.hub.BroadcastProgress(jobID, progress, model.JobStatusRunning, step)
}

func (w *SingingWorker) failJob(ctx context.Context, jobID, errMsg string) {
	if err := w.singingService.FailJob(ctx, jobID, errMsg); err != nil {
		log.Printf("Failed to mark job as failed: %v", err)
	}
	w.hub.BroadcastError(jobID, "SINGING_FAILED", errMsg)
}
