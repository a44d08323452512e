package types

import (
	"context"
	"time"
)

// Utterance is one timed unit of recognized speech. Sequences are always
// chronological and order must be preserved end to end.
type Utterance struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// TranscribeOptions are passed through opaquely to the speech backend.
type TranscribeOptions struct {
	Model       string
	Device      string
	Language    string
	ComputeType string
}

// Transcriber turns a local audio file into an ordered utterance sequence.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts TranscribeOptions) ([]Utterance, error)
}

// Fetcher resolves a video URL into a local audio file.
type Fetcher interface {
	FetchAudio(ctx context.Context, run *RunConfig, workDir string) (string, error)
}
