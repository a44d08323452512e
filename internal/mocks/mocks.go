// Package mocks provides mock implementations of core interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tubescribe/internal/types"
)

// MockTranscriber is a mock implementation of types.Transcriber
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string, opts types.TranscribeOptions) ([]types.Utterance, error) {
	args := m.Called(ctx, audioPath, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Utterance), args.Error(1)
}

// MockFetcher is a mock implementation of types.Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchAudio(ctx context.Context, run *types.RunConfig, workDir string) (string, error) {
	args := m.Called(ctx, run, workDir)
	if rf, ok := args.Get(0).(func(context.Context, *types.RunConfig, string) string); ok {
		return rf(ctx, run, workDir), args.Error(1)
	}
	return args.String(0), args.Error(1)
}
