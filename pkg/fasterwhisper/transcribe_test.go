package fasterwhisper

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSrtOutputPath(t *testing.T) {
	got := srtOutputPath(filepath.Join("work", "audio.mp3"), "work")
	assert.Equal(t, filepath.Join("work", "audio.srt"), got)

	got = srtOutputPath(filepath.Join("work", "noext"), "work")
	assert.Equal(t, filepath.Join("work", "noext.srt"), got)
}

func TestIsModelError(t *testing.T) {
	assert.True(t, isModelError("Error: Model 'bogus' not found in local cache"))
	assert.True(t, isModelError("model file does not exist"))
	assert.False(t, isModelError("CUDA out of memory"))
	assert.False(t, isModelError(""))
}

func TestNewFastwhisperProcessor(t *testing.T) {
	processor := NewFastwhisperProcessor("base")
	assert.Equal(t, "base", processor.Model)
}
