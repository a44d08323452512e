package transcript

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubescribe/internal/types"
)

func TestFormatSrtTimestamp(t *testing.T) {
	testCases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00,000"},
		{1500 * time.Millisecond, "00:00:01,500"},
		{61 * time.Second, "00:01:01,000"},
		{time.Hour + 2*time.Minute + 3*time.Second + 45*time.Millisecond, "01:02:03,045"},
		{-time.Second, "00:00:00,000"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatSrtTimestamp(tc.d))
	}
}

func TestParseSrtTimestamp(t *testing.T) {
	d, err := ParseSrtTimestamp("01:02:03,045")
	require.NoError(t, err)
	assert.Equal(t, time.Hour+2*time.Minute+3*time.Second+45*time.Millisecond, d)

	// Dot separator variant used by some tools
	d, err = ParseSrtTimestamp("00:00:01.500")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	_, err = ParseSrtTimestamp("1:2")
	assert.Error(t, err)

	_, err = ParseSrtTimestamp("aa:bb:cc,ddd")
	assert.Error(t, err)
}

func TestRenderSrtNumbersAndBlankLines(t *testing.T) {
	utterances := []types.Utterance{
		{Start: 0, End: 2 * time.Second, Text: " hello there "},
		{Start: 2 * time.Second, End: 4 * time.Second, Text: "general"},
	}

	got := RenderSrt(utterances)
	want := "1\n00:00:00,000 --> 00:00:02,000\nhello there\n\n" +
		"2\n00:00:02,000 --> 00:00:04,000\ngeneral\n\n"
	assert.Equal(t, want, got)
}

func TestParseSrtFileRoundTrip(t *testing.T) {
	utterances := []types.Utterance{
		{Start: 0, End: 1200 * time.Millisecond, Text: "first line"},
		{Start: 1200 * time.Millisecond, End: 3 * time.Second, Text: "second line"},
		{Start: 3 * time.Second, End: 5 * time.Second, Text: "third"},
	}

	path := filepath.Join(t.TempDir(), "sample.srt")
	require.NoError(t, os.WriteFile(path, []byte(RenderSrt(utterances)), 0o644))

	parsed, err := ParseSrtFile(path)
	require.NoError(t, err)
	assert.Equal(t, utterances, parsed)
}

func TestParseSrtFileMultilineEntry(t *testing.T) {
	content := "1\n00:00:00,000 --> 00:00:02,000\nline one\nline two\n\n"
	path := filepath.Join(t.TempDir(), "multi.srt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	parsed, err := ParseSrtFile(path)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "line one line two", parsed[0].Text)
}

func TestParseSrtFileMissingFile(t *testing.T) {
	_, err := ParseSrtFile(filepath.Join(t.TempDir(), "nope.srt"))
	assert.Error(t, err)
}
