package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tubescribe/internal/types"
)

func utterancesFromTexts(texts ...string) []types.Utterance {
	utterances := make([]types.Utterance, 0, len(texts))
	for i, text := range texts {
		utterances = append(utterances, types.Utterance{
			Start: time.Duration(i) * time.Second,
			End:   time.Duration(i+1) * time.Second,
			Text:  text,
		})
	}
	return utterances
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   "))
	assert.Equal(t, 2, CountWords("hello world"))
	assert.Equal(t, 3, CountWords("  a\tb\nc "))
}

func TestSplitByWordCountDeferThenCut(t *testing.T) {
	// Boundary vector: with threshold 5 the second utterance crosses the
	// threshold after inclusion, so it stays in part one.
	utterances := utterancesFromTexts("one two", "three four five six", "seven")

	parts := SplitByWordCount(utterances, 5)

	assert.Len(t, parts, 2)
	assert.Equal(t, "one two\nthree four five six\n", JoinText(parts[0]))
	assert.Equal(t, []types.Utterance{utterances[0], utterances[1]}, parts[0])
	assert.Equal(t, []types.Utterance{utterances[2]}, parts[1])
}

func TestSplitByWordCountNeverSplitsUtterance(t *testing.T) {
	// A single utterance above the threshold still occupies exactly one part.
	utterances := utterancesFromTexts("a b c d e f g h i j", "tail")

	parts := SplitByWordCount(utterances, 3)

	assert.Len(t, parts, 2)
	assert.Len(t, parts[0], 1)
	assert.Equal(t, "a b c d e f g h i j", parts[0][0].Text)
	assert.Equal(t, "tail", parts[1][0].Text)
}

func TestSplitByWordCountReassemblesLossless(t *testing.T) {
	utterances := utterancesFromTexts(
		"alpha beta", "gamma", "delta epsilon zeta", "eta", "theta iota", "kappa",
	)

	parts := SplitByWordCount(utterances, 3)

	var reassembled []types.Utterance
	for _, part := range parts {
		assert.NotEmpty(t, part)
		reassembled = append(reassembled, part...)
	}
	assert.Equal(t, utterances, reassembled)

	// Every part but the last reached the threshold.
	for i, part := range parts[:len(parts)-1] {
		assert.GreaterOrEqual(t, TotalWords(part), 3, "part %d below threshold", i+1)
	}
}

func TestSplitByWordCountSingleChunk(t *testing.T) {
	utterances := utterancesFromTexts("short", "transcript")
	parts := SplitByWordCount(utterances, 100)
	assert.Len(t, parts, 1)
}

func TestJoinTextPreservesOrder(t *testing.T) {
	utterances := utterancesFromTexts(" first ", "second", "third")
	assert.Equal(t, "first\nsecond\nthird\n", JoinText(utterances))
}

func TestTotalWords(t *testing.T) {
	utterances := utterancesFromTexts("one two", "three four five six", "seven")
	assert.Equal(t, 7, TotalWords(utterances))
}
