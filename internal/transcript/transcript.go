// Package transcript turns an ordered utterance sequence into persisted
// transcript artifacts: a single text file, word-count-bounded part files, or
// an SRT subtitle file.
package transcript

import (
	"strings"

	"github.com/samber/lo"

	"tubescribe/internal/types"
)

// CountWords counts whitespace-separated words, the unit of the split budget.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// TotalWords sums the word counts of a sequence.
func TotalWords(utterances []types.Utterance) int {
	return lo.SumBy(utterances, func(u types.Utterance) int {
		return CountWords(u.Text)
	})
}

// SplitByWordCount partitions utterances into parts bounded by maxWords.
// Boundary rule is defer-then-cut: an utterance always joins the current
// part, and the part is closed once its running word count has reached the
// threshold. A part boundary never falls inside an utterance, so a part can
// exceed maxWords by at most one utterance. Any non-final part therefore
// carries at least maxWords words.
func SplitByWordCount(utterances []types.Utterance, maxWords int) [][]types.Utterance {
	var parts [][]types.Utterance
	var current []types.Utterance
	currentWords := 0

	for _, utterance := range utterances {
		current = append(current, utterance)
		currentWords += CountWords(utterance.Text)
		if currentWords >= maxWords {
			parts = append(parts, current)
			current = nil
			currentWords = 0
		}
	}

	if len(current) > 0 {
		parts = append(parts, current)
	}
	return parts
}

// JoinText concatenates utterance texts in order, one per line.
func JoinText(utterances []types.Utterance) string {
	lines := lo.Map(utterances, func(u types.Utterance, _ int) string {
		return strings.TrimSpace(u.Text)
	})
	return strings.Join(lines, "\n") + "\n"
}
