package transcript

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"tubescribe/internal/types"
)

// repeatSimilarity is the normalized similarity above which two consecutive
// utterances count as the same hallucinated line.
const repeatSimilarity = 0.9

// CollapseRepeats drops consecutive near-duplicate utterances. Whisper models
// tend to loop the same line over silence or music; keeping one entry with an
// extended end time preserves the timeline without the noise.
func CollapseRepeats(utterances []types.Utterance) []types.Utterance {
	if len(utterances) < 2 {
		return utterances
	}

	collapsed := make([]types.Utterance, 0, len(utterances))
	collapsed = append(collapsed, utterances[0])

	for _, utterance := range utterances[1:] {
		last := &collapsed[len(collapsed)-1]
		if isNearDuplicate(last.Text, utterance.Text) {
			if utterance.End > last.End {
				last.End = utterance.End
			}
			continue
		}
		collapsed = append(collapsed, utterance)
	}
	return collapsed
}

func isNearDuplicate(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	aRunes := []rune(a)
	bRunes := []rune(b)
	longest := len(aRunes)
	if len(bRunes) > longest {
		longest = len(bRunes)
	}

	distance := levenshtein.DistanceForStrings(aRunes, bRunes, levenshtein.DefaultOptions)
	similarity := 1.0 - float64(distance)/float64(longest)
	return similarity >= repeatSimilarity
}
