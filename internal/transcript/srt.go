package transcript

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tubescribe/internal/types"
)

// FormatSrtTimestamp renders a duration as HH:MM:SS,mmm.
func FormatSrtTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60
	millis := int(d/time.Millisecond) % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// ParseSrtTimestamp parses HH:MM:SS,mmm (comma or dot separator).
func ParseSrtTimestamp(raw string) (time.Duration, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ".", ",")
	parts := strings.Split(normalized, ",")
	if len(parts) != 2 {
		return 0, fmt.Errorf("无效的时间戳 invalid srt timestamp %q", raw)
	}

	clock := strings.Split(parts[0], ":")
	if len(clock) != 3 {
		return 0, fmt.Errorf("无效的时间戳 invalid srt timestamp %q", raw)
	}

	hours, err := strconv.Atoi(clock[0])
	if err != nil {
		return 0, fmt.Errorf("无效的时间戳 invalid srt timestamp %q", raw)
	}
	minutes, err := strconv.Atoi(clock[1])
	if err != nil {
		return 0, fmt.Errorf("无效的时间戳 invalid srt timestamp %q", raw)
	}
	seconds, err := strconv.Atoi(clock[2])
	if err != nil {
		return 0, fmt.Errorf("无效的时间戳 invalid srt timestamp %q", raw)
	}
	millis, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("无效的时间戳 invalid srt timestamp %q", raw)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// RenderSrt writes the sequence as SRT: sequence number, timestamp range,
// text, blank line. Numbering starts at 1 with no gaps.
func RenderSrt(utterances []types.Utterance) string {
	var builder strings.Builder
	for i, utterance := range utterances {
		builder.WriteString(strconv.Itoa(i + 1))
		builder.WriteString("\n")
		builder.WriteString(FormatSrtTimestamp(utterance.Start))
		builder.WriteString(" --> ")
		builder.WriteString(FormatSrtTimestamp(utterance.End))
		builder.WriteString("\n")
		builder.WriteString(strings.TrimSpace(utterance.Text))
		builder.WriteString("\n\n")
	}
	return builder.String()
}

// ParseSrtFile reads an SRT file back into an utterance sequence. Used to
// recover segments from local whisper runs that emit SRT.
func ParseSrtFile(path string) ([]types.Utterance, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var utterances []types.Utterance
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current *types.Utterance
	var textLines []string

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(strings.Join(textLines, " "))
		if current.Text != "" {
			utterances = append(utterances, *current)
		}
		current = nil
		textLines = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}

		if strings.Contains(line, "-->") {
			bounds := strings.SplitN(line, "-->", 2)
			start, err := ParseSrtTimestamp(bounds[0])
			if err != nil {
				return nil, err
			}
			end, err := ParseSrtTimestamp(bounds[1])
			if err != nil {
				return nil, err
			}
			current = &types.Utterance{Start: start, End: end}
			textLines = nil
			continue
		}

		if current == nil {
			// sequence number line
			continue
		}
		textLines = append(textLines, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return utterances, nil
}
