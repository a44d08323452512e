package types

import (
	"fmt"
	"path/filepath"
	"strings"

	apperrors "tubescribe/pkg/errors"
)

type Platform string

const (
	PlatformYouTube  Platform = "youtube"
	PlatformBilibili Platform = "bilibili"
	PlatformUnknown  Platform = ""
)

type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatSrt  OutputFormat = "srt"
)

const DefaultMaxWords = 2000

// RunConfig is the immutable per-run configuration. Built once at startup,
// threaded through the pipeline, never mutated.
type RunConfig struct {
	URL      string
	Platform Platform
	VideoID  string

	OutputPath string
	Format     OutputFormat
	Split      bool
	MaxWords   int

	// FilterRepeats collapses consecutive near-duplicate utterances before
	// formatting. Off unless asked for: repeated speech is kept verbatim.
	FilterRepeats bool

	Transcribe TranscribeOptions

	// BilibiliCookie is the site credential captured from the environment at
	// config resolution time.
	BilibiliCookie string
}

// RunParams carries raw resolver inputs before validation.
type RunParams struct {
	URL            string
	Platform       Platform
	VideoID        string
	OutputPath     string
	Format         string
	Split          bool
	MaxWords       int
	FilterRepeats  bool
	Transcribe     TranscribeOptions
	BilibiliCookie string
}

// NewRunConfig validates raw params into a RunConfig. Invalid combinations
// are rejected here, not at formatting time.
func NewRunConfig(params RunParams) (*RunConfig, error) {
	if strings.TrimSpace(params.URL) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParams, "链接不能为空 URL is required")
	}

	format, err := parseFormat(params.Format, params.OutputPath)
	if err != nil {
		return nil, err
	}

	if params.Split && format == OutputFormatSrt {
		return nil, apperrors.New(apperrors.CodeInvalidParams, "字幕格式不支持分割 --split is not supported with srt format")
	}

	if params.MaxWords <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidParams,
			fmt.Sprintf("max-words 必须为正数 max-words must be positive, got %d", params.MaxWords))
	}

	outputPath := strings.TrimSpace(params.OutputPath)
	if outputPath == "" {
		outputPath = defaultOutputName(params.Platform, params.VideoID, format)
	}

	return &RunConfig{
		URL:            params.URL,
		Platform:       params.Platform,
		VideoID:        params.VideoID,
		OutputPath:     outputPath,
		Format:         format,
		Split:          params.Split,
		MaxWords:       params.MaxWords,
		FilterRepeats:  params.FilterRepeats,
		Transcribe:     params.Transcribe,
		BilibiliCookie: params.BilibiliCookie,
	}, nil
}

func parseFormat(raw, outputPath string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		// Infer from the output extension when the flag is omitted.
		if strings.EqualFold(filepath.Ext(outputPath), ".srt") {
			return OutputFormatSrt, nil
		}
		return OutputFormatText, nil
	case string(OutputFormatText):
		return OutputFormatText, nil
	case string(OutputFormatSrt):
		return OutputFormatSrt, nil
	default:
		return "", apperrors.New(apperrors.CodeInvalidParams,
			fmt.Sprintf("不支持的输出格式 unsupported output format: %s", raw))
	}
}

func defaultOutputName(platform Platform, videoID string, format OutputFormat) string {
	ext := ".txt"
	if format == OutputFormatSrt {
		ext = ".srt"
	}
	if videoID == "" {
		return "output" + ext
	}
	switch platform {
	case PlatformYouTube:
		return "youtube_" + videoID + ext
	case PlatformBilibili:
		return "bilibili_" + videoID + ext
	default:
		return "output" + ext
	}
}
