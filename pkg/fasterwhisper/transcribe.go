package fasterwhisper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tubescribe/internal/storage"
	"tubescribe/internal/transcript"
	"tubescribe/internal/types"
	"tubescribe/log"
	apperrors "tubescribe/pkg/errors"
)

// Transcribe 调用本地 faster-whisper 可执行文件，让它在音频同目录下产出 srt 文件，
// 再解析回 utterance 序列。
func (f *FastwhisperProcessor) Transcribe(ctx context.Context, audioPath string, opts types.TranscribeOptions) ([]types.Utterance, error) {
	model := opts.Model
	if model == "" {
		model = f.Model
	}

	outputDir := filepath.Dir(audioPath)
	cmdArgs := []string{
		audioPath,
		"--model", model,
		"--output_format", "srt",
		"--output_dir", outputDir,
		"--beep_off",
	}
	if opts.Device != "" {
		cmdArgs = append(cmdArgs, "--device", opts.Device)
	}
	if opts.ComputeType != "" {
		cmdArgs = append(cmdArgs, "--compute_type", opts.ComputeType)
	}
	if opts.Language != "" && opts.Language != "auto" {
		cmdArgs = append(cmdArgs, "--language", opts.Language)
	}

	log.GetLogger().Info("开始转录 starting local transcription",
		zap.String("audio", audioPath), zap.String("model", model))

	cmd := exec.CommandContext(ctx, storage.FasterwhisperPath, cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("faster-whisper 执行失败 execution failed",
			zap.String("output", string(output)), zap.Error(err))
		if isModelError(string(output)) {
			return nil, apperrors.Wrap(apperrors.CodeModelNotFound,
				fmt.Sprintf("模型不可用 model not available: %s", model), err)
		}
		return nil, apperrors.Wrap(apperrors.CodeTranscribeFailed,
			"本地转录失败 local transcription failed", err)
	}

	srtPath := srtOutputPath(audioPath, outputDir)
	if _, err = os.Stat(srtPath); err != nil {
		log.GetLogger().Error("faster-whisper 未生成字幕文件 no srt produced",
			zap.String("expected", srtPath), zap.String("output", string(output)))
		return nil, apperrors.Wrap(apperrors.CodeTranscribeFailed,
			"本地转录未产出结果 local transcription produced no output", err)
	}

	utterances, err := transcript.ParseSrtFile(srtPath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTranscribeFailed,
			"转录结果解析失败 cannot parse transcription output", err)
	}

	log.GetLogger().Info("转录完成 transcription finished",
		zap.String("audio", audioPath), zap.Int("segments", len(utterances)))
	return utterances, nil
}

// srtOutputPath faster-whisper 以音频文件名为基础命名输出。
func srtOutputPath(audioPath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(outputDir, base+".srt")
}

func isModelError(output string) bool {
	lowered := strings.ToLower(output)
	return strings.Contains(lowered, "model") &&
		(strings.Contains(lowered, "not found") || strings.Contains(lowered, "no such file") ||
			strings.Contains(lowered, "does not exist"))
}
