package whisperapi

import (
	"context"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"tubescribe/internal/types"
	"tubescribe/log"
	apperrors "tubescribe/pkg/errors"
)

// Transcribe 上传音频到 whisper 接口并取回分段结果。
func (c *Client) Transcribe(ctx context.Context, audioPath string, opts types.TranscribeOptions) ([]types.Utterance, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if opts.Language != "" && opts.Language != "auto" {
		req.Language = opts.Language
	}

	log.GetLogger().Info("开始转录 starting api transcription", zap.String("audio", audioPath))

	resp, err := c.client.CreateTranscription(ctx, req)
	if err != nil {
		log.GetLogger().Error("whisper 接口请求失败 api request failed", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.CodeTranscribeFailed,
			"whisper 接口转录失败 whisper api transcription failed", err)
	}

	utterances := make([]types.Utterance, 0, len(resp.Segments))
	for _, segment := range resp.Segments {
		utterances = append(utterances, types.Utterance{
			Start: floatSecondsToDuration(segment.Start),
			End:   floatSecondsToDuration(segment.End),
			Text:  segment.Text,
		})
	}

	log.GetLogger().Info("转录完成 transcription finished",
		zap.String("audio", audioPath), zap.Int("segments", len(utterances)))
	return utterances, nil
}

func floatSecondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
