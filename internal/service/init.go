package service

import (
	"tubescribe/config"
	"tubescribe/internal/fetch"
	"tubescribe/internal/types"
	"tubescribe/log"
	"tubescribe/pkg/bilibili"
	"tubescribe/pkg/fasterwhisper"
	"tubescribe/pkg/whisperapi"

	"go.uber.org/zap"
)

type Service struct {
	Transcriber types.Transcriber
	Fetcher     types.Fetcher
	BiliClient  *bilibili.Client
}

func NewService() *Service {
	var transcriber types.Transcriber

	switch config.Conf.Transcribe.Provider {
	case "openai":
		transcriber = whisperapi.NewClient(config.Conf.Transcribe.Openai.BaseUrl, config.Conf.Transcribe.Openai.ApiKey, config.Conf.App.ParsedProxy)
	case "fasterwhisper":
		transcriber = fasterwhisper.NewFastwhisperProcessor(config.Conf.Transcribe.Fasterwhisper.Model)
	}
	log.GetLogger().Info("当前选择的转录源： ", zap.String("transcriber", config.Conf.Transcribe.Provider))

	return &Service{
		Transcriber: transcriber,
		Fetcher:     fetch.NewYtdlpFetcher(),
		BiliClient:  bilibili.NewClient(config.Conf.App.BilibiliCookie, config.Conf.App.Proxy),
	}
}
