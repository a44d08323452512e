package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tubescribe/config"
	"tubescribe/internal/deps"
	"tubescribe/internal/service"
	"tubescribe/internal/storage"
	"tubescribe/internal/types"
	"tubescribe/log"
	"tubescribe/pkg/util"
)

type transcribeFlags struct {
	output        string
	split         bool
	maxWords      int
	model         string
	device        string
	language      string
	computeType   string
	format        string
	filterRepeats bool
}

func newRootCommand() *cobra.Command {
	var flags transcribeFlags

	rootCmd := &cobra.Command{
		Use:           "tubescribe <url>",
		Short:         "Download a video's audio and transcribe it to text or subtitles",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscribe(cmd, args[0], flags)
		},
	}

	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default derived from video id)")
	rootCmd.Flags().BoolVar(&flags.split, "split", false, "split plain-text output by word count")
	rootCmd.Flags().IntVar(&flags.maxWords, "max-words", types.DefaultMaxWords, "max words per output file when splitting, must be positive")
	rootCmd.Flags().StringVarP(&flags.model, "model", "m", "", "whisper model size (tiny/base/small/medium/large)")
	rootCmd.Flags().StringVarP(&flags.device, "device", "d", "", "compute device (cpu/cuda)")
	rootCmd.Flags().StringVarP(&flags.language, "language", "l", "", "language code hint, auto-detect when empty")
	rootCmd.Flags().StringVarP(&flags.computeType, "compute_type", "c", "", "numeric precision (int8/float16/float32)")
	rootCmd.Flags().StringVar(&flags.format, "format", "", "output format: text or srt (inferred from output extension when empty)")
	rootCmd.Flags().BoolVar(&flags.filterRepeats, "filter-repeats", false, "collapse consecutive near-duplicate lines (whisper hallucination cleanup)")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newDoctorCommand())

	return rootCmd
}

// bootstrap 初始化日志和配置，所有子命令共用。
func bootstrap() error {
	log.InitLogger()

	created, err := config.LoadOrCreateConfig()
	if err != nil {
		return err
	}
	if created {
		log.GetLogger().Info("已生成默认配置 default config created")
	}
	return config.CheckConfig()
}

func runTranscribe(cmd *cobra.Command, url string, flags transcribeFlags) error {
	if err := bootstrap(); err != nil {
		return err
	}
	defer log.GetLogger().Sync()

	if err := deps.CheckDependency(); err != nil {
		return err
	}

	// 历史记录是附属功能，数据库不可用时照常转录
	if err := storage.InitDB(); err != nil {
		log.GetLogger().Warn("数据库初始化失败，任务将不会留痕", zap.Error(err))
	}

	platform, videoId := util.DetectPlatform(url)
	run, err := types.NewRunConfig(types.RunParams{
		URL:            url,
		Platform:       types.Platform(platform),
		VideoID:        videoId,
		OutputPath:     flags.output,
		Format:         flags.format,
		Split:          flags.split,
		MaxWords:       flags.maxWords,
		FilterRepeats:  flags.filterRepeats || config.Conf.Transcribe.FilterRepeats,
		Transcribe:     mergeTranscribeOptions(flags),
		BilibiliCookie: config.Conf.App.BilibiliCookie,
	})
	if err != nil {
		return err
	}

	svc := service.NewService()
	files, err := svc.RunTranscription(cmd.Context(), run)
	if err != nil {
		return err
	}

	fmt.Println("转录完成 transcription finished:")
	for _, file := range files {
		fmt.Printf("  %s (%d words)\n", file.Path, file.Words)
	}
	return nil
}

// mergeTranscribeOptions 命令行参数优先，缺省回落到配置文件。
func mergeTranscribeOptions(flags transcribeFlags) types.TranscribeOptions {
	opts := types.TranscribeOptions{
		Model:       config.Conf.Transcribe.Fasterwhisper.Model,
		Device:      config.Conf.Transcribe.Device,
		Language:    config.Conf.Transcribe.Language,
		ComputeType: config.Conf.Transcribe.ComputeType,
	}
	if flags.model != "" {
		opts.Model = flags.model
	}
	if flags.device != "" {
		opts.Device = flags.device
	}
	if flags.language != "" {
		opts.Language = flags.language
	}
	if flags.computeType != "" {
		opts.ComputeType = flags.computeType
	}
	return opts
}
