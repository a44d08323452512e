package fetch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tubescribe/config"
	"tubescribe/internal/storage"
	"tubescribe/internal/types"
	"tubescribe/log"
	apperrors "tubescribe/pkg/errors"
)

const (
	audioFileName  = "origin_audio.mp3"
	cookieFilePath = "cookies.txt"
)

// YtdlpFetcher 通过 yt-dlp 下载并抽取音频轨。
type YtdlpFetcher struct{}

func NewYtdlpFetcher() *YtdlpFetcher {
	return &YtdlpFetcher{}
}

// FetchAudio 下载链接的音频到 workDir，返回音频文件路径。
func (f *YtdlpFetcher) FetchAudio(ctx context.Context, run *types.RunConfig, workDir string) (string, error) {
	audioPath := filepath.Join(workDir, audioFileName)
	template := filepath.Join(workDir, "origin_audio.%(ext)s")

	cmdArgs := buildArgs(run, template)
	log.GetLogger().Info("开始下载音频 starting audio download",
		zap.String("url", run.URL), zap.String("platform", string(run.Platform)))

	cmd := exec.CommandContext(ctx, storage.YtdlpPath, cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("yt-dlp 下载失败 download failed",
			zap.String("url", run.URL), zap.String("output", string(output)), zap.Error(err))
		return "", classifyDownloadError(string(output), err)
	}

	if _, err = os.Stat(audioPath); err != nil {
		log.GetLogger().Error("yt-dlp 未产出音频文件 no audio produced",
			zap.String("expected", audioPath), zap.String("output", string(output)))
		return "", apperrors.Wrap(apperrors.CodeAudioDownload,
			"下载未产出音频文件 download produced no audio file", err)
	}

	log.GetLogger().Info("音频下载完成 audio download finished", zap.String("audio", audioPath))
	return audioPath, nil
}

func buildArgs(run *types.RunConfig, outputTemplate string) []string {
	cmdArgs := []string{
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", outputTemplate,
	}

	// 公共参数配置
	if config.Conf.App.Proxy != "" {
		cmdArgs = append(cmdArgs, "--proxy", config.Conf.App.Proxy)
	}
	if storage.FfmpegPath != "ffmpeg" {
		cmdArgs = append(cmdArgs, "--ffmpeg-location", storage.FfmpegPath)
	}

	switch run.Platform {
	case types.PlatformYouTube:
		if _, err := os.Stat(cookieFilePath); err == nil {
			cmdArgs = append(cmdArgs, "--cookies", cookieFilePath)
		}
	case types.PlatformBilibili:
		if run.BilibiliCookie != "" {
			cmdArgs = append(cmdArgs, "--add-header", "Cookie:"+run.BilibiliCookie)
		}
	}

	cmdArgs = append(cmdArgs, run.URL)
	return cmdArgs
}

// classifyDownloadError 区分凭证失效和一般下载失败，前者需要用户更新 cookie。
func classifyDownloadError(output string, err error) error {
	lowered := strings.ToLower(output)
	if strings.Contains(lowered, "sign in to confirm") ||
		strings.Contains(lowered, "please log in") ||
		strings.Contains(lowered, "login required") ||
		strings.Contains(lowered, "cookies are no longer valid") {
		return apperrors.Wrap(apperrors.CodeCookiesExpired,
			"站点要求登录 site requires a valid login cookie", err)
	}
	if strings.Contains(lowered, "unsupported url") {
		return apperrors.Wrap(apperrors.CodeUnsupportedURL,
			"不支持的链接 unsupported url", err)
	}
	return apperrors.Wrap(apperrors.CodeAudioDownload,
		fmt.Sprintf("音频下载失败 audio download failed: %s", firstLine(output)), err)
}

func firstLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "ERROR") {
			return line
		}
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
