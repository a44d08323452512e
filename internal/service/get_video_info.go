package service

import (
	"context"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"tubescribe/config"
	"tubescribe/internal/storage"
	"tubescribe/internal/types"
	"tubescribe/log"
)

// getVideoTitle 获取视频标题用于任务记录。失败不阻断流程，标题留空继续。
func (s Service) getVideoTitle(ctx context.Context, run *types.RunConfig) string {
	switch run.Platform {
	case types.PlatformBilibili:
		if run.VideoID == "" {
			return ""
		}
		info, err := s.BiliClient.GetVideoInfo(ctx, run.VideoID)
		if err != nil {
			log.GetLogger().Warn("获取B站标题失败 cannot fetch bilibili title",
				zap.String("videoId", run.VideoID), zap.Error(err))
			return ""
		}
		return info.Title
	case types.PlatformYouTube:
		cmdArgs := []string{"--skip-download", "--encoding", "utf-8", "--get-title", run.URL}
		if config.Conf.App.Proxy != "" {
			cmdArgs = append(cmdArgs, "--proxy", config.Conf.App.Proxy)
		}

		cmd := exec.CommandContext(ctx, storage.YtdlpPath, cmdArgs...)
		output, err := cmd.CombinedOutput()
		if err != nil {
			log.GetLogger().Warn("yt-dlp 获取标题失败 cannot fetch title",
				zap.String("url", run.URL), zap.String("output", string(output)), zap.Error(err))
			return ""
		}
		return strings.TrimSpace(string(output))
	default:
		return ""
	}
}
