package service

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tubescribe/config"
	"tubescribe/internal/storage"
	"tubescribe/internal/transcript"
	"tubescribe/internal/types"
	"tubescribe/log"
	apperrors "tubescribe/pkg/errors"
	"tubescribe/pkg/util"
)

// RunTranscription 执行完整流水线：下载音频 → 转换采样率 → 转录 → 写出，
// 可选地在写出前折叠重复行。
// 任务记录全程落库，中间文件在函数返回时清理，无论成功与否。
func (s Service) RunTranscription(ctx context.Context, run *types.RunConfig) ([]types.TaskOutputFile, error) {
	return s.RunTranscriptionTask(ctx, run, uuid.New().String())
}

// RunTranscriptionTask 同 RunTranscription，但由调用方提供任务号。
// serve 模式先落库再入队，客户端拿到任务号即可轮询。
func (s Service) RunTranscriptionTask(ctx context.Context, run *types.RunConfig, taskId string) ([]types.TaskOutputFile, error) {
	task := &types.TranscriptionTask{
		TaskId:   taskId,
		Url:      run.URL,
		Platform: string(run.Platform),
		VideoId:  run.VideoID,
		Provider: config.Conf.Transcribe.Provider,
		Model:    run.Transcribe.Model,
		Language: run.Transcribe.Language,
		Format:   string(run.Format),
		Split:    run.Split,
		MaxWords: run.MaxWords,
		Status:   types.TaskStatusProcessing,
	}
	if err := storage.SaveTask(task); err != nil {
		// 落库失败只告警，转录本身照常进行
		log.GetLogger().Warn("任务记录保存失败 cannot persist task record", zap.Error(err))
	}

	files, err := s.runPipeline(ctx, run, task)
	if err != nil {
		task.Status = types.TaskStatusFailed
		task.FailReason = err.Error()
		task.StatusMsg = apperrors.GetMessage(err)
		if saveErr := storage.SaveTask(task); saveErr != nil {
			log.GetLogger().Warn("任务记录更新失败 cannot update task record", zap.Error(saveErr))
		}
		return nil, err
	}

	task.Status = types.TaskStatusSuccess
	task.StatusMsg = "完成 done"
	task.OutputFiles = files
	for _, file := range files {
		task.WordCount += file.Words
	}
	if saveErr := storage.SaveTask(task); saveErr != nil {
		log.GetLogger().Warn("任务记录更新失败 cannot update task record", zap.Error(saveErr))
	}
	return files, nil
}

func (s Service) runPipeline(ctx context.Context, run *types.RunConfig, task *types.TranscriptionTask) ([]types.TaskOutputFile, error) {
	taskDir, err := resolveTaskDir(task.TaskId)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "无法解析工作目录 cannot resolve work dir", err)
	}
	// 中间文件放在 temp 子目录，最终产物（serve 模式写进 output 子目录）不受清理影响
	workDir := filepath.Join(taskDir, "temp")
	if err = os.MkdirAll(workDir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "无法创建工作目录 cannot create work dir", err)
	}
	defer func() {
		if removeErr := os.RemoveAll(workDir); removeErr != nil {
			log.GetLogger().Warn("清理工作目录失败 cannot clean work dir",
				zap.String("dir", workDir), zap.Error(removeErr))
		}
		// 任务目录若已空则一并移除，serve 模式留有产物时会保留
		_ = os.Remove(taskDir)
	}()

	task.Title = s.getVideoTitle(ctx, run)
	if task.Title != "" {
		task.StatusMsg = "下载中 downloading"
		_ = storage.SaveTask(task)
	}

	audioPath, err := s.Fetcher.FetchAudio(ctx, run, workDir)
	if err != nil {
		return nil, err
	}

	// whisper 要求 16kHz 单声道输入
	processedPath, err := util.ProcessAudio(audioPath)
	if err != nil {
		return nil, err
	}

	task.StatusMsg = "转录中 transcribing"
	_ = storage.SaveTask(task)

	utterances, err := s.Transcriber.Transcribe(ctx, processedPath, run.Transcribe)
	if err != nil {
		return nil, err
	}

	// 去重会改写转录内容，只有显式开启才启用
	if run.FilterRepeats {
		utterances = transcript.CollapseRepeats(utterances)
	}

	return transcript.WriteOutputs(utterances, run)
}
