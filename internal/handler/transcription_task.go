package handler

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tubescribe/config"
	"tubescribe/internal/appdirs"
	"tubescribe/internal/deps"
	"tubescribe/internal/dto"
	"tubescribe/internal/response"
	"tubescribe/internal/service"
	"tubescribe/internal/storage"
	"tubescribe/internal/taskrunner"
	"tubescribe/internal/types"
	"tubescribe/log"
	apperrors "tubescribe/pkg/errors"
	"tubescribe/pkg/util"
)

func (h Handler) StartTranscriptionTask(c *gin.Context) {
	var req dto.StartTranscriptionTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("StartTranscriptionTask ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "参数错误 Invalid parameters", err))
		return
	}
	log.GetLogger().Info("StartTranscriptionTask received request", zap.Any("req", req))

	// 配置更新后重建服务，换进 Runner 后续任务才会用到新实例
	if configUpdated {
		log.GetLogger().Info("检测到配置更新，重新初始化服务")
		if err := deps.CheckDependency(); err != nil {
			response.ErrorResponse(c, err)
			return
		}
		h.Runner.SetService(service.NewService())
		configUpdated = false
	}

	taskId := uuid.New().String()
	params, err := buildRunParams(req, taskId)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}

	platform, videoId := util.DetectPlatform(req.Url)
	task := &types.TranscriptionTask{
		TaskId:    taskId,
		Url:       req.Url,
		Platform:  platform,
		VideoId:   videoId,
		Provider:  config.Conf.Transcribe.Provider,
		Format:    params.Format,
		Split:     params.Split,
		MaxWords:  params.MaxWords,
		Status:    types.TaskStatusProcessing,
		StatusMsg: "排队中 Queued",
	}
	if err = storage.SaveTask(task); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "任务保存失败 cannot persist task", err))
		return
	}

	if err = h.Runner.Submit(taskrunner.TranscriptionPayload{TaskID: taskId, Params: params}); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "任务入队失败 cannot enqueue task", err))
		return
	}

	response.Success(c, dto.StartTranscriptionTaskResData{TaskId: taskId})
}

// buildRunParams 把请求参数和全局配置合成一次运行的参数，产物固定写进任务目录。
func buildRunParams(req dto.StartTranscriptionTaskReq, taskId string) (types.RunParams, error) {
	platform, videoId := util.DetectPlatform(req.Url)

	name := "transcript.txt"
	if req.Format == string(types.OutputFormatSrt) {
		name = "transcript.srt"
	}
	outputPath := filepath.Join(serveTaskDir(taskId), "output", name)

	// 接口层 0 表示取默认值，入队参数必须是已解析的正数
	maxWords := req.MaxWords
	if maxWords == 0 {
		maxWords = types.DefaultMaxWords
	}

	params := types.RunParams{
		URL:           req.Url,
		Platform:      types.Platform(platform),
		VideoID:       videoId,
		OutputPath:    outputPath,
		Format:        req.Format,
		Split:         req.Split,
		MaxWords:      maxWords,
		FilterRepeats: req.FilterRepeats || config.Conf.Transcribe.FilterRepeats,
		Transcribe: types.TranscribeOptions{
			Model:       config.Conf.Transcribe.Fasterwhisper.Model,
			Device:      config.Conf.Transcribe.Device,
			Language:    config.Conf.Transcribe.Language,
			ComputeType: config.Conf.Transcribe.ComputeType,
		},
		BilibiliCookie: config.Conf.App.BilibiliCookie,
	}
	if req.Language != "" {
		params.Transcribe.Language = req.Language
	}
	if req.Model != "" {
		params.Transcribe.Model = req.Model
	}

	// 提前校验，坏参数直接拒绝而不是入队后才失败
	if _, err := types.NewRunConfig(params); err != nil {
		return types.RunParams{}, err
	}
	return params, nil
}

func serveTaskDir(taskId string) string {
	if dirs, err := appDirsResolver(); err == nil {
		return appdirs.TaskDirFor(dirs, taskId)
	}
	return filepath.Join("tasks", taskId)
}

func (h Handler) GetTranscriptionTask(c *gin.Context) {
	var req dto.GetTranscriptionTaskReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "参数错误",
			Data:  nil,
		})
		return
	}

	task, err := storage.GetTask(req.TaskId)
	if err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   err.Error(),
			Data:  nil,
		})
		return
	}

	data := dto.TaskResDataFrom(task)
	for i, file := range task.OutputFiles {
		data.OutputFiles[i].DownloadUrl = "/api/file/" + appdirs.TaskRootName + "/" + task.TaskId + "/output/" + file.Name
	}
	response.R(c, response.Response{
		Error: 0,
		Msg:   "成功",
		Data:  data,
	})
}

func (h Handler) GetTaskHistory(c *gin.Context) {
	tasks, err := storage.GetTaskHistory(200)
	if err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "获取历史记录失败: " + err.Error(),
			Data:  nil,
		})
		return
	}

	response.R(c, response.Response{
		Error: 0,
		Msg:   "成功",
		Data:  tasks,
	})
}

func (h Handler) DeleteTask(c *gin.Context) {
	taskId := c.Param("taskId")
	if taskId == "" {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "taskId不能为空",
			Data:  nil,
		})
		return
	}

	// 先删磁盘产物，失败也继续删记录
	for _, dir := range taskDirCandidates(taskId) {
		if err := os.RemoveAll(dir); err != nil {
			log.GetLogger().Error("DeleteTask RemoveAll err", zap.String("path", dir), zap.Error(err))
		}
	}

	if err := storage.DeleteTask(taskId); err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "删除记录失败: " + err.Error(),
			Data:  nil,
		})
		return
	}

	response.R(c, response.Response{
		Error: 0,
		Msg:   "删除成功",
		Data:  nil,
	})
}

// RetryTask restarts a failed task by re-submitting it
func (h Handler) RetryTask(c *gin.Context) {
	taskId := c.Param("taskId")
	if taskId == "" {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "taskId不能为空",
			Data:  nil,
		})
		return
	}

	task, err := storage.GetTask(taskId)
	if err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "获取任务失败: " + err.Error(),
			Data:  nil,
		})
		return
	}

	if task.Status != types.TaskStatusFailed && task.Status != types.TaskStatusSuccess {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "只能重试失败或已完成的任务",
			Data:  nil,
		})
		return
	}

	req := dto.StartTranscriptionTaskReq{
		Url:      task.Url,
		Format:   task.Format,
		Split:    task.Split,
		MaxWords: task.MaxWords,
		Language: task.Language,
		Model:    task.Model,
	}
	params, err := buildRunParams(req, taskId)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}

	task.Status = types.TaskStatusProcessing
	task.StatusMsg = "排队中 Queued"
	task.FailReason = ""
	if err = storage.SaveTask(task); err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "重试任务失败: " + err.Error(),
			Data:  nil,
		})
		return
	}

	if err = h.Runner.Submit(taskrunner.TranscriptionPayload{TaskID: taskId, Params: params}); err != nil {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "重试任务失败: " + err.Error(),
			Data:  nil,
		})
		return
	}

	response.R(c, response.Response{
		Error: 0,
		Msg:   "任务已重新提交",
		Data:  dto.StartTranscriptionTaskResData{TaskId: taskId},
	})
}

func (h Handler) DownloadFile(c *gin.Context) {
	requestedFile := c.Param("filepath")
	if requestedFile == "" {
		response.R(c, response.Response{
			Error: -1,
			Msg:   "文件路径为空",
			Data:  nil,
		})
		return
	}

	if hasParentTraversal(requestedFile) {
		c.JSON(403, response.Response{
			Error: -1,
			Msg:   "文件路径不合法",
			Data:  nil,
		})
		return
	}

	localFilePath, ok := resolveDownloadPath(requestedFile)
	if !ok {
		c.JSON(404, response.Response{
			Error: -1,
			Msg:   "文件不存在",
			Data:  nil,
		})
		return
	}
	if _, err := os.Stat(localFilePath); os.IsNotExist(err) {
		c.JSON(404, response.Response{
			Error: -1,
			Msg:   "文件不存在",
			Data:  nil,
		})
		return
	}
	c.FileAttachment(localFilePath, filepath.Base(localFilePath))
}
