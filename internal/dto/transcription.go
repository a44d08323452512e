package dto

import "tubescribe/internal/types"

// StartTranscriptionTaskReq 发起转录任务
type StartTranscriptionTaskReq struct {
	Url           string `json:"url" binding:"required"`
	Format        string `json:"format"`         // text 或 srt，留空按输出名推断
	Split         bool   `json:"split"`          // 是否按字数分片
	MaxWords      int    `json:"max_words"`      // 分片阈值，0 为接口层哨兵，入队前解析为默认值
	FilterRepeats bool   `json:"filter_repeats"` // 折叠连续重复行
	Language      string `json:"language"`
	Model         string `json:"model"`
}

type StartTranscriptionTaskResData struct {
	TaskId string `json:"task_id"`
}

// GetTranscriptionTaskReq 查询任务状态
type GetTranscriptionTaskReq struct {
	TaskId string `form:"taskId" binding:"required"`
}

type GetTranscriptionTaskResData struct {
	TaskId      string           `json:"task_id"`
	Url         string           `json:"url"`
	Title       string           `json:"title"`
	Status      uint8            `json:"status"`
	StatusMsg   string           `json:"status_msg"`
	FailReason  string           `json:"fail_reason,omitempty"`
	WordCount   int              `json:"word_count"`
	OutputFiles []OutputFileItem `json:"output_files"`
}

type OutputFileItem struct {
	Name        string `json:"name"`
	Words       int    `json:"words"`
	DownloadUrl string `json:"download_url"`
}

// TaskResDataFrom 从任务记录构造查询响应，下载链接由调用方补全。
func TaskResDataFrom(task *types.TranscriptionTask) GetTranscriptionTaskResData {
	data := GetTranscriptionTaskResData{
		TaskId:     task.TaskId,
		Url:        task.Url,
		Title:      task.Title,
		Status:     task.Status,
		StatusMsg:  task.StatusMsg,
		FailReason: task.FailReason,
		WordCount:  task.WordCount,
	}
	for _, file := range task.OutputFiles {
		data.OutputFiles = append(data.OutputFiles, OutputFileItem{
			Name:  file.Name,
			Words: file.Words,
		})
	}
	return data
}
