package types

// Task status values. MarkStaleTasks relies on the numeric values staying
// stable across releases.
const (
	TaskStatusProcessing uint8 = 1
	TaskStatusSuccess    uint8 = 2
	TaskStatusFailed     uint8 = 3
)

// TranscriptionTask is the persisted record of one run, CLI or server.
type TranscriptionTask struct {
	Id         int64  `json:"-" gorm:"column:id;primaryKey;autoIncrement"`
	TaskId     string `json:"task_id" gorm:"column:task_id;uniqueIndex;size:64"`
	Url        string `json:"url" gorm:"column:url"`
	Platform   string `json:"platform" gorm:"column:platform;size:16"`
	VideoId    string `json:"video_id" gorm:"column:video_id;size:64"`
	Title      string `json:"title" gorm:"column:title"`
	Provider   string `json:"provider" gorm:"column:provider;size:32"`
	Model      string `json:"model" gorm:"column:model;size:32"`
	Language   string `json:"language" gorm:"column:language;size:16"`
	Format     string `json:"format" gorm:"column:format;size:8"`
	Split      bool   `json:"split" gorm:"column:split"`
	MaxWords   int    `json:"max_words" gorm:"column:max_words"`
	Status     uint8  `json:"status" gorm:"column:status"`
	StatusMsg  string `json:"status_msg" gorm:"column:status_msg"`
	FailReason string `json:"fail_reason" gorm:"column:fail_reason"`
	WordCount  int    `json:"word_count" gorm:"column:word_count"`

	OutputFiles []TaskOutputFile `json:"output_files" gorm:"foreignKey:TaskRef;references:TaskId"`

	CreateTime int64 `json:"create_time" gorm:"column:create_time;autoCreateTime"`
	UpdateTime int64 `json:"update_time" gorm:"column:update_time;autoUpdateTime"`
}

// TaskOutputFile records one written transcript artifact.
type TaskOutputFile struct {
	Id      int64  `json:"-" gorm:"column:id;primaryKey;autoIncrement"`
	TaskRef string `json:"-" gorm:"column:task_ref;index;size:64"`
	Name    string `json:"name" gorm:"column:name"`
	Path    string `json:"path" gorm:"column:path"`
	Words   int    `json:"words" gorm:"column:words"`
}
