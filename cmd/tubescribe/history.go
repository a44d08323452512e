package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tubescribe/internal/storage"
	"tubescribe/internal/types"
	"tubescribe/log"
)

func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent transcription tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "max number of tasks to list")
	return cmd
}

func runHistory(limit int) error {
	if err := bootstrap(); err != nil {
		return err
	}
	defer log.GetLogger().Sync()

	if err := storage.InitDB(); err != nil {
		return err
	}

	tasks, err := storage.GetTaskHistory(limit)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("暂无历史记录 no tasks recorded yet")
		return nil
	}

	for _, task := range tasks {
		created := time.Unix(task.CreateTime, 0).Format("2006-01-02 15:04")
		fmt.Printf("%s  %-8s  %s\n", created, statusLabel(task.Status), task.Url)
		if task.Title != "" {
			fmt.Printf("    标题 title: %s\n", task.Title)
		}
		for _, file := range task.OutputFiles {
			fmt.Printf("    -> %s (%d words)\n", file.Path, file.Words)
		}
		if task.Status == types.TaskStatusFailed && task.FailReason != "" {
			fmt.Printf("    失败原因 reason: %s\n", task.FailReason)
		}
	}
	return nil
}

func statusLabel(status uint8) string {
	switch status {
	case types.TaskStatusProcessing:
		return "running"
	case types.TaskStatusSuccess:
		return "done"
	case types.TaskStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
