package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"tubescribe/internal/appdirs"
)

var appDirsResolver = appdirs.Resolve

func resolveTaskRoot() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return appdirs.TaskRootFor(dirs), nil
}

func resolveTaskDir(taskID string) (string, error) {
	if strings.TrimSpace(taskID) == "" {
		return "", fmt.Errorf("task id is empty")
	}

	taskRoot, err := resolveTaskRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(taskRoot, taskID), nil
}
