package service

import (
	"path/filepath"
	"testing"

	"tubescribe/internal/appdirs"
)

func TestResolveTaskDirUsesOutputDir(t *testing.T) {
	tempDir := t.TempDir()
	originalResolver := appDirsResolver
	t.Cleanup(func() {
		appDirsResolver = originalResolver
	})

	outputDir := filepath.Join(tempDir, "output-root")
	appDirsResolver = func() (appdirs.Paths, error) {
		return appdirs.Paths{
			OutputDir: outputDir,
			CacheDir:  filepath.Join(tempDir, "cache-root"),
		}, nil
	}

	got, err := resolveTaskDir("task-001")
	if err != nil {
		t.Fatalf("resolveTaskDir() returned error: %v", err)
	}

	want := filepath.Join(outputDir, "tasks", "task-001")
	if got != want {
		t.Fatalf("resolveTaskDir() = %q, want %q", got, want)
	}
}

