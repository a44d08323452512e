package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tubescribe/internal/types"
	apperrors "tubescribe/pkg/errors"
)

// WriteOutputs persists the utterance sequence according to the run config
// and returns the written files in part order. Writes are atomic per file:
// content goes to a temp file in the destination directory first, then gets
// renamed into place, so a failed run leaves no partial artifact.
func WriteOutputs(utterances []types.Utterance, run *types.RunConfig) ([]types.TaskOutputFile, error) {
	if len(utterances) == 0 {
		return nil, apperrors.ErrEmptyTranscript
	}

	if run.Format == types.OutputFormatSrt {
		// Subtitle output is a single file regardless of length.
		file, err := writeFile(run.OutputPath, RenderSrt(utterances), TotalWords(utterances))
		if err != nil {
			return nil, err
		}
		return []types.TaskOutputFile{file}, nil
	}

	if !run.Split {
		file, err := writeFile(run.OutputPath, JoinText(utterances), TotalWords(utterances))
		if err != nil {
			return nil, err
		}
		return []types.TaskOutputFile{file}, nil
	}

	parts := SplitByWordCount(utterances, run.MaxWords)
	if len(parts) == 1 {
		// Content fits in a single file, skip the part suffix.
		file, err := writeFile(run.OutputPath, JoinText(utterances), TotalWords(utterances))
		if err != nil {
			return nil, err
		}
		return []types.TaskOutputFile{file}, nil
	}

	ext := filepath.Ext(run.OutputPath)
	base := strings.TrimSuffix(run.OutputPath, ext)

	files := make([]types.TaskOutputFile, 0, len(parts))
	for i, part := range parts {
		partPath := fmt.Sprintf("%s_part%d%s", base, i+1, ext)
		file, err := writeFile(partPath, JoinText(part), TotalWords(part))
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func writeFile(path, content string, words int) (types.TaskOutputFile, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return types.TaskOutputFile{}, apperrors.Wrap(apperrors.CodeFileWriteError,
				fmt.Sprintf("无法创建输出目录 cannot create output dir %s", dir), err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return types.TaskOutputFile{}, apperrors.Wrap(apperrors.CodeFileWriteError,
			fmt.Sprintf("输出路径不可写 output path not writable: %s", path), err)
	}
	tmpPath := tmp.Name()

	if _, err = tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return types.TaskOutputFile{}, apperrors.Wrap(apperrors.CodeFileWriteError,
			fmt.Sprintf("写入失败 write failed: %s", path), err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return types.TaskOutputFile{}, apperrors.Wrap(apperrors.CodeFileWriteError,
			fmt.Sprintf("写入失败 write failed: %s", path), err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return types.TaskOutputFile{}, apperrors.Wrap(apperrors.CodeFileWriteError,
			fmt.Sprintf("写入失败 write failed: %s", path), err)
	}

	return types.TaskOutputFile{
		Name:  filepath.Base(path),
		Path:  path,
		Words: words,
	}, nil
}
