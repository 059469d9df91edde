package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "edacli/internal/errors"
	"edacli/internal/files"
)

// excelLockPrefix marks the owner files Excel leaves next to open workbooks
const excelLockPrefix = "~$"

// FileValidator checks dataset inputs and figure or export output locations
// before the command line tool and the server touch them. Every rejection is
// an *errors.AppError and is logged once at warn level.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

func (v *FileValidator) reject(err *apperrors.AppError, path string) *apperrors.AppError {
	attrs := []any{slog.String("path", path), slog.String("error_type", string(err.Type))}
	if err.Cause != nil {
		attrs = append(attrs, slog.String("cause", err.Cause.Error()))
	}
	v.logger.Warn(err.Message, attrs...)
	return err.WithContext("path", path)
}

// ValidateInputDirectory checks that dir is an existing directory and
// returns how many dataset files it holds. An empty directory is not an error.
func (v *FileValidator) ValidateInputDirectory(dir string) (int, error) {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return 0, v.reject(apperrors.NewNotFoundError("input directory", err), dir)
	case err != nil:
		return 0, v.reject(apperrors.NewStorageError("cannot stat input directory", err), dir)
	case !info.IsDir():
		return 0, v.reject(apperrors.NewAppValidationError("input path is not a directory"), dir)
	}

	count, err := v.CountDatasets(dir)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		v.logger.Warn("No dataset files found", slog.String("directory", dir))
	}
	return count, nil
}

// ValidateOutputDirectory creates dir when missing and proves it accepts
// writes with a temporary probe file.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return v.reject(apperrors.NewStorageError("cannot create output directory", err), dir)
	}

	probe, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		return v.reject(apperrors.NewStorageError("output directory is not writable", err), dir)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

// ValidateFile checks that path names a regular file that can be opened
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return v.reject(apperrors.NewNotFoundError(fmt.Sprintf("file %s", path), err), path)
	case err != nil:
		return v.reject(apperrors.NewStorageError("cannot stat file", err), path)
	case info.IsDir():
		return v.reject(apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path)), path)
	}

	f, err := os.Open(path)
	if err != nil {
		return v.reject(apperrors.NewStorageError("file is not readable", err), path)
	}
	return f.Close()
}

// ValidateDatasetFile checks that path is a readable file in a supported
// dataset format and not an Excel lock file, and returns its format.
func (v *FileValidator) ValidateDatasetFile(path string) (files.Format, error) {
	format, ok := files.FormatOf(path)
	if !ok {
		return "", v.reject(apperrors.NewAppValidationError(fmt.Sprintf(
			"unsupported dataset extension %q (want .csv, .xlsx or .json)",
			strings.ToLower(filepath.Ext(path)))), path)
	}
	if isLockFile(path) {
		return "", v.reject(apperrors.NewAppValidationError("file is a temporary Excel lock file"), path)
	}
	if err := v.ValidateFile(path); err != nil {
		return "", err
	}
	return format, nil
}

// CountDatasets counts the dataset files directly under dir, skipping lock files
func (v *FileValidator) CountDatasets(dir string) (int, error) {
	found, err := files.NewDiscovery(dir).FindDatasets()
	if err != nil {
		return 0, v.reject(apperrors.NewStorageError("cannot list datasets", err), dir)
	}

	count := 0
	for _, f := range found {
		if !isLockFile(f.Name) {
			count++
		}
	}
	v.logger.Debug("Datasets counted", slog.String("directory", dir), slog.Int("count", count))
	return count, nil
}

func isLockFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), excelLockPrefix)
}
