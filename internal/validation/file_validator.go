// Package validation checks the report's input tables and output directory
// before any stage runs, so a bad path fails the run with a typed error
// instead of a half-written set of artifacts.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "retailcli/internal/errors"
)

// FileValidator provides the file checks shared by the report stages
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputs validates every input table and stops at the first failure
func (v *FileValidator) ValidateInputs(paths ...string) error {
	for _, path := range paths {
		if err := v.ValidateTableFile(path); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTableFile checks that path is a readable, non-empty table file.
// Excel lock files (~$name.xlsx) are rejected.
func (v *FileValidator) ValidateTableFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Rejected temporary Excel file",
			slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a temporary Excel file", path)).
			WithContext("path", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrTypeValidation, fmt.Sprintf("failed to stat %s", path), err)
	}
	if info.Size() == 0 {
		v.logger.Error("Input table is empty",
			slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is empty", path)).
			WithContext("path", path)
	}

	v.logger.Debug("Input table validated",
		slog.String("file", path),
		slog.String("format", TableFormat(path)),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError(path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewAppError(apperrors.ErrTypeValidation, fmt.Sprintf("failed to stat %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path)).
			WithContext("path", path)
	}

	// Check if file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewAppError(apperrors.ErrTypeValidation, fmt.Sprintf("%s is not readable", path), err)
	}
	file.Close()
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewExportError(dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewExportError(dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// TableFormat reports how the loader will parse path: "xlsx" for Excel
// workbooks, "csv" for everything else.
func TableFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	}
	return "csv"
}
