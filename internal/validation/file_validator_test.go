package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "retailcli/internal/errors"
)

func TestFileValidator_ValidateTableFile(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantType  apperrors.ErrorType
		wantErr   bool
	}{
		{
			name: "csv table",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "sales_data.csv")
				require.NoError(t, os.WriteFile(path, []byte("Sale_ID\nS1\n"), 0644))
				return path
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.csv")
			},
			wantErr:  true,
			wantType: apperrors.ErrTypeNotFound,
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr:  true,
			wantType: apperrors.ErrTypeValidation,
		},
		{
			name: "empty file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "empty.csv")
				require.NoError(t, os.WriteFile(path, nil, 0644))
				return path
			},
			wantErr:  true,
			wantType: apperrors.ErrTypeValidation,
		},
		{
			name: "excel lock file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "~$sales.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("lock"), 0644))
				return path
			},
			wantErr:  true,
			wantType: apperrors.ErrTypeValidation,
		},
	}

	v := NewFileValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateTableFile(tt.setupFunc(t))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestFileValidator_ValidateInputsStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "product_data.csv")
	require.NoError(t, os.WriteFile(good, []byte("Product_ID\nP1\n"), 0644))

	v := NewFileValidator(nil)
	assert.NoError(t, v.ValidateInputs(good, good))

	err := v.ValidateInputs(good, filepath.Join(dir, "customer_data.csv"), filepath.Join(dir, "other.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer_data.csv")
	assert.NotContains(t, err.Error(), "other.csv")
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	v := NewFileValidator(nil)
	require.NoError(t, v.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// The write test file is removed again
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileValidator_ValidateOutputDirectoryOverFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	err := NewFileValidator(nil).ValidateOutputDirectory(file)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeExport))
}

func TestTableFormat(t *testing.T) {
	assert.Equal(t, "xlsx", TableFormat("sales.XLSX"))
	assert.Equal(t, "csv", TableFormat("sales.csv"))
	assert.Equal(t, "xlsx", TableFormat("sales.xlsm"))
	assert.Equal(t, "csv", TableFormat("sales"))
}
