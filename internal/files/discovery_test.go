package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.BasePath())
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		ok     bool
	}{
		{"housing.csv", FormatCSV, true},
		{"HOUSING.CSV", FormatCSV, true},
		{"book.xlsx", FormatXLSX, true},
		{"records.json", FormatJSON, true},
		{"legacy.xls", "", false},
		{"notes.txt", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ok := FormatOf(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestFindDatasets(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "mixed file types",
			files:    []string{"b.csv", "a.xlsx", "doc.pdf", "c.json", "readme.txt"},
			expected: []string{"a.xlsx", "b.csv", "c.json"},
		},
		{
			name:     "no datasets",
			files:    []string{"doc.pdf", "readme.txt"},
			expected: nil,
		},
		{
			name:     "empty directory",
			files:    []string{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0644))
			}
			require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0755))

			found, err := NewDiscovery(dir).FindDatasets()
			require.NoError(t, err)

			var names []string
			for _, f := range found {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
				assert.Equal(t, int64(1), f.Size)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFindDatasets_MissingDirectory(t *testing.T) {
	_, err := NewDiscovery(filepath.Join(t.TempDir(), "absent")).FindDatasets()
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "housing.csv"), []byte("a\n1\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.csv"), 0755))
	d := NewDiscovery(dir)

	info, err := d.Resolve("housing.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, info.Format)
	assert.Equal(t, filepath.Join(dir, "housing.csv"), info.Path)

	for _, name := range []string{"", ".", "..", "../housing.csv", "sub/housing.csv", `..\housing.csv`} {
		_, err := d.Resolve(name)
		assert.True(t, errors.Is(err, ErrInvalidName), "name %q", name)
	}

	_, err = d.Resolve("notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = d.Resolve("absent.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = d.Resolve("folder.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
