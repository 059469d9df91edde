package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Format is a supported dataset file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// ErrInvalidName is returned for dataset names that are not plain file names.
var ErrInvalidName = errors.New("invalid dataset name")

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// FileInfo represents information about a discovered dataset file
type FileInfo struct {
	Path    string    `json:"-"`
	Name    string    `json:"name"`
	Format  Format    `json:"format"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Discovery provides dataset discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// BasePath returns the directory searched for datasets.
func (d *Discovery) BasePath() string {
	return d.basePath
}

// FormatOf returns the dataset format implied by a file name's extension.
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// FindDatasets lists the dataset files directly under the base path,
// sorted by name.
func (d *Discovery) FindDatasets() ([]FileInfo, error) {
	entries, err := os.ReadDir(d.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.basePath, err)
	}

	var found []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		format, ok := FormatOf(entry.Name())
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		found = append(found, FileInfo{
			Path:    filepath.Join(d.basePath, entry.Name()),
			Name:    entry.Name(),
			Format:  format,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Name < found[j].Name
	})

	return found, nil
}

// Resolve maps a dataset name to its file under the base path. Names with
// path separators or dot segments are rejected.
func (d *Discovery) Resolve(name string) (FileInfo, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return FileInfo{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	format, ok := FormatOf(name)
	if !ok {
		return FileInfo{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}

	path := filepath.Join(d.basePath, name)
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	if info.IsDir() {
		return FileInfo{}, fmt.Errorf("%s is a directory: %w", name, os.ErrNotExist)
	}

	return FileInfo{
		Path:    path,
		Name:    name,
		Format:  format,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
