package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jayjaychukwu/reconcilation/pkg/constants"
	"github.com/jayjaychukwu/reconcilation/pkg/errors"
)

// Upload directories under the data dir, one per dataset side.
const (
	SourceUploadDir = "csv/source_files"
	TargetUploadDir = "csv/target_files"
)

// Files manages uploaded CSV payloads on disk.
type Files struct {
	dataDir string
}

// NewFiles creates the upload directories under dataDir.
func NewFiles(dataDir string) (*Files, error) {
	for _, dir := range []string{SourceUploadDir, TargetUploadDir} {
		if err := os.MkdirAll(filepath.Join(dataDir, dir), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", filepath.Join(dataDir, dir), err)
		}
	}
	return &Files{dataDir: dataDir}, nil
}

// SaveSource persists an uploaded source payload and returns its path.
func (f *Files) SaveSource(filename string, data []byte) (string, error) {
	return f.save(SourceUploadDir, filename, data)
}

// SaveTarget persists an uploaded target payload and returns its path.
func (f *Files) SaveTarget(filename string, data []byte) (string, error) {
	return f.save(TargetUploadDir, filename, data)
}

// save writes the payload under a collision-free name derived from the
// original upload name.
func (f *Files) save(dir, filename string, data []byte) (string, error) {
	name := uuid.NewString() + "_" + sanitize(filename)
	path := filepath.Join(f.dataDir, dir, name)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return path, nil
}

// Read loads a stored payload.
func (f *Files) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}

// Remove deletes a stored payload, ignoring already-missing files.
func (f *Files) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", path, err)
	}
	return nil
}

// sanitize strips path separators from an upload name so it cannot
// escape the upload directory.
func sanitize(filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	if name == "." || name == "" {
		name = "upload.csv"
	}
	return name
}
