package filestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yigit/careerportal/internal/pkg/logger"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// SanitizeFilename reduces a client supplied name to a safe base name
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFileChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}

// resolve joins rel onto the base path and rejects anything outside it
func (ls *LocalStorage) resolve(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return filepath.Join(ls.basePath, clean), nil
}

// SaveBytes writes data to subPath/filename, replacing any previous file of that name
func (ls *LocalStorage) SaveBytes(subPath, filename string, data []byte) (string, error) {
	storedPath := filepath.ToSlash(filepath.Join(subPath, SanitizeFilename(filename)))
	dstPath, err := ls.resolve(storedPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o750); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	// Write to a temp file first so readers never see a partial file
	tmp, err := os.CreateTemp(filepath.Dir(dstPath), ".upload-*")
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file content")
		return "", fmt.Errorf("failed to save file content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save file content: %w", err)
	}
	if err := os.Rename(tmp.Name(), dstPath); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	logger.Info().Str("filename", filename).Str("stored_as", storedPath).Int("bytes", len(data)).Msg("File saved successfully")
	return storedPath, nil
}

// GetFullPath returns the filesystem path for a stored file, or ErrFileNotFound
func (ls *LocalStorage) GetFullPath(storedPath string) (string, error) {
	fullPath, err := ls.resolve(storedPath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return "", ErrFileNotFound
	}
	return fullPath, nil
}

// DeleteFile removes one stored file. Missing files are ignored.
func (ls *LocalStorage) DeleteFile(storedPath string) error {
	fullPath, err := ls.resolve(storedPath)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		logger.Error().Err(err).Str("path", fullPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// DeleteDir removes a stored subdirectory recursively
func (ls *LocalStorage) DeleteDir(subPath string) error {
	fullPath, err := ls.resolve(subPath)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(fullPath); err != nil {
		logger.Error().Err(err).Str("path", fullPath).Msg("Failed to delete directory")
		return fmt.Errorf("failed to delete directory: %w", err)
	}
	return nil
}
