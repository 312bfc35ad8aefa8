package filestorage

import "errors"

// ErrFileNotFound is returned when a stored file does not exist
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidPath is returned for paths that escape the storage root
var ErrInvalidPath = errors.New("invalid storage path")

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveBytes writes data under subPath and returns the stored relative path
	SaveBytes(subPath, filename string, data []byte) (string, error)

	// GetFullPath resolves a stored relative path to a filesystem path
	GetFullPath(storedPath string) (string, error)

	// DeleteFile removes one stored file
	DeleteFile(storedPath string) error

	// DeleteDir removes a subdirectory and everything in it
	DeleteDir(subPath string) error
}
