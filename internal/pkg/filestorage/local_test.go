package filestorage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBytesAndResolve(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.SaveBytes("resumes/7", "My CV (final).pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "resumes/7/My_CV_final_.pdf", stored)

	full, err := storage.GetFullPath(stored)
	require.NoError(t, err)
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestDeleteDirRemovesFiles(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.SaveBytes("resumes/3", "cv.pdf", []byte("x"))
	require.NoError(t, err)
	require.NoError(t, storage.DeleteDir("resumes/3"))

	_, err = storage.GetFullPath(stored)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.NoError(t, storage.DeleteFile(stored))
}

func TestPathsCannotEscapeRoot(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.GetFullPath("../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.ErrorIs(t, storage.DeleteDir(".."), ErrInvalidPath)
	assert.ErrorIs(t, storage.DeleteDir(""), ErrInvalidPath)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "cv.pdf", SanitizeFilename(`C:\Users\me\cv.pdf`))
	assert.Equal(t, "file", SanitizeFilename(".."))
}
