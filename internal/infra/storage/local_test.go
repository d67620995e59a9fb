package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLocalUploadWritesFile - Salva o arquivo e devolve o caminho público
func TestLocalUploadWritesFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(base)
	assert.NoError(t, err)

	location, err := s.Upload(context.Background(), "1_avatar.png", strings.NewReader("png-bytes"))
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/1_avatar.png", location)

	data, err := os.ReadFile(filepath.Join(base, "1_avatar.png"))
	assert.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

// TestLocalUploadFlattensKey - Chave com barras não sai do diretório base
func TestLocalUploadFlattensKey(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(base)
	assert.NoError(t, err)

	location, err := s.Upload(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/.._.._etc_passwd", location)

	_, err = os.Stat(filepath.Join(base, ".._.._etc_passwd"))
	assert.NoError(t, err)
}

func TestNewStorageUnknownType(t *testing.T) {
	_, err := NewStorage(context.Background(), StorageConfig{Type: "ftp"})
	assert.Error(t, err)

	_, err = NewStorage(context.Background(), StorageConfig{Type: StorageTypeS3})
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", contentType("a.PNG"))
	assert.Equal(t, "image/jpeg", contentType("a.jpeg"))
	assert.Equal(t, "application/octet-stream", contentType("a.bin"))
}
