package filesystem

import (
	"path/filepath"
	"testing"

	"shoctl/internal/ports"

	"github.com/stretchr/testify/assert"
)

func TestOsFileSystem_WriteReadRoundTrip(t *testing.T) {
	sut := ProvideOsFileSystem()
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	err := sut.WriteFile(path, []byte("environment: ga\n"), ports.ReadWrite)
	assert.Nil(t, err)

	content, err := sut.ReadFile(path)
	assert.Nil(t, err)
	assert.Equal(t, "environment: ga\n", string(content))
}

func TestOsFileSystem_FileExists(t *testing.T) {
	sut := ProvideOsFileSystem()
	path := filepath.Join(t.TempDir(), "present.txt")
	assert.Nil(t, sut.WriteFile(path, []byte("x"), ports.ReadAllWriteOwner))

	exists, err := sut.FileExists(path)
	assert.Nil(t, err)
	assert.True(t, exists)

	exists, err = sut.FileExists(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Nil(t, err)
	assert.False(t, exists)
}

func TestOsFileSystem_ReadMissingFileFails(t *testing.T) {
	sut := ProvideOsFileSystem()

	_, err := sut.ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.NotNil(t, err)
}
