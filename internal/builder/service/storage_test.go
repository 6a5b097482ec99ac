package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoragePaths(t *testing.T) {
	storage := NewFileStorage("uploads")

	assert.Equal(t, "uploads", storage.Root())
	assert.Equal(t, filepath.Join("uploads", "abc.json"), storage.UploadPath("abc"))
	assert.Equal(t, filepath.Join("uploads", "abc.obj"), storage.OBJPath("abc"))
	assert.Equal(t, filepath.Join("uploads", "abc.stl"), storage.STLPath("abc"))
}

func TestFileStorageSaveUpload(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	storage := NewFileStorage(root)

	require.NoError(t, storage.SaveUpload("abc", []byte(`{"pages": []}`)))

	data, err := os.ReadFile(storage.UploadPath("abc"))
	require.NoError(t, err)
	assert.Equal(t, `{"pages": []}`, string(data))
}

func TestFileStorageSaveArtifact(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	storage := NewFileStorage(root)

	path := storage.OBJPath("abc")
	require.NoError(t, storage.SaveArtifact(path, []byte("# plan2model\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# plan2model\n", string(data))
}
