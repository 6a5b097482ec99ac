package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// File Storage
// ============================================================

// FileStorage раскладывает загрузки и сгенерированные артефакты по
// идентификатору конверсии.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) Root() string {
	return s.root
}

func (s *FileStorage) UploadPath(id string) string {
	return filepath.Join(s.root, id+".json")
}

func (s *FileStorage) OBJPath(id string) string {
	return filepath.Join(s.root, id+".obj")
}

func (s *FileStorage) STLPath(id string) string {
	return filepath.Join(s.root, id+".stl")
}

func (s *FileStorage) EnsureRoot() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir storage root: %w", err)
	}
	return nil
}

// SaveUpload пишет загруженный документ страниц на диск.
func (s *FileStorage) SaveUpload(id string, data []byte) error {
	if err := s.EnsureRoot(); err != nil {
		return err
	}
	return os.WriteFile(s.UploadPath(id), data, 0o644)
}

// SaveArtifact пишет сгенерированный файл модели.
func (s *FileStorage) SaveArtifact(path string, data []byte) error {
	if err := s.EnsureRoot(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
