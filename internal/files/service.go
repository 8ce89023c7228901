package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ms-events/internal/models"

	"github.com/google/uuid"
)

var ErrInvalidType = errors.New("Tipo de arquivo inválido")

type DBLayer interface {
	CreateFile(file models.File) error
	GetFileByID(id string) (*models.File, error)
}

// FileService writes uploads to the local upload directory and records them
// in the files table. The stored name is uuid-derived so client names never
// touch the filesystem.
type FileService struct {
	DB        DBLayer
	UploadDir string
	BaseURL   string
}

func NewFileService(db DBLayer, uploadDir, baseURL string) *FileService {
	return &FileService{DB: db, UploadDir: uploadDir, BaseURL: baseURL}
}

// Store saves the upload under a generated name and persists the File record.
// fileType must be banner or avatar; an empty value defaults to banner.
func (s *FileService) Store(originalName, fileType string, src io.Reader) (*models.File, error) {
	if fileType == "" {
		fileType = models.FileTypeBanner
	}
	if fileType != models.FileTypeBanner && fileType != models.FileTypeAvatar {
		return nil, ErrInvalidType
	}

	if err := os.MkdirAll(s.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	id := uuid.NewString()
	name := strings.ReplaceAll(id, "-", "") + strings.ToLower(filepath.Ext(originalName))

	dst, err := os.Create(filepath.Join(s.UploadDir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}

	file := models.File{
		ID:        id,
		Path:      name,
		URL:       fmt.Sprintf("%s/files/%s", s.BaseURL, name),
		Type:      fileType,
		CreatedAt: time.Now(),
	}

	if err := s.DB.CreateFile(file); err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	return &file, nil
}
