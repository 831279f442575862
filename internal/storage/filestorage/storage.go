package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"fourcut/internal/storage"

	"github.com/google/uuid"
)

// FileStorage хранилище изображений. Save возвращает непрозрачный путь, который потом
// передается в Delete без изменений.
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (filePath string, err error)
	Delete(ctx context.Context, filePath string) error
	BaseURL() string
}

// checkImage пропускает только изображения не больше maxSize. maxSize <= 0 отключает лимит.
func checkImage(file *multipart.FileHeader, maxSize int64) error {
	if file == nil {
		return fmt.Errorf("empty file header: %w", storage.ErrFileNotFound)
	}

	if maxSize > 0 && file.Size > maxSize {
		return fmt.Errorf("%d bytes: %w", file.Size, storage.ErrFileTooLarge)
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%q: %w", contentType, storage.ErrInvalidFileType)
	}

	return nil
}

// objectName генерирует уникальное имя, сохраняя расширение исходного файла.
func objectName(subPath, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(subPath, uuid.NewString()+ext)
}
