package testutil

import (
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// Storage is an in-memory object store that records uploads and deletes.
type Storage struct {
	mu       sync.Mutex
	Uploaded []string
	Deleted  []string
}

func (s *Storage) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowType ...string) (string, error) {
	ext := ".jpg"
	if file != nil && file.Filename != "" {
		ext = strings.ToLower(filepath.Ext(file.Filename))
	}
	key := path.Join(folder, fileName+ext)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Uploaded = append(s.Uploaded, key)
	return key, nil
}

func (s *Storage) UpdateFile(objectKey string, file *multipart.FileHeader, allowType ...string) (string, error) {
	return objectKey, nil
}

func (s *Storage) DeleteFile(objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, objectKey)
	return nil
}

func (s *Storage) GetPublicLinkKey(objectKey string) string {
	if objectKey == "" {
		return ""
	}
	return "https://cdn.test/" + objectKey
}

func (s *Storage) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://cdn.test/")
}
