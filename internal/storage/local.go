// Package storage keeps uploaded files on local disk under the public uploads directory.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/justsurfingit/govconnect/internal/apperr"
)

// URLPrefix is where the upload root is served over HTTP.
const URLPrefix = "/uploads"

const resumeDir = "resumes"

var resumeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
}

// File describes a stored upload.
type File struct {
	Filename     string
	OriginalName string
	FilePath     string
	Size         int64
	MimeType     string
	// Text is the plain text pulled from the document, empty when unsupported.
	Text string
}

type LocalStore struct {
	root    string
	maxSize int64
	now     func() time.Time
}

func NewLocalStore(root string, maxSize int64) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(root, resumeDir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: root, maxSize: maxSize, now: time.Now}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) MaxSize() int64 {
	return s.maxSize
}

// SizeError is the validation error for an upload over the limit.
func (s *LocalStore) SizeError() error {
	return apperr.Validation(fmt.Sprintf("File size exceeds %dMB limit", s.maxSize/(1024*1024)))
}

// SaveResume validates the content type by sniffing the bytes, writes the file
// under a collision-free name and extracts its text.
func (s *LocalStore) SaveResume(originalName string, r io.Reader) (*File, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, s.SizeError()
	}
	if len(data) == 0 {
		return nil, apperr.Validation("No file uploaded")
	}

	detected := mimetype.Detect(data)
	mimeType := ""
	for _, allowed := range resumeTypes {
		if detected.Is(allowed) {
			mimeType = allowed
			break
		}
	}
	if mimeType == "" {
		return nil, apperr.Validation("Invalid file type. Only PDF, DOC, DOCX, and TXT files are allowed for resumes.")
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || len(ext) > 6 {
		ext = detected.Extension()
	}
	filename := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString()[:8], ext)

	abs := filepath.Join(s.root, resumeDir, filename)
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	return &File{
		Filename:     filename,
		OriginalName: filepath.Base(originalName),
		FilePath:     path.Join(URLPrefix, resumeDir, filename),
		Size:         int64(len(data)),
		MimeType:     mimeType,
		Text:         ExtractText(data, mimeType),
	}, nil
}

// Remove deletes a stored file by its public path. Missing files are not an error.
func (s *LocalStore) Remove(filePath string) error {
	abs, err := s.resolve(filePath)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

func (s *LocalStore) resolve(filePath string) (string, error) {
	clean := path.Clean("/" + filePath)
	rel, ok := strings.CutPrefix(clean, URLPrefix+"/")
	if !ok {
		return "", fmt.Errorf("path %q is outside %s", filePath, URLPrefix)
	}
	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	target, err := filepath.Abs(abs)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes upload root", filePath)
	}
	return target, nil
}
