package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"complyapi/internal/config"
	"complyapi/internal/extract"
	"complyapi/internal/model"
	"complyapi/internal/storage"
)

var (
	ErrInvalidFormat = errors.New("file type not allowed")
	ErrTooLarge      = errors.New("file too large")
	ErrNotFound      = errors.New("document not found")
	ErrReaderNil     = errors.New("reader is nil")
)

// ComplianceAgent is the compliance engine the service delegates to. Both
// methods are total: they return a usable value on every failure path.
type ComplianceAgent interface {
	CheckCompliance(ctx context.Context, text string, guidelines []string) *model.ComplianceReport
	ModifyDocument(ctx context.Context, text string, guidelines []string) *model.ModificationResult
}

// TextExtractor converts stored artifact bytes into plain text.
type TextExtractor interface {
	Text(name string, data []byte) (string, error)
}

// ExtractorFunc adapts a plain function to the TextExtractor interface.
type ExtractorFunc func(name string, data []byte) (string, error)

func (f ExtractorFunc) Text(name string, data []byte) (string, error) { return f(name, data) }

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload validates and stores an uploaded file under a fresh ID.
	// The stored filename is UUID + original extension.
	Upload(ctx context.Context, r io.Reader, originalFilename string, size int64) (*model.Document, error)

	// Check extracts the document's text and runs a compliance check.
	Check(ctx context.Context, id string, guidelines []string) (*model.CheckComplianceResponse, error)

	// Modify rewrites the document's text for compliance and persists the
	// result as a new artifact; the original is never overwritten.
	Modify(ctx context.Context, id string, guidelines []string) (*model.ModificationResponse, error)

	// Open returns a stored artifact's content for download.
	Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store       storage.Storage
	extractor   TextExtractor
	agent       ComplianceAgent
	allowedExts []string
	maxFileSize int64
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, extractor TextExtractor, agent ComplianceAgent, cfg config.UploadConfig) DocumentService {
	return &documentService{
		store:       store,
		extractor:   extractor,
		agent:       agent,
		allowedExts: cfg.AllowedExtensions,
		maxFileSize: cfg.MaxFileSize,
	}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	ext := extract.Ext(originalFilename)
	if !slices.Contains(s.allowedExts, ext) {
		return nil, fmt.Errorf("%w. Allowed types: %s", ErrInvalidFormat, strings.Join(s.allowedExts, ", "))
	}
	if size > s.maxFileSize {
		return nil, fmt.Errorf("%w. Maximum size: %.2fMB", ErrTooLarge, float64(s.maxFileSize)/(1024*1024))
	}

	id := uuid.New().String()
	name := id + "." + ext

	info, err := s.store.Put(ctx, name, r, size, contentTypeFor(ext))
	if err != nil {
		return nil, fmt.Errorf("save to storage: %w", err)
	}

	return &model.Document{
		ID:          id,
		Filename:    originalFilename,
		Size:        info.Size,
		FileType:    ext,
		StoragePath: name,
		UploadedAt:  time.Now().UTC(),
	}, nil
}

func (s *documentService) Check(ctx context.Context, id string, guidelines []string) (*model.CheckComplianceResponse, error) {
	name, data, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.Text(name, data)
	if err != nil {
		return nil, err
	}

	return &model.CheckComplianceResponse{
		DocumentID: id,
		Report:     s.agent.CheckCompliance(ctx, text, guidelines),
	}, nil
}

func (s *documentService) Modify(ctx context.Context, id string, guidelines []string) (*model.ModificationResponse, error) {
	name, data, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.Text(name, data)
	if err != nil {
		return nil, err
	}

	result := s.agent.ModifyDocument(ctx, text, guidelines)

	// Materialize under a fresh ID; DOCX sources are rebuilt as DOCX, other
	// formats fall back to plain text.
	newID := uuid.New().String()
	var (
		outName string
		payload []byte
	)
	if extract.Ext(name) == "docx" {
		outName = newID + "_modified.docx"
		payload, err = extract.BuildDOCX(result.ModifiedText)
		if err != nil {
			return nil, fmt.Errorf("build modified docx: %w", err)
		}
	} else {
		outName = newID + "_modified.txt"
		payload = []byte(result.ModifiedText)
	}

	if _, err := s.store.Put(ctx, outName, bytes.NewReader(payload), int64(len(payload)), contentTypeFor(extract.Ext(outName))); err != nil {
		return nil, fmt.Errorf("save modified document: %w", err)
	}

	return &model.ModificationResponse{
		DocumentID:         id,
		ModifiedDocumentID: newID,
		DownloadURL:        "/api/v1/download/" + outName,
		ChangesMade:        result.ChangesMade,
		Summary:            result.Summary,
	}, nil
}

func (s *documentService) Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error) {
	rc, info, err := s.store.Get(ctx, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}

// resolve probes each allowed extension for a stored artifact matching id.
func (s *documentService) resolve(ctx context.Context, id string) (string, error) {
	for _, ext := range s.allowedExts {
		name := id + "." + ext
		_, err := s.store.Stat(ctx, name)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, id)
}

// load resolves id and reads the full artifact into memory. Uploads are
// bounded by the configured size ceiling, so buffering is acceptable.
func (s *documentService) load(ctx context.Context, id string) (string, []byte, error) {
	name, err := s.resolve(ctx, id)
	if err != nil {
		return "", nil, err
	}
	rc, _, err := s.store.Get(ctx, name)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", name, err)
	}
	return name, data, nil
}

func contentTypeFor(ext string) string {
	switch ext {
	case "pdf":
		return "application/pdf"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
