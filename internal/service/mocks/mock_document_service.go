package mocks

import (
	"context"
	"io"

	"complyapi/internal/model"
	"complyapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, r io.Reader, originalFilename string, size int64) (*model.Document, error) {
	args := m.Called(ctx, r, originalFilename, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Check(ctx context.Context, id string, guidelines []string) (*model.CheckComplianceResponse, error) {
	args := m.Called(ctx, id, guidelines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckComplianceResponse), args.Error(1)
}

func (m *MockDocumentService) Modify(ctx context.Context, id string, guidelines []string) (*model.ModificationResponse, error) {
	args := m.Called(ctx, id, guidelines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ModificationResponse), args.Error(1)
}

func (m *MockDocumentService) Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}
