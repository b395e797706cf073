package mocks

import (
	"context"

	"complyapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockComplianceAgent struct {
	mock.Mock
}

func (m *MockComplianceAgent) CheckCompliance(ctx context.Context, text string, guidelines []string) *model.ComplianceReport {
	args := m.Called(ctx, text, guidelines)
	return args.Get(0).(*model.ComplianceReport)
}

func (m *MockComplianceAgent) ModifyDocument(ctx context.Context, text string, guidelines []string) *model.ModificationResult {
	args := m.Called(ctx, text, guidelines)
	return args.Get(0).(*model.ModificationResult)
}
