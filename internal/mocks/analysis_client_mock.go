package mocks

import (
	"context"

	"steam-analysis/internal/client"
	"steam-analysis/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAnalysisServiceClient is a mock type for the AnalysisServiceClient type
type MockAnalysisServiceClient struct {
	mock.Mock
}

// Analyze provides a mock function with given fields: ctx, requestID, description
func (_m *MockAnalysisServiceClient) Analyze(ctx context.Context, requestID uuid.UUID, description string) (*domain.RawAnalysisResult, error) {
	ret := _m.Called(ctx, requestID, description)

	var r0 *domain.RawAnalysisResult
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) *domain.RawAnalysisResult); ok {
		r0 = rf(ctx, requestID, description)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.RawAnalysisResult)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, string) error); ok {
		r1 = rf(ctx, requestID, description)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockAnalysisServiceClient creates a new instance of MockAnalysisServiceClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAnalysisServiceClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAnalysisServiceClient {
	m := &MockAnalysisServiceClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ client.AnalysisServiceClient = (*MockAnalysisServiceClient)(nil)
