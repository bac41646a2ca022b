// Code generated by mockery v2.53.5. DO NOT EDIT.

package usecasemock

import (
	context "context"

	usecase "github.com/sameerfidai/FiveLegFlex/internal/usecase"
	mock "github.com/stretchr/testify/mock"
)

// ProjectionsProvider is an autogenerated mock type for the ProjectionsProvider type
type ProjectionsProvider struct {
	mock.Mock
}

// Projections provides a mock function with given fields: ctx, leagueID
func (_m *ProjectionsProvider) Projections(ctx context.Context, leagueID int) ([]usecase.ExternalProjection, error) {
	ret := _m.Called(ctx, leagueID)

	if len(ret) == 0 {
		panic("no return value specified for Projections")
	}

	var r0 []usecase.ExternalProjection
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) ([]usecase.ExternalProjection, error)); ok {
		return rf(ctx, leagueID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) []usecase.ExternalProjection); ok {
		r0 = rf(ctx, leagueID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]usecase.ExternalProjection)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, leagueID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewProjectionsProvider creates a new instance of ProjectionsProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewProjectionsProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProjectionsProvider {
	mock := &ProjectionsProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
