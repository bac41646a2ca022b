// Code generated by mockery v2.53.5. DO NOT EDIT.

package usecasemock

import (
	context "context"

	usecase "github.com/sameerfidai/FiveLegFlex/internal/usecase"
	mock "github.com/stretchr/testify/mock"
)

// OddsBoardProvider is an autogenerated mock type for the OddsBoardProvider type
type OddsBoardProvider struct {
	mock.Mock
}

// GameOdds provides a mock function with given fields: ctx, sportKey, gameID, marketCodes
func (_m *OddsBoardProvider) GameOdds(ctx context.Context, sportKey string, gameID string, marketCodes []string) (usecase.ExternalGameOdds, error) {
	ret := _m.Called(ctx, sportKey, gameID, marketCodes)

	if len(ret) == 0 {
		panic("no return value specified for GameOdds")
	}

	var r0 usecase.ExternalGameOdds
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, []string) (usecase.ExternalGameOdds, error)); ok {
		return rf(ctx, sportKey, gameID, marketCodes)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, string, []string) usecase.ExternalGameOdds); ok {
		r0 = rf(ctx, sportKey, gameID, marketCodes)
	} else {
		r0 = ret.Get(0).(usecase.ExternalGameOdds)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, string, []string) error); ok {
		r1 = rf(ctx, sportKey, gameID, marketCodes)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpcomingGames provides a mock function with given fields: ctx, sportKey
func (_m *OddsBoardProvider) UpcomingGames(ctx context.Context, sportKey string) ([]usecase.ExternalGame, error) {
	ret := _m.Called(ctx, sportKey)

	if len(ret) == 0 {
		panic("no return value specified for UpcomingGames")
	}

	var r0 []usecase.ExternalGame
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]usecase.ExternalGame, error)); ok {
		return rf(ctx, sportKey)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []usecase.ExternalGame); ok {
		r0 = rf(ctx, sportKey)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]usecase.ExternalGame)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, sportKey)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewOddsBoardProvider creates a new instance of OddsBoardProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewOddsBoardProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *OddsBoardProvider {
	mock := &OddsBoardProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
