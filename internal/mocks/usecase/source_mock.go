package usecasemock

import (
	context "context"

	dataset "github.com/riskibarqy/club-analytics/internal/domain/dataset"
	mock "github.com/stretchr/testify/mock"
)

// Source is an autogenerated mock type for the Source type
type Source struct {
	mock.Mock
}

// ID provides a mock function with no fields
func (_m *Source) ID() string {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for ID")
	}

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// LoadEvents provides a mock function with given fields: ctx
func (_m *Source) LoadEvents(ctx context.Context) (dataset.Table, error) {
	return _m.loadTable("LoadEvents", ctx)
}

// LoadPlayers provides a mock function with given fields: ctx
func (_m *Source) LoadPlayers(ctx context.Context) (dataset.Table, error) {
	return _m.loadTable("LoadPlayers", ctx)
}

// LoadTeams provides a mock function with given fields: ctx
func (_m *Source) LoadTeams(ctx context.Context) (dataset.Table, error) {
	return _m.loadTable("LoadTeams", ctx)
}

func (_m *Source) loadTable(method string, ctx context.Context) (dataset.Table, error) {
	ret := _m.MethodCalled(method, ctx)

	if len(ret) == 0 {
		panic("no return value specified for " + method)
	}

	var r0 dataset.Table
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (dataset.Table, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) dataset.Table); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(dataset.Table)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewSource creates a new instance of Source. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *Source {
	mock := &Source{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
