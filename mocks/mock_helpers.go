package mocks

import (
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// get returns the i-th return value, the zero value when nil was configured
func get[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}
