package web

import (
	"github.com/stretchr/testify/mock"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// MockFrontEnd is a mock of ports.FrontEnd
type MockFrontEnd struct {
	mock.Mock
}

var _ ports.FrontEnd = (*MockFrontEnd)(nil)

func (m *MockFrontEnd) OpenWindow() (domain.WindowSnapshot, error) {
	args := m.Called()
	return args.Get(0).(domain.WindowSnapshot), args.Error(1)
}

func (m *MockFrontEnd) CloseWindow() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockFrontEnd) Snapshot() (domain.WindowSnapshot, error) {
	args := m.Called()
	return args.Get(0).(domain.WindowSnapshot), args.Error(1)
}

func (m *MockFrontEnd) RenderWindow() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockFrontEnd) Indicators() ([]domain.IndicatorStatus, error) {
	args := m.Called()
	return args.Get(0).([]domain.IndicatorStatus), args.Error(1)
}
