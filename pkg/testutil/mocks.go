package testutil

import (
	"context"

	"github.com/pathpirate/pathpirate/pkg/command"
	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock of command.Runner. Expectations are keyed
// on the program name and the argument slice:
//
//	r.On("Run", "/tmc/bin/halcmd", []string{"gets", "estop"}).Return(command.Output{Stdout: "FALSE\n"}, nil)
//	r.On("Stream", "mesaflash", mock.Anything).Return([]string{"line"}, nil)
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (command.Output, error) {
	ret := m.Called(name, args)
	return ret.Get(0).(command.Output), ret.Error(1)
}

// Stream replays the []string returned by the expectation through line
func (m *MockRunner) Stream(ctx context.Context, line func(string), name string, args ...string) error {
	ret := m.Called(name, args)
	if lines, ok := ret.Get(0).([]string); ok {
		for _, l := range lines {
			line(l)
		}
	}
	return ret.Error(1)
}

// MockFetcher is a testify mock of fetch.Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Online(ctx context.Context) bool {
	return m.Called().Bool(0)
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ret := m.Called(url)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]byte), ret.Error(1)
}

// MockFlasher is a testify mock of firmware.Flasher. Progress lines
// returned by the expectation are emitted before it returns.
type MockFlasher struct {
	mock.Mock
}

func (m *MockFlasher) Verify(ctx context.Context, file string, progress func(string)) (bool, error) {
	ret := m.Called(file)
	emit(ret.Get(1), progress)
	return ret.Bool(0), ret.Error(2)
}

func (m *MockFlasher) Flash(ctx context.Context, file string, progress func(string)) error {
	ret := m.Called(file)
	emit(ret.Get(0), progress)
	return ret.Error(1)
}

func emit(v interface{}, progress func(string)) {
	if lines, ok := v.([]string); ok {
		for _, l := range lines {
			progress(l)
		}
	}
}
