package command

import (
	"context"
	"fmt"
	"strings"
)

// FakeCall records one invocation of a FakeRunner.
type FakeCall struct {
	Args  []string
	Stdin string
}

// FakeRunner replays canned results keyed by the joined command line. It is
// meant for tests of packages built on Runner.
type FakeRunner struct {
	Results map[string]Result
	Errors  map[string]error
	Calls   []FakeCall
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Results: make(map[string]Result),
		Errors:  make(map[string]error),
	}
}

// Set registers the result returned for a command line.
func (f *FakeRunner) Set(result Result, args ...string) {
	f.Results[strings.Join(args, " ")] = result
}

// SetError registers an error returned for a command line.
func (f *FakeRunner) SetError(err error, args ...string) {
	f.Errors[strings.Join(args, " ")] = err
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, stdin string, args ...string) (Result, error) {
	f.Calls = append(f.Calls, FakeCall{Args: append([]string{}, args...), Stdin: stdin})
	key := strings.Join(args, " ")
	if err, ok := f.Errors[key]; ok {
		return Result{}, err
	}
	if result, ok := f.Results[key]; ok {
		return result, nil
	}
	return Result{}, fmt.Errorf("unexpected command: %s", key)
}
