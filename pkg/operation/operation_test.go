// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/sweeptext/pkg/operation"
	"github.com/walteh/sweeptext/pkg/rule"
	"github.com/walteh/sweeptext/pkg/status"
)

// 🔧 MockOperation is a mock implementation of the Operation interface
type MockOperation struct {
	mock.Mock
}

func (m *MockOperation) Name() string {
	return m.Called().String(0)
}

func (m *MockOperation) Execute(ctx context.Context) (*status.Report, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*status.Report)
	return report, args.Error(1)
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestRunAllChainsRules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "_inbox.txt", "[work] finish report !urgent\nnote\n")
	writeFile(t, dir, "work.txt", "")
	writeFile(t, dir, "urgent.txt", "")

	specs := []rule.Spec{
		{Name: "refile", Action: "refile", Pattern: `^\[{tag}\] `, Target: "{tag}.txt", Include: "_inbox.txt", Folder: dir},
		{Name: "collect", Action: "collect", Pattern: `(?m) !{flag}$`, Target: "{flag}.txt", Include: "work.txt", Folder: dir},
	}

	var seen []string
	runner := operation.NewRunner(func(ctx context.Context, r *status.Report) {
		seen = append(seen, r.Rule)
	})

	reports, err := runner.RunAll(testContext(t), operation.FromSpecs(specs, operation.Options{}))
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Len(t, seen, 2, "every report should reach the callback")

	assert.Equal(t, "note\n", readFile(t, dir, "_inbox.txt"))
	assert.Equal(t, "finish report !urgent\n", readFile(t, dir, "work.txt"))
	assert.Equal(t, 1, reports[1].Count(status.LineAccepted), "the second rule sees the first rule's output")
}

func TestRunAllStopsAtFirstFailure(t *testing.T) {
	ctx := testContext(t)

	first := &MockOperation{}
	first.On("Execute", mock.Anything).Return(&status.Report{Rule: "first"}, nil)

	failing := &MockOperation{}
	failing.On("Name").Return("failing")
	failing.On("Execute", mock.Anything).Return(nil, errors.Base("boom"))

	never := &MockOperation{}

	reports, err := operation.NewRunner(nil).RunAll(ctx, []operation.Operation{first, failing, never})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running failing")
	assert.Len(t, reports, 1)

	first.AssertExpectations(t)
	failing.AssertExpectations(t)
	never.AssertNotCalled(t, "Execute", mock.Anything)
}

func TestRunReportsFailedRuns(t *testing.T) {
	failed := &status.Report{Rule: "partial"}
	op := &MockOperation{}
	op.On("Name").Return("partial")
	op.On("Execute", mock.Anything).Return(failed, errors.Base("commit failure"))

	var got *status.Report
	runner := operation.NewRunner(func(ctx context.Context, r *status.Report) { got = r })

	report, err := runner.Run(testContext(t), op)
	require.Error(t, err)
	assert.Same(t, failed, report)
	assert.Same(t, failed, got, "a failed run's report is still delivered")
}

func TestSweepOperationCompileError(t *testing.T) {
	op := operation.NewSweepOperation(rule.Spec{Action: rule.ActionMove, Pattern: `@{tag} `, Target: "{nope}.txt"}, operation.Options{})

	report, err := op.Execute(testContext(t))
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, rule.ErrUndefinedPlaceholder))
	assert.Equal(t, "move @{tag} ", op.Name())
}

func TestRunAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	op := &MockOperation{}
	op.On("Name").Return("never")

	reports, err := operation.NewRunner(nil).RunAll(ctx, []operation.Operation{op})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, reports)
	op.AssertNotCalled(t, "Execute", mock.Anything)
}
