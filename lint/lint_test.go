package lint_test

import (
	"cmp"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/WinPooh32/either"
	"github.com/WinPooh32/either/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleDir = "../internal/_testdata/lint"
	brokenDir = "../internal/_testdata/broken"
)

func mustLoad(t *testing.T, dir string, opts ...lint.Option) *lint.Checker {
	t.Helper()

	checker, err := lint.NewChecker(opts...)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = checker.Load(ctx, dir, "./...")
	require.NoError(t, err)

	return checker
}

func collect(t *testing.T, checker *lint.Checker, jobs int) []lint.Finding {
	t.Helper()

	var findings []lint.Finding

	for res := range checker.Check(context.Background(), jobs) {
		finding, err := either.ToResult(res)
		require.NoError(t, err)

		findings = append(findings, finding)
	}

	slices.SortFunc(findings, lint.Compare)

	return findings
}

type call struct {
	Func   string
	Method string
}

func calls(findings []lint.Finding) []call {
	out := make([]call, 0, len(findings))

	for _, f := range findings {
		out = append(out, call{f.Func, f.Method})
	}

	slices.SortFunc(out, func(a, b call) int {
		return cmp.Or(cmp.Compare(a.Func, b.Func), cmp.Compare(a.Method, b.Method))
	})

	return out
}

func TestChecker_Check(t *testing.T) {
	t.Parallel()

	want := []call{
		{"TestUsage", "MustRight"},
		{"closure", "MustRight"},
		{"fallthroughCase", "MustRight"},
		{"gotoSkip", "MustRight"},
		{"ignoredEarlyExit", "MustRight"},
		{"otherReceiver", "MustRight"},
		{"shadowed", "MustRight"},
		{"unguarded", "MustRight"},
		{"unguardedLeft", "MustLeft"},
		{"viaPointer", "MustRight"},
		{"wrongGuard", "MustRight"},
	}

	tests := []struct {
		name string
		jobs int
	}{
		{"single job", 1},
		{"many jobs", 8},
		{"cpu count", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			checker := mustLoad(t, sampleDir, lint.WithTargets("sample/either"))

			assert.Equal(t, want, calls(collect(t, checker, tt.jobs)))
		})
	}
}

func TestChecker_Check_Finding(t *testing.T) {
	t.Parallel()

	checker := mustLoad(t, sampleDir, lint.WithTargets("sample/either"))

	findings := collect(t, checker, 1)

	idx := slices.IndexFunc(findings, func(f lint.Finding) bool { return f.Func == "otherReceiver" })
	require.NotEqual(t, -1, idx)

	f := findings[idx]
	assert.Equal(t, "b", f.Receiver)
	assert.Equal(t, "usage.go", filepath.Base(f.Pos.Filename))
	assert.Positive(t, f.Pos.Line)
	assert.Equal(t, "b.MustRight() called without a b.IsRight() check", f.Message)
	assert.Contains(t, f.String(), "usage.go:")
}

func TestChecker_Check_OtherTarget(t *testing.T) {
	t.Parallel()

	checker := mustLoad(t, sampleDir)

	assert.Empty(t, collect(t, checker, 2))
}

func TestChecker_Check_Cancelled(t *testing.T) {
	t.Parallel()

	checker := mustLoad(t, sampleDir, lint.WithTargets("sample/either"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var errs []error

	for res := range checker.Check(ctx, 1) {
		_, err := either.ToResult(res)
		require.Error(t, err)

		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
}

func TestChecker_Load_Errors(t *testing.T) {
	t.Parallel()

	checker, err := lint.NewChecker()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = checker.Load(ctx, brokenDir, "./...")
	require.Error(t, err)

	var perr *lint.PackageError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "broken", perr.PkgPath)
	assert.NotEmpty(t, perr.TypeErrors)
	assert.Contains(t, err.Error(), "package broken:")

	assert.Empty(t, collect(t, checker, 1))
}

func TestNewChecker_Errors(t *testing.T) {
	t.Parallel()

	_, err := lint.NewChecker(lint.WithTargets())
	require.Error(t, err)

	_, err = lint.NewChecker(lint.WithLogger(nil))
	require.Error(t, err)
}
