package system

import (
	"context"
	"errors"
	"strings"
	"time"

	"golocate/internal/executor"
)

// ErrNotInRepo is returned by GitRoot outside a Git work tree.
var ErrNotInRepo = errors.New("not inside a git repository")

// GitRoot returns the repository top-level directory for dir, if in a Git repo.
func GitRoot(ctx context.Context, ex *executor.Executor, dir string) (string, error) {
	res, err := ex.ExecSync(ctx, executor.Options{
		Command: "git",
		Args:    []string{"-C", dir, "rev-parse", "--show-toplevel"},
		Dir:     dir,
		// Provide a short timeout to avoid hanging
		Timeout: 800 * time.Millisecond,
	})
	if err != nil {
		return "", err
	}
	if res.Err != nil {
		return "", res.Err
	}
	if res.ExitStatus != 0 {
		return "", ErrNotInRepo
	}
	return strings.TrimSpace(res.Stdout), nil
}
