package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
)

const (
	// OutputFilePermissions defines the permissions for created output files
	OutputFilePermissions = 0644
	// LockTimeout defines the maximum time to wait for the output lock
	LockTimeout = 5 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// CIOutputRepository defines the sink for CI output lines.

type CIOutputRepository interface {
	WriteOutput(ctx context.Context, key, value string) error
}

// githubOutputRepository appends key=value lines to the file GitHub Actions
// exposes through GITHUB_OUTPUT.
type githubOutputRepository struct {
	fs   afero.Fs
	path string
}

// NewGithubOutputRepository creates a CIOutputRepository writing to path.
func NewGithubOutputRepository(fs afero.Fs, path string) CIOutputRepository {
	return &githubOutputRepository{fs: fs, path: path}
}

// WriteOutput appends a single key=value line. The file is appended, not
// truncated, so outputs written by earlier workflow steps survive. An
// advisory lock keeps parallel steps from interleaving lines.
func (r *githubOutputRepository) WriteOutput(ctx context.Context, key, value string) error {
	if err := validateOutputPair(key, value); err != nil {
		return err
	}
	lock := flock.New(r.path + ".lock")
	if err := r.acquireLock(ctx, lock); err != nil {
		return fmt.Errorf("failed to lock output file: %w", err)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock output file: %v\n", unlockErr)
		}
	}()
	f, err := r.fs.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, OutputFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", r.path, err)
	}
	if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// acquireLock retries TryLock with constant backoff until LockTimeout.
func (r *githubOutputRepository) acquireLock(ctx context.Context, lock *flock.Flock) error {
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	return retry.Do(lockCtx, retry.NewConstant(LockRetryInterval), func(_ context.Context) error {
		locked, err := lock.TryLock()
		if err != nil {
			return err
		}
		if !locked {
			return retry.RetryableError(fmt.Errorf("output file is locked by another process"))
		}
		return nil
	})
}

func validateOutputPair(key, value string) error {
	if key == "" {
		return fmt.Errorf("output key cannot be empty")
	}
	if strings.ContainsAny(key, "=\n") {
		return fmt.Errorf("output key %q contains invalid characters", key)
	}
	if strings.Contains(value, "\n") {
		return fmt.Errorf("output value for %s cannot span multiple lines", key)
	}
	return nil
}
