package reconciler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/synaptic-mem/synaptic/internal/model"
)

// Write reconciles target (relative to repoRoot) against entries and
// persists the result atomically (write-to-temp-then-rename within the
// same directory), per §4.6 step 6. An advisory file lock on
// "<target>.lock" is held for the duration of the read-modify-write so
// that, per §5, exactly one reconciler instance is ever live for a given
// target path even if the embedding process reconciles targets
// concurrently.
func Write(repoRoot, target string, entries []model.EnrichedMemory, entryCap *int) (Result, error) {
	absPath := filepath.Join(repoRoot, target)
	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating directory for %s: %w", target, err)
	}

	lock := flock.New(absPath + ".lock")
	if err := lock.Lock(); err != nil {
		return Result{}, fmt.Errorf("locking %s: %w", target, err)
	}
	defer lock.Unlock() //nolint:errcheck

	existing := ""
	if b, err := os.ReadFile(absPath); err == nil {
		existing = string(b)
	} else if !os.IsNotExist(err) {
		return Result{}, fmt.Errorf("reading %s: %w", target, err)
	}

	result := Merge(target, existing, entries, entryCap)
	if !result.Created && result.NewContent == existing {
		return result, nil
	}

	if err := atomicWrite(absPath, []byte(result.NewContent)); err != nil {
		return result, fmt.Errorf("writing %s: %w", target, err)
	}
	return result, nil
}

// Preview reconciles target against entries without touching the
// filesystem, for dry-run invocations. The file, if present, is read
// read-only.
func Preview(repoRoot, target string, entries []model.EnrichedMemory, entryCap *int) (Result, error) {
	absPath := filepath.Join(repoRoot, target)
	existing := ""
	if b, err := os.ReadFile(absPath); err == nil {
		existing = string(b)
	} else if !os.IsNotExist(err) {
		return Result{}, fmt.Errorf("reading %s: %w", target, err)
	}
	return Merge(target, existing, entries, entryCap), nil
}

// atomicWrite writes data to path by writing a temp file in the same
// directory and renaming it into place, so a concurrently cancelled
// process never observes a partially written target.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file into place: %w", err)
	}
	return nil
}
