// Package cache implements ports.CacheStore as a pair of JSON files per
// (workspace, target): checksums.json holding the stored fingerprint,
// output.json holding the stored command results (§4.4).
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.CacheStore using the on-disk .caches layout.
type Store struct {
	logger ports.Logger
}

var _ ports.CacheStore = (*Store)(nil)

// NewStore creates a file-per-target CacheStore.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Read returns the cached results only if the stored fingerprint is
// byte-for-byte identical to fp; any IO or parse error, or any key/value
// mismatch, is a miss, never a hard failure (§4.4).
func (s *Store) Read(workspaceRoot, target string, fp domain.Fingerprint) ([]domain.CommandResult, bool, error) {
	stored, err := readFingerprint(domain.ChecksumsPath(workspaceRoot, target))
	if err != nil {
		return nil, false, nil
	}
	if !stored.Equal(fp) {
		return nil, false, nil
	}

	results, err := readResults(domain.OutputPath(workspaceRoot, target))
	if err != nil {
		return nil, false, nil
	}
	return results, true, nil
}

// Write persists fp and results under the target's cache directory. A
// write attempted against a command with no inputs is not expected to
// reach here (callers treat ErrNoInputs as a miss before writing), but
// if it does, the store invalidates rather than leaving a partial file.
func (s *Store) Write(workspaceRoot, target string, entry domain.CacheEntry) error {
	dir := domain.CacheDir(workspaceRoot, target)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		if invErr := s.Invalidate(workspaceRoot, target); invErr != nil {
			return invErr
		}
		return zerr.Wrap(err, "failed to create cache directory")
	}

	if err := writeJSON(domain.ChecksumsPath(workspaceRoot, target), entry.Fingerprint); err != nil {
		if invErr := s.Invalidate(workspaceRoot, target); invErr != nil {
			return invErr
		}
		return zerr.Wrap(err, "failed to write checksums")
	}
	if err := writeJSON(domain.OutputPath(workspaceRoot, target), entry.Results); err != nil {
		if invErr := s.Invalidate(workspaceRoot, target); invErr != nil {
			return invErr
		}
		return zerr.Wrap(err, "failed to write output")
	}
	return nil
}

// Invalidate best-effort removes both cache files. A missing file is
// not an error; any other IO error is fatal (§4.4).
func (s *Store) Invalidate(workspaceRoot, target string) error {
	for _, path := range []string{domain.ChecksumsPath(workspaceRoot, target), domain.OutputPath(workspaceRoot, target)} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidationFailed.Error()), "path", path)
		}
	}
	return nil
}

func readFingerprint(path string) (domain.Fingerprint, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path constructed from trusted layout helpers
	if err != nil {
		return nil, err
	}
	var fp domain.Fingerprint
	if err := json.Unmarshal(data, &fp); err != nil {
		return nil, err
	}
	return fp, nil
}

func readResults(path string) ([]domain.CommandResult, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path constructed from trusted layout helpers
	if err != nil {
		return nil, err
	}
	var results []domain.CommandResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, domain.FilePerm) //nolint:gosec // path constructed from trusted layout helpers
}
