// Package fingerprint computes content fingerprints for cache keys
// (§4.4): a mapping from the invoked command and its matched source
// files to a stable digest of their contents.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
	"go.trai.ch/zerr"
)

// Hasher implements ports.Fingerprinter by globbing inputs under a
// workspace root and sha256-hashing each matched file's contents.
type Hasher struct{}

var _ ports.Fingerprinter = (*Hasher)(nil)

// NewHasher creates a glob-and-sha256 Fingerprinter.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint expands globs under workspaceRoot and returns a mapping of
// { "cmd": cmd, "globs": joined-patterns, "<path>": sha256_hex(contents) }.
// A zero-file match is domain.ErrNoInputs, per §4.4.
func (h *Hasher) Fingerprint(workspaceRoot, cmd string, globs []string) (domain.Fingerprint, error) {
	matches, err := expand(workspaceRoot, globs)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, domain.ErrNoInputs
	}

	fp := domain.Fingerprint{
		"cmd":   cmd,
		"globs": strings.Join(globs, ","),
	}
	for _, path := range matches {
		digest, err := hashFile(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to hash input file"), "path", path)
		}
		fp[path] = digest
	}
	return fp, nil
}

func expand(workspaceRoot string, globs []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range globs {
		matches, err := filepath.Glob(filepath.Join(workspaceRoot, pattern))
		if err != nil {
			return nil, zerr.With(domain.ErrBadWorkspaceGlob, "pattern", pattern)
		}
		for _, m := range matches {
			info, statErr := os.Stat(m)
			if statErr != nil || info.IsDir() {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path built from trusted glob expansion
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CanonicalKey folds a fingerprint into a single stable digest over its
// sorted keys and values. The cache store does not call it: it stores
// the fingerprint map itself and compares maps with Fingerprint.Equal.
func CanonicalKey(fp domain.Fingerprint) string {
	keys := make([]string, 0, len(fp))
	for k := range fp {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	digest := xxhash.New()
	for _, k := range keys {
		_, _ = io.WriteString(digest, k)
		_, _ = io.WriteString(digest, "\x00")
		_, _ = io.WriteString(digest, fp[k])
		_, _ = io.WriteString(digest, "\x00")
	}
	return hex.EncodeToString(digest.Sum(nil))
}
