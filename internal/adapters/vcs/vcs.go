// Package vcs implements ports.VcsProbe by shelling out to git. Each
// method is stateless: it spawns one git process, captures its output,
// and returns (mirroring §4.2's call-scoped probe contract).
package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
	"go.trai.ch/zerr"
)

// Probe implements ports.VcsProbe against a git working tree.
type Probe struct {
	root   string
	logger ports.Logger
}

var _ ports.VcsProbe = (*Probe)(nil)

// NewProbe creates a git-backed VcsProbe rooted at root (the directory
// git commands are run from).
func NewProbe(root string, logger ports.Logger) *Probe {
	return &Probe{root: root, logger: logger}
}

// RevisionExists reports whether rev resolves to a known commit. Any
// git error (including "not found") is treated as non-existence; the
// affected resolver turns a missing revision into domain.ErrBadRevision.
func (p *Probe) RevisionExists(ctx context.Context, rev string) bool {
	_, _, err := p.run(ctx, "cat-file", "-e", rev+"^{commit}")
	return err == nil
}

// DiffNames lists paths that differ between rev1 and rev2. An empty
// rev2 diffs rev1 against the working tree. pathPrefix, if non-empty,
// restricts the diff to that subtree via git's pathspec syntax.
func (p *Probe) DiffNames(ctx context.Context, rev1, rev2, pathPrefix string) ([]string, error) {
	args := []string{"diff", "--name-only", rev1}
	if rev2 != "" {
		args = append(args, rev2)
	}
	if pathPrefix != "" {
		args = append(args, "--", pathPrefix)
	}

	stdout, _, err := p.run(ctx, args...)
	if err != nil {
		return nil, zerr.With(zerr.With(domain.ErrBadRevision, "rev1", rev1), "rev2", rev2)
	}
	return splitNonEmptyLines(stdout), nil
}

// TagList lists every tag in the repository. If fetch is true, it first
// fetches tags from the default remote.
func (p *Probe) TagList(ctx context.Context, fetch bool) ([]string, error) {
	if fetch {
		if _, _, err := p.run(ctx, "fetch", "--tags"); err != nil {
			return nil, zerr.Wrap(err, "failed to fetch tags")
		}
	}

	stdout, _, err := p.run(ctx, "tag", "--list")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list tags")
	}
	return splitNonEmptyLines(stdout), nil
}

// CreateTag creates a lightweight tag at HEAD.
func (p *Probe) CreateTag(ctx context.Context, name string) error {
	if _, _, err := p.run(ctx, "tag", name); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create tag"), "name", name)
	}
	return nil
}

// Commit stages paths and commits them with message.
func (p *Probe) Commit(ctx context.Context, paths []string, message string) error {
	addArgs := append([]string{"add"}, paths...)
	if _, _, err := p.run(ctx, addArgs...); err != nil {
		return zerr.Wrap(err, "failed to stage paths")
	}
	if _, _, err := p.run(ctx, "commit", "-m", message); err != nil {
		return zerr.Wrap(err, "failed to commit")
	}
	return nil
}

// PushIncludingTags pushes the current branch and any tags to its
// upstream remote.
func (p *Probe) PushIncludingTags(ctx context.Context) error {
	if _, _, err := p.run(ctx, "push", "--follow-tags"); err != nil {
		return zerr.Wrap(err, "failed to push")
	}
	return nil
}

func (p *Probe) run(ctx context.Context, args ...string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, "git", args...) //nolint:gosec // fixed argv, no shell interpolation
	cmd.Dir = p.root

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if runErr := cmd.Run(); runErr != nil {
		if p.logger != nil {
			p.logger.Error(zerr.With(zerr.Wrap(runErr, "git command failed"), "args", strings.Join(args, " ")))
		}
		return outBuf.String(), errBuf.String(), runErr
	}
	return outBuf.String(), errBuf.String(), nil
}

func splitNonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
