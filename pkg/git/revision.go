// Package git stamps runs with the git revision of the suite checkout.
package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Unknown is reported when dir is not inside a git repository.
const Unknown = "unknown"

// Info is the checked out revision.
type Info struct {
	Hash   string // short hash
	Branch string // empty for detached head
	Dirty  bool
}

// String formats Info as "abc1234 (main)", "abc1234 (main, dirty)" or "abc1234 (detached)".
func (i Info) String() string {
	ref := i.Branch
	if ref == "" {
		ref = "detached"
	}
	if i.Dirty {
		ref += ", dirty"
	}
	return fmt.Sprintf("%s (%s)", i.Hash, ref)
}

// Read returns the revision of the repository containing dir.
func Read(dir string) (Info, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Info{}, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Info{}, errors.New("repository has no commits")
		}
		return Info{}, fmt.Errorf("get HEAD: %w", err)
	}

	info := Info{Hash: head.Hash().String()[:7]}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	wt, err := repo.Worktree()
	if err != nil {
		return info, nil //nolint:nilerr // bare repository, nothing can be dirty
	}
	status, err := wt.Status()
	if err != nil {
		return Info{}, fmt.Errorf("worktree status: %w", err)
	}
	info.Dirty = !status.IsClean()
	return info, nil
}

// Revision returns Read(dir) formatted, or Unknown on any error.
func Revision(dir string) string {
	info, err := Read(dir)
	if err != nil {
		return Unknown
	}
	return info.String()
}
