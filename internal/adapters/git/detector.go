// Package git resolves the repository context sessions are recorded
// against, using go-git.
package git

import (
	"os"

	gogit "github.com/go-git/go-git/v5"

	"github.com/dkrenn/tempus/internal/ports"
)

// Detector implements ports.ContextDetector using go-git.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

var _ ports.ContextDetector = (*Detector)(nil)

// Detect opens the repository containing dir (walking up the tree) and
// returns its branch and short commit hash. The second return value is
// false when dir is not inside a repository or HEAD is unreadable.
func (d *Detector) Detect(dir string) (ports.RepoContext, bool) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return ports.RepoContext{}, false
		}
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ports.RepoContext{}, false
	}
	head, err := repo.Head()
	if err != nil {
		return ports.RepoContext{}, false
	}

	branch := head.Name().Short()
	if branch == "HEAD" {
		branch = "detached"
	}
	return ports.RepoContext{
		Branch: branch,
		Commit: shortHash(head.Hash().String()),
	}, true
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
