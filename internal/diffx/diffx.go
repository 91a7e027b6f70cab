// Package diffx parses unified git diffs into structured change sets.
package diffx

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// Change describes a single file in a diff.
type Change struct {
	OldPath   string
	NewPath   string
	IsNew     bool
	IsDeleted bool
	IsRenamed bool
	IsBinary  bool
	Added     int
	Deleted   int
}

// Path returns the display path for the change.
func (c *Change) Path() string {
	if c.IsRenamed {
		return fmt.Sprintf("%s -> %s", c.OldPath, c.NewPath)
	}
	if c.IsDeleted {
		return c.OldPath
	}
	if c.NewPath != "" {
		return c.NewPath
	}
	return c.OldPath
}

// ChangeSet holds every parsed change in one diff.
type ChangeSet struct {
	Changes []*Change
}

// Stats returns aggregate counts across the set.
func (cs *ChangeSet) Stats() (files, added, deleted int) {
	files = len(cs.Changes)
	for _, c := range cs.Changes {
		added += c.Added
		deleted += c.Deleted
	}
	return
}

// Parse reads a unified diff string and returns a ChangeSet.
func Parse(raw string) (*ChangeSet, error) {
	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	cs := &ChangeSet{}
	for _, f := range parsed {
		ch := &Change{
			OldPath:   f.OldName,
			NewPath:   f.NewName,
			IsNew:     f.IsNew,
			IsDeleted: f.IsDelete,
			IsRenamed: f.IsRename,
			IsBinary:  f.IsBinary,
		}

		for _, frag := range f.TextFragments {
			for _, line := range frag.Lines {
				switch line.Op {
				case gitdiff.OpAdd:
					ch.Added++
				case gitdiff.OpDelete:
					ch.Deleted++
				}
			}
		}

		cs.Changes = append(cs.Changes, ch)
	}

	return cs, nil
}
