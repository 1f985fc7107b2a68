package snippets

import (
	"github.com/PabloPavan/sniply_projects/internal/projects"
	"github.com/PabloPavan/sniply_projects/internal/visibility"
)

// Principal is the caller as seen by one project. Member is resolved per
// project before any policy function runs.
type Principal struct {
	UserID   string
	Admin    bool
	External bool
	Member   bool
}

func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

// EffectiveVisibility caps a snippet's level at its project's level.
func EffectiveVisibility(s *Snippet, project *projects.Project) visibility.Level {
	return visibility.Min(s.Visibility, project.Visibility)
}

// VisibleFloor is the lowest effective level p may see in a project.
// Members and admins see everything; signed-in users who are not external
// see internal and public; everyone else sees public only.
func VisibleFloor(p Principal) visibility.Level {
	switch {
	case p.Admin || p.Member:
		return visibility.Private
	case p.Authenticated() && !p.External:
		return visibility.Internal
	default:
		return visibility.Public
	}
}

func CanView(p Principal, project *projects.Project, s *Snippet) bool {
	return EffectiveVisibility(s, project) >= VisibleFloor(p)
}

// FilterVisible keeps the snippets p may see, preserving order.
func FilterVisible(list []*Snippet, p Principal, project *projects.Project) []*Snippet {
	out := make([]*Snippet, 0, len(list))
	for _, s := range list {
		if CanView(p, project, s) {
			out = append(out, s)
		}
	}
	return out
}

func CanCreate(p Principal) bool {
	return p.Authenticated() && (p.Admin || p.Member)
}

func CanModify(p Principal, s *Snippet) bool {
	if !p.Authenticated() {
		return false
	}
	return p.Admin || s.AuthorID == p.UserID
}
