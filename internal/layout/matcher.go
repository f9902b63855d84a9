package layout

// Matcher is a predicate over a window's identity attributes. A present
// field must equal the candidate's corresponding field exactly; an
// absent field is a wildcard. If the matcher specifies a field the
// candidate lacks entirely, the match fails. The empty Matcher matches
// every candidate.
type Matcher struct {
	AppID    *string `json:"app_id,omitempty"`
	Class    *string `json:"class,omitempty"`
	Instance *string `json:"instance,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// Matches reports whether n's identity satisfies every field the
// matcher specifies.
func (m Matcher) Matches(n *Node) bool {
	return matchField(m.AppID, n.AppID) &&
		matchField(m.Class, n.Class()) &&
		matchField(m.Instance, n.Instance()) &&
		matchField(m.Name, n.Name)
}

func matchField(want, got *string) bool {
	if want == nil {
		return true
	}
	if got == nil {
		return false
	}
	return *want == *got
}

// DeriveMatcher builds the matcher recorded at capture time for a leaf
// view. Titles are deliberately excluded: they are too volatile to
// identify a window across sessions.
func DeriveMatcher(n *Node) Matcher {
	return Matcher{
		AppID:    n.AppID,
		Class:    n.Class(),
		Instance: n.Instance(),
	}
}
