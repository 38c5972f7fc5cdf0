package profile

// State is the outcome class of a resolution.
type State int

const (
	// StateNoSelection means the URL carried no tab parameter.
	StateNoSelection State = iota
	// StateValidSelection means the URL selected a tab the viewer may see.
	StateValidSelection
	// StateInvalidSelection means the URL selected an unknown tab or one the
	// viewer is not allowed to see. The page renders the not-found view.
	StateInvalidSelection
)

func (s State) String() string {
	switch s {
	case StateNoSelection:
		return "no-selection"
	case StateValidSelection:
		return "valid-selection"
	case StateInvalidSelection:
		return "invalid-selection"
	}
	return "unknown"
}

// Input is everything the resolver looks at.
type Input struct {
	ViewerID  string
	SubjectID string
	RawTab    string
	// HasTab distinguishes "?tab=" (present, empty) from no parameter at all.
	HasTab bool
}

// Resolution is the view state of the profile page for one request.
type Resolution struct {
	State   State
	IsOwner bool
	// Tabs is the valid tab set for IsOwner. Empty for invalid selections.
	Tabs []Tab
	// Active is the tab to render. Empty for invalid selections.
	Active Tab
}

// Fallback reports whether the not-found view replaces the tab view.
func (r Resolution) Fallback() bool {
	return r.State == StateInvalidSelection
}

// Resolve computes the view state for in.
func Resolve(in Input) Resolution {
	owner := IsOwner(in.ViewerID, in.SubjectID)

	if !in.HasTab {
		return Resolution{
			State:   StateNoSelection,
			IsOwner: owner,
			Tabs:    ValidTabs(owner),
			Active:  DefaultTab,
		}
	}

	tabs := ValidTabs(owner)
	tab, ok := ParseTab(in.RawTab)
	// Notifications are gated on ownership independently of membership.
	if !ok || !contains(tabs, tab) || (tab == TabNotifications && !owner) {
		return Resolution{State: StateInvalidSelection, IsOwner: owner}
	}

	return Resolution{
		State:   StateValidSelection,
		IsOwner: owner,
		Tabs:    tabs,
		Active:  tab,
	}
}
