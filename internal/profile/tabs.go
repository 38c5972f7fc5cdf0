// Package profile decides which tab of a user's profile page is shown.
//
// Everything here is a pure function of three inputs: the viewer's own id
// (possibly empty), the id of the profile being viewed and the raw "tab"
// query parameter. The HTTP layer recomputes the resolution on every request.
package profile

// Tab names a content panel of the profile page.
type Tab string

const (
	TabProfile       Tab = "profile"
	TabActivity      Tab = "activity"
	TabNotifications Tab = "notifications"
	TabTopScripts    Tab = "top-scripts"
)

// QueryParam is the URL query parameter that selects a tab.
const QueryParam = "tab"

// DefaultTab is active when the URL selects no tab.
const DefaultTab = TabProfile

// ParseTab maps a raw query value onto the closed set of tabs.
func ParseTab(raw string) (Tab, bool) {
	switch Tab(raw) {
	case TabProfile, TabActivity, TabNotifications, TabTopScripts:
		return Tab(raw), true
	}
	return "", false
}

// IsOwner reports whether the viewer is looking at their own profile.
// An absent viewer id never owns anything.
func IsOwner(viewerID, subjectID string) bool {
	return viewerID != "" && viewerID == subjectID
}

// ValidTabs returns the selectable tabs in display order. Notifications are
// only offered to the profile's owner.
func ValidTabs(isOwner bool) []Tab {
	if isOwner {
		return []Tab{TabProfile, TabActivity, TabNotifications, TabTopScripts}
	}
	return []Tab{TabProfile, TabActivity, TabTopScripts}
}

func contains(tabs []Tab, t Tab) bool {
	for _, v := range tabs {
		if v == t {
			return true
		}
	}
	return false
}
