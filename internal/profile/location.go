package profile

import (
	"net/url"
)

// Location is the address of a profile page as seen in the browser.
type Location struct {
	// Prefix is the optional locale segment, e.g. "/es".
	Prefix    string
	SubjectID string
	RawTab    string
	HasTab    bool
}

// Path returns the profile path without a query string.
func (l Location) Path() string {
	return l.Prefix + "/profile/" + url.PathEscape(l.SubjectID)
}

// URL reproduces the current address.
func (l Location) URL() string {
	if !l.HasTab {
		return l.Path()
	}
	return l.Path() + "?" + url.Values{QueryParam: {l.RawTab}}.Encode()
}

// Input turns the location into resolver input for viewerID.
func (l Location) Input(viewerID string) Input {
	return Input{
		ViewerID:  viewerID,
		SubjectID: l.SubjectID,
		RawTab:    l.RawTab,
		HasTab:    l.HasTab,
	}
}

// Active returns the tab the address points at, ignoring authorization.
func (l Location) Active() Tab {
	if !l.HasTab {
		return DefaultTab
	}
	return Tab(l.RawTab)
}

// Select returns the address the browser navigates to when the user picks
// tab. Picking the already active tab leaves the address unchanged.
func (l Location) Select(tab Tab) string {
	if tab == l.Active() {
		return l.URL()
	}
	return l.Path() + "?" + url.Values{QueryParam: {string(tab)}}.Encode()
}
