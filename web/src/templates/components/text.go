package components

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/irrigo/dashboard/internal/view"
)

// Label translates an enum value such as a script status. Values without a
// translation are title-cased ("soil-moisture" becomes "Soil Moisture").
func Label(p view.Page, group, value string) string {
	key := group + "." + value
	if s := p.T(key); s != key {
		return s
	}
	return Humanize(p.Loc.Lang(), value)
}

// Humanize title-cases a dash or underscore separated identifier.
func Humanize(lang, value string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(value)
	return cases.Title(language.Make(lang)).String(words)
}

// relMagnitudes builds the localized scale used by RelTime. The format
// strings use %d for the amount and %s for the ago/from-now label.
func relMagnitudes(p view.Page) []humanize.RelTimeMagnitude {
	day := 24 * time.Hour
	return []humanize.RelTimeMagnitude{
		{D: time.Minute, Format: p.T("time.now"), DivBy: time.Second},
		{D: 2 * time.Minute, Format: p.T("time.minute"), DivBy: time.Minute},
		{D: time.Hour, Format: p.T("time.minutes"), DivBy: time.Minute},
		{D: 2 * time.Hour, Format: p.T("time.hour"), DivBy: time.Hour},
		{D: day, Format: p.T("time.hours"), DivBy: time.Hour},
		{D: 2 * day, Format: p.T("time.day"), DivBy: day},
		{D: 30 * day, Format: p.T("time.days"), DivBy: day},
		{D: 365 * day, Format: p.T("time.months"), DivBy: 30 * day},
		{D: math.MaxInt64, Format: p.T("time.years"), DivBy: 365 * day},
	}
}

// RelTimeAt describes t relative to now ("3 hours ago").
func RelTimeAt(p view.Page, t, now time.Time) string {
	return humanize.CustomRelTime(t, now, p.T("time.ago"), p.T("time.from_now"), relMagnitudes(p))
}

// RelTime renders a <time> element with a relative label and the absolute
// timestamp as its title.
func RelTime(p view.Page, t time.Time) cmp.Node {
	return cmp.El("time",
		cmp.Attr("datetime", t.UTC().Format(time.RFC3339)),
		g.Title(t.UTC().Format("2006-01-02 15:04 MST")),
		cmp.Text(RelTimeAt(p, t, time.Now())),
	)
}
