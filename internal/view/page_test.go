package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irrigo/dashboard/internal/view"
)

func TestPageLinks(t *testing.T) {
	t.Run("links keep the locale prefix", func(t *testing.T) {
		p := view.Page{Prefix: "/es"}
		assert.Equal(t, "/es/scripts", p.Link("/scripts"))
		assert.Equal(t, "/es", p.Link("/"))
	})

	t.Run("links without a prefix are unchanged", func(t *testing.T) {
		p := view.Page{}
		assert.Equal(t, "/scripts", p.Link("/scripts"))
		assert.Equal(t, "/", p.Link("/"))
	})

	t.Run("language links swap the prefix", func(t *testing.T) {
		p := view.Page{Prefix: "/es", Path: "/profile/u1?tab=activity"}
		assert.Equal(t, "/pt/profile/u1?tab=activity", p.LangLink("pt"))

		root := view.Page{Path: "/"}
		assert.Equal(t, "/es", root.LangLink("es"))

		query := view.Page{Path: "/?x=1"}
		assert.Equal(t, "/en?x=1", query.LangLink("en"))
	})

	t.Run("signed in", func(t *testing.T) {
		assert.False(t, view.Page{}.SignedIn())
		assert.True(t, view.Page{Viewer: view.Viewer{ID: "u1"}}.SignedIn())
	})
}
