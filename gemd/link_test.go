package gemd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkByUID_Equality(t *testing.T) {
	a := NewLink("id", "abc")
	b := NewLink("id", "abc")
	c := NewLink("auto", "abc")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// Links are comparable map keys.
	m := map[LinkByUID]int{a: 1}
	assert.Equal(t, 1, m[b])
	_, ok := m[c]
	assert.False(t, ok)
}

func TestLinkByUID_String(t *testing.T) {
	assert.Equal(t, "id::a1b2", NewLink("id", "a1b2").String())
}

func TestLinkByUID_IsZero(t *testing.T) {
	assert.True(t, LinkByUID{}.IsZero())
	assert.False(t, NewLink("id", "").IsZero())
	assert.False(t, NewLink("", "x").IsZero())
}

func TestDataObject_Links(t *testing.T) {
	spec := NewProcessSpec("mix").
		WithUID("auto", "s1").
		WithUID("id", "p1")

	links := spec.Links()
	require.Len(t, links, 2)
	// Scope-sorted, so "auto" precedes "id".
	assert.Equal(t, NewLink("auto", "s1"), links[0])
	assert.Equal(t, NewLink("id", "p1"), links[1])
}

func TestPreferredLink(t *testing.T) {
	t.Run("platform scope wins", func(t *testing.T) {
		spec := NewProcessSpec("mix").
			WithUID("auto", "s1").
			WithUID(PlatformScope, "p1")
		l, err := PreferredLink(spec)
		require.NoError(t, err)
		assert.Equal(t, NewLink(PlatformScope, "p1"), l)
	})

	t.Run("falls back to first sorted scope", func(t *testing.T) {
		spec := NewProcessSpec("mix").
			WithUID("zeta", "z1").
			WithUID("alpha", "a1")
		l, err := PreferredLink(spec)
		require.NoError(t, err)
		assert.Equal(t, NewLink("alpha", "a1"), l)
	})

	t.Run("no identity keys", func(t *testing.T) {
		_, err := PreferredLink(NewProcessSpec("mix"))
		assert.ErrorContains(t, err, "no identity keys")
	})

	t.Run("links are their own preference", func(t *testing.T) {
		l, err := PreferredLink(NewLink("auto", "x"))
		require.NoError(t, err)
		assert.Equal(t, NewLink("auto", "x"), l)
	})
}

func TestIndex_Resolve(t *testing.T) {
	tmpl := NewProcessTemplate("heat-treat").WithUID("id", "t1")
	spec := NewProcessSpec("heat").WithUID("auto", "s1").WithUID("id", "p9")
	ix := MakeIndex([]DataObject{tmpl, spec})

	got, ok := ix.Resolve(NewLink("id", "t1"))
	require.True(t, ok)
	assert.Same(t, tmpl, got)

	// Any of an object's links resolves to it.
	got, ok = ix.Resolve(NewLink("auto", "s1"))
	require.True(t, ok)
	assert.Same(t, spec, got)
	got, ok = ix.Resolve(NewLink("id", "p9"))
	require.True(t, ok)
	assert.Same(t, spec, got)

	_, ok = ix.Resolve(NewLink("id", "unknown"))
	assert.False(t, ok)
}

func TestMakeIndex_FirstWinsOnSharedKey(t *testing.T) {
	a := NewProcessSpec("first").WithUID("id", "shared")
	b := NewProcessSpec("second").WithUID("id", "shared")
	ix := MakeIndex([]DataObject{a, b})

	got, ok := ix.Resolve(NewLink("id", "shared"))
	require.True(t, ok)
	assert.Same(t, a, got)
}
