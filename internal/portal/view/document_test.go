package view

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenticlearn/educator-portal/pkg/ui"
)

func TestDocument_FlushOnlyChangedRegions(t *testing.T) {
	ctx := context.Background()
	doc := NewDocument()
	require.NoError(t, doc.Render(ctx, "a", ui.Text("one")))
	require.NoError(t, doc.Render(ctx, "b", ui.Text("two")))

	patches := doc.Flush()
	require.Len(t, patches, 2)

	require.NoError(t, doc.Render(ctx, "a", ui.Text("one")))
	assert.Empty(t, doc.Flush())

	require.NoError(t, doc.Render(ctx, "b", ui.Text("three")))
	patches = doc.Flush()
	require.Len(t, patches, 1)
	assert.Equal(t, Patch{Region: "b", HTML: "three"}, patches[0])
}

func TestDocument_NestedSlots(t *testing.T) {
	ctx := context.Background()
	doc := NewDocument()
	require.NoError(t, doc.Render(ctx, "outer", ui.With(ui.Wrap("<section>", "</section>"), ui.Text("title"), Slot("inner", ""))))
	require.NoError(t, doc.Render(ctx, "inner", ui.Text("body")))

	assert.Equal(t, `<section>title<div id="inner">body</div></section>`, doc.HTML("outer"))

	patches := doc.Flush()
	require.Len(t, patches, 1, "inner is covered by outer")
	assert.Equal(t, "outer", patches[0].Region)

	require.NoError(t, doc.Render(ctx, "inner", ui.Text("edited")))
	patches = doc.Flush()
	require.Len(t, patches, 1)
	assert.Equal(t, Patch{Region: "inner", HTML: "edited"}, patches[0])
}

func TestDocument_PageMarksRegionsDelivered(t *testing.T) {
	ctx := context.Background()
	doc := NewDocument()
	require.NoError(t, doc.Render(ctx, RegionHeader, ui.Text("hdr")))
	require.NoError(t, doc.Render(ctx, "profile-content", ui.Text("main")))

	html, err := doc.Page(ctx, Layout("App", "Profile", "profile", Slot("profile-content", "")))
	require.NoError(t, err)
	assert.Contains(t, html, `<div id="app-header" class="header">hdr</div>`)
	assert.Contains(t, html, `<div id="profile-content">main</div>`)
	assert.Contains(t, html, "htmx.org")
	assert.Empty(t, doc.Flush())
}

func TestDocument_Dispatch(t *testing.T) {
	doc := NewDocument()
	var got Event
	doc.On("ping", func(_ context.Context, ev Event) error {
		got = ev
		return nil
	})

	vals := url.Values{"x": {"1"}}
	require.NoError(t, doc.Dispatch(context.Background(), Event{Action: "ping", Values: vals}))
	assert.Equal(t, "1", got.Values.Get("x"))
	assert.True(t, doc.Handles("ping"))

	err := doc.Dispatch(context.Background(), Event{Action: "missing"})
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestOOB(t *testing.T) {
	out := OOB([]Patch{{Region: "notifications", HTML: "<p>x</p>"}})
	assert.Equal(t, `<div id="notifications" hx-swap-oob="innerHTML"><p>x</p></div>`, out)
}

func TestDocument_OffUnbindsActions(t *testing.T) {
	doc := NewDocument()
	noop := func(context.Context, Event) error { return nil }
	doc.On("save", noop)
	doc.On("cancel", noop)
	doc.On("refresh", noop)

	doc.Off("save", "cancel", "never-bound")
	assert.False(t, doc.Handles("save"))
	assert.False(t, doc.Handles("cancel"))
	assert.True(t, doc.Handles("refresh"))

	err := doc.Dispatch(context.Background(), Event{Action: "save"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestLayout_MarksActiveNavLink(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Layout("App <1>", "Analytics", "analytics", ui.Text("body")).Render(context.Background(), &b))
	html := b.String()
	assert.Contains(t, html, "<title>Analytics · App &lt;1&gt;</title>")
	assert.Contains(t, html, `<a href="/portal/analytics" class="nav-link active">`)
	assert.Contains(t, html, `<a href="/portal/profile" class="nav-link">`)
	assert.Contains(t, html, `<main id="page-analytics" class="page-content active">body</main>`)
}

func TestDocument_InvalidateRedeliversUnchangedRegion(t *testing.T) {
	ctx := context.Background()
	doc := NewDocument()
	require.NoError(t, doc.Render(ctx, "form", ui.Text("empty form")))
	require.Len(t, doc.Flush(), 1)

	require.NoError(t, doc.Render(ctx, "form", ui.Text("empty form")))
	assert.Empty(t, doc.Flush())

	doc.Invalidate("form")
	doc.Invalidate("never-rendered")
	assert.Equal(t, []Patch{{Region: "form", HTML: "empty form"}}, doc.Flush())
	assert.Empty(t, doc.Flush())
}
