package portal

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	"github.com/agenticlearn/educator-portal/internal/portal/profile"
	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/apiclient"
	"github.com/agenticlearn/educator-portal/pkg/cache"
	"github.com/agenticlearn/educator-portal/pkg/ui"
)

func testDeps(t *testing.T, status int, body string) Deps {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return Deps{
		AppName: "AgenticLearn",
		API:     apiclient.New(ts.URL),
		Cache:   cache.NewAccessor[entity.Profile](cache.NewMemoryStore(), nil),
	}
}

const profileBody = `{"success":true,"data":{"name":"Dr. Sarah Johnson","role":"Senior Educator"}}`

func TestManagerEnsure(t *testing.T) {
	m := NewManager(testDeps(t, http.StatusOK, profileBody))

	s, created := m.Ensure("")
	require.True(t, created)
	require.NotEmpty(t, s.ID)

	again, created := m.Ensure(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := m.Ensure("forged-id")
	assert.True(t, created)
	assert.NotEqual(t, "forged-id", other.ID)
	assert.Equal(t, 2, m.Len())
}

func TestManagerSweep(t *testing.T) {
	m := NewManager(testDeps(t, http.StatusOK, profileBody))
	s, _ := m.Ensure("")
	m.Ensure("")

	assert.Equal(t, 0, m.Sweep(time.Now(), time.Hour))
	assert.Equal(t, 2, m.Sweep(time.Now().Add(2*time.Hour), time.Hour))
	_, ok := m.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestPageRendersHeaderFromProfile(t *testing.T) {
	s := NewSession("s1", testDeps(t, http.StatusOK, profileBody))

	html, err := s.Page(context.Background(), "Profile", "profile", profile.RegionContainer, s.Profile.Initialize)
	require.NoError(t, err)
	assert.Contains(t, html, "<title>")
	assert.Contains(t, html, "👤 Dr. Sarah Johnson")
	assert.Equal(t, "Dr. Sarah Johnson", s.Shell.CurrentUser()["name"])

	// everything on the page is already delivered
	patches, err := s.Act(context.Background(), func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Empty(t, patches)
}

func TestPageShowsInitializationFailure(t *testing.T) {
	s := NewSession("s1", testDeps(t, http.StatusInternalServerError, `{"message":"database offline"}`))

	html, err := s.Page(context.Background(), "Profile", "profile", profile.RegionContainer, s.Profile.Initialize)
	require.Error(t, err)
	assert.Contains(t, html, "Profile initialization failed:")
	assert.Contains(t, html, "database offline")
	assert.Equal(t, 1, strings.Count(html, "notification-error"))
	assert.Nil(t, s.Profile.Profile())
}

func TestActDeliversNotificationsOnce(t *testing.T) {
	s := NewSession("s1", testDeps(t, http.StatusOK, profileBody))
	ctx := context.Background()
	_, err := s.Page(ctx, "Profile", "profile", profile.RegionContainer, s.Profile.Initialize)
	require.NoError(t, err)

	patches, err := s.Act(ctx, func(ctx context.Context) error {
		return s.Doc.Dispatch(ctx, view.Event{Action: profile.ActionShowPrivacy})
	})
	require.NoError(t, err)
	require.Len(t, patches, 1)
	assert.Equal(t, view.RegionNotifications, patches[0].Region)
	assert.Contains(t, patches[0].HTML, "Privacy settings feature coming soon!")
	assert.Empty(t, s.Notices.Items())

	patches, err = s.Act(ctx, func(context.Context) error { return nil })
	require.NoError(t, err)
	require.Len(t, patches, 1)
	assert.NotContains(t, patches[0].HTML, "coming soon")
}

func TestDoKeepsNotificationsForNextPage(t *testing.T) {
	s := NewSession("s1", testDeps(t, http.StatusOK, profileBody))
	ctx := context.Background()

	require.NoError(t, s.Do(ctx, func(context.Context) error {
		s.Notices.Notify(ui.KindInfo, "queued")
		return nil
	}))
	assert.Len(t, s.Notices.Items(), 1)

	html, err := s.Page(ctx, "Profile", "profile", profile.RegionContainer, s.Profile.Initialize)
	require.NoError(t, err)
	assert.Contains(t, html, "queued")
}

func TestExportWithoutProfile(t *testing.T) {
	s := NewSession("s1", testDeps(t, http.StatusOK, profileBody))
	b, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
	assert.Equal(t, []ui.Notification{{Kind: ui.KindSuccess, Message: "Profile data exported successfully!"}}, s.Notices.Items())
}

func TestManagerDrop(t *testing.T) {
	m := NewManager(testDeps(t, http.StatusOK, profileBody))
	s, _ := m.Ensure("")

	assert.True(t, m.Drop(s.ID))
	assert.False(t, m.Drop(s.ID))
	_, ok := m.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}
