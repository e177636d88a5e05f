package communication

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/ui"
)

type fakeAPI struct {
	sendErr error
	sent    []map[string]any
}

func (f *fakeAPI) GetForums(context.Context) ([]map[string]any, error) {
	return []map[string]any{{"title": "General Discussion", "description": "Course Q&A", "posts_count": float64(45), "participants_count": float64(38)}}, nil
}

func (f *fakeAPI) GetVideoSessions(context.Context) ([]map[string]any, error) {
	return []map[string]any{{
		"title":              "Weekly Office Hours",
		"scheduled_at":       "2026-03-03T09:00:00Z",
		"duration_minutes":   float64(60),
		"participants_count": float64(0),
		"max_participants":   float64(50),
		"status":             "scheduled",
		"meeting_url":        "https://meet.google.com/abc-defg-hij",
	}}, nil
}

func (f *fakeAPI) SendMessage(_ context.Context, msg map[string]any) (map[string]any, error) {
	f.sent = append(f.sent, msg)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	out := map[string]any{"status": "sent"}
	if msg["email"] != nil {
		out["status"] = "queued"
	}
	return out, nil
}

func setup(t *testing.T, api *fakeAPI) (*Module, *view.Document, *ui.Center) {
	t.Helper()
	doc := view.NewDocument()
	center := ui.NewCenter()
	m := New(api, doc, center, nil)
	require.NoError(t, m.Initialize(context.Background()))
	return m, doc, center
}

func TestInitialize_RendersForumsSessionsAndForm(t *testing.T) {
	_, doc, center := setup(t, &fakeAPI{})

	html := doc.HTML(RegionContainer)
	assert.Contains(t, html, "General Discussion")
	assert.Contains(t, html, "Course Q&amp;A")
	assert.Contains(t, html, "45 posts · 38 participants")
	assert.Contains(t, html, `<li class="session session-scheduled"><strong>Weekly Office Hours</strong> <time>Mar 3 09:00</time>`)
	assert.Contains(t, html, `href="https://meet.google.com/abc-defg-hij"`)
	assert.Contains(t, html, `id="compose-form"`)
	assert.Contains(t, html, `name="student_id"`)
	assert.Empty(t, center.Items())
	assert.True(t, doc.Handles(ActionSend))
}

func TestSend_PostsAndClearsForm(t *testing.T) {
	api := &fakeAPI{}
	_, doc, center := setup(t, api)
	ctx := context.Background()
	doc.Flush()

	vals := url.Values{
		"student_id": {" student_002 "},
		"email":      {"student2@example.edu"},
		"subject":    {"Extension approved"},
		"message":    {"See you Monday."},
	}
	require.NoError(t, doc.Dispatch(ctx, view.Event{Action: ActionSend, Values: vals}))

	require.Len(t, api.sent, 1)
	assert.Equal(t, map[string]any{
		"student_id": "student_002",
		"email":      "student2@example.edu",
		"subject":    "Extension approved",
		"message":    "See you Monday.",
		"priority":   "normal",
	}, api.sent[0])
	assert.Equal(t, []ui.Notification{{Kind: ui.KindSuccess, Message: "Message sent to student_002 (email notification queued)"}}, center.Drain())

	patches := doc.Flush()
	require.Len(t, patches, 1)
	assert.Equal(t, RegionCompose, patches[0].Region)
	assert.NotContains(t, patches[0].HTML, "Extension approved")
}

func TestSend_InvalidFormIsKept(t *testing.T) {
	api := &fakeAPI{}
	m, _, center := setup(t, api)

	err := m.Send(context.Background(), Compose{Subject: "Hello", Email: "not-an-email", Priority: "urgent"})
	require.NoError(t, err)
	assert.Empty(t, api.sent)
	assert.Equal(t, "Hello", m.Compose().Subject)

	notes := center.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, ui.KindWarning, notes[0].Kind)
	assert.Contains(t, notes[0].Message, "Please check the message: email must be a valid email; message is required; priority must be one of")
	assert.Contains(t, notes[0].Message, "; student_id is required")
}

func TestSend_APIFailureKeepsForm(t *testing.T) {
	api := &fakeAPI{sendErr: errors.New("api request failed: status 500")}
	m, doc, center := setup(t, api)

	c := Compose{StudentID: "student_001", Subject: "Quiz", Message: "Retake on Friday"}
	require.Error(t, m.Send(context.Background(), c))
	assert.Equal(t, c, m.Compose())
	html, _ := doc.Content(RegionCompose)
	assert.Contains(t, html, `value="Quiz"`)

	notes := center.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Failed to send message: api request failed: status 500", notes[0].Message)
}
