package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/cache"
	"github.com/agenticlearn/educator-portal/pkg/ui"
)

type fakeAPI struct {
	calls     []string
	getBodies []map[string]any
	getErr    error
	updateErr error
	updates   []map[string]any
}

func (f *fakeAPI) GetProfile(context.Context) (map[string]any, error) {
	f.calls = append(f.calls, "get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	if len(f.getBodies) == 0 {
		return map[string]any{}, nil
	}
	body := f.getBodies[0]
	if len(f.getBodies) > 1 {
		f.getBodies = f.getBodies[1:]
	}
	return body, nil
}

func (f *fakeAPI) UpdateUserProfile(_ context.Context, fields map[string]any) (map[string]any, error) {
	f.calls = append(f.calls, "update")
	f.updates = append(f.updates, fields)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return map[string]any{"success": true, "data": fields}, nil
}

type fakeShell struct {
	user    entity.Profile
	renders int
}

func (s *fakeShell) SetCurrentUser(p entity.Profile)    { s.user = p }
func (s *fakeShell) RenderHeader(context.Context) error { s.renders++; return nil }

type harness struct {
	api    *fakeAPI
	store  *cache.MemoryStore
	doc    *view.Document
	center *ui.Center
	shell  *fakeShell
	mod    *Module
}

func newHarness(api *fakeAPI) *harness {
	h := &harness{
		api:    api,
		store:  cache.NewMemoryStore(),
		doc:    view.NewDocument(),
		center: ui.NewCenter(),
		shell:  &fakeShell{},
	}
	clock := func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	h.mod = New(api, cache.NewAccessor[entity.Profile](h.store, nil), h.doc, h.center,
		WithShell(h.shell), WithClock(clock))
	return h
}

func profileBody(name string) map[string]any {
	return map[string]any{
		"name":       name,
		"email":      "sarah@example.edu",
		"role":       "Senior Educator",
		"department": "Data Science",
		"stats":      map[string]any{"students_taught": float64(156)},
		"favorite":   "unknown fields survive",
	}
}

func TestLoadProfile_UnwrapsDataEnvelope(t *testing.T) {
	h := newHarness(&fakeAPI{getBodies: []map[string]any{{"success": true, "data": profileBody("Sarah")}}})

	require.NoError(t, h.mod.LoadProfile(context.Background()))
	assert.Equal(t, entity.Profile(profileBody("Sarah")), h.mod.Profile())
}

func TestLoadProfile_PrefersProfileKey(t *testing.T) {
	h := newHarness(&fakeAPI{getBodies: []map[string]any{{
		"profile": map[string]any{"name": "From profile"},
		"data":    map[string]any{"name": "From data"},
	}}})

	require.NoError(t, h.mod.LoadProfile(context.Background()))
	assert.Equal(t, "From profile", h.mod.Profile().Text("name", ""))
}

func TestLoadProfile_WritesCache(t *testing.T) {
	h := newHarness(&fakeAPI{getBodies: []map[string]any{profileBody("Sarah")}})
	require.NoError(t, h.mod.LoadProfile(context.Background()))

	raw, ok, err := h.store.Get(context.Background(), DefaultCacheKey)
	require.NoError(t, err)
	require.True(t, ok)
	var cached map[string]any
	require.NoError(t, json.Unmarshal(raw, &cached))
	assert.Equal(t, "Sarah", cached["name"])
}

func TestLoadFromCache_CorruptEntryLeavesStateUnchanged(t *testing.T) {
	h := newHarness(&fakeAPI{getBodies: []map[string]any{profileBody("Sarah")}})
	ctx := context.Background()
	require.NoError(t, h.mod.LoadProfile(ctx))
	before := h.mod.Profile().Clone()

	require.NoError(t, h.store.Set(ctx, DefaultCacheKey, []byte(`{"name": "half`)))
	assert.False(t, h.mod.LoadFromCache(ctx))
	assert.Equal(t, before, h.mod.Profile())
}

func TestLoadFromCache_Hit(t *testing.T) {
	h := newHarness(&fakeAPI{})
	ctx := context.Background()
	require.NoError(t, h.store.Set(ctx, DefaultCacheKey, []byte(`{"name":"Cached"}`)))

	assert.True(t, h.mod.LoadFromCache(ctx))
	assert.Equal(t, "Cached", h.mod.Profile().Text("name", ""))
}

func TestToggleEdit_TwiceRestoresForm(t *testing.T) {
	h := newHarness(&fakeAPI{getBodies: []map[string]any{profileBody("Sarah")}})
	ctx := context.Background()
	require.NoError(t, h.mod.Initialize(ctx))
	h.doc.Flush()

	original, _ := h.doc.Content(RegionForm)
	container, _ := h.doc.Content(RegionContainer)

	require.NoError(t, h.mod.ToggleEdit(ctx))
	assert.Equal(t, Editing, h.mod.Mode())
	require.NotNil(t, h.mod.Draft())
	editing, _ := h.doc.Content(RegionForm)
	assert.NotEqual(t, original, editing)
	assert.Contains(t, editing, `value="Sarah"`)

	require.NoError(t, h.mod.ToggleEdit(ctx))
	assert.Equal(t, Viewing, h.mod.Mode())
	assert.Nil(t, h.mod.Draft())
	after, _ := h.doc.Content(RegionForm)
	assert.Equal(t, original, after)

	unchanged, _ := h.doc.Content(RegionContainer)
	assert.Equal(t, container, unchanged)
	assert.Empty(t, h.doc.Flush())
}

func TestToggleEdit_OnlyPatchesForm(t *testing.T) {
	h := newHarness(&fakeAPI{getBodies: []map[string]any{profileBody("Sarah")}})
	ctx := context.Background()
	require.NoError(t, h.mod.Initialize(ctx))
	h.doc.Flush()

	require.NoError(t, h.mod.ToggleEdit(ctx))
	patches := h.doc.Flush()
	require.Len(t, patches, 1)
	assert.Equal(t, RegionForm, patches[0].Region)
}

func TestSaveProfile_UpdateThenFetchAndKeepFetchedRecord(t *testing.T) {
	server := profileBody("Server Name")
	server["role"] = "Head of Department"
	api := &fakeAPI{getBodies: []map[string]any{profileBody("Sarah"), {"data": server}}}
	h := newHarness(api)
	ctx := context.Background()
	require.NoError(t, h.mod.Initialize(ctx))
	require.NoError(t, h.mod.ToggleEdit(ctx))
	api.calls = nil

	draft := Draft{Name: "Local Name", Email: "sarah@example.edu", Role: "Senior Educator"}
	require.NoError(t, h.mod.SaveProfile(ctx, draft))

	assert.Equal(t, []string{"update", "get"}, api.calls)
	require.Len(t, api.updates, 1)
	assert.Equal(t, "Local Name", api.updates[0]["name"])

	assert.Equal(t, entity.Profile(server), h.mod.Profile())
	assert.Equal(t, Viewing, h.mod.Mode())
	assert.Nil(t, h.mod.Draft())
	assert.Equal(t, entity.Profile(server), h.shell.user)
	assert.Equal(t, 1, h.shell.renders)

	notes := h.center.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, ui.Notification{Kind: ui.KindSuccess, Message: "Profile updated successfully!"}, notes[0])

	html := h.doc.HTML(RegionContainer)
	assert.Contains(t, html, "Server Name")
	assert.NotContains(t, html, "Local Name")
}

func TestSaveProfile_FailureRestoresState(t *testing.T) {
	api := &fakeAPI{getBodies: []map[string]any{profileBody("Sarah")}, updateErr: errors.New("api request failed: status 400: invalid payload")}
	h := newHarness(api)
	ctx := context.Background()
	require.NoError(t, h.mod.Initialize(ctx))
	before := h.mod.Profile().Clone()
	require.NoError(t, h.mod.ToggleEdit(ctx))
	api.calls = nil

	err := h.mod.SaveProfile(ctx, Draft{Name: "Broken"})
	require.Error(t, err)
	assert.Equal(t, []string{"update"}, api.calls)
	assert.Equal(t, before, h.mod.Profile())
	assert.NotContains(t, h.doc.HTML(RegionContainer), "<h1>Broken</h1>")

	notes := h.center.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, ui.KindError, notes[0].Kind)
	assert.Contains(t, notes[0].Message, "invalid payload")
	assert.Nil(t, h.shell.user)
}

func TestInitialize_FailureClearsStateAndNotifiesOnce(t *testing.T) {
	h := newHarness(&fakeAPI{getErr: errors.New("api request failed: GET /profile: connection refused")})
	ctx := context.Background()
	require.NoError(t, h.store.Set(ctx, DefaultCacheKey, []byte(`{"name":"Stale"}`)))

	err := h.mod.Initialize(ctx)
	require.Error(t, err)
	assert.Nil(t, h.mod.Profile())

	notes := h.center.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, ui.KindError, notes[0].Kind)
	assert.Equal(t, "Profile initialization failed: api request failed: GET /profile: connection refused", notes[0].Message)

	html := h.doc.HTML(RegionContainer)
	assert.Contains(t, html, "Profile unavailable")
	assert.NotContains(t, html, "Stale")
	assert.False(t, h.doc.Handles(ActionSave))
}

func TestInitialize_FailedReloadUnbindsActions(t *testing.T) {
	api := &fakeAPI{getBodies: []map[string]any{profileBody("Sarah")}}
	h := newHarness(api)
	ctx := context.Background()
	require.NoError(t, h.mod.Initialize(ctx))
	require.NoError(t, h.mod.ShowSettings(ctx))
	require.True(t, h.doc.Handles(ActionSave))

	api.getErr = errors.New("api request failed: status 503")
	require.Error(t, h.mod.Initialize(ctx))
	for _, a := range actions {
		assert.False(t, h.doc.Handles(a), a)
	}
	modal, _ := h.doc.Content(view.RegionModal)
	assert.Empty(t, modal)

	api.calls = nil
	err := h.doc.Dispatch(ctx, view.Event{Action: ActionSave, Values: url.Values{"name": {"X"}}})
	assert.ErrorIs(t, err, view.ErrUnknownAction)
	assert.Empty(t, api.calls)
	assert.Empty(t, api.updates)

	api.getErr = nil
	require.NoError(t, h.mod.Initialize(ctx))
	assert.True(t, h.doc.Handles(ActionSave))
}

func TestInitialize_BindsHandlers(t *testing.T) {
	h := newHarness(&fakeAPI{getBodies: []map[string]any{profileBody("Sarah")}})
	ctx := context.Background()
	require.NoError(t, h.mod.Initialize(ctx))

	require.NoError(t, h.doc.Dispatch(ctx, view.Event{Action: ActionToggleEdit}))
	assert.Equal(t, Editing, h.mod.Mode())
	require.NoError(t, h.doc.Dispatch(ctx, view.Event{Action: ActionCancel}))
	assert.Equal(t, Viewing, h.mod.Mode())
}

func TestSaveAction_ReadsFormValues(t *testing.T) {
	api := &fakeAPI{getBodies: []map[string]any{profileBody("Sarah")}}
	h := newHarness(api)
	ctx := context.Background()
	require.NoError(t, h.mod.Initialize(ctx))

	vals := url.Values{"name": {" Dr. Sarah "}, "email": {"s@example.edu"}, "bio": {"Teaches."}}
	require.NoError(t, h.doc.Dispatch(ctx, view.Event{Action: ActionSave, Values: vals}))
	require.Len(t, api.updates, 1)
	assert.Equal(t, "Dr. Sarah", api.updates[0]["name"])
	assert.Equal(t, "Teaches.", api.updates[0]["bio"])
	assert.Equal(t, "", api.updates[0]["phone"])
}

func TestExportData_MatchesInMemoryState(t *testing.T) {
	api := &fakeAPI{getBodies: []map[string]any{profileBody("Sarah")}}
	h := newHarness(api)
	ctx := context.Background()
	require.NoError(t, h.mod.Initialize(ctx))
	require.NoError(t, h.store.Set(ctx, DefaultCacheKey, []byte(`{"name":"Other"}`)))
	api.calls = nil

	out, err := h.mod.ExportData()
	require.NoError(t, err)
	assert.Empty(t, api.calls)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Equal(t, map[string]any(h.mod.Profile()), parsed)
}

func TestExportData_NullWithoutRecord(t *testing.T) {
	h := newHarness(&fakeAPI{})
	out, err := h.mod.ExportData()
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestExport_NotifiesSuccess(t *testing.T) {
	h := newHarness(&fakeAPI{getBodies: []map[string]any{profileBody("Sarah")}})
	ctx := context.Background()
	require.NoError(t, h.mod.Initialize(ctx))
	h.center.Drain()

	out, err := h.mod.Export()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"name": "Sarah"`)
	assert.Equal(t, []ui.Notification{{Kind: ui.KindSuccess, Message: "Profile data exported successfully!"}}, h.center.Drain())
}

func TestModalActions(t *testing.T) {
	h := newHarness(&fakeAPI{getBodies: []map[string]any{profileBody("Sarah")}})
	ctx := context.Background()
	require.NoError(t, h.mod.Initialize(ctx))

	require.NoError(t, h.mod.ShowSettings(ctx))
	modal, _ := h.doc.Content(view.RegionModal)
	assert.Contains(t, modal, "Profile Settings")

	require.NoError(t, h.mod.SaveSettings(ctx))
	modal, _ = h.doc.Content(view.RegionModal)
	assert.Empty(t, modal)

	require.NoError(t, h.mod.ChangePassword(ctx))
	require.NoError(t, h.mod.ShowPrivacy(ctx))
	notes := h.center.Drain()
	require.Len(t, notes, 3)
	assert.Equal(t, ui.Notification{Kind: ui.KindSuccess, Message: "Settings saved successfully!"}, notes[0])
	assert.Equal(t, ui.KindInfo, notes[1].Kind)
	assert.Equal(t, ui.KindInfo, notes[2].Kind)
}
