package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	repo "github.com/agenticlearn/educator-portal/internal/domain/repository"
)

type fakeRecords struct {
	rows     map[string][]map[string]any
	queries  []repo.Query
	inserted map[string][]any
	err      error
}

func (f *fakeRecords) Find(_ context.Context, q repo.Query) ([]map[string]any, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[q.Collection], nil
}

func (f *fakeRecords) Insert(_ context.Context, collection string, doc any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.inserted == nil {
		f.inserted = map[string][]any{}
	}
	f.inserted[collection] = append(f.inserted[collection], doc)
	return "66f0c0ffee0000000000000" + string(rune('0'+len(f.inserted[collection]))), nil
}

type fakeProfiles struct {
	stored  entity.Profile
	updates []entity.Profile
}

func (f *fakeProfiles) Get(context.Context, string) (entity.Profile, error) {
	if f.stored == nil {
		return nil, repo.ErrNotFound
	}
	return f.stored, nil
}

func (f *fakeProfiles) Update(_ context.Context, _ string, fields entity.Profile) (entity.Profile, error) {
	f.updates = append(f.updates, fields)
	f.stored = f.stored.Merge(fields)
	return f.stored, nil
}

type fakeQueue struct {
	jobs []any
	err  error
}

func (q *fakeQueue) PublishJSON(_ context.Context, body any) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, body)
	return nil
}

func TestProfileService_GetMissingIsNotFound(t *testing.T) {
	svc := NewProfileService(&fakeProfiles{}, nil)
	_, err := svc.Get(context.Background(), "educator_001")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_UpdateKeepsOnlyEditableFields(t *testing.T) {
	profiles := &fakeProfiles{stored: entity.Profile{"name": "Old", "stats": map[string]any{"students_taught": 3}}}
	svc := NewProfileService(profiles, nil)

	got, err := svc.Update(context.Background(), "educator_001", entity.Profile{
		"name":  "New",
		"stats": map[string]any{"students_taught": 999},
		"role":  "Lead",
	})
	require.NoError(t, err)
	require.Len(t, profiles.updates, 1)
	assert.Equal(t, entity.Profile{"name": "New", "role": "Lead"}, profiles.updates[0])
	assert.EqualValues(t, 3, got.Stat("students_taught"))
}

func TestDashboardService_AdvancedAnalyticsAggregates(t *testing.T) {
	records := &fakeRecords{rows: map[string][]map[string]any{
		repo.CollectionLearningAnalytics: {
			{"total_learning_time": int32(2847), "completion_rate": 78.5, "concept_mastery": map[string]any{"Statistics": 85}},
			{"total_learning_time": int32(3200), "completion_rate": 92.3, "concept_mastery": map[string]any{"Python Programming": 89}},
		},
	}}
	svc := NewDashboardService(records)

	out, err := svc.AdvancedAnalytics(context.Background(), "educator_001")
	require.NoError(t, err)
	learning := out["learning"].(map[string]any)
	assert.EqualValues(t, 6047, learning["totalLearningTime"])
	assert.InDelta(t, 85.4, learning["completionRate"], 0.001)
	assert.Equal(t, map[string]any{"Statistics": 85, "Python Programming": 89}, learning["conceptMastery"])
	assert.Equal(t, "educator_001", records.queries[0].Filter["educator_id"])
}

func TestDashboardService_ActivityTimelineWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := &fakeRecords{}
	svc := NewDashboardService(records)
	svc.Now = func() time.Time { return now }

	_, err := svc.ActivityTimeline(context.Background(), "educator_001")
	require.NoError(t, err)
	q := records.queries[0]
	assert.Equal(t, repo.CollectionActivityTimeline, q.Collection)
	assert.Equal(t, "created_at", q.SortDesc)
	assert.EqualValues(t, TimelineLimit, q.Limit)
	require.NotNil(t, q.Since)
	assert.Equal(t, now.Add(-24*time.Hour), q.Since.At)
}

func TestDashboardService_SystemHealthDegraded(t *testing.T) {
	records := &fakeRecords{rows: map[string][]map[string]any{
		repo.CollectionSystemHealth: {
			{"component_name": "database", "status": "healthy"},
			{"component_name": "ai_service", "status": "down"},
		},
	}}
	out, err := NewDashboardService(records).SystemHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "degraded", out["status"])
	assert.Len(t, out["components"], 2)
}

func TestMessageService_SendQueuesEmail(t *testing.T) {
	records := &fakeRecords{}
	queue := &fakeQueue{}
	profiles := &fakeProfiles{stored: entity.Profile{"name": "Dr. Sarah Johnson"}}
	svc := NewMessageService(records, profiles, queue, "AgenticLearn", nil)

	msg, err := svc.Send(context.Background(), "educator_001", SendMessageInput{
		StudentID: "student_001",
		Email:     "student@example.com",
		Subject:   "Assignment 3",
		Message:   "See my notes.",
	})
	require.NoError(t, err)
	assert.Equal(t, "queued", msg.Status)
	assert.Equal(t, "normal", msg.Priority)
	assert.True(t, msg.NotifiedEmail)
	require.Len(t, queue.jobs, 1)
	require.Len(t, records.inserted[repo.CollectionEducatorMessages], 1)
}

func TestMessageService_EnqueueFailureStillStores(t *testing.T) {
	records := &fakeRecords{}
	svc := NewMessageService(records, nil, &fakeQueue{err: errors.New("broker down")}, "AgenticLearn", nil)

	msg, err := svc.Send(context.Background(), "educator_001", SendMessageInput{StudentID: "s", Email: "s@example.com", Subject: "x", Message: "y"})
	require.NoError(t, err)
	assert.Equal(t, "sent", msg.Status)
	assert.False(t, msg.NotifiedEmail)
}

func TestContentService_Upload(t *testing.T) {
	records := &fakeRecords{}
	var gotPath string
	upload := func(_ context.Context, objectPath, _ string, r io.Reader) (string, int64, error) {
		gotPath = objectPath
		n, _ := io.Copy(io.Discard, r)
		return "https://storage.googleapis.com/bucket/" + objectPath, n, nil
	}
	svc := NewContentService(records, upload, nil, nil)

	item, err := svc.UploadContent(context.Background(), "educator_001", UploadInput{
		Title:    "Regression Notes",
		Type:     "document",
		FileName: "notes.pdf",
		Body:     strings.NewReader("pdf-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotPath, "content/educator_001/"))
	assert.True(t, strings.HasSuffix(gotPath, ".pdf"))
	assert.Equal(t, "PDF", item.FileFormat)
	assert.Equal(t, "published", item.Status)
	assert.NotEmpty(t, item.ID)
	require.Len(t, records.inserted[repo.CollectionContentLibrary], 1)
}

func TestContentService_Disabled(t *testing.T) {
	svc := NewContentService(&fakeRecords{}, nil, nil, nil)
	_, err := svc.UploadContent(context.Background(), "educator_001", UploadInput{})
	assert.ErrorIs(t, err, ErrUploadDisabled)
	_, err = svc.SearchContent(context.Background(), "educator_001", "python")
	assert.ErrorIs(t, err, ErrSearchDisabled)
}
