package application

import (
	"context"
	"time"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	repo "github.com/agenticlearn/educator-portal/internal/domain/repository"
)

// TimelineWindow and TimelineLimit bound the activity timeline.
const (
	TimelineWindow = 24 * time.Hour
	TimelineLimit  = 50
)

// DashboardService answers the read-only educator dashboard queries.
type DashboardService struct {
	Records repo.RecordRepository
	Now     func() time.Time
}

func NewDashboardService(records repo.RecordRepository) *DashboardService {
	return &DashboardService{Records: records, Now: time.Now}
}

// AdvancedAnalytics aggregates the educator's learning analytics.
func (s *DashboardService) AdvancedAnalytics(ctx context.Context, educatorID string) (map[string]any, error) {
	rows, err := s.Records.Find(ctx, repo.Query{
		Collection: repo.CollectionLearningAnalytics,
		Filter:     map[string]any{entity.FieldEducatorID: educatorID},
	})
	if err != nil {
		return nil, err
	}

	var totalTime int64
	var completion, session, retention, velocity float64
	mastery := map[string]any{}
	for _, r := range rows {
		totalTime += int64(number(r["total_learning_time"]))
		completion += number(r["completion_rate"])
		session += number(r["average_session_duration"])
		retention += number(r["retention_rate"])
		velocity += number(r["learning_velocity"])
		if m, ok := r["concept_mastery"].(map[string]any); ok {
			for concept, score := range m {
				mastery[concept] = score
			}
		}
	}
	if n := float64(len(rows)); n > 0 {
		completion /= n
		session /= n
		retention /= n
		velocity /= n
	}

	return map[string]any{
		"learning": map[string]any{
			"totalLearningTime":      totalTime,
			"averageSessionDuration": session,
			"completionRate":         completion,
			"retentionRate":          retention,
			"learningVelocity":       velocity,
			"conceptMastery":         mastery,
			"studentCount":           len(rows),
		},
	}, nil
}

func (s *DashboardService) StudentAlerts(ctx context.Context, educatorID string) ([]map[string]any, error) {
	return s.Records.Find(ctx, repo.Query{
		Collection: repo.CollectionAIInsights,
		Filter:     map[string]any{entity.FieldEducatorID: educatorID, "insight_type": "at_risk_student"},
	})
}

func (s *DashboardService) Messages(ctx context.Context, educatorID string) ([]map[string]any, error) {
	return s.Records.Find(ctx, repo.Query{
		Collection: repo.CollectionStudentMessages,
		Filter:     map[string]any{"to_educator_id": educatorID},
		SortDesc:   "created_at",
	})
}

func (s *DashboardService) Forums(ctx context.Context, educatorID string) ([]map[string]any, error) {
	return s.Records.Find(ctx, repo.Query{
		Collection: repo.CollectionDiscussionForums,
		Filter:     map[string]any{entity.FieldEducatorID: educatorID, "status": "active"},
	})
}

func (s *DashboardService) VideoSessions(ctx context.Context, educatorID string) ([]map[string]any, error) {
	return s.Records.Find(ctx, repo.Query{
		Collection: repo.CollectionVideoSessions,
		Filter:     map[string]any{entity.FieldEducatorID: educatorID},
	})
}

func (s *DashboardService) ContentLibrary(ctx context.Context, educatorID string) ([]map[string]any, error) {
	return s.Records.Find(ctx, repo.Query{
		Collection: repo.CollectionContentLibrary,
		Filter:     map[string]any{entity.FieldEducatorID: educatorID},
		SortDesc:   "created_at",
	})
}

func (s *DashboardService) AIInsights(ctx context.Context, educatorID string) ([]map[string]any, error) {
	return s.Records.Find(ctx, repo.Query{
		Collection: repo.CollectionAIInsights,
		Filter:     map[string]any{entity.FieldEducatorID: educatorID},
	})
}

// SystemHealth reports "healthy" only when every component does.
func (s *DashboardService) SystemHealth(ctx context.Context) (map[string]any, error) {
	components, err := s.Records.Find(ctx, repo.Query{Collection: repo.CollectionSystemHealth})
	if err != nil {
		return nil, err
	}
	status := "healthy"
	for _, c := range components {
		if st, _ := c["status"].(string); st != "" && st != "healthy" {
			status = "degraded"
			break
		}
	}
	return map[string]any{
		"status":     status,
		"components": components,
		"lastCheck":  s.Now().UTC(),
	}, nil
}

// ActivityTimeline returns the last day's activity, newest first.
func (s *DashboardService) ActivityTimeline(ctx context.Context, educatorID string) ([]map[string]any, error) {
	return s.Records.Find(ctx, repo.Query{
		Collection: repo.CollectionActivityTimeline,
		Filter:     map[string]any{entity.FieldEducatorID: educatorID},
		SortDesc:   "created_at",
		Limit:      TimelineLimit,
		Since:      &repo.SinceFilter{Field: "created_at", At: s.Now().Add(-TimelineWindow)},
	})
}

func number(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	}
	return 0
}
