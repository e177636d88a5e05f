package seed

import (
	"time"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	"github.com/agenticlearn/educator-portal/internal/domain/repository"
)

// Set is one collection's literal contents and the fields that identify a record.
type Set struct {
	Collection string
	Key        []string
	Records    []map[string]any
}

// KeyOf returns the natural-key filter for rec.
func (s Set) KeyOf(rec map[string]any) map[string]any {
	k := make(map[string]any, len(s.Key))
	for _, f := range s.Key {
		k[f] = rec[f]
	}
	return k
}

const demoEducator = "educator_001"

// Fixtures returns the eight record sets loaded by the seed command, with
// timestamps relative to now.
func Fixtures(now time.Time) []Set {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	const (
		minute = time.Minute
		hour   = time.Hour
		day    = 24 * time.Hour
	)

	return []Set{
		{
			Collection: repository.CollectionLearningAnalytics,
			Key:        []string{"educator_id", "student_id"},
			Records: []map[string]any{
				{
					"educator_id":              demoEducator,
					"student_id":               "student_001",
					"total_learning_time":      2847,
					"average_session_duration": 42,
					"completion_rate":          78.5,
					"retention_rate":           85.2,
					"learning_velocity":        1.2,
					"concept_mastery": map[string]any{
						"Data Science Fundamentals": 92,
						"Python Programming":        78,
						"Statistics":                85,
						"Machine Learning":          65,
						"Data Visualization":        88,
					},
					"created_at": now,
					"updated_at": now,
				},
				{
					"educator_id":              demoEducator,
					"student_id":               "student_002",
					"total_learning_time":      3200,
					"average_session_duration": 55,
					"completion_rate":          92.3,
					"retention_rate":           94.1,
					"learning_velocity":        1.5,
					"concept_mastery": map[string]any{
						"Data Science Fundamentals": 95,
						"Python Programming":        89,
						"Statistics":                92,
						"Machine Learning":          78,
						"Data Visualization":        91,
					},
					"created_at": now,
					"updated_at": now,
				},
			},
		},
		{
			Collection: repository.CollectionStudentMessages,
			Key:        []string{"from_student_id", "subject"},
			Records: []map[string]any{
				{
					"from_student_id": "student_001",
					"to_educator_id":  demoEducator,
					"subject":         "Question about Assignment 3",
					"message":         "Hi Prof, I'm having trouble with the data visualization part. Could you help?",
					"status":          "unread",
					"priority":        "normal",
					"created_at":      ago(2 * hour),
					"updated_at":      ago(2 * hour),
				},
				{
					"from_student_id": "student_002",
					"to_educator_id":  demoEducator,
					"subject":         "Request for Extension",
					"message":         "Dear Professor, I would like to request a 2-day extension for the Python project due to illness.",
					"status":          "read",
					"priority":        "high",
					"created_at":      ago(5 * hour),
					"updated_at":      ago(4 * hour),
				},
				{
					"from_student_id": "student_003",
					"to_educator_id":  demoEducator,
					"subject":         "Thank you for the feedback",
					"message":         "Thank you for the detailed feedback on my last assignment. It really helped me understand the concepts better.",
					"status":          "read",
					"priority":        "low",
					"created_at":      ago(24 * hour),
					"updated_at":      ago(23 * hour),
				},
			},
		},
		{
			Collection: repository.CollectionContentLibrary,
			Key:        []string{"educator_id", "title"},
			Records: []map[string]any{
				{
					"educator_id":      demoEducator,
					"title":            "Introduction to Data Science",
					"type":             "video",
					"duration_minutes": 45,
					"file_size_mb":     125.0,
					"file_format":      "MP4",
					"file_url":         "https://storage.googleapis.com/agenticlearn/videos/intro-data-science.mp4",
					"views_count":      156,
					"rating":           4.8,
					"tags":             []any{"data-science", "introduction", "fundamentals"},
					"status":           "published",
					"created_at":       ago(7 * day),
					"updated_at":       ago(7 * day),
				},
				{
					"educator_id":      demoEducator,
					"title":            "Python Programming Basics",
					"type":             "document",
					"duration_minutes": nil,
					"file_size_mb":     2.3,
					"file_format":      "PDF",
					"file_url":         "https://storage.googleapis.com/agenticlearn/docs/python-basics.pdf",
					"views_count":      203,
					"rating":           4.6,
					"tags":             []any{"python", "programming", "basics"},
					"status":           "published",
					"created_at":       ago(14 * day),
					"updated_at":       ago(14 * day),
				},
				{
					"educator_id":      demoEducator,
					"title":            "Statistics Interactive Quiz",
					"type":             "interactive",
					"duration_minutes": 30,
					"file_size_mb":     5.1,
					"file_format":      "HTML5",
					"file_url":         "https://storage.googleapis.com/agenticlearn/interactive/stats-quiz.html",
					"views_count":      89,
					"rating":           4.9,
					"tags":             []any{"statistics", "quiz", "interactive"},
					"status":           "published",
					"created_at":       ago(3 * day),
					"updated_at":       ago(3 * day),
				},
			},
		},
		{
			Collection: repository.CollectionDiscussionForums,
			Key:        []string{"educator_id", "title"},
			Records: []map[string]any{
				{
					"educator_id":        demoEducator,
					"title":              "General Discussion",
					"description":        "General course discussions and Q&A",
					"posts_count":        45,
					"participants_count": 38,
					"last_activity":      ago(30 * minute),
					"status":             "active",
					"created_at":         ago(30 * day),
				},
				{
					"educator_id":        demoEducator,
					"title":              "Assignment Help",
					"description":        "Get help with assignments and projects",
					"posts_count":        23,
					"participants_count": 28,
					"last_activity":      ago(2 * hour),
					"status":             "active",
					"created_at":         ago(25 * day),
				},
			},
		},
		{
			Collection: repository.CollectionVideoSessions,
			Key:        []string{"educator_id", "title"},
			Records: []map[string]any{
				{
					"educator_id":        demoEducator,
					"title":              "Weekly Office Hours",
					"scheduled_at":       now.Add(2 * day),
					"duration_minutes":   60,
					"participants_count": 0,
					"max_participants":   50,
					"status":             "scheduled",
					"type":               "office-hours",
					"meeting_url":        "https://meet.google.com/abc-defg-hij",
					"created_at":         now,
				},
				{
					"educator_id":        demoEducator,
					"title":              "Data Science Workshop",
					"scheduled_at":       now.Add(7 * day),
					"duration_minutes":   120,
					"participants_count": 25,
					"max_participants":   45,
					"status":             "scheduled",
					"type":               "workshop",
					"meeting_url":        "https://meet.google.com/xyz-uvwx-yz",
					"created_at":         now,
				},
			},
		},
		{
			Collection: repository.CollectionAIInsights,
			Key:        []string{"educator_id", "title"},
			Records: []map[string]any{
				{
					"educator_id":      demoEducator,
					"insight_type":     "at_risk_student",
					"title":            "Student at Risk: Maya Rajin",
					"description":      "Student has been inactive for 7 days and showing declining performance",
					"confidence_score": 85.5,
					"action_required":  true,
					"status":           "new",
					"metadata": map[string]any{
						"student_id":   "student_003",
						"risk_factors": []any{"inactivity", "declining_scores", "missed_deadlines"},
					},
					"created_at": now,
				},
				{
					"educator_id":      demoEducator,
					"insight_type":     "content_effectiveness",
					"title":            "Video Content Performing Well",
					"description":      "Introduction to Data Science video has 95% completion rate",
					"confidence_score": 92.3,
					"action_required":  false,
					"status":           "new",
					"metadata": map[string]any{
						"content_id":       "content_001",
						"completion_rate":  95.2,
						"engagement_score": 88.7,
					},
					"created_at": now,
				},
			},
		},
		{
			Collection: repository.CollectionActivityTimeline,
			Key:        []string{"student_id", "activity_type", "description"},
			Records: []map[string]any{
				{
					"student_id":    "student_001",
					"educator_id":   demoEducator,
					"activity_type": "completion",
					"description":   "Completed Lesson 3.2: Data Visualization",
					"metadata": map[string]any{
						"lesson_id":  "lesson_32",
						"score":      85,
						"time_spent": 45,
					},
					"created_at": ago(2 * minute),
				},
				{
					"student_id":    "student_002",
					"educator_id":   demoEducator,
					"activity_type": "start",
					"description":   "Started Module 2: Analytics Fundamentals",
					"metadata": map[string]any{
						"module_id": "module_2",
					},
					"created_at": ago(5 * minute),
				},
				{
					"student_id":    "student_003",
					"educator_id":   demoEducator,
					"activity_type": "submission",
					"description":   "Submitted Python Assignment #3",
					"metadata": map[string]any{
						"assignment_id":   "assignment_3",
						"submission_time": ago(15 * minute),
					},
					"created_at": ago(15 * minute),
				},
			},
		},
		{
			Collection: repository.CollectionSystemHealth,
			Key:        []string{"component_name"},
			Records: []map[string]any{
				healthCheck("database", 99.9, 45, 0, now),
				healthCheck("api_server", 99.8, 120, 2, now),
				healthCheck("storage", 100.0, 80, 0, now),
				healthCheck("ai_service", 98.5, 250, 5, now),
			},
		},
	}
}

func healthCheck(component string, uptime float64, responseMS, errors int, now time.Time) map[string]any {
	return map[string]any{
		"component_name":    component,
		"status":            "healthy",
		"uptime_percentage": uptime,
		"last_check":        now,
		"response_time_ms":  responseMS,
		"error_count":       errors,
	}
}

// DemoProfile is the profile record the seed command stores for educatorID.
func DemoProfile(educatorID string, now time.Time) entity.Profile {
	return entity.Profile{
		entity.FieldName:       "Dr. Sarah Johnson",
		entity.FieldEmail:      "sarah.johnson@agenticlearn.edu",
		entity.FieldRole:       "Senior Educator",
		entity.FieldDepartment: "Data Science",
		entity.FieldPhone:      "+6281234567890",
		entity.FieldBio:        "Data science educator focused on practical, project-based learning.",
		entity.FieldStats: map[string]any{
			"students_taught":     156,
			"courses_created":     8,
			"assessments_created": 42,
			"years_experience":    12,
		},
		entity.FieldPreferences: map[string]any{
			"notifications": true,
			"language":      "en",
			"timezone":      "Asia/Jakarta",
		},
		entity.FieldLastLogin:  now,
		entity.FieldJoinedDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		entity.FieldEducatorID: educatorID,
	}
}
