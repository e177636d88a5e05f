package repository

// Collection names in the educator database.
const (
	CollectionProfiles          = "educator_profiles"
	CollectionLearningAnalytics = "learning_analytics"
	CollectionStudentMessages   = "student_messages"
	CollectionEducatorMessages  = "educator_messages"
	CollectionContentLibrary    = "content_library"
	CollectionDiscussionForums  = "discussion_forums"
	CollectionVideoSessions     = "video_sessions"
	CollectionAIInsights        = "ai_insights"
	CollectionActivityTimeline  = "activity_timeline"
	CollectionSystemHealth      = "system_health"
)
