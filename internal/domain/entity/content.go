package entity

import "time"

// ContentItem is one entry of an educator's content library.
type ContentItem struct {
	ID              string    `bson:"-" json:"id,omitempty"`
	EducatorID      string    `bson:"educator_id" json:"educator_id"`
	Title           string    `bson:"title" json:"title"`
	Type            string    `bson:"type" json:"type"` // video, document, interactive, audio
	DurationMinutes *int      `bson:"duration_minutes" json:"duration_minutes"`
	FileSizeMB      float64   `bson:"file_size_mb" json:"file_size_mb"`
	FileFormat      string    `bson:"file_format" json:"file_format"`
	FileURL         string    `bson:"file_url" json:"file_url"`
	ViewsCount      int       `bson:"views_count" json:"views_count"`
	Rating          float64   `bson:"rating" json:"rating"`
	Tags            []string  `bson:"tags" json:"tags"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// EducatorMessage is a message an educator sent to a student.
type EducatorMessage struct {
	ID            string    `bson:"-" json:"id,omitempty"`
	FromEducator  string    `bson:"from_educator_id" json:"from_educator_id"`
	ToStudentID   string    `bson:"to_student_id" json:"to_student_id"`
	ToEmail       string    `bson:"to_email,omitempty" json:"to_email,omitempty"`
	Subject       string    `bson:"subject" json:"subject"`
	Message       string    `bson:"message" json:"message"`
	Priority      string    `bson:"priority" json:"priority"`
	Status        string    `bson:"status" json:"status"` // sent, queued
	NotifiedEmail bool      `bson:"notified_email" json:"notified_email"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
