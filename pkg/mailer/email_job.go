package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// A job either names a Template (rendered by the worker from Data) or carries
// a ready Subject/Text/HTML body.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "student_message"
	Data     map[string]any `json:"data,omitempty"`
}

// NewTemplateJob builds a job the worker renders from the named template.
func NewTemplateJob(to, template string, data map[string]any) EmailJob {
	return EmailJob{To: to, Template: template, Data: data}
}
