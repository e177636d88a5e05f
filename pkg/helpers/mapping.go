package helpers

import (
	"fmt"

	"github.com/agenticlearn/educator-portal/pkg/mailer"
)

// EnsureRecipient fills the recipient fields templates expect from job.To.
func EnsureRecipient(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
