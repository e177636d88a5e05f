package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/agenticlearn/educator-portal/pkg/mailer/templates"
)

type recordingSender struct {
	to, subject, text, html string
	err                     error
}

func (s *recordingSender) Send(_ context.Context, to, subject, text, html string) error {
	s.to, s.subject, s.text, s.html = to, subject, text, html
	return s.err
}

func TestDeliverRendersTemplate(t *testing.T) {
	s := &recordingSender{}
	job := EmailJob{
		To:       "student@example.com",
		Template: mailtpl.StudentMessage,
		Data: mailtpl.MessageData{
			AppName:      "AgenticLearn",
			EducatorName: "Dr. Sarah Johnson",
			StudentID:    "student_001",
			Subject:      "Assignment feedback",
			Message:      "Great work on <b>algebra</b>",
			Priority:     "high",
		}.ToMap(),
	}

	require.NoError(t, Deliver(context.Background(), s, job))
	assert.Equal(t, "student@example.com", s.to)
	assert.Equal(t, "[AgenticLearn] Assignment feedback", s.subject)
	assert.Contains(t, s.text, "Dr. Sarah Johnson sent you a message (high priority)")
	assert.Contains(t, s.html, "Great work on &lt;b&gt;algebra&lt;/b&gt;")
}

func TestDeliverRawBody(t *testing.T) {
	s := &recordingSender{}
	require.NoError(t, Deliver(context.Background(), s, EmailJob{To: "a@x.test", Subject: "Hi", Text: "body"}))
	assert.Equal(t, "Hi", s.subject)
	assert.Equal(t, "body", s.text)
}

func TestDeliverErrors(t *testing.T) {
	s := &recordingSender{}
	assert.ErrorIs(t, Deliver(context.Background(), s, EmailJob{To: "a@x.test"}), ErrEmptyJob)

	err := Deliver(context.Background(), s, EmailJob{To: "a@x.test", Template: "missing"})
	var rerr *mailtpl.RenderError
	assert.True(t, errors.As(err, &rerr))

	s.err = errors.New("mailgun down")
	assert.EqualError(t, Deliver(context.Background(), s, EmailJob{To: "a@x.test", Text: "x"}), "mailgun down")
}
