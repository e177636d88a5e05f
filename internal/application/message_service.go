package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	repo "github.com/agenticlearn/educator-portal/internal/domain/repository"
	"github.com/agenticlearn/educator-portal/pkg/mailer"
	mailtpl "github.com/agenticlearn/educator-portal/pkg/mailer/templates"
)

// Publisher enqueues a JSON payload.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type MessageService struct {
	Records  repo.RecordRepository
	Profiles repo.ProfileRepository
	Queue    Publisher
	AppName  string
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewMessageService(records repo.RecordRepository, profiles repo.ProfileRepository, queue Publisher, appName string, logger *logrus.Logger) *MessageService {
	return &MessageService{Records: records, Profiles: profiles, Queue: queue, AppName: appName, Logger: logger, Now: time.Now}
}

type SendMessageInput struct {
	StudentID string
	Email     string
	Subject   string
	Message   string
	Priority  string
}

// Send stores the message and, when a queue is configured and the student has
// an email address, enqueues a notification email. A failed enqueue leaves the
// message stored with status "sent".
func (s *MessageService) Send(ctx context.Context, educatorID string, in SendMessageInput) (entity.EducatorMessage, error) {
	priority := in.Priority
	if priority == "" {
		priority = "normal"
	}
	msg := entity.EducatorMessage{
		FromEducator: educatorID,
		ToStudentID:  in.StudentID,
		ToEmail:      in.Email,
		Subject:      in.Subject,
		Message:      in.Message,
		Priority:     priority,
		Status:       "sent",
		CreatedAt:    s.Now().UTC(),
	}

	if s.Queue != nil && in.Email != "" {
		job := mailer.NewTemplateJob(in.Email, mailtpl.StudentMessage, mailtpl.MessageData{
			AppName:        s.AppName,
			EducatorName:   s.educatorName(ctx, educatorID),
			StudentID:      in.StudentID,
			RecipientEmail: in.Email,
			Subject:        in.Subject,
			Message:        in.Message,
			Priority:       priority,
		}.ToMap())
		if err := s.Queue.PublishJSON(ctx, job); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("student_id", in.StudentID).Warn("enqueue message email failed")
			}
		} else {
			msg.Status = "queued"
			msg.NotifiedEmail = true
		}
	}

	id, err := s.Records.Insert(ctx, repo.CollectionEducatorMessages, msg)
	if err != nil {
		return entity.EducatorMessage{}, err
	}
	msg.ID = id
	return msg, nil
}

func (s *MessageService) educatorName(ctx context.Context, educatorID string) string {
	if s.Profiles == nil {
		return ""
	}
	p, err := s.Profiles.Get(ctx, educatorID)
	if err != nil {
		return ""
	}
	return p.Text(entity.FieldName, "")
}
