package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	repo "github.com/agenticlearn/educator-portal/internal/domain/repository"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileService struct {
	Repo   repo.ProfileRepository
	Logger *logrus.Logger
}

func NewProfileService(r repo.ProfileRepository, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Repo: r, Logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, educatorID string) (entity.Profile, error) {
	p, err := s.Repo.Get(ctx, educatorID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update stores the editable fields of fields and returns the full record.
// Other keys are ignored.
func (s *ProfileService) Update(ctx context.Context, educatorID string, fields entity.Profile) (entity.Profile, error) {
	editable := fields.Editable()
	p, err := s.Repo.Update(ctx, educatorID, editable)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("educator_id", educatorID).Error("update profile failed")
		}
		return nil, err
	}
	if s.Logger != nil {
		keys := make([]string, 0, len(editable))
		for k := range editable {
			keys = append(keys, k)
		}
		s.Logger.WithFields(logrus.Fields{"educator_id": educatorID, "fields": keys}).Info("profile updated")
	}
	return p, nil
}
