package feedback

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/supportbrain/backend/internal/domain/audit"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// ErrMissingOrg feedback without an organization
var ErrMissingOrg = errors.New("org_id is required")

// LogRequest agent feedback on a suggestion
type LogRequest struct {
	OrgID    string `json:"org_id" binding:"required"`
	TicketID string `json:"ticket_id"`
	Helpful  bool   `json:"helpful"`
	Draft    string `json:"draft"`
	Comment  string `json:"comment"`
}

// Service records agent feedback
type Service struct {
	repo   audit.Repository
	logger *slog.Logger
}

// NewService creates the feedback service
func NewService(repo audit.Repository) *Service {
	return &Service{
		repo:   repo,
		logger: log.NewModuleLogger("feedback", "service"),
	}
}

// Log stores one feedback entry
func (s *Service) Log(ctx context.Context, req LogRequest) (*audit.Feedback, error) {
	if strings.TrimSpace(req.OrgID) == "" {
		return nil, ErrMissingOrg
	}

	fb := &audit.Feedback{
		OrgID:    req.OrgID,
		TicketID: req.TicketID,
		Action:   audit.ActionFor(req.Helpful),
		Draft:    req.Draft,
		Comment:  req.Comment,
	}
	if err := s.repo.Save(ctx, fb); err != nil {
		return nil, err
	}

	log.FromContext(ctx, s.logger).Info("Feedback logged",
		"org_id", fb.OrgID,
		"ticket_id", fb.TicketID,
		"action", fb.Action,
	)
	return fb, nil
}

// List newest feedback of an organization
func (s *Service) List(ctx context.Context, orgID string, limit int) ([]*audit.Feedback, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByOrg(ctx, orgID, limit)
}
