package audit

import (
	"context"
	"time"
)

// Action audit log action
type Action string

const (
	ActionFeedbackPositive Action = "feedback_positive"
	ActionFeedbackNegative Action = "feedback_negative"
)

// Feedback agent feedback on a suggested draft
type Feedback struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	TicketID  string    `json:"ticket_id"`
	Action    Action    `json:"action"`
	Draft     string    `json:"draft,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ActionFor maps the helpful flag to an action
func ActionFor(helpful bool) Action {
	if helpful {
		return ActionFeedbackPositive
	}
	return ActionFeedbackNegative
}

// Repository feedback storage
type Repository interface {
	Save(ctx context.Context, fb *Feedback) error
	ListByOrg(ctx context.Context, orgID string, limit int) ([]*Feedback, error)
}
