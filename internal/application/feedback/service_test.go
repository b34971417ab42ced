package feedback

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportbrain/backend/internal/domain/audit"
	"github.com/supportbrain/backend/internal/infrastructure/storage"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := storage.OpenDB(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := storage.NewAuditRepository(db)
	require.NoError(t, err)
	return NewService(repo)
}

func TestService_Log(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	fb, err := svc.Log(ctx, LogRequest{OrgID: "1", TicketID: "42", Helpful: true, Draft: "Hi there"})
	require.NoError(t, err)
	assert.NotEmpty(t, fb.ID)
	assert.Equal(t, audit.ActionFeedbackPositive, fb.Action)

	_, err = svc.Log(ctx, LogRequest{OrgID: "1", TicketID: "43", Comment: "wrong order"})
	require.NoError(t, err)

	entries, err := svc.List(ctx, "1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	actions := []audit.Action{entries[0].Action, entries[1].Action}
	assert.ElementsMatch(t, []audit.Action{audit.ActionFeedbackPositive, audit.ActionFeedbackNegative}, actions)

	other, err := svc.List(ctx, "2", 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestService_LogRequiresOrg(t *testing.T) {
	svc := newService(t)
	_, err := svc.Log(context.Background(), LogRequest{OrgID: "  "})
	assert.ErrorIs(t, err, ErrMissingOrg)
}
