package notification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/domain/entity"
	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/domain/projection"
)

type stubUsers struct {
	user *entity.User
}

func (s stubUsers) Create(context.Context, *entity.User) error { return nil }
func (s stubUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, domainerror.ErrUserNotFound
	}
	return s.user, nil
}
func (s stubUsers) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}
func (s stubUsers) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

type stubGoals struct {
	goals []*entity.Goal
}

func (s stubGoals) Create(context.Context, *entity.Goal) error { return nil }
func (s stubGoals) FindByID(context.Context, uuid.UUID) (*entity.Goal, error) {
	return nil, domainerror.ErrGoalNotFound
}
func (s stubGoals) FindByUserID(context.Context, uuid.UUID) ([]*entity.Goal, error) {
	return s.goals, nil
}
func (s stubGoals) Update(context.Context, *entity.Goal) error { return nil }
func (s stubGoals) Delete(context.Context, uuid.UUID) error { return nil }

// lineRenderer renders each goal as "name|status|advice" so assertions stay readable.
type lineRenderer struct{}

func (lineRenderer) Render(name string, data interface{}) (string, string, error) {
	digest := data.(DigestData)
	var rows []string
	for _, g := range digest.Goals {
		rows = append(rows, g.Name+"|"+g.Status+"|"+g.Advice)
	}
	return "<p>" + name + "</p>", strings.Join(rows, "\n"), nil
}

type recordingSender struct {
	sent []adapter.SendEmailInput
	err  error
}

func (r *recordingSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.sent = append(r.sent, input)
	return &adapter.SendEmailResult{MessageID: "msg-1"}, nil
}

func emailCode(err error) domainerror.EmailErrorCode {
	var emailErr *domainerror.EmailError
	if errors.As(err, &emailErr) {
		return emailErr.Code
	}
	return ""
}

func TestSendGoalDigestUseCase(t *testing.T) {
	asOf := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	user := entity.NewUser("asha@example.com", "Asha", "hash")

	reached := entity.NewGoal(user.ID, "Bike", 80_000, asOf.AddDate(1, 0, 0), 90_000, 0, 0)
	behind := entity.NewGoal(user.ID, "House", 5_000_000, asOf.AddDate(5, 0, 0), 200_000, 10_000, 8)
	overdue := entity.NewGoal(user.ID, "Phone", 60_000, asOf.AddDate(0, -2, 0), 20_000, 0, 0)

	sender := &recordingSender{}
	uc := NewSendGoalDigestUseCase(
		stubUsers{user: user},
		stubGoals{goals: []*entity.Goal{reached, behind, overdue}},
		lineRenderer{},
		sender,
		projection.DefaultCurrencyFormat(),
		"https://app.example.com",
	)
	uc.now = func() time.Time { return asOf }

	out, err := uc.Execute(context.Background(), SendGoalDigestInput{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", out.MessageID)
	assert.Equal(t, 3, out.Goals)

	require.Len(t, sender.sent, 1)
	email := sender.sent[0]
	assert.Equal(t, "asha@example.com", email.To)
	assert.Equal(t, "<p>goal_digest</p>", email.HTML)

	rows := strings.Split(email.Text, "\n")
	require.Len(t, rows, 3)
	assert.Equal(t, "Bike|Reached|", rows[0])
	assert.True(t, strings.HasPrefix(rows[1], "House|Behind|Add ₹"), rows[1])
	assert.Equal(t, "Phone|Overdue|₹40,000 still to go", rows[2])
}

func TestSendGoalDigestUseCase_Rejections(t *testing.T) {
	ctx := context.Background()
	user := entity.NewUser("ravi@example.com", "Ravi", "hash")
	goal := entity.NewGoal(user.ID, "Trip", 100_000, time.Now().AddDate(1, 0, 0), 0, 5_000, 6)

	t.Run("notifications disabled", func(t *testing.T) {
		optedOut := *user
		optedOut.EmailNotifications = false
		sender := &recordingSender{}
		uc := NewSendGoalDigestUseCase(stubUsers{user: &optedOut}, stubGoals{goals: []*entity.Goal{goal}}, lineRenderer{}, sender, projection.DefaultCurrencyFormat(), "")

		_, err := uc.Execute(ctx, SendGoalDigestInput{UserID: user.ID})
		assert.Equal(t, domainerror.ErrCodeNotificationsDisabled, emailCode(err))
		assert.Empty(t, sender.sent)
	})

	t.Run("no goals", func(t *testing.T) {
		uc := NewSendGoalDigestUseCase(stubUsers{user: user}, stubGoals{}, lineRenderer{}, &recordingSender{}, projection.DefaultCurrencyFormat(), "")

		_, err := uc.Execute(ctx, SendGoalDigestInput{UserID: user.ID})
		assert.ErrorIs(t, err, domainerror.ErrNothingToSend)
	})

	t.Run("unknown user", func(t *testing.T) {
		uc := NewSendGoalDigestUseCase(stubUsers{user: user}, stubGoals{}, lineRenderer{}, &recordingSender{}, projection.DefaultCurrencyFormat(), "")

		_, err := uc.Execute(ctx, SendGoalDigestInput{UserID: uuid.New()})
		assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
	})

	t.Run("send failure is returned", func(t *testing.T) {
		failure := domainerror.NewEmailError(domainerror.ErrCodeEmailSendFailed, "provider down", errors.New("503"))
		uc := NewSendGoalDigestUseCase(stubUsers{user: user}, stubGoals{goals: []*entity.Goal{goal}}, lineRenderer{}, &recordingSender{err: failure}, projection.DefaultCurrencyFormat(), "")

		_, err := uc.Execute(ctx, SendGoalDigestInput{UserID: user.ID})
		assert.Equal(t, domainerror.ErrCodeEmailSendFailed, emailCode(err))
	})
}
