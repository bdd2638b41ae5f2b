// Package notification contains use cases that email users about their plans.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finplan/backend/internal/application/adapter"
	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/domain/projection"
)

// GoalDigestTemplate is the template rendered for the goal digest.
const GoalDigestTemplate = "goal_digest"

// SendGoalDigestInput represents the input for sending a goal digest.
type SendGoalDigestInput struct {
	UserID uuid.UUID
}

// SendGoalDigestOutput represents the output of sending a goal digest.
type SendGoalDigestOutput struct {
	MessageID string
	Goals     int
}

// DigestLine is one goal row in the digest.
type DigestLine struct {
	Name            string
	Target          string
	Saved           string
	Projected       string
	ProgressPercent int
	MonthsRemaining int
	Status          string
	// Advice is empty when the goal needs no change.
	Advice string
}

// DigestData is the data passed to the digest template.
type DigestData struct {
	UserName     string
	Goals        []DigestLine
	DashboardURL string
}

// SendGoalDigestUseCase projects every goal of a user and emails the result.
type SendGoalDigestUseCase struct {
	userRepo   adapter.UserRepository
	goalRepo   adapter.GoalRepository
	renderer   adapter.TemplateRenderer
	sender     adapter.EmailSender
	format     projection.CurrencyFormat
	appBaseURL string
	now        func() time.Time
}

// NewSendGoalDigestUseCase creates a new SendGoalDigestUseCase instance.
func NewSendGoalDigestUseCase(
	userRepo adapter.UserRepository,
	goalRepo adapter.GoalRepository,
	renderer adapter.TemplateRenderer,
	sender adapter.EmailSender,
	format projection.CurrencyFormat,
	appBaseURL string,
) *SendGoalDigestUseCase {
	return &SendGoalDigestUseCase{
		userRepo:   userRepo,
		goalRepo:   goalRepo,
		renderer:   renderer,
		sender:     sender,
		format:     format,
		appBaseURL: appBaseURL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Execute builds and sends the digest.
func (uc *SendGoalDigestUseCase) Execute(ctx context.Context, input SendGoalDigestInput) (*SendGoalDigestOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !user.EmailNotifications {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeNotificationsDisabled,
			"email notifications are disabled for this account",
			domainerror.ErrNotificationsDisabled,
		)
	}

	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeNothingToSend,
			"there are no goals to report",
			domainerror.ErrNothingToSend,
		)
	}

	asOf := uc.now()
	data := DigestData{
		UserName:     user.Name,
		DashboardURL: uc.appBaseURL + "/goals",
	}
	for _, g := range goals {
		p, err := projection.ProjectGoal(g.Spec(), asOf)
		if err != nil {
			slog.Warn("Skipping goal in digest", "goal_id", g.ID, "error", err)
			continue
		}
		data.Goals = append(data.Goals, uc.line(g.Name, g.TargetAmount, g.CurrentAmount, p))
	}
	if len(data.Goals) == 0 {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeNothingToSend,
			"none of the goals could be projected",
			domainerror.ErrNothingToSend,
		)
	}

	html, text, err := uc.renderer.Render(GoalDigestTemplate, data)
	if err != nil {
		return nil, domainerror.NewEmailError(domainerror.ErrCodeEmailSendFailed, "failed to render goal digest", err)
	}

	result, err := uc.sender.Send(ctx, adapter.SendEmailInput{
		To:      user.Email,
		Name:    user.Name,
		Subject: fmt.Sprintf("Your goal digest: %d goal(s)", len(data.Goals)),
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Goal digest sent", "user_id", user.ID, "goals", len(data.Goals), "message_id", result.MessageID)

	return &SendGoalDigestOutput{
		MessageID: result.MessageID,
		Goals:     len(data.Goals),
	}, nil
}

func (uc *SendGoalDigestUseCase) line(name string, target, saved float64, p projection.GoalProjection) DigestLine {
	line := DigestLine{
		Name:            name,
		Target:          uc.format.Format(target),
		Saved:           uc.format.Format(saved),
		Projected:       uc.format.Format(p.ProjectedValue),
		ProgressPercent: p.ProgressPercent,
		MonthsRemaining: p.MonthsRemaining,
	}

	switch {
	case p.Exceeded:
		line.Status = "Reached"
	case p.Overdue:
		line.Status = "Overdue"
		line.Advice = fmt.Sprintf("%s still to go", uc.format.Format(p.Shortfall))
	case p.OnTrack:
		line.Status = "On track"
	default:
		line.Status = "Behind"
		line.Advice = fmt.Sprintf("Add %s per month to close a gap of %s",
			uc.format.Format(p.RecommendedMonthlyIncrease), uc.format.Format(p.Shortfall))
	}
	return line
}
