package goal

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finplan/backend/internal/domain/entity"
	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/domain/projection"
)

type fakeGoalRepository struct {
	goals map[uuid.UUID]*entity.Goal
}

func newFakeGoalRepository(goals ...*entity.Goal) *fakeGoalRepository {
	repo := &fakeGoalRepository{goals: make(map[uuid.UUID]*entity.Goal)}
	for _, g := range goals {
		repo.goals[g.ID] = g
	}
	return repo
}

func (r *fakeGoalRepository) Create(_ context.Context, goal *entity.Goal) error {
	r.goals[goal.ID] = goal
	return nil
}

func (r *fakeGoalRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	g, ok := r.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGoalRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TargetDate.Before(out[j].TargetDate) })
	return out, nil
}

func (r *fakeGoalRepository) Update(_ context.Context, goal *entity.Goal) error {
	r.goals[goal.ID] = goal
	return nil
}

func (r *fakeGoalRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.goals, id)
	return nil
}

func fixedDay() time.Time {
	return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func sampleGoal(userID uuid.UUID) *entity.Goal {
	return entity.NewGoal(userID, "House down payment", 2_000_000, time.Date(2031, time.March, 1, 0, 0, 0, 0, time.UTC), 300_000, 15_000, 10)
}

func goalErrorCode(err error) domainerror.GoalErrorCode {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		return goalErr.Code
	}
	return ""
}

func TestCreateGoalUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates a valid goal", func(t *testing.T) {
		repo := newFakeGoalRepository()
		uc := NewCreateGoalUseCase(repo)

		out, err := uc.Execute(ctx, CreateGoalInput{
			UserID:                userID,
			Name:                  "Emergency fund",
			TargetAmount:          600_000,
			TargetDate:            time.Date(2027, time.December, 31, 0, 0, 0, 0, time.UTC),
			MonthlyContribution:   20_000,
			ExpectedReturnPercent: 6.5,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := repo.goals[out.Goal.ID]; !ok {
			t.Error("expected goal to be stored")
		}
		if out.Goal.UserID != userID {
			t.Errorf("expected user %s, got %s", userID, out.Goal.UserID)
		}
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		uc := NewCreateGoalUseCase(newFakeGoalRepository())
		valid := CreateGoalInput{UserID: userID, Name: "Car", TargetAmount: 800_000, TargetDate: fixedDay()}

		tests := []struct {
			name   string
			mutate func(*CreateGoalInput)
			code   domainerror.GoalErrorCode
		}{
			{"missing name", func(in *CreateGoalInput) { in.Name = "  " }, domainerror.ErrCodeMissingGoalFields},
			{"zero target", func(in *CreateGoalInput) { in.TargetAmount = 0 }, domainerror.ErrCodeInvalidTargetAmount},
			{"missing date", func(in *CreateGoalInput) { in.TargetDate = time.Time{} }, domainerror.ErrCodeInvalidTargetDate},
			{"negative saved", func(in *CreateGoalInput) { in.CurrentAmount = -1 }, domainerror.ErrCodeInvalidGoalAmounts},
			{"return too low", func(in *CreateGoalInput) { in.ExpectedReturnPercent = -100 }, domainerror.ErrCodeInvalidGoalAmounts},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := valid
				tt.mutate(&in)
				_, err := uc.Execute(ctx, in)
				if got := goalErrorCode(err); got != tt.code {
					t.Errorf("expected code %s, got %s (err=%v)", tt.code, got, err)
				}
			})
		}
	})
}

func TestGoalOwnership(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	g := sampleGoal(owner)
	repo := newFakeGoalRepository(g)

	if _, err := NewGetGoalUseCase(repo).Execute(ctx, GetGoalInput{GoalID: g.ID, UserID: stranger}); goalErrorCode(err) != domainerror.ErrCodeUnauthorizedGoalAccess {
		t.Errorf("expected unauthorized on get, got %v", err)
	}
	if _, err := NewDeleteGoalUseCase(repo).Execute(ctx, DeleteGoalInput{GoalID: g.ID, UserID: stranger}); goalErrorCode(err) != domainerror.ErrCodeUnauthorizedGoalAccess {
		t.Errorf("expected unauthorized on delete, got %v", err)
	}
	if _, err := NewGetGoalUseCase(repo).Execute(ctx, GetGoalInput{GoalID: uuid.New(), UserID: owner}); goalErrorCode(err) != domainerror.ErrCodeGoalNotFound {
		t.Errorf("expected not found, got %v", err)
	}
	if _, ok := repo.goals[g.ID]; !ok {
		t.Error("goal must survive a rejected delete")
	}
}

func TestUpdateGoalUseCase(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	g := sampleGoal(owner)
	repo := newFakeGoalRepository(g)
	uc := NewUpdateGoalUseCase(repo)

	saved := 450_000.0
	out, err := uc.Execute(ctx, UpdateGoalInput{GoalID: g.ID, UserID: owner, CurrentAmount: &saved})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Goal.CurrentAmount != saved {
		t.Errorf("expected current amount %v, got %v", saved, out.Goal.CurrentAmount)
	}
	if out.Goal.Name != g.Name {
		t.Errorf("unset fields must not change, got name %q", out.Goal.Name)
	}

	zero := 0.0
	if _, err := uc.Execute(ctx, UpdateGoalInput{GoalID: g.ID, UserID: owner, TargetAmount: &zero}); goalErrorCode(err) != domainerror.ErrCodeInvalidTargetAmount {
		t.Errorf("expected invalid target amount, got %v", err)
	}
	if repo.goals[g.ID].TargetAmount != g.TargetAmount {
		t.Error("rejected update must not be stored")
	}
}

func TestProjectGoalUseCase(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	g := sampleGoal(owner)
	uc := NewProjectGoalUseCase(newFakeGoalRepository(g), projection.DefaultCurrencyFormat(), 12)
	uc.now = fixedDay

	out, err := uc.Execute(ctx, ProjectGoalInput{GoalID: g.ID, UserID: owner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Projection.MonthsRemaining != 60 {
		t.Errorf("expected 60 months remaining, got %d", out.Projection.MonthsRemaining)
	}
	if out.Projection.ProgressPercent != 15 {
		t.Errorf("expected 15%% progress, got %d", out.Projection.ProgressPercent)
	}

	first, last := out.Series[0], out.Series[len(out.Series)-1]
	if first.Period != 0 || first.Value != g.CurrentAmount {
		t.Errorf("expected series to start at the saved amount, got %+v", first)
	}
	if last.Period != 60 || last.Value != out.Projection.ProjectedValue {
		t.Errorf("expected series to end at the projected value, got %+v want %v", last, out.Projection.ProjectedValue)
	}
	if out.Formatted.Target != "₹20.0 L" {
		t.Errorf("unexpected formatted target %q", out.Formatted.Target)
	}
}

func TestListGoalsUseCase(t *testing.T) {
	owner := uuid.New()
	near := sampleGoal(owner)
	near.TargetDate = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	far := sampleGoal(owner)
	other := sampleGoal(uuid.New())

	uc := NewListGoalsUseCase(newFakeGoalRepository(near, far, other))
	uc.now = fixedDay

	out, err := uc.Execute(context.Background(), ListGoalsInput{UserID: owner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(out.Goals))
	}
	if out.Goals[0].Goal.ID != near.ID {
		t.Error("expected goals ordered by target date")
	}
	if out.Goals[0].Projection.MonthsRemaining != 6 {
		t.Errorf("expected 6 months remaining, got %d", out.Goals[0].Projection.MonthsRemaining)
	}
}
