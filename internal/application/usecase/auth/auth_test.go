package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/domain/entity"
	domainerror "github.com/finplan/backend/internal/domain/error"
)

type fakeUserRepository struct {
	users map[string]*entity.User
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

// plainPasswords stores passwords with a prefix so tests avoid bcrypt cost.
type plainPasswords struct{}

func (plainPasswords) HashPassword(password string) (string, error) { return "hashed:" + password, nil }

func (plainPasswords) VerifyPassword(hashed, password string) error {
	if hashed != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (plainPasswords) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

type stubTokens struct{}

func (stubTokens) GenerateAccessToken(_ context.Context, userID uuid.UUID, _ string) (*adapter.AccessToken, error) {
	return &adapter.AccessToken{Token: "token-" + userID.String(), ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (stubTokens) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not used")
}

func authCode(err error) domainerror.AuthErrorCode {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		return authErr.Code
	}
	return ""
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUserRepository{users: make(map[string]*entity.User)}
	register := NewRegisterUserUseCase(repo, plainPasswords{}, stubTokens{})
	login := NewLoginUserUseCase(repo, plainPasswords{}, stubTokens{})

	out, err := register.Execute(ctx, RegisterUserInput{Email: " Asha@Example.com ", Name: "Asha", Password: "s3cretpass"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.User.Email != "asha@example.com" {
		t.Errorf("expected normalized email, got %q", out.User.Email)
	}
	if out.AccessToken == "" {
		t.Error("expected an access token")
	}

	if _, err := register.Execute(ctx, RegisterUserInput{Email: "asha@example.com", Password: "anotherpass"}); authCode(err) != domainerror.ErrCodeEmailExists {
		t.Errorf("expected duplicate email error, got %v", err)
	}
	if _, err := register.Execute(ctx, RegisterUserInput{Email: "not-an-email", Password: "anotherpass"}); authCode(err) != domainerror.ErrCodeInvalidEmail {
		t.Errorf("expected invalid email error, got %v", err)
	}
	if _, err := register.Execute(ctx, RegisterUserInput{Email: "ravi@example.com", Password: "short"}); authCode(err) != domainerror.ErrCodeWeakPassword {
		t.Errorf("expected weak password error, got %v", err)
	}

	logged, err := login.Execute(ctx, LoginUserInput{Email: "ASHA@example.com", Password: "s3cretpass"})
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
	if logged.User.ID != out.User.ID {
		t.Error("expected login to return the registered user")
	}

	if _, err := login.Execute(ctx, LoginUserInput{Email: "asha@example.com", Password: "wrong-pass"}); authCode(err) != domainerror.ErrCodeInvalidCredentials {
		t.Errorf("expected invalid credentials, got %v", err)
	}
	if _, err := login.Execute(ctx, LoginUserInput{Email: "nobody@example.com", Password: "s3cretpass"}); authCode(err) != domainerror.ErrCodeInvalidCredentials {
		t.Errorf("expected invalid credentials for unknown email, got %v", err)
	}
}
