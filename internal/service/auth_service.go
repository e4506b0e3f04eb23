// Package service contains the business logic between the HTTP handlers
// and the repositories.
package service

import (
	"context"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// usernameAttempts bounds the UUID regeneration loop on handle collision.
const usernameAttempts = 5

type AuthService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Password  string `json:"password"`
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates an account. Validation failures are collected into a
// per-field error map so the client sees every broken field at once, not
// just the first. The username is a generated UUID handle regenerated on
// the unlikely collision.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	fields := map[string]string{}

	if err := validation.ValidateRequired("first_name", in.FirstName); err != nil {
		fields["first_name"] = err.Error()
	}
	if err := validation.ValidateRequired("last_name", in.LastName); err != nil {
		fields["last_name"] = err.Error()
	}
	if err := validation.ValidateRequired("email", in.Email); err != nil {
		fields["email"] = err.Error()
	} else if err := validation.ValidateEmail(in.Email); err != nil {
		fields["email"] = err.Error()
	}
	if err := validation.ValidateRequired("password", in.Password); err != nil {
		fields["password"] = err.Error()
	} else if err := validation.ValidatePassword(in.Password); err != nil {
		fields["password"] = err.Error()
	}

	if _, ok := fields["email"]; !ok {
		existing, err := s.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if existing != nil {
			fields["email"] = "user with this email already exists"
		}
	}

	if len(fields) > 0 {
		return nil, models.NewFieldErrors(fields)
	}

	username, err := s.generateUsername(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  username,
		Email:     in.Email,
		Address:   in.Address,
		Password:  string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// Login checks the credentials for the account registered under email and
// stamps last_login on success. Unknown email and wrong password produce
// the same response so the endpoint does not confirm which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewValidationError("Invalid credentials, Kindly supply valid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewValidationError("Invalid credentials, Kindly supply valid credentials")
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to update last_login",
			"user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}
	return user, nil
}

func (s *AuthService) generateUsername(ctx context.Context) (string, error) {
	var username string
	for i := 0; i < usernameAttempts; i++ {
		username = uuid.New().String()
		taken, err := s.userRepo.UsernameExists(ctx, username)
		if err != nil {
			return "", err
		}
		if !taken {
			return username, nil
		}
	}
	// Five UUID collisions in a row means the store is lying; use the last
	// candidate and let the unique index arbitrate.
	return username, nil
}
