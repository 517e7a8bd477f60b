package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/repository"
)

var (
	ErrParticipantExists = repository.ErrParticipantExists
	ErrWrongPassword     = errors.New("wrong password")
)

type AuthParticipantRepository interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	FindByUsername(ctx context.Context, username string) (domain.Participant, error)
	Update(ctx context.Context, participant domain.Participant) (domain.Participant, error)
}

type AuthService struct {
	repo AuthParticipantRepository
}

func NewAuthService(repo AuthParticipantRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup registers a participant. When an admin pre-created the account
// (row exists but was never activated) the signup claims that row instead
// of conflicting, so seeded guest lists keep working.
func (s *AuthService) Signup(ctx context.Context, participant domain.Participant, password string) (domain.Participant, error) {
	username := strings.ToLower(strings.TrimSpace(*participant.Username))
	participant.Username = &username

	hash, err := hashPassword(password)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("hashPassword -> %w", err)
	}
	participant.Password = &hash
	participant.Type = domain.TypeRegular
	participant.IsActivated = true

	existing, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		if existing.IsActivated {
			return domain.Participant{}, ErrParticipantExists
		}

		existing.Nickname = participant.Nickname
		existing.FullName = participant.FullName
		existing.Phone = participant.Phone
		existing.Password = &hash
		existing.IsActivated = true

		claimed, err := s.repo.Update(ctx, existing)
		if err != nil {
			return domain.Participant{}, fmt.Errorf("s.repo.Update -> %w", err)
		}

		return claimed, nil
	}
	if !errors.Is(err, repository.ErrParticipantNotFound) {
		return domain.Participant{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	created, err := s.repo.Create(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Participant, error) {
	participant, err := s.repo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Participant{}, ErrParticipantNotFound
		}

		return domain.Participant{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if participant.Password == nil {
		return domain.Participant{}, ErrWrongPassword
	}
	if err = bcrypt.CompareHashAndPassword([]byte(*participant.Password), []byte(password)); err != nil {
		return domain.Participant{}, ErrWrongPassword
	}

	now := time.Now()
	participant.LastLogin = &now
	updated, err := s.repo.Update(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
