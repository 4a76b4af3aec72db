package account

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/everday/everday/internal/domain/activity"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/repository"
	"github.com/google/uuid"
)

const tokenPrefix = "ed_"

// Service handles profiles, plan state, and API tokens.
type Service struct {
	profiles   Repository
	keys       KeyRepository
	activities ActivityRecorder
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new account service. activities may be nil.
func NewService(profiles Repository, keys KeyRepository, activities ActivityRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		profiles:   profiles,
		keys:       keys,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// EnsureProfile returns the profile of id, creating a free one if missing.
func (s *Service) EnsureProfile(ctx context.Context, id, email string) (*Profile, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	p, err := s.profiles.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	now := s.now().UTC()
	p = &Profile{
		ID:        id,
		Email:     strings.TrimSpace(email),
		Plan:      plan.TierFree.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return s.Get(ctx, id)
		}
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	s.logger.Info("profile created", "account_id", id)
	return p, nil
}

// Register creates a profile and its first API token together. Nothing is
// stored when either write fails.
func (s *Service) Register(ctx context.Context, email string, tier plan.Tier) (*Profile, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	token, err := newToken()
	if err != nil {
		return nil, "", err
	}

	now := s.now().UTC()
	p := &Profile{
		ID:        uuid.NewString(),
		Email:     email,
		Plan:      tier.String(),
		IsPremium: plan.IsPremium(tier),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.CreateWithKey(ctx, p, HashToken(token)); err != nil {
		return nil, "", fmt.Errorf("registering account: %w", err)
	}
	s.logger.Info("account registered", "account_id", p.ID, "plan", p.Plan)
	return p, token, nil
}

// Get loads a profile.
func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return p, nil
}

// Tier returns the effective tier of an account. A missing profile is free.
func (s *Service) Tier(ctx context.Context, id string) (plan.Tier, error) {
	p, err := s.Get(ctx, id)
	if errors.Is(err, ErrProfileNotFound) {
		return plan.TierFree, nil
	}
	if err != nil {
		return plan.TierFree, err
	}
	return p.Tier(s.now()), nil
}

// Scope builds the plan scope of an account.
func (s *Service) Scope(ctx context.Context, id string) (plan.Scope, error) {
	tier, err := s.Tier(ctx, id)
	if err != nil {
		return plan.Scope{}, err
	}
	return plan.Scope{OwnerID: id, Tier: tier}, nil
}

// PlanStatus reports the plan of an account.
func (s *Service) PlanStatus(ctx context.Context, id string) (*PlanStatus, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tier := p.Tier(s.now())
	return &PlanStatus{
		Plan:          p.Plan,
		Tier:          tier.String(),
		IsPremium:     plan.IsPremium(tier),
		PlanExpiresAt: p.PlanExpiresAt,
		Capabilities:  plan.Capabilities(tier),
	}, nil
}

// SetPlan changes the stored plan of an account.
func (s *Service) SetPlan(ctx context.Context, id string, tier plan.Tier, expiresAt *time.Time) (*Profile, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	from := p.Plan
	p.Plan = tier.String()
	p.IsPremium = plan.IsPremium(tier)
	p.PlanExpiresAt = expiresAt
	p.UpdatedAt = s.now().UTC()
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("updating plan: %w", err)
	}
	if s.activities != nil && from != p.Plan {
		s.activities.Record(ctx, id, activity.TypePlanChanged,
			fmt.Sprintf("plan changed from %s to %s", from, p.Plan),
			map[string]string{"from": from, "to": p.Plan})
	}
	return p, nil
}

// UpdateProfile changes the username or full name.
func (s *Service) UpdateProfile(ctx context.Context, id string, req UpdateRequest) (*Profile, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if name == "" {
			p.Username = nil
		} else {
			p.Username = &name
		}
	}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		p.FullName = &name
	}
	p.UpdatedAt = s.now().UTC()
	if err := s.profiles.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return p, nil
}

// IssueToken creates a new API token for an account. Only its hash is stored.
func (s *Service) IssueToken(ctx context.Context, accountID string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := s.keys.CreateKey(ctx, accountID, HashToken(token)); err != nil {
		return "", fmt.Errorf("storing token: %w", err)
	}
	return token, nil
}

// ResolveAccount maps a bearer token to its account ID.
func (s *Service) ResolveAccount(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	id, err := s.keys.ResolveKey(ctx, HashToken(token))
	if err != nil || id == "" {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("resolving token: %w", err)
		}
		return "", ErrInvalidToken
	}
	return id, nil
}

func newToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return tokenPrefix + hex.EncodeToString(buf), nil
}

// HashToken returns the stored form of a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
