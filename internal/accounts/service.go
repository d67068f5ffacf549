package accounts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/freefind/freefind-backend/internal/loyalty"
	pkgAuth "github.com/freefind/freefind-backend/pkg/auth"
	"github.com/freefind/freefind-backend/pkg/config"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
	"github.com/freefind/freefind-backend/pkg/jsonstore"
	"github.com/freefind/freefind-backend/pkg/redis"
	"github.com/freefind/freefind-backend/pkg/security"
	"github.com/google/uuid"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the account controllers.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, claims *pkgAuth.AccessTokenClaims) error
	Profile(ctx context.Context, userID uuid.UUID) (*Account, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*Account, error)
	RecomputeStats(ctx context.Context, userID uuid.UUID, donationCount int, co2SavedKg float64) (*Account, error)
	Loyalty(ctx context.Context, userID uuid.UUID) (*LoyaltySummary, error)
	ClaimReward(ctx context.Context, userID uuid.UUID, rewardID string) (*Account, error)
}

type service struct {
	mu          sync.Mutex
	accounts    []Account
	credentials []Credential

	accountStore    *jsonstore.Store[[]Account]
	credentialStore *jsonstore.Store[[]Credential]
	sessions        *redis.Client
	jwtCfg          config.JWTConfig
	passwordCfg     config.PasswordConfig
	now             func() time.Time
}

// ServiceParams bundles the dependencies required to build an account service.
type ServiceParams struct {
	AccountStore    *jsonstore.Store[[]Account]
	CredentialStore *jsonstore.Store[[]Credential]
	Sessions        *redis.Client
	JWTConfig       config.JWTConfig
	PasswordConfig  config.PasswordConfig
}

// NewService loads both documents and constructs the account service.
func NewService(params ServiceParams) (Service, error) {
	if params.AccountStore == nil {
		return nil, fmt.Errorf("account store is required")
	}
	if params.CredentialStore == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	return &service{
		accounts:        params.AccountStore.Load(),
		credentials:     params.CredentialStore.Load(),
		accountStore:    params.AccountStore,
		credentialStore: params.CredentialStore,
		sessions:        params.Sessions,
		jwtCfg:          params.JWTConfig,
		passwordCfg:     params.PasswordConfig,
		now:             func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Username, username) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		if strings.EqualFold(existing.Email, email) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}

	account := Account{
		ID:          uuid.New(),
		Username:    username,
		Email:       email,
		DisplayName: displayName,
		JoinedAt:    s.now(),
		Tier:        loyalty.TierNewbie,
		Claimed:     []string{},
	}

	s.accounts = append(s.accounts, account)
	s.credentials = append(s.credentials, Credential{UserID: account.ID, PasswordHash: hash})

	token, err := s.mintToken(account)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Account: account}, s.persistLocked(true)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	identifier := strings.TrimSpace(req.Identifier)

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.findByIdentifierLocked(identifier)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	credential, ok := s.credentialForLocked(account.ID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	match, err := security.VerifyPassword(req.Password, credential.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := s.mintToken(account)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Account: account}, nil
}

// Logout revokes the token's session id for the remainder of its lifetime.
// Without Redis this is a no-op and the token simply ages out.
func (s *service) Logout(ctx context.Context, claims *pkgAuth.AccessTokenClaims) error {
	if claims == nil || claims.ID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}

	ttl := time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.sessions.RevokeSession(ctx, claims.ID, ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.findByIDLocked(userID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}
	return &account, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.indexOfLocked(userID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}

	if req.DisplayName != nil {
		s.accounts[idx].DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Bio != nil {
		s.accounts[idx].Bio = strings.TrimSpace(*req.Bio)
	}
	if req.Location != nil {
		s.accounts[idx].Location = strings.TrimSpace(*req.Location)
	}
	if req.HomeAddress != nil {
		s.accounts[idx].HomeAddress = strings.TrimSpace(*req.HomeAddress)
	}
	if req.Suburb != nil {
		s.accounts[idx].Suburb = strings.TrimSpace(*req.Suburb)
	}

	account := s.accounts[idx]
	return &account, s.persistLocked(false)
}

// RecomputeStats overwrites the derived fields from a fresh ledger snapshot.
// Points accrue at the fixed per-donation rate minus whatever was already
// spent on reward claims.
func (s *service) RecomputeStats(ctx context.Context, userID uuid.UUID, donationCount int, co2SavedKg float64) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.indexOfLocked(userID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}

	balance := loyalty.PointsFor(donationCount) - s.accounts[idx].PointsSpent
	if balance < 0 {
		balance = 0
	}

	s.accounts[idx].Donations = donationCount
	s.accounts[idx].CO2SavedKg = co2SavedKg
	s.accounts[idx].PointsBalance = balance
	s.accounts[idx].Tier = loyalty.TierFor(donationCount)

	account := s.accounts[idx]
	return &account, s.persistLocked(false)
}

func (s *service) Loyalty(ctx context.Context, userID uuid.UUID) (*LoyaltySummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.findByIDLocked(userID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}

	return &LoyaltySummary{
		Tier:            account.Tier,
		TierDisplayName: account.Tier.DisplayName(),
		Points:          account.PointsBalance,
		DonationCount:   account.Donations,
		CO2SavedKg:      account.CO2SavedKg,
		Progress:        loyalty.ProgressToNextTier(account.Donations),
		Available:       loyalty.AvailableRewards(account),
		Claimed:         loyalty.ClaimedRewards(account),
	}, nil
}

// ClaimReward spends points on a catalog entry. Re-claiming an already-held
// reward fails without touching the account.
func (s *service) ClaimReward(ctx context.Context, userID uuid.UUID, rewardID string) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reward, ok := loyalty.RewardByID(rewardID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "reward not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, found := s.indexOfLocked(userID)
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}

	account := s.accounts[idx]
	if account.HasClaimed(reward.ID) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "reward already claimed")
	}
	if !loyalty.Eligible(reward, account) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "reward requirements not met")
	}

	s.accounts[idx].PointsBalance -= reward.PointsRequired
	s.accounts[idx].PointsSpent += reward.PointsRequired
	s.accounts[idx].Claimed = append(s.accounts[idx].Claimed, reward.ID)

	account = s.accounts[idx]
	return &account, s.persistLocked(false)
}

func (s *service) mintToken(account Account) (string, error) {
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), pkgAuth.AccessTokenPayload{
		UserID:   account.ID,
		Username: account.Username,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return token, nil
}

func (s *service) findByIdentifierLocked(identifier string) (Account, bool) {
	for _, account := range s.accounts {
		if strings.EqualFold(account.Username, identifier) || strings.EqualFold(account.Email, identifier) {
			return account, true
		}
	}
	return Account{}, false
}

func (s *service) findByIDLocked(id uuid.UUID) (Account, bool) {
	if idx, ok := s.indexOfLocked(id); ok {
		return s.accounts[idx], true
	}
	return Account{}, false
}

func (s *service) indexOfLocked(id uuid.UUID) (int, bool) {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *service) credentialForLocked(id uuid.UUID) (Credential, bool) {
	for _, credential := range s.credentials {
		if credential.UserID == id {
			return credential, true
		}
	}
	return Credential{}, false
}

// persistLocked rewrites the account document, and the credential document
// when asked. In-memory state stays authoritative on failure; the mutation is
// applied and the caller gets a CodeStorage error to surface.
func (s *service) persistLocked(withCredentials bool) error {
	accounts := make([]Account, len(s.accounts))
	copy(accounts, s.accounts)
	if err := s.accountStore.Save(accounts); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist accounts")
	}
	if withCredentials {
		credentials := make([]Credential, len(s.credentials))
		copy(credentials, s.credentials)
		if err := s.credentialStore.Save(credentials); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist credentials")
		}
	}
	return nil
}
