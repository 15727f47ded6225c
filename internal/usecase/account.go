package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/domain/repository"
	pkgAuth "github.com/miccroten/quoteportal/internal/pkg/auth"
)

// AccountUseCase handles account lifecycle and token management.
type AccountUseCase struct {
	accounts repository.AccountRepository
	profiles repository.ProfileRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(accounts repository.AccountRepository, profiles repository.ProfileRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AccountUseCase {
	return &AccountUseCase{accounts: accounts, profiles: profiles, hasher: hasher, tokens: strategy}
}

// Register creates a customer account, seeds the contact profile and returns
// an auth token.
func (u *AccountUseCase) Register(ctx context.Context, email, password, fullName, phone string) (*model.Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	acc, err := u.accounts.Create(ctx, email, hash, model.RoleCustomer)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	profile := model.Profile{UserID: acc.ID}
	if fullName = strings.TrimSpace(fullName); fullName != "" {
		profile.FullName = &fullName
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		profile.Phone = &phone
	}
	if err := u.profiles.Upsert(ctx, profile); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(pkgAuth.Claims{UserID: acc.ID, Role: string(acc.Role)})
	if err != nil {
		return nil, "", err
	}

	return acc, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AccountUseCase) Authenticate(ctx context.Context, email, password string) (*model.Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	acc, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(acc.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(pkgAuth.Claims{UserID: acc.ID, Role: string(acc.Role)})
	if err != nil {
		return nil, "", err
	}

	return acc, token, nil
}

// ParseClaims verifies a session token and returns the caller identity.
func (u *AccountUseCase) ParseClaims(token string) (model.Claims, error) {
	if token == "" {
		return model.Claims{}, pkgAuth.ErrInvalidToken
	}
	parsed, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Claims{}, err
	}
	role := model.Role(parsed.Role)
	if !role.Valid() {
		return model.Claims{}, pkgAuth.ErrInvalidToken
	}
	return model.Claims{UserID: parsed.UserID, Role: role}, nil
}

// GetByID fetches account by identifier.
func (u *AccountUseCase) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	return u.accounts.GetByID(ctx, id)
}

// Profile returns stored contact details for a user. A user who never filled
// the profile gets an empty one rather than an error.
func (u *AccountUseCase) Profile(ctx context.Context, userID int64) (*model.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.Profile{UserID: userID}, nil
		}
		return nil, err
	}
	return p, nil
}

// UpdateProfile overwrites the caller's contact details.
func (u *AccountUseCase) UpdateProfile(ctx context.Context, claims model.Claims, fullName, phone string) (*model.Profile, error) {
	if err := requireRole(claims, model.RoleCustomer); err != nil {
		return nil, err
	}
	profile := model.Profile{UserID: claims.UserID}
	if fullName = strings.TrimSpace(fullName); fullName != "" {
		profile.FullName = &fullName
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		profile.Phone = &phone
	}
	if err := u.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
