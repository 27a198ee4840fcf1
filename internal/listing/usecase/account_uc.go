package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.uber.org/zap"
)

const (
	minPasswordLength = 6
	// bcrypt refuses longer input.
	maxPasswordLength = 72
)

// AccountUsecase covers registration, login and self-service profile management.
type AccountUsecase struct {
	d      Deps
	logger *logger.Logger
}

func NewAccountUsecase(d Deps) *AccountUsecase {
	return &AccountUsecase{d: d, logger: d.log().Named("AccountUsecase")}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Province string
	District string
	Ward     string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	return validatePassword(password)
}

// validatePassword bounds the length in bytes.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordLength)
	}
	return nil
}

// Register creates an ACTIVE user account and returns it with a fresh token.
func (uc *AccountUsecase) Register(ctx context.Context, in RegisterInput) (*domain.Account, string, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" {
		return nil, "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if err := validateCredentials(email, in.Password); err != nil {
		return nil, "", err
	}

	if _, err := uc.d.Accounts.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hash, err := uc.d.Hasher.Hash(in.Password)
	if err != nil {
		uc.logger.Error("Failed to hash password", zap.Error(err))
		return nil, "", err
	}

	now := uc.d.now()
	account := &domain.Account{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Province:     in.Province,
		District:     in.District,
		Ward:         in.Ward,
		Role:         domain.RoleUser,
		Status:       domain.AccountActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.d.Accounts.Create(ctx, account); err != nil {
		return nil, "", err
	}

	token, err := uc.d.Tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, "", err
	}
	uc.logger.Info("Account registered", zap.String("account_id", account.ID))
	return account, token, nil
}

// Login verifies credentials of an ACTIVE account and issues a token carrying its role.
func (uc *AccountUsecase) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	account, err := uc.authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := uc.d.Tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// AdminLogin is Login restricted to ADMIN accounts.
func (uc *AccountUsecase) AdminLogin(ctx context.Context, email, password string) (*domain.Account, string, error) {
	account, err := uc.authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if account.Role != domain.RoleAdmin {
		uc.logger.Warn("Admin login attempted by non-admin", zap.String("account_id", account.ID))
		return nil, "", domain.ErrInvalidCredentials
	}
	token, err := uc.d.Tokens.Issue(account.ID, domain.RoleAdmin)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

func (uc *AccountUsecase) authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := uc.d.Accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !uc.d.Hasher.Verify(account.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !account.IsActive() {
		return nil, domain.ErrAccountNotActive
	}
	return account, nil
}

func (uc *AccountUsecase) Profile(ctx context.Context, viewer domain.Viewer) (*domain.Account, error) {
	if d := domain.AuthorizeSelf(viewer); d != domain.Allow {
		return nil, d.Err()
	}
	return uc.d.Accounts.FindByID(ctx, viewer.AccountID)
}

func (uc *AccountUsecase) UpdateProfile(ctx context.Context, viewer domain.Viewer, patch domain.ProfilePatch) (*domain.Account, error) {
	account, err := uc.Profile(ctx, viewer)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		account.Name = name
	}
	if patch.Phone != nil {
		account.Phone = *patch.Phone
	}
	if patch.Province != nil {
		account.Province = *patch.Province
	}
	if patch.District != nil {
		account.District = *patch.District
	}
	if patch.Ward != nil {
		account.Ward = *patch.Ward
	}
	account.UpdatedAt = uc.d.now()

	if err := uc.d.Accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ChangePassword requires the current password.
func (uc *AccountUsecase) ChangePassword(ctx context.Context, viewer domain.Viewer, oldPassword, newPassword string) error {
	account, err := uc.Profile(ctx, viewer)
	if err != nil {
		return err
	}
	if !uc.d.Hasher.Verify(account.PasswordHash, oldPassword) {
		return domain.ErrInvalidCredentials
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := uc.d.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	account.UpdatedAt = uc.d.now()
	if err := uc.d.Accounts.Update(ctx, account); err != nil {
		return err
	}
	uc.logger.Info("Password changed", zap.String("account_id", account.ID))
	return nil
}

// EnsureAdmin creates an ACTIVE admin account, or promotes and reactivates an existing one.
func (uc *AccountUsecase) EnsureAdmin(ctx context.Context, name, email, password string) (*domain.Account, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	hash, err := uc.d.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := uc.d.now()

	existing, err := uc.d.Accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Role = domain.RoleAdmin
		existing.Status = domain.AccountActive
		existing.PasswordHash = hash
		if name != "" {
			existing.Name = name
		}
		existing.UpdatedAt = now
		if err := uc.d.Accounts.Update(ctx, existing); err != nil {
			return nil, err
		}
		uc.logger.Info("Existing account promoted to admin", zap.String("account_id", existing.ID))
		return existing, nil
	case errors.Is(err, domain.ErrNotFound):
		if name == "" {
			name = "Administrator"
		}
		admin := &domain.Account{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         domain.RoleAdmin,
			Status:       domain.AccountActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.d.Accounts.Create(ctx, admin); err != nil {
			return nil, err
		}
		uc.logger.Info("Admin account created", zap.String("account_id", admin.ID))
		return admin, nil
	default:
		return nil, err
	}
}
