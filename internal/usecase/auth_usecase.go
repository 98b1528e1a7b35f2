package usecase

import (
	"context"
	"time"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
	"foodapp/pkg/logger"
)

type AuthUseCase struct {
	firebaseAuth FirebaseAuthClient
	accountRepo  repository.AccountRepository
	storeRepo    repository.StoreRepository
	sessions     *SessionHub
}

func NewAuthUseCase(
	firebaseAuth FirebaseAuthClient,
	accountRepo repository.AccountRepository,
	storeRepo repository.StoreRepository,
	sessions *SessionHub,
) *AuthUseCase {
	return &AuthUseCase{
		firebaseAuth: firebaseAuth,
		accountRepo:  accountRepo,
		storeRepo:    storeRepo,
		sessions:     sessions,
	}
}

type RegisterInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Username    string `json:"username" validate:"required,min=3,max=30"`
	FirstName   string `json:"first_name" validate:"max=50"`
	LastName    string `json:"last_name" validate:"max=50"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=8,max=15"`
	Role        string `json:"role" validate:"omitempty,oneof=CUSTOMER STORE"`
}

type AuthResult struct {
	Account *entity.Account `json:"account"`
	Token   string          `json:"token"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleCustomer
	}

	if existing, err := uc.accountRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, errors.Conflict("email already registered")
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, errors.Internal("Failed to create user account", err)
	}

	now := time.Now()
	account := &entity.Account{
		ID:          uid,
		Email:       input.Email,
		Username:    input.Username,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Role:        role,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, errors.Internal("Failed to store account profile", err)
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to sign in after registration", err)
	}

	uc.sessions.Set(LoggedIn(account, token))
	logger.Info("Registered new account %s role=%s", uid, role)

	return &AuthResult{Account: account, Token: token}, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid token", err)
	}

	account, err := uc.accountRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, errors.Forbidden("Account is disabled", nil)
	}

	state := LoggedIn(account, token)
	if account.IsStoreOwner() {
		if store, err := uc.storeRepo.GetByAccountID(ctx, uid); err == nil {
			account.StoreID = store.ID
			state = state.WithStore(store)
		}
	}

	uc.sessions.Set(state)

	return &AuthResult{Account: account, Token: token}, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context) {
	uc.sessions.Set(LoggedOut())
}

// Authenticate resolves a bearer token to an account. Used by the auth
// middleware on every request.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.Account, error) {
	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	account, err := uc.accountRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, errors.Forbidden("Account is disabled", nil)
	}
	return account, nil
}

type UpdateProfileInput struct {
	FirstName   string `json:"first_name" validate:"max=50"`
	LastName    string `json:"last_name" validate:"max=50"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=8,max=15"`
	Avatar      string `json:"avatar" validate:"omitempty,url"`
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, accountID string, input UpdateProfileInput) (*entity.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		account.FirstName = input.FirstName
	}
	if input.LastName != "" {
		account.LastName = input.LastName
	}
	if input.PhoneNumber != "" {
		account.PhoneNumber = input.PhoneNumber
	}
	if input.Avatar != "" {
		account.Avatar = input.Avatar
	}
	account.UpdatedAt = time.Now()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	// Keep the live session in sync so chat projections pick up the
	// new display identity immediately.
	if current := uc.sessions.Current(); current.UserID() == accountID {
		uc.sessions.Set(LoggedIn(account, current.Token).WithStore(current.Store))
	}

	return account, nil
}

func (uc *AuthUseCase) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if _, err := uc.firebaseAuth.SignInWithEmailPassword(account.Email, oldPassword); err != nil {
		return errors.Unauthorized("Current password is incorrect", err)
	}

	if err := uc.firebaseAuth.UpdateUserPassword(ctx, accountID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}
	return nil
}
