// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxPasswordBytes is bcrypt's input limit; longer passwords cannot be hashed.
const maxPasswordBytes = 72

// decoyPassword seeds the digest checked when a login names an unknown principal.
const decoyPassword = "storefront-decoy-password"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager     repository.TransactionManager
	principalRepo repository.PrincipalRepository
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	decoyDigest   func() (string, error)
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	PrincipalRepo repository.PrincipalRepository
	Hasher        service.PasswordHasher
	TokenService  service.TokenService
	Logger        *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	hasher := params.Hasher

	return &authService{
		txManager:     params.TxManager,
		principalRepo: params.PrincipalRepo,
		hasher:        hasher,
		tokenService:  params.TokenService,
		decoyDigest: sync.OnceValues(func() (string, error) {
			return hasher.Hash(decoyPassword)
		}),
		logger: params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register hashes the password and stores a new principal under a unique display name.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if input == nil || strings.TrimSpace(input.DisplayName) == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("display name and password are required")
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("password exceeds 72 bytes")
	}

	digest, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.NewRegistrationError(err)
	}

	var principalID uuid.UUID
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		principalRepo := repoFactory.PrincipalRepo()

		_, err := principalRepo.FindByDisplayName(ctx, input.DisplayName)
		if err == nil {
			return domainerrors.ErrPrincipalAlreadyExists.WrapMessage("display name already registered")
		}
		if !errors.Is(err, repository.ErrPrincipalNotFound) {
			return errors.Wrap(err, "failed to look up display name")
		}

		principalID, err = principalRepo.Insert(ctx, &entity.Principal{
			DisplayName:  input.DisplayName,
			PasswordHash: digest,
		})
		if err != nil {
			return errors.Wrap(err, "failed to insert principal")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPrincipalAlreadyExists) {
			srv.log(ctx).Info("Registration rejected, display name taken")

			return nil, err
		}

		srv.log(ctx).Error("Failed to register principal", slog.Any("error", err))

		return nil, domainerrors.NewRegistrationError(err)
	}

	srv.log(ctx).Info("Principal registered", slog.String("principalID", principalID.String()))

	return &usecase.RegisterOutput{PrincipalID: principalID}, nil
}

// Login checks the presented password and issues a token bound to the principal's id.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	principal, err := srv.principalRepo.FindByDisplayName(ctx, input.DisplayName)
	if errors.Is(err, repository.ErrPrincipalNotFound) {
		srv.burnDecoyCheck(ctx, input.Password)
		srv.log(ctx).Warn("Login failed")

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find principal for login")
	}

	if !srv.hasher.Check(input.Password, principal.PasswordHash) {
		srv.log(ctx).Warn("Login failed")

		return nil, domainerrors.ErrInvalidCredentials
	}

	issued, err := srv.tokenService.Issue(principal.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Info("Principal logged in", slog.String("principalID", principal.ID.String()))

	return &usecase.LoginOutput{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

// burnDecoyCheck spends a full digest comparison so unknown names cost the same as wrong passwords.
func (srv *authService) burnDecoyCheck(ctx context.Context, password string) {
	digest, err := srv.decoyDigest()
	if err != nil {
		srv.log(ctx).Error("Failed to prepare decoy digest", slog.Any("error", err))

		return
	}

	_ = srv.hasher.Check(password, digest)
}

// GetPrincipal resolves a verified principal id to its public view.
func (srv *authService) GetPrincipal(ctx context.Context, principalID uuid.UUID) (*usecase.PrincipalOutput, error) {
	principal, err := srv.principalRepo.FindByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			return nil, domainerrors.ErrPrincipalNotFound.WrapMessage("principal not found")
		}

		return nil, errors.Wrap(err, "failed to find principal")
	}

	return &usecase.PrincipalOutput{
		ID:          principal.ID,
		DisplayName: principal.DisplayName,
		CreatedAt:   principal.CreatedAt,
	}, nil
}
