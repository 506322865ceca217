package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"noto/internal/noto/domain/entities"
	"noto/internal/noto/domain/services"
	"noto/internal/noto/ports/storage"
	svc "noto/internal/noto/ports/services"
	"noto/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodSetPasscode   = "SetPasscode"
	methodOpenVault     = "OpenVault"
	methodCloseVault    = "CloseVault"
	methodValidateToken = "ValidateVaultToken"

	msgPasscodeSet      = "vault passcode set"
	msgVaultOpened      = "vault opened"
	msgVaultClosed      = "vault closed"
	msgWrongPasscode    = "wrong vault passcode"
	msgTokenRejected    = "vault token rejected"
	msgErrHashPasscode  = "failed to hash passcode"
	msgErrVerifyPass    = "error verifying passcode"
	msgErrIssueToken    = "failed to issue vault token"
	msgErrPersistVault  = "failed to persist vault state"
	msgVaultAccessStale = "vault token is valid but vault is closed"

	errCtxHashingPasscode  = "hashing passcode"
	errCtxVerifyingPass    = "verifying passcode"
	errCtxIssuingToken     = "issuing vault token"
	errCtxPersistingVault  = "persisting vault state"
	errCtxValidatingToken  = "validating vault token"
	errCtxReadingVault     = "reading vault state"
	errCtxStoringPasscode  = "storing passcode"
	errCtxPasscodeMissing  = "opening vault"
	errCtxCheckingOpenness = "checking vault state"
)

// VaultSession - открытая сессия хранилища.
type VaultSession struct {
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expires_at"`
	Timeout   entities.VaultTimeout `json:"timeout"`
}

// VaultStatus - состояние хранилища без секретов.
type VaultStatus struct {
	IsOpen      bool                  `json:"is_open"`
	HasPasscode bool                  `json:"has_passcode"`
	Timeout     entities.VaultTimeout `json:"timeout"`
}

// VaultUseCase управляет кодом доступа и сессиями хранилища.
type VaultUseCase struct {
	settings  *SettingsRepository
	passcodes svc.PasscodeService
	tokens    svc.VaultTokenService
}

// NewVaultUseCase создает сценарий хранилища.
func NewVaultUseCase(settings *SettingsRepository, passcodes svc.PasscodeService, tokens svc.VaultTokenService) *VaultUseCase {
	return &VaultUseCase{settings: settings, passcodes: passcodes, tokens: tokens}
}

// SetPasscode хэширует passcode и сохраняет хэш.
func (uc *VaultUseCase) SetPasscode(ctx context.Context, passcode string) error {
	log := logger.Log(ctx).With(zap.String("method", methodSetPasscode))

	hash, err := uc.passcodes.Hash(ctx, passcode)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidPasscode) {
			log.Error(ctx, msgErrHashPasscode, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxHashingPasscode, err)
	}
	if err := uc.settings.UpdateVaultPasscode(ctx, hash); err != nil {
		return fmt.Errorf("%s: %w", errCtxStoringPasscode, err)
	}
	log.Info(ctx, msgPasscodeSet)
	return nil
}

// Open проверяет код, отмечает хранилище открытым и выдает токен сессии
// со временем жизни по настройке VaultTimeout.
func (uc *VaultUseCase) Open(ctx context.Context, passcode string) (*VaultSession, error) {
	log := logger.Log(ctx).With(zap.String("method", methodOpenVault))

	cfg, err := uc.settings.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxReadingVault, err)
	}
	if cfg.VaultPasscode == nil {
		return nil, fmt.Errorf("%s: %w", errCtxPasscodeMissing, services.ErrPasscodeNotSet)
	}

	ok, err := uc.passcodes.Verify(ctx, passcode, *cfg.VaultPasscode)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidPasscode) {
			log.Error(ctx, msgErrVerifyPass, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPass, err)
	}
	if !ok {
		log.Warn(ctx, msgWrongPasscode)
		return nil, services.ErrWrongPasscode
	}

	token, expiresAt, err := uc.tokens.Issue(ctx, cfg.VaultTimeout)
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	timeout := cfg.VaultTimeout
	err = uc.settings.Store().Edit(ctx, func(m *storage.MutablePreferences) {
		IsVaultOpenSetting.Write(m, true)
		ScheduledVaultTimeoutSetting.Write(m, &timeout)
	})
	if err != nil {
		log.Error(ctx, msgErrPersistVault, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxPersistingVault, err)
	}

	log.Info(ctx, msgVaultOpened, zap.String("timeout", string(timeout)), zap.Time("expires_at", expiresAt))
	return &VaultSession{Token: token, ExpiresAt: expiresAt, Timeout: timeout}, nil
}

// Close закрывает хранилище и снимает запланированное автозакрытие.
func (uc *VaultUseCase) Close(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodCloseVault))

	err := uc.settings.Store().Edit(ctx, func(m *storage.MutablePreferences) {
		IsVaultOpenSetting.Write(m, false)
		ScheduledVaultTimeoutSetting.Write(m, nil)
	})
	if err != nil {
		log.Error(ctx, msgErrPersistVault, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxPersistingVault, err)
	}
	log.Info(ctx, msgVaultClosed)
	return nil
}

// Status возвращает состояние хранилища.
func (uc *VaultUseCase) Status(ctx context.Context) (VaultStatus, error) {
	cfg, err := uc.settings.LoadConfig(ctx)
	if err != nil {
		return VaultStatus{}, fmt.Errorf("%s: %w", errCtxReadingVault, err)
	}
	return VaultStatus{
		IsOpen:      cfg.IsVaultOpen,
		HasPasscode: cfg.VaultPasscode != nil,
		Timeout:     cfg.VaultTimeout,
	}, nil
}

// ValidateToken проверяет токен сессии. Токен закрытого хранилища недействителен.
func (uc *VaultUseCase) ValidateToken(ctx context.Context, token string) (*services.VaultClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))

	claims, err := uc.tokens.Validate(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, err)
	}

	isOpen, err := Load(ctx, uc.settings, IsVaultOpenSetting)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCheckingOpenness, err)
	}
	if !isOpen {
		log.Debug(ctx, msgVaultAccessStale)
		return nil, services.ErrVaultClosed
	}
	return claims, nil
}
