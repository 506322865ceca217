package services

import (
	"noto/internal/noto/ports/services"
)

// ServiceFactory создает сервисы хранилища.
type ServiceFactory struct {
	passcodeService services.PasscodeService
	tokenService    services.VaultTokenService
}

func NewServiceFactory(jwtSecretKey string, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passcodeService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtSecretKey),
	}
}

func (f *ServiceFactory) PasscodeService() services.PasscodeService {
	return f.passcodeService
}

func (f *ServiceFactory) TokenService() services.VaultTokenService {
	return f.tokenService
}
