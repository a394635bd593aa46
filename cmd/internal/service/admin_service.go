package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"smartclinic/cmd/internal/utils/apierror"
)

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type DefaultAdminService struct {
	Admins   AdminRepository
	Tokens   TokenIssuer
	Validate *validator.Validate
}

func NewAdminService(admins AdminRepository, tokens TokenIssuer, validate *validator.Validate) *DefaultAdminService {
	return &DefaultAdminService{Admins: admins, Tokens: tokens, Validate: validate}
}

func (a *DefaultAdminService) Login(req *AdminLoginRequest) (*LoginResponse, apierror.ErrorResponse) {
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	admin, err := a.Admins.FindByUsername(req.Username)
	if err != nil {
		log.Errorf("failed to fetch admin by username: %v", err)
		return nil, apierror.InternalServerError
	}
	if admin == nil || admin.Password != req.Password {
		return nil, apierror.AdminCredentialsMismatchError
	}

	token, err := a.Tokens.Generate(admin.Username)
	if err != nil {
		log.Errorf("failed to generate token for admin %d: %v", admin.ID, err)
		return nil, apierror.InternalServerError
	}
	return &LoginResponse{Token: token, Message: "Login successful"}, nil
}
