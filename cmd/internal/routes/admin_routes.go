package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartclinic/cmd/internal/service"
	"smartclinic/cmd/internal/utils/apierror"
)

type AdminService interface {
	Login(req *service.AdminLoginRequest) (*service.LoginResponse, apierror.ErrorResponse)
}

type DefaultAdminRoute struct {
	AdminService AdminService
}

func NewAdminDefault(adminService AdminService) *DefaultAdminRoute {
	return &DefaultAdminRoute{AdminService: adminService}
}

func (a *DefaultAdminRoute) Login(c echo.Context) error {
	var req service.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := a.AdminService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
