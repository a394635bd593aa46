package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"smartclinic/cmd/internal/service"
	"smartclinic/cmd/internal/utils/apierror"
)

type DoctorService interface {
	GetAvailability(doctorID int, date string) ([]string, apierror.ErrorResponse)
	GetDoctors() ([]*service.DoctorResponse, apierror.ErrorResponse)
	SaveDoctor(req *service.DoctorRequest) apierror.ErrorResponse
	UpdateDoctor(req *service.DoctorUpdateRequest) apierror.ErrorResponse
	DeleteDoctor(id int) apierror.ErrorResponse
	Login(req *service.LoginRequest) (*service.LoginResponse, apierror.ErrorResponse)
	FilterDoctors(name, specialty, period string) ([]*service.DoctorResponse, apierror.ErrorResponse)
}

type DefaultDoctorRoute struct {
	DoctorService DoctorService
	Auth          Authorizer
}

func NewDoctorDefault(doctorService DoctorService, auth Authorizer) *DefaultDoctorRoute {
	return &DefaultDoctorRoute{DoctorService: doctorService, Auth: auth}
}

func (d *DefaultDoctorRoute) GetDoctors(c echo.Context) error {
	doctors, apierr := d.DoctorService.GetDoctors()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"doctors": doctors}
	return c.JSON(http.StatusOK, &resp)
}

// GetAvailability serves any of the three roles; the caller names its role
// and the credential is checked against that role's store.
func (d *DefaultDoctorRoute) GetAvailability(c echo.Context) error {
	doctorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("date"))
	}

	role := strings.TrimSpace(c.QueryParam("role"))
	if role == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("role"))
	}

	if _, apierr := authorize(c, d.Auth, service.Role(role)); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	availability, apierr := d.DoctorService.GetAvailability(doctorID, date)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"availability": availability}
	return c.JSON(http.StatusOK, &resp)
}

func (d *DefaultDoctorRoute) CreateDoctor(c echo.Context) error {
	if _, apierr := authorize(c, d.Auth, service.RoleAdmin); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.DoctorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := d.DoctorService.SaveDoctor(&req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Doctor added successfully"})
}

func (d *DefaultDoctorRoute) UpdateDoctor(c echo.Context) error {
	if _, apierr := authorize(c, d.Auth, service.RoleAdmin); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.DoctorUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := d.DoctorService.UpdateDoctor(&req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Doctor updated successfully"})
}

func (d *DefaultDoctorRoute) DeleteDoctor(c echo.Context) error {
	if _, apierr := authorize(c, d.Auth, service.RoleAdmin); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	doctorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	if apierr := d.DoctorService.DeleteDoctor(doctorID); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Doctor deleted successfully"})
}

func (d *DefaultDoctorRoute) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := d.DoctorService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (d *DefaultDoctorRoute) Filter(c echo.Context) error {
	name := filterValue(c.QueryParam("name"))
	specialty := filterValue(c.QueryParam("specialty"))
	period := filterValue(c.QueryParam("time"))

	doctors, apierr := d.DoctorService.FilterDoctors(name, specialty, period)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"doctors": doctors}
	return c.JSON(http.StatusOK, &resp)
}
