package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"smartclinic/cmd/internal/service"
	"smartclinic/cmd/internal/utils/apierror"
)

type PatientService interface {
	Register(req *service.PatientRequest) apierror.ErrorResponse
	Login(req *service.LoginRequest) (*service.PatientLoginResponse, apierror.ErrorResponse)
	GetDetails(subject string) (*service.PatientResponse, apierror.ErrorResponse)
	ListAppointments(patientID int) ([]*service.AppointmentResponse, apierror.ErrorResponse)
	FilterAppointments(subject, condition, doctorName string) ([]*service.AppointmentResponse, apierror.ErrorResponse)
}

type DefaultPatientRoute struct {
	PatientService PatientService
	Auth           Authorizer
}

func NewPatientDefault(patientService PatientService, auth Authorizer) *DefaultPatientRoute {
	return &DefaultPatientRoute{PatientService: patientService, Auth: auth}
}

func (p *DefaultPatientRoute) Register(c echo.Context) error {
	var req service.PatientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := p.PatientService.Register(&req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Patient registered successfully"})
}

func (p *DefaultPatientRoute) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := p.PatientService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (p *DefaultPatientRoute) GetDetails(c echo.Context) error {
	auth, apierr := authorize(c, p.Auth, service.RolePatient)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	patient, apierr := p.PatientService.GetDetails(auth.Subject)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, patient)
}

// GetOwnAppointments serves the patient's own appointments, optionally
// filtered by condition (past/future) and doctor-name substring.
func (p *DefaultPatientRoute) GetOwnAppointments(c echo.Context) error {
	auth, apierr := authorize(c, p.Auth, service.RolePatient)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	condition := filterValue(c.QueryParam("condition"))
	doctorName := filterValue(c.QueryParam("doctorName"))

	appts, apierr := p.PatientService.FilterAppointments(auth.Subject, condition, doctorName)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

// GetPatientAppointments lists any patient's appointments for a caller that
// names its own role (doctor or patient) and holds a matching credential.
func (p *DefaultPatientRoute) GetPatientAppointments(c echo.Context) error {
	role := strings.TrimSpace(c.QueryParam("role"))
	if role == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("role"))
	}

	if _, apierr := authorize(c, p.Auth, service.Role(role)); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	appts, apierr := p.PatientService.ListAppointments(patientID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}
