package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"smartclinic/cmd/internal/domain/entity"
	"smartclinic/cmd/internal/service"
	"smartclinic/cmd/internal/utils/apierror"
)

type AppointmentService interface {
	Book(auth service.AuthorizedAs, req *service.BookingRequest) apierror.ErrorResponse
	Update(auth service.AuthorizedAs, appointmentID int, req *service.UpdateAppointmentRequest) apierror.ErrorResponse
	Cancel(auth service.AuthorizedAs, appointmentID int) apierror.ErrorResponse
	ChangeStatus(auth service.AuthorizedAs, appointmentID, status int) apierror.ErrorResponse
	ListForDoctor(doctorID int, date, patientName string) ([]*service.AppointmentResponse, apierror.ErrorResponse)
}

type DefaultAppointmentRoute struct {
	AppointmentService AppointmentService
	Auth               Authorizer
}

func NewAppointmentDefault(apptService AppointmentService, auth Authorizer) *DefaultAppointmentRoute {
	return &DefaultAppointmentRoute{AppointmentService: apptService, Auth: auth}
}

// GetAppointments lists a doctor's day, optionally narrowed by patient name.
func (a *DefaultAppointmentRoute) GetAppointments(c echo.Context) error {
	if _, apierr := authorize(c, a.Auth, service.RoleDoctor); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	doctorID, err := strconv.Atoi(c.QueryParam("doctorId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("doctorId", "int"))
	}

	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("date"))
	}

	patientName := filterValue(c.QueryParam("patientName"))
	appts, apierr := a.AppointmentService.ListForDoctor(doctorID, date, patientName)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAppointmentRoute) BookAppointment(c echo.Context) error {
	auth, apierr := authorize(c, a.Auth, service.RolePatient)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := a.AppointmentService.Book(auth, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Appointment booked successfully"})
}

func (a *DefaultAppointmentRoute) UpdateAppointment(c echo.Context) error {
	auth, apierr := authorize(c, a.Auth, service.RolePatient)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	appointmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req service.UpdateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := a.AppointmentService.Update(auth, appointmentID, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Appointment updated successfully"})
}

func (a *DefaultAppointmentRoute) CancelAppointment(c echo.Context) error {
	auth, apierr := authorize(c, a.Auth, service.RolePatient)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	appointmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	if apierr := a.AppointmentService.Cancel(auth, appointmentID); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Appointment cancelled successfully"})
}

func (a *DefaultAppointmentRoute) ChangeStatus(c echo.Context) error {
	auth, apierr := authorize(c, a.Auth, service.RoleDoctor)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	appointmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	status, err := strconv.Atoi(c.Param("status"))
	if err != nil || (status != entity.StatusScheduled && status != entity.StatusCompleted) {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("status", "0|1"))
	}

	if apierr := a.AppointmentService.ChangeStatus(auth, appointmentID, status); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated successfully"})
}
