package routes

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"smartclinic/cmd/internal/domain/entity"
	"smartclinic/cmd/internal/service"
	"smartclinic/cmd/internal/utils/apierror"
)

type PrescriptionService interface {
	Save(auth service.AuthorizedAs, req *service.PrescriptionRequest) apierror.ErrorResponse
	GetByAppointment(appointmentID int) ([]*service.PrescriptionResponse, apierror.ErrorResponse)
}

// AppointmentStatusService is the slice of the appointment service the
// prescription flow needs: issuing a prescription completes the appointment.
type AppointmentStatusService interface {
	ChangeStatus(auth service.AuthorizedAs, appointmentID, status int) apierror.ErrorResponse
}

type DefaultPrescriptionRoute struct {
	PrescriptionService PrescriptionService
	Appointments        AppointmentStatusService
	Auth                Authorizer
}

func NewPrescriptionDefault(prescriptionService PrescriptionService, appts AppointmentStatusService, auth Authorizer) *DefaultPrescriptionRoute {
	return &DefaultPrescriptionRoute{PrescriptionService: prescriptionService, Appointments: appts, Auth: auth}
}

func (p *DefaultPrescriptionRoute) SavePrescription(c echo.Context) error {
	auth, apierr := authorize(c, p.Auth, service.RoleDoctor)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.PrescriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := p.Appointments.ChangeStatus(auth, req.AppointmentID, entity.StatusCompleted); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := p.PrescriptionService.Save(auth, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Prescription saved successfully"})
}

func (p *DefaultPrescriptionRoute) GetPrescription(c echo.Context) error {
	if _, apierr := authorize(c, p.Auth, service.RoleDoctor); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	appointmentID, err := strconv.Atoi(c.Param("appointmentId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("appointmentId", "int"))
	}

	prescriptions, apierr := p.PrescriptionService.GetByAppointment(appointmentID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"prescriptions": prescriptions}
	return c.JSON(http.StatusOK, &resp)
}
