package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what every route hands back on failure: a JSON payload
// plus the HTTP status it travels with.
type ErrorResponse interface {
	Code() int
}

type simpleError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *simpleError) Code() int { return e.Status }

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{Status: code, Message: message}
}

var (
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Internal server error")
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "Malformed request body")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "Invalid or expired token")
	NotFoundError         = NewSimple(http.StatusNotFound, "Not found")

	CredentialsMismatchError      = NewSimple(http.StatusUnauthorized, "Invalid email or password")
	AdminCredentialsMismatchError = NewSimple(http.StatusUnauthorized, "Invalid username or password")

	// CallerNotPatientError covers a verified credential whose subject no
	// longer resolves to a patient record.
	CallerNotPatientError = NewSimple(http.StatusUnauthorized, "Patient not found")
	ForbiddenError        = NewSimple(http.StatusForbidden, "Not allowed to modify this appointment")

	PatientNotFoundError     = NewSimple(http.StatusNotFound, "Patient not found")
	DoctorNotFoundError      = NewSimple(http.StatusNotFound, "Doctor not found")
	AppointmentNotFoundError = NewSimple(http.StatusNotFound, "Appointment not found")

	InvalidDoctorError   = NewSimple(http.StatusBadRequest, "Invalid doctor ID")
	SlotUnavailableError = NewSimple(http.StatusConflict, "Time slot not available")
	PatientExistsError   = NewSimple(http.StatusConflict, "Patient with this email or phone already exists")
	DoctorExistsError    = NewSimple(http.StatusConflict, "Doctor with this email already exists")
)

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter: %s", name))
}

func NewInvalidParamTypeError(name, expected string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter %s must be of type %s", name, expected))
}

// FromValidationError flattens validator failures into a single 400 payload.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	messages := make([]string, len(verrs))
	for i, fe := range verrs {
		messages[i] = fmt.Sprintf("field '%s' failed validation '%s'", fe.Field(), fe.Tag())
	}
	return NewSimple(http.StatusBadRequest, strings.Join(messages, "; "))
}
