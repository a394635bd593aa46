package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartclinic/cmd/internal/service"
	"smartclinic/cmd/internal/utils/apierror"
)

// fakeAuthorizer accepts exactly one token/role pair.
type fakeAuthorizer struct {
	token   string
	role    service.Role
	subject string
}

func (f *fakeAuthorizer) Authorize(token string, role service.Role) (service.AuthorizedAs, apierror.ErrorResponse) {
	if token != f.token || role != f.role {
		return service.AuthorizedAs{}, apierror.InvalidAuthTokenError
	}
	return service.AuthorizedAs{Role: f.role, Subject: f.subject}, nil
}

type fakeDoctorService struct {
	availability []string
	filtered     []*service.DoctorResponse

	gotName      string
	gotSpecialty string
	gotPeriod    string
}

func (f *fakeDoctorService) GetAvailability(doctorID int, date string) ([]string, apierror.ErrorResponse) {
	return f.availability, nil
}

func (f *fakeDoctorService) GetDoctors() ([]*service.DoctorResponse, apierror.ErrorResponse) {
	return f.filtered, nil
}

func (f *fakeDoctorService) SaveDoctor(req *service.DoctorRequest) apierror.ErrorResponse {
	return nil
}

func (f *fakeDoctorService) UpdateDoctor(req *service.DoctorUpdateRequest) apierror.ErrorResponse {
	return nil
}

func (f *fakeDoctorService) DeleteDoctor(id int) apierror.ErrorResponse {
	return nil
}

func (f *fakeDoctorService) Login(req *service.LoginRequest) (*service.LoginResponse, apierror.ErrorResponse) {
	return nil, apierror.CredentialsMismatchError
}

func (f *fakeDoctorService) FilterDoctors(name, specialty, period string) ([]*service.DoctorResponse, apierror.ErrorResponse) {
	f.gotName, f.gotSpecialty, f.gotPeriod = name, specialty, period
	return f.filtered, nil
}

func newAvailabilityContext(t *testing.T, target, bearer string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetAvailabilityRoute(t *testing.T) {
	auth := &fakeAuthorizer{token: "good-token", role: service.RolePatient, subject: "jd@mail.test"}
	route := NewDoctorDefault(&fakeDoctorService{availability: []string{"09:00", "10:00"}}, auth)

	c, rec := newAvailabilityContext(t, "/api/doctors/1/availability?date=2026-09-01&role=patient", "good-token")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, route.GetAvailability(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"09:00", "10:00"}, body["availability"])
}

func TestGetAvailabilityRoute_MissingParams(t *testing.T) {
	auth := &fakeAuthorizer{token: "good-token", role: service.RolePatient}
	route := NewDoctorDefault(&fakeDoctorService{}, auth)

	c, rec := newAvailabilityContext(t, "/api/doctors/1/availability?role=patient", "good-token")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, route.GetAvailability(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newAvailabilityContext(t, "/api/doctors/1/availability?date=2026-09-01", "good-token")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, route.GetAvailability(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newAvailabilityContext(t, "/api/doctors/x/availability?date=2026-09-01&role=patient", "good-token")
	c.SetParamNames("id")
	c.SetParamValues("x")
	require.NoError(t, route.GetAvailability(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAvailabilityRoute_BadToken(t *testing.T) {
	auth := &fakeAuthorizer{token: "good-token", role: service.RolePatient}
	route := NewDoctorDefault(&fakeDoctorService{}, auth)

	c, rec := newAvailabilityContext(t, "/api/doctors/1/availability?date=2026-09-01&role=patient", "stolen-token")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, route.GetAvailability(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// No Authorization header at all.
	c, rec = newAvailabilityContext(t, "/api/doctors/1/availability?date=2026-09-01&role=patient", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, route.GetAvailability(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// The web client sends "null" for filters the user left blank.
func TestFilterRoute_NullLiteralsDropped(t *testing.T) {
	svc := &fakeDoctorService{filtered: []*service.DoctorResponse{}}
	route := NewDoctorDefault(svc, &fakeAuthorizer{})

	c, rec := newAvailabilityContext(t, "/api/doctors/filter?name=null&specialty=cardio&time=null", "")
	require.NoError(t, route.Filter(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "", svc.gotName)
	assert.Equal(t, "cardio", svc.gotSpecialty)
	assert.Equal(t, "", svc.gotPeriod)
}

func TestCreateDoctorRoute_AdminOnly(t *testing.T) {
	auth := &fakeAuthorizer{token: "admin-token", role: service.RoleAdmin, subject: "root"}
	route := NewDoctorDefault(&fakeDoctorService{}, auth)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/doctors", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer patient-token")
	rec := httptest.NewRecorder()

	require.NoError(t, route.CreateDoctor(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
