package routes

import (
	"github.com/labstack/echo/v4"

	"smartclinic/cmd/internal/service"
	"smartclinic/cmd/internal/utils"
	"smartclinic/cmd/internal/utils/apierror"
)

// Authorizer verifies a bearer credential for a role and yields the proof
// value the services require for mutating calls.
type Authorizer interface {
	Authorize(token string, role service.Role) (service.AuthorizedAs, apierror.ErrorResponse)
}

func authorize(c echo.Context, authorizer Authorizer, role service.Role) (service.AuthorizedAs, apierror.ErrorResponse) {
	token, err := utils.BearerToken(c)
	if err != nil {
		return service.AuthorizedAs{}, apierror.InvalidAuthTokenError
	}
	return authorizer.Authorize(token, role)
}

// The web client sends the literal string "null" for an omitted filter.
func filterValue(raw string) string {
	if raw == "null" {
		return ""
	}
	return raw
}
