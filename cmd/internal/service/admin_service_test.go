package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartclinic/cmd/internal/domain/entity"
	"smartclinic/cmd/internal/utils/apierror"
)

func newAdminFixture() *DefaultAdminService {
	admins := &fakeAdminRepo{admins: []*entity.Admin{
		{ID: 1, Username: "root", Password: "sekret1"},
	}}
	return NewAdminService(admins, &fakeTokenIssuer{}, newTestValidator())
}

func TestAdminLogin(t *testing.T) {
	svc := newAdminFixture()

	resp, apierr := svc.Login(&AdminLoginRequest{Username: "root", Password: "sekret1"})
	require.Nil(t, apierr)
	assert.Equal(t, "token-for-root", resp.Token)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	svc := newAdminFixture()

	_, apierr := svc.Login(&AdminLoginRequest{Username: "root", Password: "wrong"})
	assert.Equal(t, apierror.AdminCredentialsMismatchError, apierr)
}

func TestAdminLogin_UnknownUser(t *testing.T) {
	svc := newAdminFixture()

	_, apierr := svc.Login(&AdminLoginRequest{Username: "ghost", Password: "sekret1"})
	assert.Equal(t, apierror.AdminCredentialsMismatchError, apierr)
}

func TestAdminLogin_MissingFields(t *testing.T) {
	svc := newAdminFixture()

	_, apierr := svc.Login(&AdminLoginRequest{Username: "root"})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}
