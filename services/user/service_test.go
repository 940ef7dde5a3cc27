package user

import (
	"testing"
	"time"

	userModel "zap-shift/models/user"
	"zap-shift/testutil"
	userTypes "zap-shift/types/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupPostgres(t)
	return NewUserService(db), db
}

func TestUpsertCreatesThenRefreshes(t *testing.T) {
	svc, _ := newTestService(t)

	created, isNew, err := svc.Upsert(userTypes.UserUpsertRequest{
		Email: "karim@example.com",
		Name:  "Karim",
	})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, userModel.RoleUser, created.Role)

	firstLogin := created.LastLogIn
	time.Sleep(10 * time.Millisecond)

	again, isNew, err := svc.Upsert(userTypes.UserUpsertRequest{
		Email: "karim@example.com",
		Name:  "Karim Renamed",
	})
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID, again.ID)
	// Only the login stamp moves on a repeat login.
	assert.Equal(t, "Karim", again.Name)
	assert.True(t, again.LastLogIn.After(firstLogin))
}

func TestSearchByPartialEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Upsert(userTypes.UserUpsertRequest{Email: "karim@example.com", Name: "Karim"})
	require.NoError(t, err)
	_, _, err = svc.Upsert(userTypes.UserUpsertRequest{Email: "rahim@other.net", Name: "Rahim"})
	require.NoError(t, err)

	matches, err := svc.Search("KARIM")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "karim@example.com", matches[0].Email)

	all, err := svc.Search("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRoleByEmailDefaultsToUser(t *testing.T) {
	svc, db := newTestService(t)

	role, err := svc.RoleByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, userModel.RoleUser, role)

	require.NoError(t, db.Create(&userModel.User{
		Email: "admin@example.com",
		Role:  userModel.RoleAdmin,
	}).Error)

	role, err = svc.RoleByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, userModel.RoleAdmin, role)
}

func TestUpdateRole(t *testing.T) {
	svc, _ := newTestService(t)

	created, _, err := svc.Upsert(userTypes.UserUpsertRequest{Email: "karim@example.com", Name: "Karim"})
	require.NoError(t, err)

	updated, err := svc.UpdateRole(created.ID, userModel.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, userModel.RoleAdmin, updated.Role)

	_, err = svc.UpdateRole(created.ID, userModel.Role("superuser"))
	assert.Error(t, err)

	_, err = svc.UpdateRole(9999, userModel.RoleAdmin)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)

	created, _, err := svc.Upsert(userTypes.UserUpsertRequest{Email: "karim@example.com", Name: "Karim"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))
	assert.Error(t, svc.Delete(created.ID))

	role, err := svc.RoleByEmail("karim@example.com")
	require.NoError(t, err)
	assert.Equal(t, userModel.RoleUser, role)
}
