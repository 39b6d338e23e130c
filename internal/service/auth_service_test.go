package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaishnavisales/storefront/internal/auth"
	"github.com/vaishnavisales/storefront/internal/storage"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

func signup(t *testing.T, f *fixture, name, email string) *AuthResult {
	t.Helper()
	res, err := f.auth.Signup(context.Background(), SignupRequest{Name: name, Email: email, Password: "pass123"})
	require.NoError(t, err)
	return res
}

func TestSignup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := signup(t, f, "Asha", "Asha@Example.com")
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "asha@example.com", res.User.Email)
	assert.Empty(t, res.User.Password)
	assert.False(t, res.IsAdmin)
	assert.Equal(t, fixedNow.UnixMilli(), res.User.CreatedAt)

	stored, err := f.repos.User.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "pass123", stored.Password, "password is hashed")

	var conflict *errors.ErrConflict
	_, err = f.auth.Signup(ctx, SignupRequest{Name: "Other", Email: "asha@example.com", Password: "x"})
	assert.ErrorAs(t, err, &conflict)
	_, err = f.auth.Signup(ctx, SignupRequest{Name: "Other", Email: testAdminEmail, Password: "x"})
	assert.ErrorAs(t, err, &conflict)

	var verr *errors.ErrValidation
	_, err = f.auth.Signup(ctx, SignupRequest{Name: "", Email: "a@b.c", Password: "x"})
	assert.ErrorAs(t, err, &verr)
	_, err = f.auth.Signup(ctx, SignupRequest{Name: "A", Email: "not-an-email", Password: "x"})
	assert.ErrorAs(t, err, &verr)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := signup(t, f, "Asha", "asha@example.com")

	res, err := f.auth.Login(ctx, LoginRequest{Email: "ASHA@example.com", Password: "pass123"})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, res.User.ID)

	claims, err := f.issuer.Parse(res.Token, auth.TypeSession)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin())

	var unauth *errors.ErrUnauthorized
	_, err = f.auth.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorAs(t, err, &unauth)
	_, err = f.auth.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "pass123"})
	assert.ErrorAs(t, err, &unauth)
}

func TestLogin_Admin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Login(ctx, LoginRequest{Email: testAdminEmail, Password: "admin123"})
	require.NoError(t, err)
	assert.True(t, res.IsAdmin)
	assert.Equal(t, "admin", res.User.ID)
	assert.Equal(t, "Admin", res.User.Name)

	claims, err := f.issuer.Parse(res.Token, auth.TypeSession)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())

	on, err := f.auth.IsAdminMode(ctx, claims)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = f.auth.ToggleAdminMode(ctx, claims)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = f.auth.Login(ctx, LoginRequest{Email: testAdminEmail, Password: "nope"})
	var unauth *errors.ErrUnauthorized
	assert.ErrorAs(t, err, &unauth)
}

func TestToggleAdminMode_CustomerForbidden(t *testing.T) {
	f := newFixture(t)
	res := signup(t, f, "Asha", "asha@example.com")
	claims, err := f.issuer.Parse(res.Token, auth.TypeSession)
	require.NoError(t, err)

	_, err = f.auth.ToggleAdminMode(context.Background(), claims)
	var forbidden *errors.ErrForbidden
	assert.ErrorAs(t, err, &forbidden)
}

func TestLogoutEndsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := signup(t, f, "Asha", "asha@example.com")
	claims, err := f.issuer.Parse(res.Token, auth.TypeSession)
	require.NoError(t, err)

	user, _, err := f.auth.Me(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)

	require.NoError(t, f.auth.Logout(ctx, claims.UserID()))
	_, _, err = f.auth.Me(ctx, claims)
	var unauth *errors.ErrUnauthorized
	assert.ErrorAs(t, err, &unauth)
}

func TestForgotAndResetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	signup(t, f, "Asha", "asha@example.com")

	_, err := f.auth.ForgotPassword(ctx, "nobody@example.com")
	var nf *errors.ErrNotFound
	assert.ErrorAs(t, err, &nf)

	token, err := f.auth.ForgotPassword(ctx, "asha@example.com")
	require.NoError(t, err)

	var unauth *errors.ErrUnauthorized
	err = f.auth.ResetPassword(ctx, ResetPasswordRequest{Token: "bogus", Password: "new"})
	assert.ErrorAs(t, err, &unauth)

	require.NoError(t, f.auth.ResetPassword(ctx, ResetPasswordRequest{Token: token, Password: "newpass"}))
	_, err = f.auth.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "newpass"})
	require.NoError(t, err)
}

func TestResetPassword_TokenWorksOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	signup(t, f, "Asha", "asha@example.com")

	token, err := f.auth.ForgotPassword(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NoError(t, f.auth.ResetPassword(ctx, ResetPasswordRequest{Token: token, Password: "first"}))

	err = f.auth.ResetPassword(ctx, ResetPasswordRequest{Token: token, Password: "second"})
	var unauth *errors.ErrUnauthorized
	assert.ErrorAs(t, err, &unauth)

	_, err = f.auth.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "second"})
	assert.ErrorAs(t, err, &unauth)
	_, err = f.auth.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "first"})
	require.NoError(t, err)
}

func TestResetPassword_EndsOpenSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := signup(t, f, "Asha", "asha@example.com")
	claims, err := f.issuer.Parse(res.Token, auth.TypeSession)
	require.NoError(t, err)

	token, err := f.auth.ForgotPassword(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NoError(t, f.auth.ResetPassword(ctx, ResetPasswordRequest{Token: token, Password: "newpass"}))

	_, _, err = f.auth.Me(ctx, claims)
	var unauth *errors.ErrUnauthorized
	assert.ErrorAs(t, err, &unauth)
}

func TestLogin_ReplacesEarlierSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := signup(t, f, "Asha", "asha@example.com")
	oldClaims, err := f.issuer.Parse(first.Token, auth.TypeSession)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, oldClaims.UserID()))
	second, err := f.auth.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "pass123"})
	require.NoError(t, err)

	_, _, err = f.auth.Me(ctx, oldClaims)
	var unauth *errors.ErrUnauthorized
	assert.ErrorAs(t, err, &unauth)

	newClaims, err := f.issuer.Parse(second.Token, auth.TypeSession)
	require.NoError(t, err)
	user, _, err := f.auth.Me(ctx, newClaims)
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := signup(t, f, "Asha", "asha@example.com")
	signup(t, f, "Ravi", "ravi@example.com")
	claims, err := f.issuer.Parse(res.Token, auth.TypeSession)
	require.NoError(t, err)

	name, avatar := "Asha K", "https://example.com/a.png"
	user, err := f.auth.UpdateProfile(ctx, claims, UpdateProfileRequest{Name: &name, Avatar: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", user.Name)
	assert.Empty(t, user.Password)

	current, _, err := f.auth.Me(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "Asha K", current.Name, "session copy is refreshed")

	taken := "ravi@example.com"
	_, err = f.auth.UpdateProfile(ctx, claims, UpdateProfileRequest{Email: &taken})
	var conflict *errors.ErrConflict
	assert.ErrorAs(t, err, &conflict)

	empty := " "
	_, err = f.auth.UpdateProfile(ctx, claims, UpdateProfileRequest{Name: &empty})
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateProfile_Admin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.auth.Login(ctx, LoginRequest{Email: testAdminEmail, Password: "admin123"})
	require.NoError(t, err)
	claims, err := f.issuer.Parse(res.Token, auth.TypeSession)
	require.NoError(t, err)

	name := "Store Owner"
	profile, err := f.auth.UpdateProfile(ctx, claims, UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Store Owner", profile.Name)

	blob, err := f.store.Load(ctx, storage.KeyAdminProfile)
	require.NoError(t, err)
	assert.Contains(t, string(blob.Data), "Store Owner")

	password := "x"
	_, err = f.auth.UpdateProfile(ctx, claims, UpdateProfileRequest{Password: &password})
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)
}

func TestListAndDeleteUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	asha := signup(t, f, "Asha", "asha@example.com")
	signup(t, f, "Ravi", "ravi@sample.org")

	users, err := f.auth.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}

	users, err = f.auth.ListUsers(ctx, "SAMPLE")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ravi", users[0].Name)

	require.NoError(t, f.auth.DeleteUser(ctx, asha.User.ID))
	_, ok, err := f.sessions.Current(ctx, asha.User.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = f.auth.DeleteUser(ctx, asha.User.ID)
	var nf *errors.ErrNotFound
	assert.ErrorAs(t, err, &nf)
}
