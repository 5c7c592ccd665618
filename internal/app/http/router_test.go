package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seatservice/internal/app/auth"
	"seatservice/internal/app/dto"
	httpapi "seatservice/internal/app/http"
	"seatservice/internal/app/http/handler"
	"seatservice/internal/domain"
	"seatservice/internal/domain/account"
	"seatservice/internal/domain/admission"
	"seatservice/internal/domain/params"
	"seatservice/internal/domain/seats"
	"seatservice/internal/domain/upsell"
	"seatservice/internal/domain/user"
)

const secret = "test-secret"

type userSvcFake struct {
	page    user.Page
	gotP    params.FilterParams
	callers map[string]user.Caller
}

func (f *userSvcFake) List(ctx context.Context, provider, owner string, p params.FilterParams) (user.Page, error) {
	f.gotP = p
	return f.page, nil
}

func (f *userSvcFake) Get(ctx context.Context, provider, owner string, ownerid int64) (user.User, error) {
	return user.User{}, domain.NotFound("user not found")
}

func (f *userSvcFake) Activate(ctx context.Context, provider, owner string, ownerid int64, activated bool) (user.User, error) {
	return user.User{}, errors.New("not used")
}

func (f *userSvcFake) Caller(ctx context.Context, provider, owner, username string) (user.Caller, error) {
	if c, ok := f.callers[username]; ok {
		return c, nil
	}
	return user.Caller{Username: username}, nil
}

type accountSvcFake struct {
	usage account.Usage
}

func (f *accountSvcFake) GetUsage(ctx context.Context, provider, owner string) (account.Usage, error) {
	return f.usage, nil
}

func (f *accountSvcFake) GetUsageForUpdate(ctx context.Context, provider, owner string) (account.Usage, error) {
	return f.usage, nil
}

func (f *accountSvcFake) SetAutoActivate(ctx context.Context, caller user.Caller, provider, owner string, enabled bool) (account.Usage, error) {
	if !caller.IsAdmin {
		return account.Usage{}, domain.Forbidden("only admins can change auto activation")
	}
	f.usage.PlanAutoActivate = enabled
	return f.usage, nil
}

type seatsSvcFake struct {
	res       seats.Result
	err       error
	gotCaller user.Caller
	overview  seats.Overview
}

func (f *seatsSvcFake) Overview(ctx context.Context, provider, owner string, p params.FilterParams) (seats.Overview, error) {
	return f.overview, f.err
}

func (f *seatsSvcFake) Toggle(ctx context.Context, caller user.Caller, provider, owner string, ownerid int64) (seats.Result, error) {
	f.gotCaller = caller
	return f.res, f.err
}

type env struct {
	router   *gin.Engine
	users    *userSvcFake
	accounts *accountSvcFake
	seats    *seatsSvcFake
}

func newEnv(t *testing.T, withAuth bool) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{
		users:    &userSvcFake{callers: map[string]user.Caller{"boss": {Username: "boss", IsAdmin: true}}},
		accounts: &accountSvcFake{usage: account.Usage{ActivatedUserCount: 5, Plan: account.Plan{Value: "users-free", Tier: account.TierFree}}},
		seats:    &seatsSvcFake{},
	}

	var verifier *auth.Verifier
	if withAuth {
		v, err := auth.NewVerifier(secret, "")
		require.NoError(t, err)
		verifier = v
	}

	log := zap.NewNop()
	h := handler.New(e.users, e.accounts, e.seats, log)
	e.router = httpapi.NewRouter(h, httpapi.RouterConfig{Verifier: verifier}, log)
	return e
}

func token(t *testing.T, subject string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func (e *env) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	e := newEnv(t, true)

	rec := e.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestUsersList_PaginationLinks(t *testing.T) {
	e := newEnv(t, false)
	e.users.page = user.Page{
		Results: []user.User{
			{Ownerid: 2, Username: "alex", Name: "Alex", Email: "alex@example.com", IsAdmin: true, Activated: true},
		},
		TotalCount: 3,
		TotalPages: 3,
	}

	rec := e.do(t, http.MethodGet, "/gh/codecov/users?search=al&page=2&pageSize=1&activated=true", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "al", e.users.gotP.Search)
	assert.Equal(t, 2, e.users.gotP.Page)
	assert.Equal(t, params.FilterOnly, e.users.gotP.Activated)

	page := decode[dto.UserPage](t, rec)
	require.Len(t, page.Results, 1)
	assert.Equal(t, []dto.Pill{{Label: "Admin", Highlight: true}, {Label: "alex@example.com"}}, page.Results[0].Pills)
	require.NotNil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "/gh/codecov/users?activated=true&page=3&pageSize=1&search=al", *page.Next)
	assert.Equal(t, "/gh/codecov/users?activated=true&pageSize=1&search=al", *page.Previous)
}

func TestUsersList_SinglePageHasNoLinks(t *testing.T) {
	e := newEnv(t, false)
	e.users.page = user.Page{TotalCount: 0, TotalPages: 0}

	rec := e.do(t, http.MethodGet, "/gh/codecov/users?page=oops", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[dto.UserPage](t, rec)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
	assert.NotNil(t, page.Results)
	assert.Equal(t, 1, e.users.gotP.Page)
}

func TestUsersList_OversizedPagingFallsBack(t *testing.T) {
	e := newEnv(t, false)
	e.users.page = user.Page{TotalCount: 0, TotalPages: 0}

	rec := e.do(t, http.MethodGet, "/gh/codecov/users?page=9223372036854775807&pageSize=9223372036854775807", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, params.DefaultPage, e.users.gotP.Page)
	assert.Equal(t, params.DefaultPageSize, e.users.gotP.PageSize)
	assert.Equal(t, 0, e.users.gotP.Offset())
}

func TestAuth_Required(t *testing.T) {
	e := newEnv(t, true)

	rec := e.do(t, http.MethodGet, "/gh/codecov/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodGet, "/gh/codecov/users", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodGet, "/gh/codecov/users", token(t, "dev"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestToggle_Upsell(t *testing.T) {
	e := newEnv(t, true)
	prompt := upsell.New(upsell.Links{UpgradeURL: "/plan/upgrade"})
	prompt.Open()
	e.seats.res = seats.Result{Kind: admission.ShowUpsell, Upsell: prompt}

	rec := e.do(t, http.MethodPost, "/gh/codecov/users/6/toggle", token(t, "boss"), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[dto.ToggleResponse](t, rec)
	assert.Equal(t, "SHOW_UPSELL", resp.Action)
	assert.Nil(t, resp.User)
	require.NotNil(t, resp.Upsell)
	assert.True(t, resp.Upsell.Open)
	assert.Equal(t, "/plan/upgrade", resp.Upsell.UpgradeURL)
	assert.Equal(t, user.Caller{Username: "boss", IsAdmin: true}, e.seats.gotCaller)
}

func TestToggle_Activate(t *testing.T) {
	e := newEnv(t, true)
	e.seats.res = seats.Result{Kind: admission.ProceedActivate, User: user.User{Ownerid: 6, Username: "dev", Activated: true}}

	rec := e.do(t, http.MethodPost, "/gh/codecov/users/6/toggle", token(t, "dev"), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[dto.ToggleResponse](t, rec)
	assert.Equal(t, "ACTIVATE", resp.Action)
	require.NotNil(t, resp.User)
	assert.True(t, resp.User.Activated)
	assert.Nil(t, resp.Upsell)
	assert.Equal(t, user.Caller{Username: "dev"}, e.seats.gotCaller)
}

func TestToggle_LocalCallerIsAdmin(t *testing.T) {
	e := newEnv(t, false)
	e.seats.res = seats.Result{Kind: admission.ProceedDeactivate, User: user.User{Ownerid: 1}}

	rec := e.do(t, http.MethodPost, "/gh/codecov/users/1/toggle", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, e.seats.gotCaller.IsAdmin)
}

func TestToggle_Errors(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodPost, "/gh/codecov/users/abc/toggle", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	e.seats.err = domain.Forbidden("only admins can change other users' activation")
	rec = e.do(t, http.MethodPost, "/gh/codecov/users/1/toggle", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, rec).Error.Code)

	e.seats.err = errors.New("connection refused")
	rec = e.do(t, http.MethodPost, "/gh/codecov/users/1/toggle", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode[dto.ErrorResponse](t, rec).Error.Code)
}

func TestAccount(t *testing.T) {
	e := newEnv(t, true)

	rec := e.do(t, http.MethodGet, "/gh/codecov/account", token(t, "dev"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	acc := decode[dto.Account](t, rec)
	assert.Equal(t, 5, acc.ActivatedUserCount)
	assert.Equal(t, dto.Plan{Value: "users-free", Tier: "free"}, acc.Plan)

	rec = e.do(t, http.MethodPatch, "/gh/codecov/account/autoActivate", token(t, "boss"), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPatch, "/gh/codecov/account/autoActivate", token(t, "dev"), map[string]any{"auto_activate": true})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPatch, "/gh/codecov/account/autoActivate", token(t, "boss"), map[string]any{"auto_activate": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.Account](t, rec).PlanAutoActivate)
}

func TestSeatsOverview(t *testing.T) {
	e := newEnv(t, false)
	e.seats.overview = seats.Overview{
		Users:   user.Page{Results: []user.User{{Ownerid: 1, Username: "a"}}, TotalCount: 1, TotalPages: 1},
		Account: account.Usage{ActivatedUserCount: 0, Plan: account.Plan{Value: "users-pr-inappy", Tier: account.TierPaid}},
	}

	rec := e.do(t, http.MethodGet, "/gh/codecov/seats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode[dto.Seats](t, rec)
	assert.Len(t, out.Users.Results, 1)
	assert.Equal(t, "paid", out.Account.Plan.Tier)

	e.seats.err = domain.NotFound("account not found")
	rec = e.do(t, http.MethodGet, "/gh/codecov/seats", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
