package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/issue-tracker/api/v1"
	"github.com/issue-tracker/config"
	"github.com/issue-tracker/models"
	"github.com/issue-tracker/routes"
	"github.com/issue-tracker/services"
	"github.com/issue-tracker/testutil"
	"github.com/issue-tracker/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	auth   *services.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	db := testutil.NewTestDB(t)
	auth := services.NewAuthService("test-secret", time.Hour)
	cfg := &config.Server{
		Session:     config.Session{Name: "trackersess", Secret: "session-secret", MaxAge: 3600},
		CORSOrigins: []string{"*"},
	}
	return &testServer{
		t:      t,
		router: routes.SetupRouter(cfg, v1.Dependencies{Auth: auth}),
		db:     db,
		auth:   auth,
	}
}

func (s *testServer) tokenFor(user models.User) string {
	s.t.Helper()
	token, _, err := s.auth.GenerateToken(user)
	require.NoError(s.t, err)
	return token
}

type request struct {
	method  string
	path    string
	form    url.Values
	token   string
	cookies []*http.Cookie
}

func (s *testServer) do(r request) *httptest.ResponseRecorder {
	var req *http.Request
	if r.form != nil {
		req = httptest.NewRequest(r.method, r.path, strings.NewReader(r.form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(r.method, r.path, nil)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(request{method: http.MethodGet, path: "/health"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProjectIndexIsPublic(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateProject(t, s.db, "Alpha", "First", testutil.Day(2024, 1, 1), nil)
	testutil.CreateProject(t, s.db, "Beta", "Second", testutil.Day(2024, 1, 2), nil)

	var data struct {
		Projects    []models.Project `json:"projects"`
		IsPaginated bool             `json:"isPaginated"`
	}
	rec := s.do(request{method: http.MethodGet, path: "/?search=ALPHA"})
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec, &data)

	assert.Equal(t, "success", env.Status)
	require.Len(t, data.Projects, 1)
	assert.Equal(t, "Alpha", data.Projects[0].Name)
	assert.False(t, data.IsPaginated)

	long := strings.Repeat("x", 101)
	rec = s.do(request{method: http.MethodGet, path: "/?search=" + long})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &data)
	assert.Len(t, data.Projects, 2)
}

func TestProjectIndexPageNeighbours(t *testing.T) {
	s := newTestServer(t)
	for i := 1; i <= 5; i++ {
		testutil.CreateProject(t, s.db, "Project "+itoa(uint(i)), "Body", testutil.Day(2024, 1, i), nil)
	}

	var data struct {
		Projects []models.Project `json:"projects"`
		Page     struct {
			Number      int  `json:"number"`
			NumPages    int  `json:"numPages"`
			HasNext     bool `json:"hasNext"`
			HasPrevious bool `json:"hasPrevious"`
		} `json:"page"`
		IsPaginated bool `json:"isPaginated"`
	}
	rec := s.do(request{method: http.MethodGet, path: "/"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &data)
	assert.Len(t, data.Projects, 3)
	assert.Equal(t, 2, data.Page.NumPages)
	assert.True(t, data.Page.HasNext)
	assert.False(t, data.Page.HasPrevious)
	assert.True(t, data.IsPaginated)

	data.Projects = nil
	rec = s.do(request{method: http.MethodGet, path: "/?page=2"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &data)
	assert.Len(t, data.Projects, 2)
	assert.False(t, data.Page.HasNext)
	assert.True(t, data.Page.HasPrevious)
}

func TestProjectDetailWithNoIssues(t *testing.T) {
	s := newTestServer(t)
	project := testutil.CreateProject(t, s.db, "Alpha", "First", testutil.Day(2024, 1, 1), nil)

	rec := s.do(request{method: http.MethodGet, path: "/project/" + itoa(project.ID) + "/"})
	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]json.RawMessage
	decode(t, rec, &data)
	assert.JSONEq(t, "[]", string(data["issues"]))
	assert.JSONEq(t, "null", string(data["page"]))
	assert.JSONEq(t, "false", string(data["isPaginated"]))

	rec = s.do(request{method: http.MethodGet, path: "/project/abc/"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(request{method: http.MethodGet, path: "/project/999/"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProject(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "u@example.com", models.RoleUser)
	valid := url.Values{"name": {"Alpha"}, "description": {"First"}, "starts_date": {"2024-01-01"}}

	rec := s.do(request{method: http.MethodPost, path: "/project/add/", form: valid})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(request{method: http.MethodPost, path: "/project/add/", form: valid, token: s.tokenFor(user)})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.Project
	decode(t, rec, &created)
	require.NotNil(t, created.AuthorID)
	assert.Equal(t, user.ID, *created.AuthorID)

	invalid := url.Values{"name": {strings.Repeat("n", 51)}, "starts_date": {"01/02/2024"}}
	rec = s.do(request{method: http.MethodPost, path: "/project/add/", form: invalid, token: s.tokenFor(user)})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec, nil)
	assert.Contains(t, env.Errors, "name")
	assert.Contains(t, env.Errors, "description")
	assert.Contains(t, env.Errors, "startsDate")
}

func TestUpdateProjectNeedsPermission(t *testing.T) {
	s := newTestServer(t)
	author := testutil.CreateUser(t, s.db, "author@example.com", models.RoleUser)
	moderator := testutil.CreateUser(t, s.db, "mod@example.com", models.RoleModerator)
	project := testutil.CreateProject(t, s.db, "Alpha", "First", testutil.Day(2024, 1, 1), &author.ID)
	path := "/project/" + itoa(project.ID) + "/update/"
	form := url.Values{"name": {"Renamed"}, "description": {"First"}, "starts_date": {"2024-01-01"}}

	rec := s.do(request{method: http.MethodPost, path: path, form: form, token: s.tokenFor(author)})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(request{method: http.MethodGet, path: path, token: s.tokenFor(moderator)})
	require.Equal(t, http.StatusOK, rec.Code)
	var current map[string]string
	decode(t, rec, &current)
	assert.Equal(t, "2024-01-01", current["starts_date"])

	rec = s.do(request{method: http.MethodPost, path: path, form: form, token: s.tokenFor(moderator)})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Project
	decode(t, rec, &updated)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestDeleteAndMultiDelete(t *testing.T) {
	s := newTestServer(t)
	author := testutil.CreateUser(t, s.db, "author@example.com", models.RoleUser)
	p1 := testutil.CreateProject(t, s.db, "One", "1", testutil.Day(2024, 1, 1), &author.ID)
	p2 := testutil.CreateProject(t, s.db, "Two", "2", testutil.Day(2024, 1, 2), nil)
	p3 := testutil.CreateProject(t, s.db, "Three", "3", testutil.Day(2024, 1, 3), nil)
	token := s.tokenFor(author)

	rec := s.do(request{method: http.MethodPost, path: "/project/" + itoa(p1.ID) + "/delete/", token: token})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(request{method: http.MethodPost, path: "/project/" + itoa(p1.ID) + "/delete/", token: token})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(request{method: http.MethodPost, path: "/multi_delete/", form: url.Values{"id": {itoa(p1.ID), itoa(p2.ID), "99"}}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(request{method: http.MethodPost, path: "/multi_delete/", form: url.Values{"id": {itoa(p1.ID), itoa(p2.ID), "99"}}, token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Deleted int64 `json:"deleted"`
	}
	decode(t, rec, &result)
	assert.Equal(t, int64(1), result.Deleted)

	var live []models.Project
	require.NoError(t, s.db.Where("is_deleted = ?", false).Find(&live).Error)
	require.Len(t, live, 1)
	assert.Equal(t, p3.ID, live[0].ID)
}

func TestMassAction(t *testing.T) {
	s := newTestServer(t)
	author := testutil.CreateUser(t, s.db, "author@example.com", models.RoleUser)
	other := testutil.CreateUser(t, s.db, "other@example.com", models.RoleUser)
	own := testutil.CreateProject(t, s.db, "Own", "x", testutil.Day(2024, 1, 1), &author.ID)
	foreign := testutil.CreateProject(t, s.db, "Foreign", "x", testutil.Day(2024, 1, 1), &other.ID)
	token := s.tokenFor(author)

	rec := s.do(request{method: http.MethodPost, path: "/project/mass-action/", form: url.Values{"id": {itoa(own.ID)}}, token: token})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = s.do(request{method: http.MethodPost, path: "/project/mass-action/", form: url.Values{"id": {itoa(own.ID), itoa(foreign.ID)}, "confirm": {"yes"}}, token: token})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(request{method: http.MethodPost, path: "/project/mass-action/", form: url.Values{"id": {itoa(own.ID)}, "confirm": {"yes"}}, token: token})
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	s.db.Model(&models.Project{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIssueValidation(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "u@example.com", models.RoleUser)
	project := testutil.CreateProject(t, s.db, "Alpha", "x", testutil.Day(2024, 1, 1), nil)
	path := "/project/" + itoa(project.ID) + "/issue/add/"
	status := itoa(testutil.StatusID(t, s.db, models.StatusNew))
	bug := itoa(testutil.TypeID(t, s.db, models.TypeBug))
	token := s.tokenFor(user)

	rec := s.do(request{method: http.MethodPost, path: path, token: token, form: url.Values{
		"summary": {"lowercase"}, "description": {"version 1.0"}, "status": {status}, "type": {bug},
	}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec, nil)
	assert.Equal(t, validation.ErrNotCapitalized.Error(), env.Errors["summary"])
	assert.Equal(t, validation.ErrContainsZero.Error(), env.Errors["description"])

	rec = s.do(request{method: http.MethodPost, path: path, token: token, form: url.Values{
		"summary": {"Broken"}, "status": {status}, "type": {"999"},
	}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(request{method: http.MethodPost, path: path, token: token, form: url.Values{
		"summary": {"Broken"}, "description": {"It fails"}, "status": {status}, "type": {bug},
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var issue models.Issue
	decode(t, rec, &issue)

	rec = s.do(request{method: http.MethodGet, path: "/issue/" + itoa(issue.ID) + "/"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(request{method: http.MethodPost, path: "/issue/" + itoa(issue.ID) + "/delete/", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted struct {
		ProjectID uint `json:"projectId"`
	}
	decode(t, rec, &deleted)
	assert.Equal(t, project.ID, deleted.ProjectID)
}

func TestReferenceEndpoints(t *testing.T) {
	s := newTestServer(t)

	var statuses []models.Status
	rec := s.do(request{method: http.MethodGet, path: "/statuses"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &statuses)
	assert.Len(t, statuses, 3)

	var types []models.Type
	rec = s.do(request{method: http.MethodGet, path: "/types"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &types)
	assert.Len(t, types, 3)
}

func TestCartIsBoundToSessionCookie(t *testing.T) {
	s := newTestServer(t)
	product := testutil.CreateProduct(t, s.db, "Widget", 2, 5)
	addPath := "/cart/add/" + itoa(product.ID) + "/"

	rec := s.do(request{method: http.MethodPost, path: addPath, form: url.Values{"qty": {"3"}}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	var cart struct {
		Lines []struct {
			ID  uint `json:"id"`
			Qty int  `json:"qty"`
		} `json:"lines"`
		CartTotal float64 `json:"cartTotal"`
	}
	decode(t, rec, &cart)
	require.Len(t, cart.Lines, 1)
	assert.InDelta(t, 6.0, cart.CartTotal, 0.0001)
	lineID := cart.Lines[0].ID

	rec = s.do(request{method: http.MethodPost, path: addPath, form: url.Values{"qty": {"3"}, "next": {"/products/"}}, cookies: cookies})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/products/", rec.Header().Get("Location"))

	rec = s.do(request{method: http.MethodPost, path: addPath, form: url.Values{"next": {"https://evil.example.com/"}}, cookies: cookies})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &cart)
	assert.Equal(t, 4, cart.Lines[0].Qty)

	rec = s.do(request{method: http.MethodPost, path: "/cart/" + itoa(lineID) + "/remove-one/"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(request{method: http.MethodPost, path: "/cart/" + itoa(lineID) + "/remove/", cookies: cookies})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &cart)
	assert.Empty(t, cart.Lines)
}

func TestPlaceOrder(t *testing.T) {
	s := newTestServer(t)
	buyer := testutil.CreateUser(t, s.db, "buyer@example.com", models.RoleUser)
	product := testutil.CreateProduct(t, s.db, "Widget", 2, 5)

	rec := s.do(request{method: http.MethodPost, path: "/cart/add/" + itoa(product.ID) + "/", form: url.Values{"qty": {"2"}}})
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()

	rec = s.do(request{method: http.MethodPost, path: "/order/", form: url.Values{"name": {"Ann"}}, cookies: cookies})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/cart/", rec.Header().Get("Location"))

	rec = s.do(request{method: http.MethodPost, path: "/order/", form: url.Values{"name": {"Ann"}, "phone": {"555"}}, cookies: cookies, token: s.tokenFor(buyer)})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var stored models.Product
	require.NoError(t, s.db.First(&stored, product.ID).Error)
	assert.Equal(t, 3, stored.Amount)

	rec = s.do(request{method: http.MethodGet, path: "/orders/", token: s.tokenFor(buyer)})
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	decode(t, rec, &orders)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Products, 1)
	assert.Equal(t, 2, orders[0].Products[0].Qty)

	rec = s.do(request{method: http.MethodGet, path: "/cart/", cookies: cookies})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"lines":[],"cartTotal":0}`, string(decode(t, rec, nil).Data))
}

func TestCreateProductIsAdminOnly(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "u@example.com", models.RoleUser)
	admin := testutil.CreateUser(t, s.db, "admin@example.com", models.RoleAdmin)
	form := url.Values{"name": {"Widget"}, "price": {"9.5"}, "amount": {"4"}}

	rec := s.do(request{method: http.MethodPost, path: "/products/", form: form, token: s.tokenFor(user)})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(request{method: http.MethodPost, path: "/products/", form: form, token: s.tokenFor(admin)})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(request{method: http.MethodGet, path: "/products/"})
	require.Equal(t, http.StatusOK, rec.Code)
	var products []models.Product
	decode(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, 4, products[0].Amount)
}

func TestAccountFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(request{method: http.MethodPost, path: "/accounts/register/", form: url.Values{
		"email": {"ann@example.com"}, "password": {"secret1"},
	}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec, nil).Errors, "form")

	rec = s.do(request{method: http.MethodPost, path: "/accounts/register/", form: url.Values{
		"email": {"ann@example.com"}, "password": {"secret1"}, "first_name": {"Ann"},
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(request{method: http.MethodPost, path: "/accounts/login/", form: url.Values{
		"email": {"ann@example.com"}, "password": {"secret1"},
	}})
	require.Equal(t, http.StatusOK, rec.Code)
	var auth struct {
		Token string `json:"token"`
	}
	decode(t, rec, &auth)
	require.NotEmpty(t, auth.Token)

	var tokenCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "access_token" {
			tokenCookie = c
		}
	}
	require.NotNil(t, tokenCookie)

	rec = s.do(request{method: http.MethodGet, path: "/accounts/me/", cookies: []*http.Cookie{tokenCookie}})
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.User
	decode(t, rec, &me)
	assert.Equal(t, "ann@example.com", me.Email)

	rec = s.do(request{method: http.MethodGet, path: "/accounts/me/", token: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
