package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendisuhubdy/mybalivillas/pkg/authtoken"
	"github.com/dendisuhubdy/mybalivillas/pkg/formvalidation"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/pkg/logger"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/adapters/admin_api_client"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/usecase"
)

const villaID = "4f9c2b1e-8a3d-4c6e-9b7a-2d5e1f0a3c88"

// fakeAdminAPI - upstream admin API с одним объектом, флаг is_featured которого переключается.
type fakeAdminAPI struct {
	mu       sync.Mutex
	featured bool
	status   int
	paths    []string
}

func (f *fakeAdminAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, r.Method+" "+r.URL.Path)

	if f.status != 0 && r.URL.Path != "/auth/login" {
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, `{"success":false,"message":"upstream says no"}`)
		return
	}

	switch {
	case r.URL.Path == "/auth/login":
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		role := "admin"
		if req["email"] == "agent@example.com" {
			role = "agent"
		}
		fmt.Fprintf(w, `{"success":true,"data":{"token":"tok","user":{"id":"a1","full_name":"Admin","email":%q,"role":%q}}}`, req["email"], role)
	case r.URL.Path == "/auth/logout":
		w.WriteHeader(http.StatusNoContent)
	case r.URL.Path == "/properties" && r.Method == http.MethodGet:
		fmt.Fprintf(w, `{"success":true,"data":{"items":[{"id":%q,"title":"Villa Serenity","property_type":"villa","listing_type":"sale_freehold","price":450000,"currency":"USD","is_active":true,"is_featured":%t}],"total":1,"page":1,"per_page":10,"total_pages":1}}`, villaID, f.featured)
	case r.URL.Path == "/properties/"+villaID+"/toggle-featured" && r.Method == http.MethodPatch:
		f.featured = !f.featured
		fmt.Fprintf(w, `{"success":true,"data":{"id":%q,"is_featured":%t}}`, villaID, f.featured)
	case r.URL.Path == "/dashboard/stats":
		_, _ = io.WriteString(w, `{"success":true,"data":{"total_properties":4,"properties_by_type":[{"property_type":"villa","count":4},{"property_type":"land","count":0}],"properties_by_area":[],"recent_inquiries":[],"recent_properties":[]}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAdminAPI) fail(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func newTestBFF(t *testing.T, upstream http.Handler) (*httptest.Server, *http.Client) {
	t.Helper()

	api := httptest.NewServer(upstream)
	t.Cleanup(api.Close)

	store, err := session.NewManager(session.ManagerConfig{
		Backend: session.NewMemoryBackend(),
		Keys:    session.AdminKeys,
		TTL:     time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(store.Close)

	client := admin_api_client.NewAdminAPIClient(api.URL, 2*time.Second)
	validator := formvalidation.New()
	guard := usecase.NewSessionGuard(store, authtoken.NewInspector(""), false)
	noop := logger.NewNoopLogger()

	properties, err := usecase.NewPropertiesUseCase(client, guard, validator, listing.ShowError, noop)
	require.NoError(t, err)
	users, err := usecase.NewUsersUseCase(client, guard, validator, listing.ShowError, noop)
	require.NoError(t, err)
	inquiries, err := usecase.NewInquiriesUseCase(client, guard, validator, listing.ShowError, noop)
	require.NoError(t, err)

	handler := NewAdminHandler(UseCases{
		Login:          usecase.NewLoginUseCase(client, store, validator),
		Logout:         usecase.NewLogoutUseCase(client, store, properties.ForgetSession, users.ForgetSession, inquiries.ForgetSession),
		CurrentSession: usecase.NewCurrentSessionUseCase(guard),
		Dashboard:      usecase.NewDashboardUseCase(client, guard),
		Properties:     properties,
		Users:          users,
		Inquiries:      inquiries,
	}, store, 10)

	router := NewRouter(ServerConfig{
		AllowedOrigins: []string{"http://localhost:3001"},
		CookieName:     "admin_session",
		SessionTTL:     time.Hour,
	}, handler, noop)
	bff := httptest.NewServer(router)
	t.Cleanup(bff.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return bff, &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func doJSON(t *testing.T, c *http.Client, method, url string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(bytes.TrimSpace(raw)) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func login(t *testing.T, bff *httptest.Server, c *http.Client, email string) (int, map[string]any) {
	t.Helper()
	return doJSON(t, c, http.MethodPost, bff.URL+"/api/auth/login", map[string]string{"email": email, "password": "secret"})
}

func firstRow(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	rows := body["rows"].([]any)
	require.NotEmpty(t, rows)
	return rows[0].(map[string]any)
}

func TestTablesRequireLogin(t *testing.T) {
	bff, c := newTestBFF(t, &fakeAdminAPI{})

	for _, path := range []string{"/api/dashboard", "/api/properties", "/api/users", "/api/inquiries"} {
		status, body := doJSON(t, c, http.MethodGet, bff.URL+path, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "/login", body["redirect"], path)
	}
}

func TestNonAdminLoginForbidden(t *testing.T) {
	bff, c := newTestBFF(t, &fakeAdminAPI{})

	status, body := login(t, bff, c, "agent@example.com")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "only admin users can access this portal", body["error"])

	_, body = doJSON(t, c, http.MethodGet, bff.URL+"/api/auth/session", nil)
	assert.Equal(t, false, body["authenticated"])
}

func TestToggleFeaturedReloadsTable(t *testing.T) {
	bff, c := newTestBFF(t, &fakeAdminAPI{})

	status, _ := login(t, bff, c, "admin@example.com")
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, c, http.MethodGet, bff.URL+"/api/properties", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(10), body["skeleton_rows"])
	row := firstRow(t, body)
	assert.Equal(t, false, row["is_featured"])
	assert.Equal(t, "Active", row["status"].(map[string]any)["label"])

	status, body = doJSON(t, c, http.MethodPatch, bff.URL+"/api/properties/"+villaID+"/toggle-featured", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, firstRow(t, body)["is_featured"])
}

func TestMalformedPathIDIsRejected(t *testing.T) {
	api := &fakeAdminAPI{}
	bff, c := newTestBFF(t, api)
	status, _ := login(t, bff, c, "admin@example.com")
	require.Equal(t, http.StatusOK, status)

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/properties/p1", nil},
		{http.MethodPut, "/api/properties/p1", map[string]any{"title": "x"}},
		{http.MethodDelete, "/api/properties/p1", nil},
		{http.MethodPatch, "/api/properties/p1/toggle-featured", nil},
		{http.MethodPut, "/api/users/u1", map[string]any{"full_name": "x"}},
		{http.MethodPatch, "/api/users/u1/toggle-active", nil},
		{http.MethodPatch, "/api/inquiries/1%20OR%201=1/status", map[string]any{"status": "closed"}},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			status, body := doJSON(t, c, tc.method, bff.URL+tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "Invalid id", body["error"])
		})
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, []string{"POST /auth/login"}, api.paths, "malformed ids must not reach the admin API")
}

func TestUpstreamFailureReturnsRetryState(t *testing.T) {
	api := &fakeAdminAPI{}
	bff, c := newTestBFF(t, api)
	status, _ := login(t, bff, c, "admin@example.com")
	require.Equal(t, http.StatusOK, status)

	api.fail(http.StatusInternalServerError)
	status, body := doJSON(t, c, http.MethodGet, bff.URL+"/api/properties?page=2", nil)
	require.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, true, body["retry"])
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, float64(10), body["skeleton_rows"])
	assert.Empty(t, body["rows"])

	status, body = doJSON(t, c, http.MethodGet, bff.URL+"/api/dashboard", nil)
	require.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, true, body["retry"])
}

func TestUpstream401DropsSession(t *testing.T) {
	api := &fakeAdminAPI{}
	bff, c := newTestBFF(t, api)
	status, _ := login(t, bff, c, "admin@example.com")
	require.Equal(t, http.StatusOK, status)

	api.fail(http.StatusUnauthorized)
	status, body := doJSON(t, c, http.MethodGet, bff.URL+"/api/inquiries", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, "/login", body["redirect"])

	_, body = doJSON(t, c, http.MethodGet, bff.URL+"/api/auth/session", nil)
	assert.Equal(t, false, body["authenticated"])
}

func TestDashboardBars(t *testing.T) {
	bff, c := newTestBFF(t, &fakeAdminAPI{})
	status, _ := login(t, bff, c, "admin@example.com")
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, c, http.MethodGet, bff.URL+"/api/dashboard", nil)
	require.Equal(t, http.StatusOK, status)
	bars := body["properties_by_type"].([]any)
	require.Len(t, bars, 2)
	assert.Equal(t, float64(100), bars[0].(map[string]any)["width"])
	assert.Equal(t, float64(8), bars[1].(map[string]any)["width"])
}

func TestUserCreateValidation(t *testing.T) {
	bff, c := newTestBFF(t, &fakeAdminAPI{})
	status, _ := login(t, bff, c, "admin@example.com")
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, c, http.MethodPost, bff.URL+"/api/users", map[string]string{
		"name": "Cici", "email": "cici@example.com", "password": "short", "role": "user",
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Password must be at least 8 characters", body["fields"].(map[string]any)["password"])
}

func TestPropertyFormOps(t *testing.T) {
	bff, c := newTestBFF(t, &fakeAdminAPI{})
	status, _ := login(t, bff, c, "admin@example.com")
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, c, http.MethodGet, bff.URL+"/api/properties/new", nil)
	require.Equal(t, http.StatusOK, status)
	form := body["form"].(map[string]any)
	assert.Equal(t, "villa", form["property_type"])
	assert.Equal(t, []any{}, form["images"])

	status, body = doJSON(t, c, http.MethodPost, bff.URL+"/api/properties/form", map[string]any{
		"action": "toggle_feature", "feature": "Pool", "form": form,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"Pool"}, body["form"].(map[string]any)["features"])

	status, _ = doJSON(t, c, http.MethodPost, bff.URL+"/api/properties/form", map[string]any{"action": "explode"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLogout(t *testing.T) {
	bff, c := newTestBFF(t, &fakeAdminAPI{})
	status, _ := login(t, bff, c, "admin@example.com")
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, c, http.MethodPost, bff.URL+"/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = doJSON(t, c, http.MethodGet, bff.URL+"/api/properties", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
