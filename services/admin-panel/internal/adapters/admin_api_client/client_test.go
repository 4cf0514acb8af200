package admin_api_client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *AdminAPIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAdminAPIClient(srv.URL, 2*time.Second)
}

func TestListPropertiesPageShapes(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "items inside api response",
			body: `{"success":true,"data":{"items":[{"id":"p1","title":"Villa","land_size_sqm":300,"images":["https://cdn/a.jpg"],"is_active":false}],
				"total":11,"page":2,"per_page":10,"total_pages":2}}`,
		},
		{
			name: "bare page with data",
			body: `{"data":[{"id":"p1","title":"Villa","land_size":300,"images":[{"url":"https://cdn/a.jpg"}],"is_active":false}],
				"total":11,"page":2,"per_page":10,"total_pages":2}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotQuery, gotAuth, gotTrace string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.RawQuery
				gotAuth = r.Header.Get("Authorization")
				gotTrace = r.Header.Get("X-Trace-ID")
				assert.Equal(t, "/properties", r.URL.Path)
				_, _ = io.WriteString(w, tc.body)
			})

			ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
			res, err := client.ListProperties(ctx, "tok", querycodec.AdminPropertyFilters{Page: 2, PerPage: 10, Status: "inactive"})
			require.NoError(t, err)

			assert.Equal(t, "page=2&per_page=10&status=inactive", gotQuery)
			assert.Equal(t, "Bearer tok", gotAuth)
			assert.Equal(t, "trace-1", gotTrace)
			assert.Equal(t, 11, res.Total)
			assert.Equal(t, 2, res.TotalPages)
			require.Len(t, res.Items, 1)
			assert.Equal(t, 300.0, res.Items[0].LandSize)
			assert.Equal(t, []string{"https://cdn/a.jpg"}, res.Items[0].Images)
			assert.False(t, res.Items[0].IsActive)
		})
	}
}

func TestPageContractViolation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":{"items":[],"page":1}}`)
	})
	_, err := client.ListUsers(context.Background(), "tok", querycodec.UserFilters{Page: 1, PerPage: 10})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDashboardStatsShapes(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantActive int
		wantTypes  []domain.CountEntry
	}{
		{
			name: "counts as lists",
			body: `{"success":true,"data":{"total_properties":4,"active_properties":3,
				"properties_by_type":[{"property_type":"land","count":1},{"property_type":"villa","count":3}],
				"properties_by_area":[{"area":"Ubud","count":4}],
				"recent_inquiries":[{"id":"i1","status":"new"}],"recent_properties":[]}}`,
			wantActive: 3,
			wantTypes:  []domain.CountEntry{{Label: "land", Count: 1}, {Label: "villa", Count: 3}},
		},
		{
			name: "counts as maps",
			body: `{"total_properties":4,"active_listings":2,
				"properties_by_type":{"land":1,"villa":3},"properties_by_area":{"Ubud":4},
				"recent_inquiries":[{"id":"i1","status":"new"}]}`,
			wantActive: 2,
			wantTypes:  []domain.CountEntry{{Label: "villa", Count: 3}, {Label: "land", Count: 1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/dashboard/stats", r.URL.Path)
				_, _ = io.WriteString(w, tc.body)
			})
			stats, err := client.DashboardStats(context.Background(), "tok")
			require.NoError(t, err)
			assert.Equal(t, 4, stats.TotalProperties)
			assert.Equal(t, tc.wantActive, stats.ActiveListings)
			assert.Equal(t, tc.wantTypes, stats.PropertiesByType)
			assert.Equal(t, []domain.CountEntry{{Label: "Ubud", Count: 4}}, stats.PropertiesByArea)
			require.Len(t, stats.RecentInquiries, 1)
			assert.Equal(t, domain.InquiryNew, stats.RecentInquiries[0].Status)
		})
	}
}

func TestPropertyMutations(t *testing.T) {
	var created map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/properties":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"success":true,"data":{"id":"p9","title":"Villa Baru"}}`)
		case r.Method == http.MethodPatch && r.URL.Path == "/properties/p9/toggle-featured":
			_, _ = io.WriteString(w, `{"success":true,"data":{"id":"p9","is_featured":true}}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/properties/p9":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	form := domain.NewPropertyForm()
	form.Title, form.Price, form.Area, form.LandSize = "Villa Baru", 250000, "Ubud", 400
	p, err := client.CreateProperty(ctx, "tok", "admin-1", form)
	require.NoError(t, err)
	assert.Equal(t, "p9", p.ID)
	assert.Equal(t, "admin-1", created["owner_id"])
	assert.Equal(t, 400.0, created["land_size_sqm"])
	assert.Equal(t, []any{}, created["images"])

	p, err = client.ToggleFeatured(ctx, "tok", "p9")
	require.NoError(t, err)
	assert.True(t, p.IsFeatured)

	require.NoError(t, client.DeleteProperty(ctx, "tok", "p9"))

	_, err = client.GetProperty(ctx, "tok", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserPayloads(t *testing.T) {
	var bodies []map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil && r.ContentLength != 0 {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		bodies = append(bodies, body)
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":"u1","full_name":"Ana","email":"ana@example.com","role":"agent","is_active":true}}`)
	})
	ctx := context.Background()

	u, err := client.CreateUser(ctx, "tok", domain.UserCreate{Name: "Ana", Email: "ana@example.com", Password: "longenough", Role: domain.RoleAgent})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "longenough", bodies[0]["password"])
	assert.Equal(t, "Ana", bodies[0]["full_name"])

	_, err = client.UpdateUser(ctx, "tok", "u1", domain.UserUpdate{Name: "Ana", Email: "ana@example.com", Role: domain.RoleAgent})
	require.NoError(t, err)
	assert.NotContains(t, bodies[1], "password")
}

func TestErrorStatusMapping(t *testing.T) {
	testCases := []struct {
		status  int
		wantErr error
	}{
		{status: http.StatusUnauthorized, wantErr: domain.ErrUnauthorized},
		{status: http.StatusForbidden, wantErr: domain.ErrForbidden},
		{status: http.StatusNotFound, wantErr: domain.ErrNotFound},
		{status: http.StatusInternalServerError, wantErr: domain.ErrUpstream},
	}

	for _, tc := range testCases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, `{"success":false,"message":"nope"}`)
			})
			_, err := client.UpdateInquiryStatus(context.Background(), "tok", "i1", domain.InquiryClosed)
			require.ErrorIs(t, err, tc.wantErr)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "nope", apiErr.UserMessage())
		})
	}
}

func TestUnsuccessfulEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"message":"Email already exists"}`)
	})
	_, err := client.CreateUser(context.Background(), "tok", domain.UserCreate{})
	require.ErrorIs(t, err, domain.ErrUpstream)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email already exists", apiErr.UserMessage())
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"success":true,"data":{"token":"jwt","user":{"id":"a1","full_name":"Root","email":"root@example.com","role":"super_admin"}}}`)
	})

	res, err := client.Login(context.Background(), domain.LoginRequest{Email: "root@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
	assert.Equal(t, domain.AdminUser{ID: "a1", Email: "root@example.com", Name: "Root", Role: domain.RoleSuperAdmin}, res.User)
}
