package marketplace_api_client

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
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *MarketplaceAPIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewMarketplaceAPIClient(srv.URL, 2*time.Second)
}

func TestListPropertiesEnvelopes(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "data with pagination",
			body: `{"success":true,"data":[{"id":"1","slug":"a","view_count":7,"land_size_sqm":300}],
				"pagination":{"total":25,"page":2,"per_page":12,"total_pages":3}}`,
		},
		{
			name: "items inside data",
			body: `{"success":true,"data":{"items":[{"id":"1","slug":"a","view_count":7,"land_size_sqm":300}],
				"total":25,"page":2,"per_page":12,"total_pages":3}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotQuery, gotTrace string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.RawQuery
				gotTrace = r.Header.Get("X-Trace-ID")
				assert.Equal(t, "/properties", r.URL.Path)
				_, _ = io.WriteString(w, tc.body)
			})

			page := 2
			ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
			res, err := client.ListProperties(ctx, querycodec.PropertyFilters{Area: "ubud", Page: &page})
			require.NoError(t, err)

			assert.Equal(t, "area=ubud&page=2", gotQuery)
			assert.Equal(t, "trace-1", gotTrace)
			assert.Equal(t, 25, res.Total)
			assert.Equal(t, 3, res.TotalPages)
			require.Len(t, res.Items, 1)
			assert.Equal(t, 7, res.Items[0].ViewCount)
			assert.Equal(t, 300.0, res.Items[0].LandSize)
		})
	}
}

func TestListAreasDerivesMissingSlug(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/properties/areas", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"id":"a1","name":"Canggu","slug":"canggu","property_count":4},
			{"id":"a2","name":"Nusa Dua","slug":"","property_count":1}]}`)
	})

	areas, err := client.ListAreas(context.Background())
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "canggu", areas[0].Slug)
	assert.Equal(t, "nusa-dua", areas[1].Slug)
	assert.Equal(t, 1, areas[1].PropertyCount)
}

func TestEnvelopeContractViolation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":"1"}],"pagination":{"total":"many"}}`)
	})
	_, err := client.ListProperties(context.Background(), querycodec.PropertyFilters{})
	assert.ErrorIs(t, err, domain.ErrUpstream)

	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[]}`)
	})
	_, err = client.FeaturedProperties(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream, "api-response envelope requires success")
}

func TestErrorStatusMapping(t *testing.T) {
	testCases := []struct {
		status  int
		wantErr error
	}{
		{status: http.StatusUnauthorized, wantErr: domain.ErrUnauthorized},
		{status: http.StatusNotFound, wantErr: domain.ErrNotFound},
		{status: http.StatusInternalServerError, wantErr: domain.ErrUpstream},
	}

	for _, tc := range testCases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, `{"success":false,"message":"nope"}`)
			})
			_, err := client.GetProfile(context.Background(), "tok")
			require.ErrorIs(t, err, tc.wantErr)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "nope", apiErr.UserMessage())
		})
	}
}

func TestLoginAndBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var req domain.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "a@b.co", req.Email)
			_, _ = io.WriteString(w, `{"success":true,"data":{"token":"tok","user":{"id":"u1","full_name":"Ann","role":"agent"}}}`)
		case "/saved-properties/p1":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	res, err := client.Login(context.Background(), domain.LoginRequest{Email: "a@b.co", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "Ann", res.User.DisplayName())
	assert.Equal(t, domain.RoleAgent, res.User.Role)

	require.NoError(t, client.UnsaveProperty(context.Background(), res.Token, "p1"))
}
