package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendisuhubdy/mybalivillas/pkg/authtoken"
	"github.com/dendisuhubdy/mybalivillas/pkg/formvalidation"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port/usecases_port"
)

func seededAPI() *fakeAdminAPI {
	return &fakeAdminAPI{
		properties: []domain.Property{
			{ID: "p1", Title: "Villa Serenity", IsActive: true},
			{ID: "p2", Title: "Canggu Loft", IsActive: true, IsFeatured: true},
			{ID: "p3", Title: "Ubud Retreat"},
		},
		users: []domain.User{
			{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: domain.RoleUser, IsActive: true},
			{ID: "u2", Name: "Budi", Email: "budi@example.com", Role: domain.RoleAgent, IsActive: true},
		},
		inquiries: []domain.Inquiry{
			{ID: "i1", Name: "Sarah", Status: domain.InquiryClosed},
		},
	}
}

func propertyFilters() querycodec.AdminPropertyFilters {
	return querycodec.AdminPropertyFilters{Page: 1, PerPage: 10}
}

func newProperties(t *testing.T, api *fakeAdminAPI, store *session.Manager) *PropertiesUseCase {
	t.Helper()
	uc, err := NewPropertiesUseCase(api, NewSessionGuard(store, nil, false), testValidator(), listing.ShowError, nil)
	require.NoError(t, err)
	return uc
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("stores admin token and user", func(t *testing.T) {
		store := newTestStore(t)
		uc := NewLoginUseCase(seededAPI(), store, testValidator())

		user, err := uc.Execute(ctx, "s1", domain.LoginRequest{Email: "admin@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)

		s, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "tok-admin@example.com", s.Token)
	})

	t.Run("rejects non-admin roles", func(t *testing.T) {
		store := newTestStore(t)
		uc := NewLoginUseCase(seededAPI(), store, testValidator())

		_, err := uc.Execute(ctx, "s1", domain.LoginRequest{Email: "agent@example.com", Password: "secret123"})
		require.ErrorIs(t, err, domain.ErrForbidden)
		_, err = store.Get(ctx, "s1")
		assert.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("validates the form before calling the API", func(t *testing.T) {
		uc := NewLoginUseCase(seededAPI(), newTestStore(t), testValidator())
		_, err := uc.Execute(ctx, "s1", domain.LoginRequest{Email: "not-an-email"})

		var fields formvalidation.FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
	})
}

func TestLogout_ClearsSessionAndViews(t *testing.T) {
	ctx := context.Background()
	api := seededAPI()
	store := newTestStore(t)
	loginAs(t, store, "s1", "tok", testAdmin)

	forgotten := ""
	uc := NewLogoutUseCase(api, store, func(sid string) { forgotten = sid })

	events, unsubscribe := store.Subscribe("s1")
	defer unsubscribe()

	require.NoError(t, uc.Execute(ctx, "s1"))
	assert.Equal(t, 1, api.logouts)
	assert.Equal(t, "s1", forgotten)

	select {
	case ev := <-events:
		assert.Equal(t, session.ReasonLogout, ev.Reason)
	case <-time.After(time.Second):
		t.Fatal("no auth-change event after logout")
	}
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestPropertiesList(t *testing.T) {
	ctx := context.Background()

	t.Run("requires login", func(t *testing.T) {
		uc := newProperties(t, seededAPI(), newTestStore(t))
		_, err := uc.List(ctx, "s1", propertyFilters())
		assert.ErrorIs(t, err, domain.ErrLoginRequired)
	})

	t.Run("loads a page with the stored token", func(t *testing.T) {
		api := seededAPI()
		store := newTestStore(t)
		loginAs(t, store, "s1", "tok", testAdmin)
		uc := newProperties(t, api, store)

		res, err := uc.List(ctx, "s1", querycodec.AdminPropertyFilters{Page: 1, PerPage: 2})
		require.NoError(t, err)
		assert.Len(t, res.State.Page.Items, 2)
		assert.Equal(t, 2, res.State.Page.TotalPages)
		assert.Equal(t, []string{"tok"}, api.tokens)
	})

	t.Run("surfaces failures with a retry flag", func(t *testing.T) {
		api := seededAPI()
		api.down = true
		store := newTestStore(t)
		loginAs(t, store, "s1", "tok", testAdmin)
		uc := newProperties(t, api, store)

		res, err := uc.List(ctx, "s1", propertyFilters())
		require.ErrorIs(t, err, domain.ErrUpstream)
		require.NotNil(t, res)
		assert.True(t, res.State.Retry)
		assert.NotEmpty(t, res.State.Error)
		assert.Empty(t, res.State.Page.Items)
	})

	t.Run("401 drops the admin session", func(t *testing.T) {
		api := seededAPI()
		api.revoked = true
		store := newTestStore(t)
		loginAs(t, store, "s1", "tok", testAdmin)
		uc := newProperties(t, api, store)

		_, err := uc.List(ctx, "s1", propertyFilters())
		require.ErrorIs(t, err, domain.ErrUnauthorized)
		_, err = store.Get(ctx, "s1")
		assert.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("401 is not masked by the fallback policy", func(t *testing.T) {
		api := seededAPI()
		api.revoked = true
		store := newTestStore(t)
		loginAs(t, store, "s1", "tok", testAdmin)

		guard := NewSessionGuard(store, nil, false)
		var ended []string
		guard.OnSessionEnd(func(sessionID string) { ended = append(ended, sessionID) })
		uc, err := NewPropertiesUseCase(api, guard, testValidator(), listing.ShowFallback, nil)
		require.NoError(t, err)

		_, err = uc.List(ctx, "s1", propertyFilters())
		require.ErrorIs(t, err, domain.ErrUnauthorized)
		_, err = store.Get(ctx, "s1")
		assert.ErrorIs(t, err, session.ErrNoSession)
		assert.Equal(t, []string{"s1"}, ended)
	})

	t.Run("fallback policy shows an empty page when the API is down", func(t *testing.T) {
		api := seededAPI()
		api.down = true
		store := newTestStore(t)
		loginAs(t, store, "s1", "tok", testAdmin)
		uc, err := NewPropertiesUseCase(api, NewSessionGuard(store, nil, false), testValidator(), listing.ShowFallback, nil)
		require.NoError(t, err)

		res, err := uc.List(ctx, "s1", propertyFilters())
		require.NoError(t, err)
		assert.True(t, res.State.Fallback)
		assert.Empty(t, res.State.Page.Items)
	})
}

func TestToggleFeatured_ReloadShowsFlippedFlag(t *testing.T) {
	ctx := context.Background()
	api := seededAPI()
	store := newTestStore(t)
	loginAs(t, store, "s1", "tok", testAdmin)
	uc := newProperties(t, api, store)

	before, err := uc.List(ctx, "s1", propertyFilters())
	require.NoError(t, err)
	require.False(t, before.State.Page.Items[0].IsFeatured)

	after, err := uc.ToggleFeatured(ctx, "s1", "p1", propertyFilters())
	require.NoError(t, err)
	assert.True(t, after.State.Page.Items[0].IsFeatured)
	assert.True(t, after.State.Page.Items[1].IsFeatured, "other rows untouched")

	again, err := uc.ToggleFeatured(ctx, "s1", "p1", propertyFilters())
	require.NoError(t, err)
	assert.False(t, again.State.Page.Items[0].IsFeatured)
}

func TestDeleteProperty_ReloadsList(t *testing.T) {
	api := seededAPI()
	store := newTestStore(t)
	loginAs(t, store, "s1", "tok", testAdmin)
	uc := newProperties(t, api, store)

	res, err := uc.Delete(context.Background(), "s1", "p2", propertyFilters())
	require.NoError(t, err)
	assert.Equal(t, 2, res.State.Page.Total)
}

func TestPropertyEditor(t *testing.T) {
	ctx := context.Background()
	api := seededAPI()
	store := newTestStore(t)
	loginAs(t, store, "s1", "tok", testAdmin)
	uc := newProperties(t, api, store)

	blank, err := uc.Editor(ctx, "s1", "")
	require.NoError(t, err)
	assert.Empty(t, blank.ID)
	assert.Equal(t, "villa", blank.Form.PropertyType)

	existing, err := uc.Editor(ctx, "s1", "p3")
	require.NoError(t, err)
	assert.Equal(t, "Ubud Retreat", existing.Form.Title)
	assert.Equal(t, []string{}, existing.Form.Images)
	assert.Equal(t, 0.0, existing.Form.Latitude)

	_, err = uc.Editor(ctx, "s1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateProperty(t *testing.T) {
	ctx := context.Background()
	api := seededAPI()
	store := newTestStore(t)
	loginAs(t, store, "s1", "tok", testAdmin)
	uc := newProperties(t, api, store)

	_, err := uc.Create(ctx, "s1", domain.NewPropertyForm())
	var fields formvalidation.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "price")
	assert.Empty(t, api.created)

	form := domain.NewPropertyForm()
	form.Title, form.Price, form.Area = "Villa Baru", 250000, "Ubud"
	p, err := uc.Create(ctx, "s1", form)
	require.NoError(t, err)
	assert.Equal(t, "new", p.ID)
	assert.Equal(t, []string{"admin-1"}, api.owners)
}

func TestApplyFormOp(t *testing.T) {
	uc := newProperties(t, seededAPI(), newTestStore(t))

	form, err := uc.ApplyFormOp(usecases_port.PropertyFormOp{Action: domain.FormAddImage, ImageURL: "https://cdn/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.jpg"}, form.Images)
	assert.Equal(t, []string{}, form.Features)

	form, err = uc.ApplyFormOp(usecases_port.PropertyFormOp{Action: domain.FormToggleFeature, Form: form, Feature: "Pool"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pool"}, form.Features)

	_, err = uc.ApplyFormOp(usecases_port.PropertyFormOp{Action: "explode"})
	assert.ErrorIs(t, err, domain.ErrInvalidCommand)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	api := seededAPI()
	store := newTestStore(t)
	loginAs(t, store, "s1", "tok", testAdmin)
	uc, err := NewUsersUseCase(api, NewSessionGuard(store, nil, false), testValidator(), listing.ShowError, nil)
	require.NoError(t, err)
	filters := querycodec.UserFilters{Page: 1, PerPage: 10}

	t.Run("filters by role", func(t *testing.T) {
		res, err := uc.List(ctx, "s1", querycodec.UserFilters{Page: 1, PerPage: 10, Role: "agent"})
		require.NoError(t, err)
		require.Len(t, res.State.Page.Items, 1)
		assert.Equal(t, "Budi", res.State.Page.Items[0].Name)
	})

	t.Run("create requires an 8 character password", func(t *testing.T) {
		_, err := uc.Create(ctx, "s1", domain.UserCreate{Name: "Cici", Email: "cici@example.com", Password: "short", Role: domain.RoleUser}, filters)
		var fields formvalidation.FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Equal(t, "Password must be at least 8 characters", fields["password"])
	})

	t.Run("create reloads the list", func(t *testing.T) {
		res, err := uc.Create(ctx, "s1", domain.UserCreate{Name: "Cici", Email: "cici@example.com", Password: "longenough", Role: domain.RoleUser}, filters)
		require.NoError(t, err)
		assert.Equal(t, 3, res.State.Page.Total)
	})

	t.Run("toggle active reloads with the flipped flag", func(t *testing.T) {
		res, err := uc.ToggleActive(ctx, "s1", "u1", filters)
		require.NoError(t, err)
		assert.False(t, res.State.Page.Items[0].IsActive)
	})

	t.Run("update never carries a password", func(t *testing.T) {
		res, err := uc.Update(ctx, "s1", "u2", domain.UserUpdate{Name: "Budi S.", Email: "budi@example.com", Role: domain.RoleAdmin}, filters)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, res.State.Page.Items[1].Role)
	})
}

func TestInquiryStatus_AnyTransitionAllowed(t *testing.T) {
	ctx := context.Background()
	api := seededAPI()
	store := newTestStore(t)
	loginAs(t, store, "s1", "tok", testAdmin)
	uc, err := NewInquiriesUseCase(api, NewSessionGuard(store, nil, false), testValidator(), listing.ShowError, nil)
	require.NoError(t, err)
	filters := querycodec.InquiryFilters{Page: 1, PerPage: 10}

	// closed -> new
	res, err := uc.UpdateStatus(ctx, "s1", "i1", domain.StatusUpdate{Status: domain.InquiryNew}, filters)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryNew, res.State.Page.Items[0].Status)

	_, err = uc.UpdateStatus(ctx, "s1", "i1", domain.StatusUpdate{Status: "archived"}, filters)
	var fields formvalidation.FieldErrors
	assert.ErrorAs(t, err, &fields)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	api := seededAPI()
	api.stats = domain.DashboardStats{
		TotalProperties:  4,
		PropertiesByType: []domain.CountEntry{{Label: "villa", Count: 3}, {Label: "land", Count: 1}},
		RecentInquiries:  make([]domain.Inquiry, 7),
	}
	store := newTestStore(t)
	loginAs(t, store, "s1", "tok", testAdmin)
	uc := NewDashboardUseCase(api, NewSessionGuard(store, nil, false))

	d, err := uc.Execute(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, d.TypeBars[0].Width)
	assert.InDelta(t, 33.33, d.TypeBars[1].Width, 0.01)
	assert.Len(t, d.RecentInquiries, 5)

	api.down = true
	_, err = uc.Execute(ctx, "s1")
	assert.ErrorIs(t, err, errAPIDown)
}

func signAdminToken(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "admin-1",
		"role":    role,
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestSessionGuard_TokenChecks(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"valid admin token", signAdminToken(t, "k", "admin", time.Now().Add(time.Hour)), nil},
		{"super admin token", signAdminToken(t, "k", "super_admin", time.Now().Add(time.Hour)), nil},
		{"expired token", signAdminToken(t, "k", "admin", time.Now().Add(-time.Hour)), domain.ErrLoginRequired},
		{"agent token", signAdminToken(t, "k", "agent", time.Now().Add(time.Hour)), domain.ErrUnauthorized},
		{"garbage token", "not-a-jwt", domain.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			loginAs(t, store, "s1", tt.token, testAdmin)
			guard := NewSessionGuard(store, authtoken.NewInspector("k"), true)

			_, err := guard.require(ctx, "s1")
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			_, err = store.Get(ctx, "s1")
			assert.ErrorIs(t, err, session.ErrNoSession)
		})
	}
}
