package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendisuhubdy/mybalivillas/pkg/authtoken"
	"github.com/dendisuhubdy/mybalivillas/pkg/formvalidation"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

func TestBrowseProperties(t *testing.T) {
	t.Run("passes page and per_page to the API", func(t *testing.T) {
		var got querycodec.PropertyFilters
		api := &fakeAPI{listProperties: func(_ context.Context, f querycodec.PropertyFilters) (pagination.Page[domain.Property], error) {
			got = f
			return pagination.Page[domain.Property]{
				Items: []domain.Property{{ID: "x"}}, Total: 30, Page: 2, PerPage: 12, TotalPages: 3,
			}, nil
		}}
		uc, err := NewBrowsePropertiesUseCase(api, listing.ShowFallback, 12, nil)
		require.NoError(t, err)

		page := 2
		res, err := uc.Execute(context.Background(), "s1", querycodec.PropertyFilters{PropertyType: "villa", Page: &page})
		require.NoError(t, err)
		assert.Equal(t, "page=2&per_page=12&property_type=villa", got.Encode())
		assert.False(t, res.State.Fallback)
		require.NotNil(t, res.State.Pagination)
		assert.Equal(t, 3, res.State.Pagination.TotalPages)
	})

	t.Run("falls back to built-in data", func(t *testing.T) {
		uc, err := NewBrowsePropertiesUseCase(&fakeAPI{}, listing.ShowFallback, 12, nil)
		require.NoError(t, err)

		res, err := uc.Execute(context.Background(), "s1", querycodec.PropertyFilters{Area: "ubud"})
		require.NoError(t, err)
		assert.True(t, res.State.Fallback)
		require.Len(t, res.State.Page.Items, 1)
		assert.Equal(t, "tropical-retreat-ubud-rice-fields", res.State.Page.Items[0].Slug)
		assert.Nil(t, res.State.Pagination)
	})

	t.Run("surfaces the error under the error policy", func(t *testing.T) {
		uc, err := NewBrowsePropertiesUseCase(&fakeAPI{}, listing.ShowError, 12, nil)
		require.NoError(t, err)

		res, err := uc.Execute(context.Background(), "s1", querycodec.PropertyFilters{})
		require.ErrorIs(t, err, domain.ErrUpstream)
		require.NotNil(t, res)
		assert.True(t, res.State.Retry)
		assert.Empty(t, res.State.Page.Items)
	})
}

func TestGetPropertyDetail(t *testing.T) {
	lat, lng := -8.6913, 115.1682
	api := &fakeAPI{
		getProperty: func(_ context.Context, slug string) (*domain.Property, error) {
			return &domain.Property{ID: "p1", Slug: slug, Latitude: &lat, Longitude: &lng}, nil
		},
		similar: func(_ context.Context, _ string) ([]domain.Property, error) {
			return []domain.Property{{ID: "p1"}, {ID: "p2"}}, nil
		},
	}
	detail, err := NewGetPropertyDetailUseCase(api, listing.ShowFallback).Execute(context.Background(), "villa")
	require.NoError(t, err)
	assert.Len(t, detail.Geohash, 7)
	require.Len(t, detail.Similar, 1)
	assert.Equal(t, "p2", detail.Similar[0].ID)

	t.Run("fallback by slug", func(t *testing.T) {
		detail, err := NewGetPropertyDetailUseCase(&fakeAPI{}, listing.ShowFallback).Execute(context.Background(), "charming-family-house-sanur")
		require.NoError(t, err)
		assert.True(t, detail.Fallback)
		assert.Equal(t, "7c0e4a52-3b1f-4d8e-9a61-5f2c8b0d1e06", detail.Property.ID)
		assert.Len(t, detail.Similar, 3)
		assert.Empty(t, detail.Geohash)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := NewGetPropertyDetailUseCase(&fakeAPI{}, listing.ShowFallback).Execute(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCatalogFallbacks(t *testing.T) {
	areas, err := NewListAreasUseCase(&fakeAPI{}, listing.ShowFallback).Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, areas.Fallback)
	assert.Len(t, areas.Items, 8)

	_, err = NewListAreasUseCase(&fakeAPI{}, listing.ShowError).Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream)

	featured, err := NewGetFeaturedPropertiesUseCase(&fakeAPI{}, listing.ShowFallback).Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, featured.Items, 6)
}

func TestSubmitInquiryDefaultsMessage(t *testing.T) {
	var sent domain.InquiryForm
	api := &fakeAPI{createInquiry: func(_ context.Context, token, id string, form domain.InquiryForm) (*domain.Inquiry, error) {
		sent = form
		assert.Empty(t, token)
		return &domain.Inquiry{ID: "i1", PropertyID: id}, nil
	}}
	uc := NewSubmitInquiryUseCase(api, newTestStore(t), testValidator)

	_, err := uc.Execute(context.Background(), "anon", "p1", "Villa Sunset", domain.InquiryForm{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.Equal(t, `Hi, I am interested in "Villa Sunset". Please provide more details.`, sent.Message)

	_, err = uc.Execute(context.Background(), "anon", "p1", "", domain.InquiryForm{Name: "Ann", Email: "bad"})
	var fields formvalidation.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "message")
}

func TestLoginStoresSessionAndNotifies(t *testing.T) {
	store := newTestStore(t)
	events, unsubscribe := store.Subscribe("s1")
	defer unsubscribe()

	api := &fakeAPI{login: func(_ context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
		return &domain.AuthResult{Token: "tok", User: domain.User{ID: "u1", Email: req.Email, Role: domain.RoleAgent}}, nil
	}}
	user, err := NewLoginUseCase(api, store, testValidator).Execute(context.Background(), "s1", domain.LoginRequest{Email: "a@b.co", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	select {
	case ev := <-events:
		assert.Equal(t, session.ReasonLogin, ev.Reason)
	case <-time.After(time.Second):
		t.Fatal("auth-change event was not delivered")
	}

	current, err := NewCurrentSessionUseCase(newTestGuard(store)).Execute(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgent, current.Role)

	require.NoError(t, NewLogoutUseCase(store).Execute(context.Background(), "s1"))
	_, err = NewCurrentSessionUseCase(newTestGuard(store)).Execute(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
}

func TestSessionGuardDropsExpiredToken(t *testing.T) {
	store := newTestStore(t)
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "s1", session.Session{Token: signed}, session.ReasonLogin))

	guard := NewSessionGuard(store, authtoken.NewInspector(""), false)
	_, err = NewCurrentSessionUseCase(guard).Execute(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrLoginRequired)

	_, err = store.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestUpdateProfileMergesStoredUser(t *testing.T) {
	store := newTestStore(t)
	loginAs(t, store, "s1", domain.User{ID: "u1", Name: "Old", Email: "u@x.io", Role: domain.RoleUser})

	api := &fakeAPI{updateProfile: func(_ context.Context, token string, upd domain.ProfileUpdate) (*domain.User, error) {
		assert.Equal(t, "opaque-token", token)
		return &domain.User{ID: "u1", FullName: upd.FullName, Phone: upd.Phone}, nil
	}}
	uc := NewUpdateProfileUseCase(api, store, newTestGuard(store), testValidator)

	_, err := uc.Execute(context.Background(), "s1", domain.ProfileUpdate{FullName: "New Name", Phone: "+62"})
	require.NoError(t, err)

	current, err := NewCurrentSessionUseCase(newTestGuard(store)).Execute(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", current.User.Name)
	assert.Equal(t, "u@x.io", current.User.Email)

	_, err = uc.Execute(context.Background(), "s1", domain.ProfileUpdate{})
	var fields formvalidation.FieldErrors
	assert.ErrorAs(t, err, &fields)
}

func TestUnauthorizedUpstreamDropsSession(t *testing.T) {
	store := newTestStore(t)
	loginAs(t, store, "s1", domain.User{ID: "u1"})

	api := &fakeAPI{getProfile: func(context.Context, string) (*domain.User, error) {
		return nil, domain.ErrUnauthorized
	}}
	_, err := NewGetProfileUseCase(api, newTestGuard(store)).Execute(context.Background(), "s1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = store.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestUnsaveRemovesWithoutRefetch(t *testing.T) {
	store := newTestStore(t)
	loginAs(t, store, "s1", domain.User{ID: "u1"})

	calls := 0
	api := &fakeAPI{
		listSaved: func(context.Context, string) ([]domain.Property, error) {
			calls++
			return []domain.Property{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
		unsave: func(context.Context, string, string) error { return nil },
	}
	uc := NewSavedPropertiesUseCase(api, newTestGuard(store))

	_, err := uc.List(context.Background(), "s1")
	require.NoError(t, err)
	rest, err := uc.Unsave(context.Background(), "s1", "b")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	require.Len(t, rest, 2)
	assert.Equal(t, "a", rest[0].ID)
	assert.Equal(t, "c", rest[1].ID)

	_, err = uc.List(context.Background(), "anon")
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
}

func TestSavedListDoesNotLeakAcrossUsers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	loginAs(t, store, "s1", domain.User{ID: "alice"})

	revoked := false
	api := &fakeAPI{
		listSaved: func(context.Context, string) ([]domain.Property, error) {
			if revoked {
				return nil, domain.ErrUnauthorized
			}
			return []domain.Property{{ID: "a-private-1"}, {ID: "a-private-2"}}, nil
		},
		unsave: func(context.Context, string, string) error { return nil },
		login: func(context.Context, domain.LoginRequest) (*domain.AuthResult, error) {
			return &domain.AuthResult{Token: "bob-token", User: domain.User{ID: "bob", Name: "Bob"}}, nil
		},
	}
	guard := newTestGuard(store)
	saved := NewSavedPropertiesUseCase(api, guard)

	_, err := saved.List(ctx, "s1")
	require.NoError(t, err)

	// 401 от API сбрасывает сессию вместе с запомненным списком
	revoked = true
	_, err = saved.List(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, saved.lists)

	_, err = NewLoginUseCase(api, store, testValidator, saved.Forget).
		Execute(ctx, "s1", domain.LoginRequest{Email: "bob@example.com", Password: "secret"})
	require.NoError(t, err)

	rest, err := saved.Unsave(ctx, "s1", "bob-item")
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestSavedListBelongsToTheLoadingUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	loginAs(t, store, "s1", domain.User{ID: "alice"})

	api := &fakeAPI{
		listSaved: func(context.Context, string) ([]domain.Property, error) {
			return []domain.Property{{ID: "a-private-1"}}, nil
		},
		unsave: func(context.Context, string, string) error { return nil },
	}
	saved := NewSavedPropertiesUseCase(api, newTestGuard(store))
	_, err := saved.List(ctx, "s1")
	require.NoError(t, err)

	// другой пользователь в той же сессии без повторного входа через use case
	loginAs(t, store, "s1", domain.User{ID: "bob"})
	rest, err := saved.Unsave(ctx, "s1", "x")
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestSavedListsAreSwept(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	api := &fakeAPI{listSaved: func(context.Context, string) ([]domain.Property, error) {
		return []domain.Property{{ID: "a"}}, nil
	}}
	saved := NewSavedPropertiesUseCase(api, newTestGuard(store))

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	saved.now = func() time.Time { return now }
	for _, id := range []string{"s1", "s2", "s3"} {
		loginAs(t, store, id, domain.User{ID: "u-" + id})
		_, err := saved.List(ctx, id)
		require.NoError(t, err)
	}

	now = now.Add(time.Hour)
	_, err := saved.List(ctx, "s2")
	require.NoError(t, err)

	assert.Equal(t, 2, saved.Sweep(30*time.Minute))
	assert.Len(t, saved.lists, 1)
	assert.Contains(t, saved.lists, "s2")
}

func TestListPropertyWizard(t *testing.T) {
	store := newTestStore(t)
	loginAs(t, store, "s1", domain.User{ID: "u1", Role: domain.RoleUser})

	var submitted domain.PropertySubmission
	api := &fakeAPI{createProperty: func(_ context.Context, _ string, sub domain.PropertySubmission) (*domain.Property, error) {
		submitted = sub
		return &domain.Property{ID: "new"}, nil
	}}
	uc := NewListPropertyWizardUseCase(api, newTestGuard(store))
	ctx := context.Background()

	state := domain.WizardState{Form: domain.NewWizardForm()}
	next, err := uc.Execute(ctx, "s1", state, domain.WizardNext)
	require.NoError(t, err)
	assert.Equal(t, 0, next.Step)
	assert.Equal(t, "Title is required", next.Error)

	_, err = uc.Execute(ctx, "s1", state, domain.WizardSubmit)
	assert.ErrorIs(t, err, domain.ErrInvalidCommand)

	state.Step = len(domain.WizardSteps) - 1
	state.Form.Title = "Villa"
	state.Form.Price = "100"
	state.Form.Features = "Pool, Garden"
	done, err := uc.Execute(ctx, "s1", state, domain.WizardSubmit)
	require.NoError(t, err)
	assert.True(t, done.Success)
	assert.Contains(t, done.Message, "submitted for review")
	assert.Equal(t, []string{"Pool", "Garden"}, submitted.Features)

	_, err = uc.Execute(ctx, "anon", state, domain.WizardNext)
	assert.ErrorIs(t, err, domain.ErrLoginRequired)

	t.Run("api failure keeps the last step", func(t *testing.T) {
		failing := NewListPropertyWizardUseCase(&fakeAPI{createProperty: func(context.Context, string, domain.PropertySubmission) (*domain.Property, error) {
			return nil, errors.New("boom")
		}}, newTestGuard(store))
		res, err := failing.Execute(ctx, "s1", state, domain.WizardSubmit)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, state.Step, res.Step)
		assert.Equal(t, "Failed to create listing", res.Error)
	})
}
