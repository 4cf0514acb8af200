package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dendisuhubdy/mybalivillas/pkg/authtoken"
	"github.com/dendisuhubdy/mybalivillas/pkg/formvalidation"
	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

var errAPIDown = errors.New("connection refused")

// fakeAPI - заглушка MarketplaceAPIPort; неуказанные методы возвращают errAPIDown.
type fakeAPI struct {
	listProperties func(ctx context.Context, f querycodec.PropertyFilters) (pagination.Page[domain.Property], error)
	featured       func(ctx context.Context) ([]domain.Property, error)
	getProperty    func(ctx context.Context, slug string) (*domain.Property, error)
	similar        func(ctx context.Context, id string) ([]domain.Property, error)
	areas          func(ctx context.Context) ([]domain.Area, error)
	login          func(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	getProfile     func(ctx context.Context, token string) (*domain.User, error)
	updateProfile  func(ctx context.Context, token string, upd domain.ProfileUpdate) (*domain.User, error)
	createInquiry  func(ctx context.Context, token, id string, form domain.InquiryForm) (*domain.Inquiry, error)
	listSaved      func(ctx context.Context, token string) ([]domain.Property, error)
	unsave         func(ctx context.Context, token, id string) error
	createProperty func(ctx context.Context, token string, sub domain.PropertySubmission) (*domain.Property, error)
}

func (f *fakeAPI) ListProperties(ctx context.Context, filters querycodec.PropertyFilters) (pagination.Page[domain.Property], error) {
	if f.listProperties == nil {
		return pagination.Page[domain.Property]{}, errAPIDown
	}
	return f.listProperties(ctx, filters)
}

func (f *fakeAPI) FeaturedProperties(ctx context.Context) ([]domain.Property, error) {
	if f.featured == nil {
		return nil, errAPIDown
	}
	return f.featured(ctx)
}

func (f *fakeAPI) GetProperty(ctx context.Context, slug string) (*domain.Property, error) {
	if f.getProperty == nil {
		return nil, errAPIDown
	}
	return f.getProperty(ctx, slug)
}

func (f *fakeAPI) SimilarProperties(ctx context.Context, id string) ([]domain.Property, error) {
	if f.similar == nil {
		return nil, errAPIDown
	}
	return f.similar(ctx, id)
}

func (f *fakeAPI) ListAreas(ctx context.Context) ([]domain.Area, error) {
	if f.areas == nil {
		return nil, errAPIDown
	}
	return f.areas(ctx)
}

func (f *fakeAPI) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	if f.login == nil {
		return nil, errAPIDown
	}
	return f.login(ctx, req)
}

func (f *fakeAPI) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	return f.Login(ctx, domain.LoginRequest{Email: req.Email, Password: req.Password})
}

func (f *fakeAPI) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	if f.getProfile == nil {
		return nil, errAPIDown
	}
	return f.getProfile(ctx, token)
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, token string, upd domain.ProfileUpdate) (*domain.User, error) {
	if f.updateProfile == nil {
		return nil, errAPIDown
	}
	return f.updateProfile(ctx, token, upd)
}

func (f *fakeAPI) CreateInquiry(ctx context.Context, token, id string, form domain.InquiryForm) (*domain.Inquiry, error) {
	if f.createInquiry == nil {
		return nil, errAPIDown
	}
	return f.createInquiry(ctx, token, id, form)
}

func (f *fakeAPI) ListSaved(ctx context.Context, token string) ([]domain.Property, error) {
	if f.listSaved == nil {
		return nil, errAPIDown
	}
	return f.listSaved(ctx, token)
}

func (f *fakeAPI) SaveProperty(ctx context.Context, token, id string) error {
	return nil
}

func (f *fakeAPI) UnsaveProperty(ctx context.Context, token, id string) error {
	if f.unsave == nil {
		return errAPIDown
	}
	return f.unsave(ctx, token, id)
}

func (f *fakeAPI) CreateProperty(ctx context.Context, token string, sub domain.PropertySubmission) (*domain.Property, error) {
	if f.createProperty == nil {
		return nil, errAPIDown
	}
	return f.createProperty(ctx, token, sub)
}

func newTestStore(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager(session.ManagerConfig{
		Backend: session.NewMemoryBackend(),
		Keys:    session.StorefrontKeys,
		TTL:     time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func loginAs(t *testing.T, store *session.Manager, sessionID string, user domain.User) {
	t.Helper()
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), sessionID, session.Session{Token: "opaque-token", User: raw}, session.ReasonLogin))
}

func newTestGuard(store *session.Manager) *SessionGuard {
	return NewSessionGuard(store, authtoken.NewInspector(""), false)
}

var testValidator = formvalidation.New()
