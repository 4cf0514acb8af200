package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dendisuhubdy/mybalivillas/pkg/formvalidation"
	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
)

var errAPIDown = errors.New("connection refused")

// fakeAdminAPI - админский API в памяти. down - все вызовы падают,
// revoked - все вызовы отвечают 401.
type fakeAdminAPI struct {
	mu         sync.Mutex
	down       bool
	revoked    bool
	properties []domain.Property
	users      []domain.User
	inquiries  []domain.Inquiry
	stats      domain.DashboardStats
	tokens     []string
	created    []domain.PropertyForm
	owners     []string
	logouts    int
}

func (f *fakeAdminAPI) check(token string) error {
	f.tokens = append(f.tokens, token)
	switch {
	case f.down:
		return errAPIDown
	case f.revoked:
		return domain.ErrUnauthorized
	}
	return nil
}

func page[T any](items []T, p, perPage int) pagination.Page[T] {
	total := len(items)
	start := (p - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	out := append([]T{}, items[start:end]...)
	return pagination.Page[T]{Items: out, Total: total, Page: p, PerPage: perPage, TotalPages: pagination.TotalPages(total, perPage)}
}

func (f *fakeAdminAPI) Login(_ context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	if req.Password != "secret123" {
		return nil, domain.ErrUnauthorized
	}
	role := domain.RoleAdmin
	if req.Email == "agent@example.com" {
		role = domain.RoleAgent
	}
	return &domain.AuthResult{Token: "tok-" + req.Email, User: domain.AdminUser{ID: "admin-1", Email: req.Email, Name: "Admin", Role: role}}, nil
}

func (f *fakeAdminAPI) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	return f.check(token)
}

func (f *fakeAdminAPI) DashboardStats(_ context.Context, token string) (*domain.DashboardStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return nil, err
	}
	s := f.stats
	return &s, nil
}

func (f *fakeAdminAPI) ListProperties(_ context.Context, token string, filters querycodec.AdminPropertyFilters) (pagination.Page[domain.Property], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return pagination.Page[domain.Property]{}, err
	}
	return page(f.properties, filters.Page, filters.PerPage), nil
}

func (f *fakeAdminAPI) GetProperty(_ context.Context, token, id string) (*domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return nil, err
	}
	for _, p := range f.properties {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminAPI) CreateProperty(_ context.Context, token, ownerID string, form domain.PropertyForm) (*domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return nil, err
	}
	f.created = append(f.created, form)
	f.owners = append(f.owners, ownerID)
	p := domain.Property{ID: "new", Title: form.Title, IsActive: form.IsActive}
	f.properties = append(f.properties, p)
	return &p, nil
}

func (f *fakeAdminAPI) UpdateProperty(_ context.Context, token, id string, form domain.PropertyForm) (*domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return nil, err
	}
	for i := range f.properties {
		if f.properties[i].ID == id {
			f.properties[i].Title = form.Title
			p := f.properties[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminAPI) DeleteProperty(_ context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return err
	}
	for i := range f.properties {
		if f.properties[i].ID == id {
			f.properties = append(f.properties[:i], f.properties[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeAdminAPI) ToggleFeatured(_ context.Context, token, id string) (*domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return nil, err
	}
	for i := range f.properties {
		if f.properties[i].ID == id {
			f.properties[i].IsFeatured = !f.properties[i].IsFeatured
			p := f.properties[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminAPI) ListUsers(_ context.Context, token string, filters querycodec.UserFilters) (pagination.Page[domain.User], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return pagination.Page[domain.User]{}, err
	}
	var items []domain.User
	for _, u := range f.users {
		if filters.Role == "" || string(u.Role) == filters.Role {
			items = append(items, u)
		}
	}
	return page(items, filters.Page, filters.PerPage), nil
}

func (f *fakeAdminAPI) CreateUser(_ context.Context, token string, req domain.UserCreate) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return nil, err
	}
	u := domain.User{ID: "u-new", Name: req.Name, Email: req.Email, Role: req.Role, IsActive: true}
	f.users = append(f.users, u)
	return &u, nil
}

func (f *fakeAdminAPI) UpdateUser(_ context.Context, token, id string, req domain.UserUpdate) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return nil, err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Name, f.users[i].Email, f.users[i].Role = req.Name, req.Email, req.Role
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminAPI) ToggleUserActive(_ context.Context, token, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return nil, err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].IsActive = !f.users[i].IsActive
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminAPI) ListInquiries(_ context.Context, token string, filters querycodec.InquiryFilters) (pagination.Page[domain.Inquiry], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return pagination.Page[domain.Inquiry]{}, err
	}
	return page(f.inquiries, filters.Page, filters.PerPage), nil
}

func (f *fakeAdminAPI) UpdateInquiryStatus(_ context.Context, token, id string, status domain.InquiryStatus) (*domain.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(token); err != nil {
		return nil, err
	}
	for i := range f.inquiries {
		if f.inquiries[i].ID == id {
			f.inquiries[i].Status = status
			inq := f.inquiries[i]
			return &inq, nil
		}
	}
	return nil, domain.ErrNotFound
}

func newTestStore(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager(session.ManagerConfig{
		Backend: session.NewMemoryBackend(),
		Keys:    session.AdminKeys,
		TTL:     time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func loginAs(t *testing.T, store *session.Manager, sessionID, token string, user domain.AdminUser) {
	t.Helper()
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), sessionID, session.Session{Token: token, User: raw}, session.ReasonLogin))
}

var testAdmin = domain.AdminUser{ID: "admin-1", Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin}

func testValidator() *formvalidation.Validator {
	return formvalidation.New()
}
