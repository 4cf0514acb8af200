package admin_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/contracts"
	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
)

// AdminAPIClient - клиент административного API (ADMIN_API_URL, например http://localhost:8081/api/admin).
type AdminAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAdminAPIClient(baseURL string, timeout time.Duration) *AdminAPIClient {
	return &AdminAPIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *AdminAPIClient) doRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

// call выполняет запрос и возвращает полезную нагрузку: поле data конверта
// {success, data}, либо тело целиком, если конверта нет.
func (c *AdminAPIClient) call(ctx context.Context, method, path, token string, payload any) (json.RawMessage, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "AdminAPIClient",
		"method":    method,
		"path":      path,
	})

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			clientLogger.Error("Failed to marshal request body", err, nil)
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	resp, err := c.doRequest(ctx, method, path, token, body)
	if err != nil {
		clientLogger.Error("Failed to perform request to admin api", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		clientLogger.Error("Failed to read response body", err, nil)
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, respBody)
		clientLogger.Warn("Received non-2xx response from admin api", port.Fields{
			"status_code": resp.StatusCode,
			"message":     apiErr.Message,
		})
		return nil, apiErr
	}

	respBody = bytes.TrimSpace(respBody)
	if len(respBody) == 0 {
		return nil, nil
	}

	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil || envelope.Success == nil {
		// не объект или объект без success: конверта нет
		return respBody, nil
	}
	if err := contracts.ValidateEnvelope(contracts.KindAPIResponse, respBody); err != nil {
		clientLogger.Error("Response envelope does not match contract", err, port.Fields{"envelope": contracts.KindAPIResponse})
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	if !*envelope.Success {
		clientLogger.Warn("Admin api reported failure", port.Fields{"message": envelope.Message})
		return nil, &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}
	return envelope.Data, nil
}

func (c *AdminAPIClient) do(ctx context.Context, method, path, token string, payload, out any) error {
	raw, err := c.call(ctx, method, path, token, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("%w: empty response from %s %s", domain.ErrUpstream, method, path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to decode admin api response", err, port.Fields{"path": path})
		return fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstream, err)
	}
	return nil
}

// listPage загружает страницу таблицы и проверяет ее по схеме admin PaginatedResponse.
func listPage[D, T any](ctx context.Context, c *AdminAPIClient, path, token string, conv func(D) T) (pagination.Page[T], error) {
	raw, err := c.call(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return pagination.Page[T]{}, err
	}
	if err := contracts.ValidateEnvelope(contracts.KindAdminPaginatedResponse, raw); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Page does not match contract", err, port.Fields{"path": path})
		return pagination.Page[T]{}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	var dto pageDTO[D]
	if err := json.Unmarshal(raw, &dto); err != nil {
		return pagination.Page[T]{}, fmt.Errorf("%w: failed to decode page: %v", domain.ErrUpstream, err)
	}
	rows := dto.rows()
	items := make([]T, len(rows))
	for i, d := range rows {
		items[i] = conv(d)
	}
	if dto.TotalPages == 0 {
		dto.TotalPages = pagination.TotalPages(dto.Total, dto.PerPage)
	}
	return pagination.Page[T]{
		Items:      items,
		Total:      dto.Total,
		Page:       dto.Page,
		PerPage:    dto.PerPage,
		TotalPages: dto.TotalPages,
	}, nil
}

func (c *AdminAPIClient) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	var res authDTO
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: auth response carries no token", domain.ErrUpstream)
	}
	return &domain.AuthResult{Token: res.Token, User: res.User.toAdminUser()}, nil
}

func (c *AdminAPIClient) Logout(ctx context.Context, token string) error {
	_, err := c.call(ctx, http.MethodPost, "/auth/logout", token, nil)
	return err
}

func (c *AdminAPIClient) DashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error) {
	var res dashboardDTO
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", token, nil, &res); err != nil {
		return nil, err
	}
	stats := res.toDomain()
	return &stats, nil
}

func (c *AdminAPIClient) ListProperties(ctx context.Context, token string, filters querycodec.AdminPropertyFilters) (pagination.Page[domain.Property], error) {
	path := "/properties" + querycodec.WithPrefix(filters.Params())
	return listPage(ctx, c, path, token, propertyDTO.toDomain)
}

func propertyPath(id string) string {
	return "/properties/" + url.PathEscape(id)
}

func (c *AdminAPIClient) property(ctx context.Context, method, path, token string, payload any) (*domain.Property, error) {
	var res propertyDTO
	if err := c.do(ctx, method, path, token, payload, &res); err != nil {
		return nil, err
	}
	p := res.toDomain()
	return &p, nil
}

func (c *AdminAPIClient) GetProperty(ctx context.Context, token, id string) (*domain.Property, error) {
	return c.property(ctx, http.MethodGet, propertyPath(id), token, nil)
}

func (c *AdminAPIClient) CreateProperty(ctx context.Context, token, ownerID string, form domain.PropertyForm) (*domain.Property, error) {
	return c.property(ctx, http.MethodPost, "/properties", token, newPropertyPayload(form, ownerID))
}

func (c *AdminAPIClient) UpdateProperty(ctx context.Context, token, id string, form domain.PropertyForm) (*domain.Property, error) {
	return c.property(ctx, http.MethodPut, propertyPath(id), token, newPropertyPayload(form, ""))
}

func (c *AdminAPIClient) DeleteProperty(ctx context.Context, token, id string) error {
	_, err := c.call(ctx, http.MethodDelete, propertyPath(id), token, nil)
	return err
}

func (c *AdminAPIClient) ToggleFeatured(ctx context.Context, token, id string) (*domain.Property, error) {
	return c.property(ctx, http.MethodPatch, propertyPath(id)+"/toggle-featured", token, nil)
}

func (c *AdminAPIClient) ListUsers(ctx context.Context, token string, filters querycodec.UserFilters) (pagination.Page[domain.User], error) {
	path := "/users" + querycodec.WithPrefix(filters.Params())
	return listPage(ctx, c, path, token, userDTO.toDomain)
}

func (c *AdminAPIClient) user(ctx context.Context, method, path, token string, payload any) (*domain.User, error) {
	var res userDTO
	if err := c.do(ctx, method, path, token, payload, &res); err != nil {
		return nil, err
	}
	u := res.toDomain()
	return &u, nil
}

func (c *AdminAPIClient) CreateUser(ctx context.Context, token string, req domain.UserCreate) (*domain.User, error) {
	payload := userPayload{FullName: req.Name, Email: req.Email, Password: req.Password, Role: string(req.Role)}
	return c.user(ctx, http.MethodPost, "/users", token, payload)
}

func (c *AdminAPIClient) UpdateUser(ctx context.Context, token, id string, req domain.UserUpdate) (*domain.User, error) {
	payload := userPayload{FullName: req.Name, Email: req.Email, Role: string(req.Role)}
	return c.user(ctx, http.MethodPut, "/users/"+url.PathEscape(id), token, payload)
}

func (c *AdminAPIClient) ToggleUserActive(ctx context.Context, token, id string) (*domain.User, error) {
	return c.user(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/toggle-active", token, nil)
}

func (c *AdminAPIClient) ListInquiries(ctx context.Context, token string, filters querycodec.InquiryFilters) (pagination.Page[domain.Inquiry], error) {
	path := "/inquiries" + querycodec.WithPrefix(filters.Params())
	return listPage(ctx, c, path, token, inquiryDTO.toDomain)
}

func (c *AdminAPIClient) UpdateInquiryStatus(ctx context.Context, token, id string, status domain.InquiryStatus) (*domain.Inquiry, error) {
	var res inquiryDTO
	path := "/inquiries/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, token, map[string]string{"status": string(status)}, &res); err != nil {
		return nil, err
	}
	inq := res.toDomain()
	return &inq, nil
}
