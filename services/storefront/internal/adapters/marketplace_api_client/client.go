package marketplace_api_client

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
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

// MarketplaceAPIClient - клиент публичного REST API (API_URL, например http://localhost:8080/api/v1).
type MarketplaceAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMarketplaceAPIClient(baseURL string, timeout time.Duration) *MarketplaceAPIClient {
	return &MarketplaceAPIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// doRequest добавляет trace_id, JSON-заголовки и bearer-токен, если он есть.
func (c *MarketplaceAPIClient) doRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Response, error) {
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

// call выполняет запрос, проверяет конверт ответа по схеме kind и раскладывает его в out.
// out == nil - тело ответа не нужно.
func (c *MarketplaceAPIClient) call(ctx context.Context, method, path, token string, payload any, kind contracts.Kind, out any) error {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MarketplaceAPIClient",
		"method":    method,
		"path":      path,
	})

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			clientLogger.Error("Failed to marshal request body", err, nil)
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	resp, err := c.doRequest(ctx, method, path, token, body)
	if err != nil {
		clientLogger.Error("Failed to perform request to marketplace api", err, nil)
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		clientLogger.Error("Failed to read response body", err, nil)
		return fmt.Errorf("%w: failed to read response: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, respBody)
		clientLogger.Warn("Received non-2xx response from marketplace api", port.Fields{
			"status_code": resp.StatusCode,
			"message":     apiErr.Message,
		})
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if kind != "" {
		if err := contracts.ValidateEnvelope(kind, respBody); err != nil {
			clientLogger.Error("Response envelope does not match contract", err, port.Fields{"envelope": kind})
			return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		clientLogger.Error("Failed to decode response", err, nil)
		return fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstream, err)
	}
	return nil
}

func (c *MarketplaceAPIClient) ListProperties(ctx context.Context, filters querycodec.PropertyFilters) (pagination.Page[domain.Property], error) {
	var env listEnvelope
	path := "/properties" + querycodec.WithPrefix(filters.Params())
	if err := c.call(ctx, http.MethodGet, path, "", nil, "", &env); err != nil {
		return pagination.Page[domain.Property]{}, err
	}

	var (
		dtos []propertyDTO
		meta paginationDTO
	)
	if env.Pagination != nil {
		raw, _ := json.Marshal(env)
		if err := contracts.ValidateEnvelope(contracts.KindPaginatedResponse, raw); err != nil {
			return pagination.Page[domain.Property]{}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		if err := json.Unmarshal(env.Data, &dtos); err != nil {
			return pagination.Page[domain.Property]{}, fmt.Errorf("%w: failed to decode properties: %v", domain.ErrUpstream, err)
		}
		meta = *env.Pagination
	} else {
		var page itemsPageDTO
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &page); err != nil {
				return pagination.Page[domain.Property]{}, fmt.Errorf("%w: failed to decode properties: %v", domain.ErrUpstream, err)
			}
		}
		dtos, meta = page.Items, page.paginationDTO
	}

	if meta.Page < 1 {
		meta.Page = 1
	}
	if meta.TotalPages == 0 {
		meta.TotalPages = pagination.TotalPages(meta.Total, meta.PerPage)
	}
	return pagination.Page[domain.Property]{
		Items:      toDomainProperties(dtos),
		Total:      meta.Total,
		Page:       meta.Page,
		PerPage:    meta.PerPage,
		TotalPages: meta.TotalPages,
	}, nil
}

func (c *MarketplaceAPIClient) getProperties(ctx context.Context, path, token string) ([]domain.Property, error) {
	var res apiResponse[[]propertyDTO]
	if err := c.call(ctx, http.MethodGet, path, token, nil, contracts.KindAPIResponse, &res); err != nil {
		return nil, err
	}
	return toDomainProperties(res.Data), nil
}

func (c *MarketplaceAPIClient) FeaturedProperties(ctx context.Context) ([]domain.Property, error) {
	return c.getProperties(ctx, "/properties/featured", "")
}

func (c *MarketplaceAPIClient) SimilarProperties(ctx context.Context, propertyID string) ([]domain.Property, error) {
	return c.getProperties(ctx, "/properties/"+url.PathEscape(propertyID)+"/similar", "")
}

func (c *MarketplaceAPIClient) ListSaved(ctx context.Context, token string) ([]domain.Property, error) {
	return c.getProperties(ctx, "/saved-properties", token)
}

func (c *MarketplaceAPIClient) GetProperty(ctx context.Context, slug string) (*domain.Property, error) {
	var res apiResponse[*propertyDTO]
	if err := c.call(ctx, http.MethodGet, "/properties/"+url.PathEscape(slug), "", nil, contracts.KindAPIResponse, &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, domain.ErrNotFound
	}
	p := res.Data.toDomain()
	return &p, nil
}

func (c *MarketplaceAPIClient) ListAreas(ctx context.Context) ([]domain.Area, error) {
	var res apiResponse[[]areaDTO]
	if err := c.call(ctx, http.MethodGet, "/properties/areas", "", nil, contracts.KindAPIResponse, &res); err != nil {
		return nil, err
	}
	areas := make([]domain.Area, len(res.Data))
	for i, a := range res.Data {
		areas[i] = a.toDomain()
	}
	return areas, nil
}

func (c *MarketplaceAPIClient) authenticate(ctx context.Context, path string, payload any) (*domain.AuthResult, error) {
	var res apiResponse[authDTO]
	if err := c.call(ctx, http.MethodPost, path, "", payload, contracts.KindAPIResponse, &res); err != nil {
		return nil, err
	}
	if res.Data.Token == "" {
		return nil, fmt.Errorf("%w: auth response carries no token", domain.ErrUpstream)
	}
	return &domain.AuthResult{Token: res.Data.Token, User: res.Data.User.toDomain()}, nil
}

func (c *MarketplaceAPIClient) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "/auth/login", req)
}

func (c *MarketplaceAPIClient) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "/auth/register", req)
}

func (c *MarketplaceAPIClient) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	var res apiResponse[userDTO]
	if err := c.call(ctx, http.MethodGet, "/auth/profile", token, nil, contracts.KindAPIResponse, &res); err != nil {
		return nil, err
	}
	u := res.Data.toDomain()
	return &u, nil
}

func (c *MarketplaceAPIClient) UpdateProfile(ctx context.Context, token string, upd domain.ProfileUpdate) (*domain.User, error) {
	var res apiResponse[userDTO]
	if err := c.call(ctx, http.MethodPut, "/auth/profile", token, upd, contracts.KindAPIResponse, &res); err != nil {
		return nil, err
	}
	u := res.Data.toDomain()
	return &u, nil
}

func (c *MarketplaceAPIClient) CreateInquiry(ctx context.Context, token, propertyID string, form domain.InquiryForm) (*domain.Inquiry, error) {
	var res apiResponse[inquiryDTO]
	path := "/properties/" + url.PathEscape(propertyID) + "/inquiries"
	if err := c.call(ctx, http.MethodPost, path, token, form, contracts.KindAPIResponse, &res); err != nil {
		return nil, err
	}
	inq := res.Data.toDomain()
	if inq.PropertyID == "" {
		inq.PropertyID = propertyID
	}
	return &inq, nil
}

func (c *MarketplaceAPIClient) SaveProperty(ctx context.Context, token, propertyID string) error {
	return c.call(ctx, http.MethodPost, "/saved-properties/"+url.PathEscape(propertyID), token, nil, "", nil)
}

func (c *MarketplaceAPIClient) UnsaveProperty(ctx context.Context, token, propertyID string) error {
	return c.call(ctx, http.MethodDelete, "/saved-properties/"+url.PathEscape(propertyID), token, nil, "", nil)
}

func (c *MarketplaceAPIClient) CreateProperty(ctx context.Context, token string, sub domain.PropertySubmission) (*domain.Property, error) {
	var res apiResponse[propertyDTO]
	if err := c.call(ctx, http.MethodPost, "/properties", token, sub, contracts.KindAPIResponse, &res); err != nil {
		return nil, err
	}
	p := res.Data.toDomain()
	return &p, nil
}
