package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/common"
	"github.com/dmitrijs2005/bookreview/internal/logging"
)

// HTTPClient is the production Client: JSON over HTTP against the backend's
// REST endpoints. A zero timeout means requests wait indefinitely, matching
// the platform's no-retry, no-deadline baseline.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the backend at baseURL
// (e.g. "http://localhost:8000").
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type loginRequest struct {
	FullName string `json:"full_name"`
	PinCode  string `json:"pin_code"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

type registerRequest struct {
	FullName string `json:"full_name"`
}

type registerResponse struct {
	Pin string `json:"pin"`
}

// doJSON performs one request. A non-empty token is attached as a bearer
// header; it is never cached between calls. On non-2xx responses the
// server's detail message is folded into a sentinel error.
func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	c.log.Debug(ctx, "api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &eb)
		err := mapStatus(resp.StatusCode, eb.Detail)
		c.log.Debug(ctx, "api request failed", "method", method, "path", path, "status", resp.StatusCode)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", common.ErrUnavailable, err)
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, fullName string) (string, error) {
	var resp registerResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", nil, registerRequest{FullName: fullName}, &resp); err != nil {
		return "", err
	}
	return resp.Pin, nil
}

func (c *HTTPClient) Login(ctx context.Context, fullName string, pin []byte, asAdmin bool) (string, *models.User, error) {
	path := "/auth/login"
	if asAdmin {
		path = "/auth/admin/login"
	}

	var resp loginResponse
	req := loginRequest{FullName: fullName, PinCode: string(pin)}
	if err := c.doJSON(ctx, http.MethodPost, path, "", nil, req, &resp); err != nil {
		return "", nil, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		return "", nil, fmt.Errorf("%w: incomplete login response", common.ErrUnavailable)
	}
	return resp.AccessToken, resp.User, nil
}

func (c *HTTPClient) ListReviews(ctx context.Context, token string, f models.ReviewFilter) ([]models.Review, error) {
	query := url.Values{}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	if f.Genre != "" {
		query.Set("genre", f.Genre)
	}
	if f.Rating != 0 {
		query.Set("rating", strconv.Itoa(f.Rating))
	}

	var reviews []models.Review
	if err := c.doJSON(ctx, http.MethodGet, "/reviews", token, query, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *HTTPClient) ListMyReviews(ctx context.Context, token string) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.doJSON(ctx, http.MethodGet, "/reviews/my-reviews", token, nil, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *HTTPClient) CreateReview(ctx context.Context, token string, d models.ReviewDraft) (*models.Review, error) {
	var review models.Review
	if err := c.doJSON(ctx, http.MethodPost, "/reviews", token, nil, d, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *HTTPClient) UpdateReview(ctx context.Context, token string, id int64, d models.ReviewDraft) (*models.Review, error) {
	var review models.Review
	path := fmt.Sprintf("/reviews/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, token, nil, d, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *HTTPClient) DeleteReview(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/reviews/%d", id), token, nil, nil, nil)
}

func (c *HTTPClient) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", token, nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), token, nil, nil, nil)
}

func (c *HTTPClient) ListAllReviews(ctx context.Context, token string) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.doJSON(ctx, http.MethodGet, "/admin/reviews", token, nil, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *HTTPClient) ArchiveReview(ctx context.Context, token string, id int64) (*models.Review, error) {
	var review models.Review
	path := fmt.Sprintf("/admin/reviews/%d/archive", id)
	if err := c.doJSON(ctx, http.MethodPost, path, token, nil, nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
