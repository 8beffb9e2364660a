// Package inventoryclient talks to the inventory platform REST API. Client
// satisfies bulk.Client, so a bulk coordinator can run against a remote
// server.
package inventoryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
)

const apiPrefix = "/api/v1"

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

// ExportRequest mirrors the export endpoint body.
type ExportRequest struct {
	IDs     []string `json:"ids"`
	Columns []string `json:"columns,omitempty"`
	Format  string   `json:"format,omitempty"`
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {

	body, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, http.MethodPost, "/auth/login", bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read login response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusTooManyRequests {
		var rejected models.LoginResponse
		if json.Unmarshal(raw, &rejected) == nil && rejected.Message != "" {
			if resp.StatusCode == http.StatusTooManyRequests {
				return &rejected, errors.TooManyRequestsError(rejected.Message).WithDetail("retry after " + strconv.Itoa(rejected.RetryAfter) + "s")
			}
			return &rejected, errors.UnauthorizedError(rejected.Message)
		}
	}

	var login models.LoginResponse
	if err := decode(resp.StatusCode, raw, &login); err != nil {
		return nil, err
	}

	c.token = login.Token

	return &login, nil
}

// ListProducts returns the whole collection.
func (c *Client) ListProducts(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/all", nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// UpdateProduct sends patch as a partial update. Nil values clear fields.
func (c *Client) UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, http.MethodPatch, "/products/"+strconv.FormatInt(id, 10), patch, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// CreateProduct posts patch as a new product. Unset fields take server defaults.
func (c *Client) CreateProduct(ctx context.Context, patch models.ProductPatch) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, http.MethodPost, "/products", patch, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) MarkOutOfStock(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, http.MethodPost, "/products/"+strconv.FormatInt(id, 10)+"/out-of-stock", nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// SearchProducts runs the server-side text search.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]*models.Product, error) {
	var products []*models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/search?query="+url.QueryEscape(query), nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// UploadProducts posts a spreadsheet as multipart form data.
func (c *Client) UploadProducts(ctx context.Context, filename string, file io.Reader) (*models.ImportSummary, error) {

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, http.MethodPost, "/products/upload", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}

	var summary models.ImportSummary
	if err := decode(resp.StatusCode, raw, &summary); err != nil {
		return nil, err
	}

	return &summary, nil
}

// Export downloads the rendered file and the filename the server chose.
func (c *Client) Export(ctx context.Context, req ExportRequest) ([]byte, string, error) {

	body, err := json.Marshal(req)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.send(ctx, http.MethodPost, "/products/export", bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read export: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", decode(resp.StatusCode, raw, nil)
	}

	filename := "products." + req.Format
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		filename = params["filename"]
	}

	return raw, filename, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {

	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := c.send(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	return decode(resp.StatusCode, raw, out)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ThirdPartyError("Inventory API unreachable").WithError(err)
	}

	return resp, nil
}

// decode unwraps the response envelope. 401 and 403 become reauthenticate
// errors so batch callers stop retrying with a dead session.
func decode(status int, raw []byte, out any) error {

	if status == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if status >= 200 && status < 300 {
			return fmt.Errorf("invalid response body: %w", err)
		}
		env = envelope{}
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		msg := "Session expired, please sign in again"
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return errors.ReauthenticateError(msg)
	}

	if status < 200 || status >= 300 || !env.Success {
		appErr := errors.NewAppError(errors.ErrCodeInternal, http.StatusText(status), status)
		if env.Error != nil {
			appErr = errors.NewAppError(env.Error.Code, env.Error.Message, status)
			if len(env.Error.Details) > 0 {
				appErr = appErr.WithDetail(strings.Join(env.Error.Details, "; "))
			}
		}
		return appErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("invalid response data: %w", err)
	}

	return nil
}
