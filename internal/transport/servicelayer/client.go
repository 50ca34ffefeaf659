// Package servicelayer posts inventory counting documents to an SAP Business One
// Service Layer endpoint.
package servicelayer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/rs/zerolog/log"
)

const sessionCookie = "B1SESSION"

// Config holds the Service Layer connection settings.
type Config struct {
	// BaseURL includes the API root, e.g. https://sap:50000/b1s/v1.
	BaseURL            string
	CompanyDB          string
	UserName           string
	Password           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// APIError is an error answered by the Service Layer itself.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service layer returned status %d", e.Status)
	}
	return e.Message
}

// Rejected reports whether the ERP refused the request itself, as opposed to
// being unreachable, overloaded or failing.
func (e *APIError) Rejected() bool {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return e.Status >= 400 && e.Status < 500
}

// IsRejected reports whether err is an APIError the ERP answered with a rejection.
func IsRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Rejected()
}

// errorBody mirrors {"error":{"code":-5002,"message":{"lang":"en-us","value":"..."}}}.
type errorBody struct {
	Error struct {
		Code    int `json:"code"`
		Message struct {
			Lang  string `json:"lang"`
			Value string `json:"value"`
		} `json:"message"`
	} `json:"error"`
}

type loginRequest struct {
	CompanyDB string `json:"CompanyDB"`
	UserName  string `json:"UserName"`
	Password  string `json:"Password"`
}

type loginResponse struct {
	SessionID      string `json:"SessionId"`
	SessionTimeout int    `json:"SessionTimeout"`
}

type countingResponse struct {
	DocumentEntry  int `json:"DocumentEntry"`
	DocumentNumber int `json:"DocumentNumber"`
}

// Client is a resty-backed Service Layer client. It logs in lazily and
// re-authenticates once when the session expired.
type Client struct {
	httpClient *resty.Client
	cfg        Config

	mu      sync.Mutex
	session string
}

// NewClient builds a Service Layer client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)
	if cfg.InsecureSkipVerify {
		// Service Layer installs commonly ship a self-signed certificate
		restyClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
	}

	return &Client{httpClient: restyClient, cfg: cfg}
}

// Login opens a Service Layer session.
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginLocked(ctx)
}

func (c *Client) loginLocked(ctx context.Context) error {
	result := new(loginResponse)
	apiErr := new(errorBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(loginRequest{CompanyDB: c.cfg.CompanyDB, UserName: c.cfg.UserName, Password: c.cfg.Password}).
		SetResult(result).
		SetError(apiErr).
		Post("/Login")
	if err != nil {
		return fmt.Errorf("service layer login: %w", err)
	}
	if resp.IsError() {
		return toAPIError(resp.StatusCode(), apiErr)
	}

	session := result.SessionID
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookie {
			session = cookie.Value
		}
	}
	if session == "" {
		return errors.New("service layer login: no session returned")
	}
	c.session = session

	log.Debug().
		Str("component", "servicelayer").
		Int("session_timeout_min", result.SessionTimeout).
		Msg("Service Layer session opened")
	return nil
}

// Send posts payload to /InventoryCountings.
func (c *Client) Send(ctx context.Context, payload model.SyncPayload) (model.SyncReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == "" {
		if err := c.loginLocked(ctx); err != nil {
			return model.SyncReceipt{}, err
		}
	}

	receipt, err := c.postCounting(ctx, payload)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		c.session = ""
		if err := c.loginLocked(ctx); err != nil {
			return model.SyncReceipt{}, err
		}
		receipt, err = c.postCounting(ctx, payload)
	}
	return receipt, err
}

func (c *Client) postCounting(ctx context.Context, payload model.SyncPayload) (model.SyncReceipt, error) {
	result := new(countingResponse)
	apiErr := new(errorBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetCookie(&http.Cookie{Name: sessionCookie, Value: c.session}).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post("/InventoryCountings")
	if err != nil {
		return model.SyncReceipt{}, fmt.Errorf("post inventory counting: %w", err)
	}
	if resp.IsError() {
		return model.SyncReceipt{}, toAPIError(resp.StatusCode(), apiErr)
	}

	return model.SyncReceipt{
		DocumentEntry: result.DocumentEntry,
		Reference:     strconv.Itoa(result.DocumentNumber),
	}, nil
}

// Ping checks that the Service Layer answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.httpClient.R().SetContext(ctx).Head("/")
	return err
}

func toAPIError(status int, body *errorBody) *APIError {
	apiErr := &APIError{Status: status}
	if body != nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message.Value
	}
	return apiErr
}
