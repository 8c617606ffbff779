// Package agent implements the HTTP client for the SkyLine booking agent
// service: a stateless text-in/text-out endpoint plus a login endpoint.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/errors"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/log"
)

// Client talks to the agent service.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewClient creates a client for the agent service at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Silent()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Chat sends one natural-language message and returns the agent's reply.
// sessionID and token may be empty; they are sent as null, which the service
// accepts for anonymous first-contact requests.
func (c *Client) Chat(ctx context.Context, message, sessionID, token string) (*ChatResponse, error) {
	req := ChatRequest{Message: message}
	if sessionID != "" {
		req.SessionID = &sessionID
	}
	if token != "" {
		req.Token = &token
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.NewAgentUnreachableError(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAgentPayload, "read response", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, statusError(httpResp.StatusCode, respBody)
	}

	var resp ChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAgentPayload, "unmarshal response", err)
	}

	c.logger.Debug("chat round trip",
		"session_id", resp.SessionID,
		"latency", time.Since(start).String(),
		"reply_bytes", len(resp.Response),
	)

	return &resp, nil
}

// Login authenticates with email and password. A non-2xx status carrying a
// detail message becomes a login-rejected error with the server's message
// verbatim; anything else is a transport failure.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	reqBody, err := json.Marshal(LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.NewAgentUnreachableError(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAgentPayload, "read response", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Detail != "" {
			return nil, errors.NewLoginRejectedError(errResp.Detail)
		}
		return nil, statusError(httpResp.StatusCode, respBody)
	}

	var resp LoginResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAgentPayload, "unmarshal response", err)
	}

	return &resp, nil
}

// Health probes GET /health.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return errors.NewAgentUnreachableError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return errors.New(errors.ErrCodeAgentStatus, fmt.Sprintf("health check returned status %d", httpResp.StatusCode))
	}

	return nil
}

func statusError(status int, body []byte) *errors.SkylineError {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
		return errors.New(errors.ErrCodeAgentStatus, fmt.Sprintf("agent error %d: %s", status, errResp.Detail))
	}
	return errors.New(errors.ErrCodeAgentStatus, fmt.Sprintf("agent error %d", status))
}
