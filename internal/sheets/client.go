package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/trace"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Request actions understood by the remote script
const (
	ActionRead  = "READ"
	ActionWrite = "WRITE"
)

const (
	statusOK    = "ok"
	statusError = "error"

	// DefaultTimeout bounds a single round trip when no client is supplied
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 2048
)

// ErrMalformedResponse is returned when the remote reply is not a valid envelope
var ErrMalformedResponse = errors.New("malformed sync response")

// APIError is a non-2xx reply from the remote endpoint
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sync endpoint error (%d): %s", e.Status, e.Body)
}

// RemoteError is an explicit {"status":"error"} reply
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("sync endpoint reported error: %s", e.Message)
}

var sheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

// CleanSheetID extracts the spreadsheet id from a pasted URL, or trims a bare id
func CleanSheetID(idOrURL string) string {
	if idOrURL == "" {
		return ""
	}
	if m := sheetIDPattern.FindStringSubmatch(idOrURL); m != nil {
		return m[1]
	}
	return strings.TrimSpace(idOrURL)
}

type request struct {
	Action  string        `json:"action"`
	SheetID string        `json:"sheetId"`
	Payload *pushEnvelope `json:"payload,omitempty"`
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client talks to the spreadsheet script endpoint configured on a profile
type Client struct {
	httpClient *http.Client
}

// Ensure Client implements domain.RemoteSyncClient
var _ domain.RemoteSyncClient = (*Client)(nil)

// NewClient creates a client. A nil httpClient gets one with DefaultTimeout.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{httpClient: httpClient}
}

// Read fetches the remote snapshot and returns its data object
func (c *Client) Read(ctx context.Context, cfg domain.SyncConfig) (json.RawMessage, error) {
	data, err := c.do(ctx, cfg, ActionRead, nil)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: read response has no data", ErrMalformedResponse)
	}
	return data, nil
}

// Write sends the full local state of a profile
func (c *Client) Write(ctx context.Context, cfg domain.SyncConfig, payload domain.SyncPayload) error {
	body := newPushEnvelope(payload)
	_, err := c.do(ctx, cfg, ActionWrite, &body)
	return err
}

func (c *Client) do(ctx context.Context, cfg domain.SyncConfig, action string, payload *pushEnvelope) (json.RawMessage, error) {
	if !cfg.CanSync() {
		return nil, domain.ErrSyncDisabled
	}
	sheetID := CleanSheetID(cfg.SheetID)

	ctx, span := trace.StartSpan(ctx, "sheets."+strings.ToLower(action))
	defer span.End()
	span.SetAttributes(
		attribute.String("sync.action", action),
		attribute.String("sync.sheet_id", sheetID),
	)

	data, err := c.roundTrip(ctx, cfg.ScriptURL, request{Action: action, SheetID: sheetID, Payload: payload})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Debug().Err(err).Str("action", action).Str("sheet_id", sheetID).Msg("Sync request failed")
		return nil, err
	}
	return data, nil
}

func (c *Client) roundTrip(ctx context.Context, scriptURL string, body request) (json.RawMessage, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSpace(scriptURL), bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// text/plain avoids a CORS preflight on the script runtime
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := string(raw)
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return nil, &APIError{Status: resp.StatusCode, Body: text}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	switch env.Status {
	case statusOK:
		return env.Data, nil
	case statusError:
		return nil, &RemoteError{Message: env.Message}
	case "":
		return nil, fmt.Errorf("%w: missing status", ErrMalformedResponse)
	default:
		return nil, fmt.Errorf("%w: unexpected status %q", ErrMalformedResponse, env.Status)
	}
}
