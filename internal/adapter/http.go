package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/utils"
	"github.com/MKhiriev/go-inventory-sync/internal/workers"
	"github.com/MKhiriev/go-inventory-sync/models"
	"github.com/go-resty/resty/v2"
	"k8s.io/utils/clock"
)

const (
	changesPath    = "/api/v1/changes"
	recordPath     = "/api/v1/records/{type}/{id}"
	authStatusPath = "/api/v1/auth/status"
	healthPath     = "/api/v1/health"
)

type changesResponse struct {
	Changes []models.SyncChange `json:"changes"`
}

type authStatusResponse struct {
	Status models.AuthStatus `json:"status"`
}

// HTTPRemoteStore is the resty-backed [RemoteStore].
type HTTPRemoteStore struct {
	client *utils.HTTPClient

	// parallelism caps concurrent pushes inside one batch
	parallelism int
	clock       clock.PassiveClock

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// Option customises the HTTP remote store.
type Option func(*HTTPRemoteStore)

// WithClock replaces the clock used to check token expiry.
func WithClock(c clock.PassiveClock) Option {
	return func(h *HTTPRemoteStore) { h.clock = c }
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout. parallelism caps the concurrent pushes of one batch.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteStore(adapterCfg config.Adapter, parallelism int, log *logger.Logger, opts ...Option) (*HTTPRemoteStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if parallelism < 1 {
		parallelism = 1
	}

	h := &HTTPRemoteStore{
		client:      utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		parallelism: parallelism,
		clock:       clock.RealClock{},
		logger:      log.WithComponent("adapter"),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.SetToken(adapterCfg.Token)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken stores token (whitespace-trimmed) for use in the Authorization
// header of all subsequent requests.
func (h *HTTPRemoteStore) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token returns the bearer token currently held by the adapter.
func (h *HTTPRemoteStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Pull implements [RemoteStore]. It GETs /api/v1/changes, passing since as
// an RFC 3339 timestamp when it is set. Malformed changes in the response are
// skipped and logged.
func (h *HTTPRemoteStore) Pull(ctx context.Context, since time.Time) ([]models.SyncChange, error) {
	req := h.authedRequest(ctx)
	if !since.IsZero() {
		req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
	}

	resp, err := req.Get(changesPath)
	if err != nil {
		return nil, mapTransportError(ctx, "pull request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("pull: %w", err)
	}

	var cr changesResponse
	if err = json.Unmarshal(resp.Body(), &cr); err != nil {
		return nil, fmt.Errorf("%w: decode changes: %w", ErrInvalidResponse, err)
	}

	changes := make([]models.SyncChange, 0, len(cr.Changes))
	for _, c := range cr.Changes {
		if err = c.Validate(); err != nil {
			h.logger.Warn().Err(err).Str("func", "HTTPRemoteStore.Pull").
				Str("record_id", c.RecordID).Msg("skipping malformed remote change")
			continue
		}
		changes = append(changes, c)
	}
	return changes, nil
}

// PushBatch implements [RemoteStore]. Every change is sent as its own request
// through a worker pool capped at the configured parallelism.
func (h *HTTPRemoteStore) PushBatch(ctx context.Context, changes []models.SyncChange) models.PartialBatchResult {
	errs := workers.ForEach(ctx, h.parallelism, len(changes), func(ctx context.Context, i int) error {
		return h.push(ctx, changes[i])
	}, IsTerminalGlobal)

	var result models.PartialBatchResult
	for i, err := range errs {
		id := changes[i].RecordID
		if err == nil {
			result.Succeeded = append(result.Succeeded, id)
			continue
		}
		result.Failed = append(result.Failed, models.RecordFailure{RecordID: id, Err: err})
		if result.Aborted == nil && (IsTerminalGlobal(err) || errors.Is(err, workers.ErrSkipped)) {
			result.Aborted = err
		}
	}

	if result.Aborted != nil {
		h.logger.Warn().Err(result.Aborted).Str("func", "HTTPRemoteStore.PushBatch").
			Int("succeeded", len(result.Succeeded)).Int("failed", len(result.Failed)).
			Msg("push batch aborted")
	}
	return result
}

// push sends one change: creates and updates as PUT with the change as body,
// deletes as DELETE. Deleting a record the remote no longer has succeeds.
func (h *HTTPRemoteStore) push(ctx context.Context, change models.SyncChange) error {
	if err := change.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrRecordRejected, err)
	}

	req := h.authedRequest(ctx).SetPathParams(map[string]string{
		"type": change.RecordType,
		"id":   change.RecordID,
	})

	var (
		resp *resty.Response
		err  error
	)
	if change.Action == models.ActionDelete {
		resp, err = req.
			SetQueryParam("at", change.Timestamp.UTC().Format(time.RFC3339Nano)).
			Delete(recordPath)
	} else {
		resp, err = req.
			SetHeader("Content-Type", "application/json").
			SetBody(change).
			Put(recordPath)
	}
	if err != nil {
		return mapTransportError(ctx, "push request", err)
	}

	err = mapHTTPError(resp)
	if change.Action == models.ActionDelete && errors.Is(err, ErrRecordNotFound) {
		return nil
	}
	return err
}

// AuthStatus implements [RemoteStore]. A token whose exp claim is already in
// the past is reported as [models.AuthNotAuthenticated] without contacting
// the remote.
func (h *HTTPRemoteStore) AuthStatus(ctx context.Context) (models.AuthStatus, error) {
	if token := h.Token(); token != "" {
		exp, err := utils.TokenExpiry(token)
		switch {
		case err == nil && !h.clock.Now().Before(exp):
			return models.AuthNotAuthenticated, nil
		case err != nil && !errors.Is(err, utils.ErrNoExpiry):
			// opaque tokens are left to the remote to judge
			h.logger.Debug().Err(err).Str("func", "HTTPRemoteStore.AuthStatus").Msg("token is not a JWT")
		}
	}

	resp, err := h.authedRequest(ctx).Get(authStatusPath)
	if err != nil {
		return "", mapTransportError(ctx, "auth status request", err)
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return models.AuthNotAuthenticated, nil
	case http.StatusForbidden:
		return models.AuthRestricted, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("auth status: %w", err)
	}

	var sr authStatusResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return "", fmt.Errorf("%w: decode auth status: %w", ErrInvalidResponse, err)
	}
	switch sr.Status {
	case models.AuthAvailable, models.AuthRestricted, models.AuthNotAuthenticated:
		return sr.Status, nil
	default:
		return "", fmt.Errorf("%w: unknown auth status %q", ErrInvalidResponse, sr.Status)
	}
}

// Ping implements [RemoteStore].
func (h *HTTPRemoteStore) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(healthPath)
	if err != nil {
		return mapTransportError(ctx, "ping", err)
	}
	if resp.IsError() {
		return fmt.Errorf("ping: %w: http %d", ErrRemoteUnavailable, resp.StatusCode())
	}
	return nil
}

func (h *HTTPRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
