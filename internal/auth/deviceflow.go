package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/vmvarela/ghoten-ui/internal/logger"
)

const (
	deviceCodeURL = "https://github.com/login/device/code"
	tokenURL      = "https://github.com/login/oauth/access_token"
	authorizeURL  = "https://github.com/login/oauth/authorize"

	// Scope is the fixed scope set requested for every authorization.
	Scope = "repo,workflow,read:packages,read:org"

	deviceGrantType = "urn:ietf:params:oauth:grant-type:device_code"

	defaultInterval = 5 * time.Second
	slowDownStep    = 5 * time.Second
)

var (
	ErrDenied       = errors.New("device authorization denied")
	ErrExpired      = errors.New("device authorization expired")
	ErrCSRFMismatch = errors.New("oauth state mismatch")
)

type FlowState int

const (
	FlowIdle FlowState = iota
	FlowRequested
	FlowPolling
	FlowAuthorized
	FlowDenied
	FlowExpired
	FlowFailed
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "idle"
	case FlowRequested:
		return "requested"
	case FlowPolling:
		return "polling"
	case FlowAuthorized:
		return "authorized"
	case FlowDenied:
		return "denied"
	case FlowExpired:
		return "expired"
	case FlowFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session holds one device-authorization attempt. The device code is a
// server-held secret and must never be rendered; the user code is what
// the user types at the verification URI.
type Session struct {
	DeviceCode      string
	UserCode        string
	VerificationURI string
	Interval        time.Duration
	ExpiresIn       time.Duration

	// ctx is cancelled when this session is superseded or cancelled.
	ctx context.Context
}

// IdentityCheck validates a candidate token against the platform's
// identity endpoint before it may be persisted.
type IdentityCheck func(ctx context.Context, token string) error

// DeviceFlow drives the OAuth device-authorization protocol. At most one
// session is in flight: starting a new one cancels any pending poll.
type DeviceFlow struct {
	clientID      string
	deviceCodeURL string
	tokenURL      string
	authorizeURL  string
	slowDownStep  time.Duration
	httpClient    *http.Client
	tokens        *TokenStore

	mu     sync.Mutex
	state  FlowState
	cancel context.CancelFunc
}

func NewDeviceFlow(clientID string, tokens *TokenStore) *DeviceFlow {
	return &DeviceFlow{
		clientID:      clientID,
		deviceCodeURL: deviceCodeURL,
		tokenURL:      tokenURL,
		authorizeURL:  authorizeURL,
		slowDownStep:  slowDownStep,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		tokens:        tokens,
		state:         FlowIdle,
	}
}

func (f *DeviceFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *DeviceFlow) setState(state FlowState) {
	f.mu.Lock()
	f.state = state
	f.mu.Unlock()
}

// Cancel clears any pending poll without touching stored credentials.
func (f *DeviceFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.state = FlowIdle
}

type deviceCodeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int    `json:"expires_in"`
	Interval        int    `json:"interval"`
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Start requests a device authorization and opens a new session,
// cancelling any poll still pending from a previous one.
func (f *DeviceFlow) Start(ctx context.Context) (*Session, error) {
	if f.clientID == "" {
		return nil, errors.New("missing OAuth client ID")
	}

	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	sessionCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.state = FlowRequested
	f.mu.Unlock()

	params := url.Values{}
	params.Set("client_id", f.clientID)
	params.Set("scope", Scope)

	var resp deviceCodeResponse
	if err := f.postForm(sessionCtx, f.deviceCodeURL, params, &resp); err != nil {
		f.setState(FlowFailed)
		logger.LogError("DEVICE_FLOW_START", f.deviceCodeURL, err)
		return nil, err
	}

	interval := time.Duration(resp.Interval) * time.Second
	if interval <= 0 {
		interval = defaultInterval
	}

	f.setState(FlowPolling)
	logger.Log("Device flow started, user code %s", resp.UserCode)

	return &Session{
		DeviceCode:      resp.DeviceCode,
		UserCode:        resp.UserCode,
		VerificationURI: resp.VerificationURI,
		Interval:        interval,
		ExpiresIn:       time.Duration(resp.ExpiresIn) * time.Second,
		ctx:             sessionCtx,
	}, nil
}

// Poll exchanges the device code until a terminal state is reached. It
// waits the session interval between attempts, stretching it when the
// server answers slow_down, and persists the token exactly once on
// success. It polls on the session's own context, so superseding the
// session stops this poll even if a newer one is already running.
func (f *DeviceFlow) Poll(session *Session) (string, error) {
	ctx := session.ctx
	if ctx == nil {
		return "", errors.New("no device flow session started")
	}

	interval := session.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}

		params := url.Values{}
		params.Set("client_id", f.clientID)
		params.Set("device_code", session.DeviceCode)
		params.Set("grant_type", deviceGrantType)

		var resp tokenResponse
		if err := f.postForm(ctx, f.tokenURL, params, &resp); err != nil {
			f.setState(FlowFailed)
			logger.LogError("DEVICE_FLOW_POLL", f.tokenURL, err)
			return "", err
		}

		switch resp.Error {
		case "":
			if err := f.tokens.Set(resp.AccessToken); err != nil {
				f.setState(FlowFailed)
				return "", fmt.Errorf("failed to persist token: %w", err)
			}
			f.setState(FlowAuthorized)
			logger.Log("Device flow authorized")
			return resp.AccessToken, nil

		case "authorization_pending":
			timer.Reset(interval)

		case "slow_down":
			interval += f.slowDownStep
			timer.Reset(interval)

		case "access_denied":
			f.setState(FlowDenied)
			return "", ErrDenied

		case "expired_token":
			f.setState(FlowExpired)
			return "", ErrExpired

		default:
			f.setState(FlowFailed)
			if resp.ErrorDescription != "" {
				return "", fmt.Errorf("device flow failed: %s", resp.ErrorDescription)
			}
			return "", fmt.Errorf("device flow failed: %s", resp.Error)
		}
	}
}

// SaveManualToken persists a token supplied directly by the user, but
// only after a successful identity check. A rejected token is not stored.
func (f *DeviceFlow) SaveManualToken(ctx context.Context, token string, check IdentityCheck) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("empty token")
	}

	if err := check(ctx, token); err != nil {
		logger.LogError("MANUAL_TOKEN", "identity check", err)
		return fmt.Errorf("token rejected: %w", err)
	}

	return f.tokens.Set(token)
}

func (f *DeviceFlow) postForm(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
