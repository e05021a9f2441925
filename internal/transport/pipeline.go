package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agromarket/agromarket-go/internal/observability"
	"github.com/agromarket/agromarket-go/internal/security"
	"github.com/agromarket/agromarket-go/internal/session"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

// AuthMode selects which credential, if any, a request carries.
type AuthMode int

const (
	// AuthNone: public endpoints (login, register).
	AuthNone AuthMode = iota
	// AuthUser: the regular user session, refreshed when stale.
	AuthUser
	// AuthAdmin: the admin token. Never refreshed; a 401 clears only the
	// admin namespace.
	AuthAdmin
)

// MultipartPayload describes a file upload. The pipeline never sets a JSON
// content type for these; the multipart writer owns the boundary header.
type MultipartPayload struct {
	FileField string
	FileName  string
	File      io.Reader
	Fields    map[string]string
}

// Request is one backend call as the façade describes it.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Body      any
	Multipart *MultipartPayload
	Auth      AuthMode
}

// LogoutFunc is installed by the session lifecycle controller. trigger is
// "unauthorized" when invoked from the 401 handler.
type LogoutFunc func(ctx context.Context, trigger string)

// Pipeline is the request/response middleware every domain call goes
// through: content-type selection, freshness check, coalesced refresh,
// bearer injection, activity touch, and the 401 logout hook.
type Pipeline struct {
	httpClient *http.Client
	baseURL    string
	sessions   *session.Manager
	lead       time.Duration
	timeout    time.Duration
	logger     *slog.Logger

	refreshGroup singleflight.Group
	onLogout     LogoutFunc
}

func NewPipeline(baseURL string, sessions *session.Manager, timeout, refreshLead time.Duration, logger *slog.Logger) *Pipeline {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if refreshLead <= 0 {
		refreshLead = security.DefaultRefreshLead
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		baseURL:    strings.TrimRight(baseURL, "/"),
		sessions:   sessions,
		lead:       refreshLead,
		timeout:    timeout,
		logger:     logger,
	}
}

// SetLogoutHook installs the lifecycle controller's teardown. The hook must
// be safe to call from concurrent requests; coalescing bursts into one
// teardown is the controller's job.
func (p *Pipeline) SetLogoutHook(fn LogoutFunc) { p.onLogout = fn }

// Sessions exposes the session manager the pipeline reads tokens from.
func (p *Pipeline) Sessions() *session.Manager { return p.sessions }

// Do executes one request through the full middleware chain and returns the
// decoded envelope. Every returned error is a *Error.
func (p *Pipeline) Do(ctx context.Context, req *Request) (*Envelope, error) {
	httpReq, err := p.build(ctx, req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(httpReq.Context(), p.timeout)
	defer cancel()
	httpReq = httpReq.WithContext(ctx)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		// No response received: connectivity loss or the per-request
		// timeout. Both are the same class for the caller.
		return nil, NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError(err)
	}

	statusOK := resp.StatusCode >= 200 && resp.StatusCode < 300
	env := DecodeEnvelope(body, statusOK)

	if resp.StatusCode == http.StatusUnauthorized {
		p.handleUnauthorized(ctx, req)
		return nil, NewAuthError(env)
	}
	if !statusOK {
		return nil, NewServerError(resp.StatusCode, env)
	}
	return env, nil
}

func (p *Pipeline) build(ctx context.Context, req *Request) (*http.Request, error) {
	target := p.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.Multipart != nil:
		if req.Multipart.File == nil {
			return nil, NewInputError("no file provided for upload")
		}
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		for k, v := range req.Multipart.Fields {
			if err := w.WriteField(k, v); err != nil {
				return nil, NewInputError(fmt.Sprintf("build upload form: %v", err))
			}
		}
		part, err := w.CreateFormFile(req.Multipart.FileField, req.Multipart.FileName)
		if err != nil {
			return nil, NewInputError(fmt.Sprintf("build upload form: %v", err))
		}
		if _, err := io.Copy(part, req.Multipart.File); err != nil {
			return nil, NewInputError(fmt.Sprintf("read upload file: %v", err))
		}
		if err := w.Close(); err != nil {
			return nil, NewInputError(fmt.Sprintf("finish upload form: %v", err))
		}
		body = buf
		contentType = w.FormDataContentType()
	case req.Body != nil:
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, NewInputError(fmt.Sprintf("encode request body: %v", err))
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, NewInputError(fmt.Sprintf("build request: %v", err))
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	if token := p.resolveToken(ctx, req.Auth); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

// resolveToken loads the credential for the request's auth mode, refreshing
// the user token first when it is stale. A missing session sends the
// request unauthenticated; the backend answers 401 and the response phase
// takes over.
func (p *Pipeline) resolveToken(ctx context.Context, mode AuthMode) string {
	switch mode {
	case AuthAdmin:
		admin, err := p.sessions.GetAdmin(ctx)
		if err != nil {
			return ""
		}
		return admin.Token
	case AuthUser:
		sess, err := p.sessions.Get(ctx)
		if err != nil {
			return ""
		}
		token := sess.Token
		if security.ShouldRefresh(token, time.Now(), p.lead) {
			if refreshed := p.refresh(ctx); refreshed != "" {
				token = refreshed
			}
		}
		p.sessions.Touch(ctx)
		return token
	default:
		return ""
	}
}

// refresh exchanges the current token for a fresh one. Concurrent callers
// coalesce onto a single in-flight exchange; a slow early refresh can never
// overwrite the token a faster later one wrote, because only one exchange
// runs at a time.
func (p *Pipeline) refresh(ctx context.Context) string {
	v, err, _ := p.refreshGroup.Do("token-refresh", func() (any, error) {
		sess, err := p.sessions.Get(context.WithoutCancel(ctx))
		if err != nil {
			return "", err
		}
		// Another caller in the same window may have refreshed already.
		if !security.ShouldRefresh(sess.Token, time.Now(), p.lead) {
			observability.RecordTokenRefresh("coalesced")
			return sess.Token, nil
		}
		newToken, err := p.exchangeToken(context.WithoutCancel(ctx), sess.Token)
		if err != nil {
			observability.RecordTokenRefresh("failure")
			p.logger.Warn("token refresh failed", "error", err)
			if p.onLogout != nil {
				p.onLogout(context.WithoutCancel(ctx), "refresh_failed")
			}
			return "", err
		}
		if err := p.sessions.SetToken(context.WithoutCancel(ctx), newToken); err != nil {
			observability.RecordTokenRefresh("store_error")
			return "", err
		}
		observability.RecordTokenRefresh("success")
		return newToken, nil
	})
	if err != nil {
		return ""
	}
	return v.(string)
}

// exchangeToken performs the raw refresh call, outside the middleware chain
// so a refresh can never recurse into another refresh.
func (p *Pipeline) exchangeToken(ctx context.Context, current string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/auth/refresh-token", nil)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+current)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewNetworkError(err)
	}
	statusOK := resp.StatusCode >= 200 && resp.StatusCode < 300
	env := DecodeEnvelope(body, statusOK)
	if !statusOK || env.Token == "" {
		return "", NewServerError(resp.StatusCode, env)
	}
	return env.Token, nil
}

func (p *Pipeline) handleUnauthorized(ctx context.Context, req *Request) {
	switch req.Auth {
	case AuthAdmin:
		_ = p.sessions.ClearAdmin(context.WithoutCancel(ctx))
	case AuthUser:
		if p.onLogout != nil {
			p.onLogout(context.WithoutCancel(ctx), "unauthorized")
		}
	}
}
