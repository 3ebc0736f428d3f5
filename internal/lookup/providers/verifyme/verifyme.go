// Package verifyme calls the VerifyMe identity API over HTTP.
package verifyme

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/providers"
)

const (
	DefaultBaseURL = "https://vapi.verifyme.ng"
	DefaultTimeout = 10 * time.Second

	phonePath = "/v1/verifications/identities/phone/"
	ninPath   = "/v1/verifications/identities/nin"

	// maxResponseBytes bounds how much of an upstream answer is read.
	maxResponseBytes = 1 << 20
)

const (
	MsgMissingKey    = "VerifyMe API key is not configured"
	MsgPhoneRequired = "Phone number is required"
	MsgNINRequired   = "NIN is required"
	MsgTimeout       = "VerifyMe request timed out"
	MsgUnreachable   = "VerifyMe is unreachable"
	MsgBadResponse   = "VerifyMe returned an invalid response"
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient HTTPDoer
}

type Provider struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// New builds the adapter. A missing API key is not an error here: the adapter reports a
// configuration failure on each lookup instead, so other providers can still be served.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Provider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  client,
	}
}

func (p *Provider) Name() string { return providers.NameVerifyMe }

type ninRequest struct {
	NIN       string `json:"nin"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	DOB       string `json:"dob,omitempty"`
}

func (p *Provider) Lookup(ctx context.Context, input models.Input) providers.Result {
	if p.apiKey == "" {
		return p.fail(providers.ErrorConfiguration, MsgMissingKey, nil)
	}

	req, failure := p.buildRequest(ctx, input)
	if failure != nil {
		return providers.Failure(failure)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return p.fail(providers.ErrorTimeout, MsgTimeout, err)
		}
		return p.fail(providers.ErrorProviderOutage, MsgUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return p.fail(providers.ErrorBadData, MsgBadResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(body)
		if strings.TrimSpace(msg) == "" {
			msg = fmt.Sprintf("VerifyMe returned status %d", resp.StatusCode)
		}
		return p.fail(providers.ErrorUpstream, msg, nil)
	}

	data, err := decodeData(body)
	if err != nil {
		return p.fail(providers.ErrorBadData, MsgBadResponse, err)
	}
	return providers.Success(data)
}

func (p *Provider) buildRequest(ctx context.Context, input models.Input) (*http.Request, *providers.ProviderError) {
	switch input.Method {
	case models.MethodPhone:
		phone := input.Payload.Get(models.FieldPhone)
		if phone == "" {
			return nil, providers.NewProviderError(providers.ErrorLogic, p.Name(), MsgPhoneRequired, nil)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+phonePath+url.PathEscape(phone), nil)
		if err != nil {
			return nil, providers.NewProviderError(providers.ErrorInternal, p.Name(), "", err)
		}
		return req, nil

	case models.MethodNIN:
		nin := input.Payload.Get(models.FieldNIN)
		if nin == "" {
			return nil, providers.NewProviderError(providers.ErrorLogic, p.Name(), MsgNINRequired, nil)
		}
		body, err := json.Marshal(ninRequest{
			NIN:       nin,
			FirstName: input.Payload.Get(models.FieldFirstName),
			LastName:  input.Payload.Get(models.FieldLastName),
			DOB:       input.Payload.Get(models.FieldDOB),
		})
		if err != nil {
			return nil, providers.NewProviderError(providers.ErrorInternal, p.Name(), "", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+ninPath, bytes.NewReader(body))
		if err != nil {
			return nil, providers.NewProviderError(providers.ErrorInternal, p.Name(), "", err)
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil

	default:
		return nil, providers.NewProviderError(providers.ErrorUnsupported, p.Name(),
			fmt.Sprintf("Unsupported method for VerifyMe: %s", input.Method), nil)
	}
}

// decodeData unwraps the {"status":..., "data":{...}} envelope when present.
func decodeData(body []byte) (map[string]any, error) {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope == nil {
		return nil, errors.New("response body is not a JSON object")
	}
	if inner, ok := envelope["data"].(map[string]any); ok {
		return inner, nil
	}
	return envelope, nil
}

func (p *Provider) fail(category providers.ErrorCategory, msg string, err error) providers.Result {
	return providers.Failure(providers.NewProviderError(category, p.Name(), msg, err))
}
