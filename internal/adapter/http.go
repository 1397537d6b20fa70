// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ben-ryder/headbase/internal/logger"
	"github.com/ben-ryder/headbase/models"
)

// HTTPConfig configures the resty-backed transport.
type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpTransport struct {
	client *resty.Client
	log    *logger.Logger
}

// NewHTTPTransport builds a [Transport] over go-resty. The base URL is
// trimmed of trailing slashes so request paths can always start with "/".
func NewHTTPTransport(cfg HTTPConfig, log *logger.Logger) Transport {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpTransport{client: cli, log: log}
}

func (t *httpTransport) Do(ctx context.Context, req Request) (*Response, error) {
	r := t.client.R().SetContext(ctx)

	if req.AccessToken != "" {
		r.SetHeader("Authorization", "Bearer "+req.AccessToken)
	}
	if len(req.Query) > 0 {
		r.SetQueryParams(req.Query)
	}
	if req.Body != nil {
		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		r.SetHeader("Content-Type", contentType).SetBody(req.Body)
	}

	resp, err := r.Execute(strings.ToUpper(req.Method), req.Path)
	url := t.client.BaseURL + req.Path
	if err != nil {
		t.log.Warn().Err(err).Str("method", req.Method).Str("url", url).Msg("request transport failure")
		return nil, &RequestError{Method: req.Method, URL: url, Kind: KindNetwork, Err: err}
	}

	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return &Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
	}

	reqErr := decodeError(req.Method, url, resp)
	t.log.Debug().
		Str("method", req.Method).
		Str("url", url).
		Int("status", reqErr.StatusCode).
		Str("kind", reqErr.Kind.String()).
		Msg("request rejected by server")
	return nil, reqErr
}

// decodeError classifies a non-2xx response into a *RequestError. The server
// error identifier takes precedence over the HTTP status so that an
// application-level "access-unauthorized" is recognized even when proxies
// rewrite statuses; a bare 401 without a body still maps to unauthorized.
func decodeError(method, url string, resp *resty.Response) *RequestError {
	body := strings.TrimSpace(string(resp.Body()))

	var serverErr models.ServerError
	_ = json.Unmarshal(resp.Body(), &serverErr)

	kind := kindFor(resp.StatusCode(), serverErr.Identifier)

	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return &RequestError{
		Method:     method,
		URL:        url,
		StatusCode: resp.StatusCode(),
		Kind:       kind,
		Identifier: serverErr.Identifier,
		Body:       body,
	}
}

func kindFor(status int, identifier string) ErrorKind {
	switch identifier {
	case identifierAccessUnauthorized:
		return KindUnauthorized
	case identifierCredentialsInvalid:
		return KindCredentialsInvalid
	case identifierNotFound:
		return KindNotFound
	case identifierConflict:
		return KindConflict
	case identifierValidation:
		return KindValidation
	}

	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindCredentialsInvalid
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}
