// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package adapter

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

import "context"

// Transport sends one HTTP request and reports the outcome. It is the only
// place that touches the wire: server error bodies are decoded here, once,
// into the closed [ErrorKind] enumeration, so no caller ever inspects a raw
// response to classify a failure.
//
// A nil error means a 2xx response. Every other outcome is a *RequestError
// whose Kind callers switch on.
type Transport interface {
	Do(ctx context.Context, req Request) (*Response, error)
}
