package adapter

// Request describes one outbound call. Body is marshalled to JSON when
// non-nil, except []byte bodies which are sent raw (used for CBOR sync
// payloads together with ContentType).
type Request struct {
	Method string
	Path   string
	Body   any
	Query  map[string]string

	// AccessToken, when non-empty, is attached as a bearer Authorization
	// header. The transport does not manage tokens; the session client does.
	AccessToken string

	// ContentType overrides the default application/json for raw bodies.
	ContentType string
}

// Response is a successful (2xx) HTTP result. Body is the raw response body;
// callers decode it themselves.
type Response struct {
	StatusCode int
	Body       []byte
}
