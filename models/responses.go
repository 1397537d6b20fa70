package models

// ServerInfo is the response of the unauthenticated info endpoint. The
// client uses it as a reachability probe before attempting to sync.
type ServerInfo struct {
	Version          string `json:"version"`
	RegistrationOpen bool   `json:"registrationEnabled"`
}

// LoginResponse is returned by the login and register endpoints: the account
// record plus a freshly issued token pair.
type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse is returned by the token refresh endpoint. Tokens are
// always rotated as a pair.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ListMeta describes the pagination window of a list response.
type ListMeta struct {
	Total int `json:"total"`
	Take  int `json:"take"`
	Skip  int `json:"skip"`
}

// VaultsResponse is the wire form of a vault list response.
type VaultsResponse struct {
	Meta   ListMeta `json:"meta"`
	Vaults []Vault  `json:"vaults"`
}

// NotesResponse is the wire form of a note list response.
type NotesResponse struct {
	Meta  ListMeta `json:"meta"`
	Notes []Note   `json:"notes"`
}

// TemplatesResponse is the wire form of a template list response.
type TemplatesResponse struct {
	Meta      ListMeta   `json:"meta"`
	Templates []Template `json:"templates"`
}

// TagsResponse is the wire form of a tag list response.
type TagsResponse struct {
	Meta ListMeta `json:"meta"`
	Tags []Tag    `json:"tags"`
}

// ServerError is the error body the server attaches to failed requests.
// Identifier is the application-level error code (e.g. "access-unauthorized")
// that the transport layer decodes into a closed error kind.
type ServerError struct {
	Identifier string `json:"identifier"`
	Message    string `json:"message"`
}
