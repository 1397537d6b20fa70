package models

import "time"

// Decrypted entity forms returned by the client API. They pair the wire
// metadata with the plaintext content and exist only in client memory; a
// decrypted record never crosses the network boundary outward.

type DecryptedVault struct {
	ID        string       `json:"id"`
	Content   VaultContent `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type DecryptedNote struct {
	ID        string      `json:"id"`
	VaultID   string      `json:"vaultId"`
	Content   NoteContent `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type DecryptedTemplate struct {
	ID        string          `json:"id"`
	VaultID   string          `json:"vaultId"`
	Content   TemplateContent `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type DecryptedTag struct {
	ID        string     `json:"id"`
	VaultID   string     `json:"vaultId"`
	Content   TagContent `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
