// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package models

import "time"

// CipherText is an opaque encrypted blob produced by the encryption
// envelope: base64(nonce ‖ AES-GCM ciphertext). A CipherText value is the
// only form in which sensitive entity content crosses the network or touches
// persistent storage.
type CipherText string

// Vault is the wire form of a vault. All sensitive fields live inside
// Content; everything else is routing metadata the server is allowed to see.
type Vault struct {
	ID        string     `json:"id"`
	Content   CipherText `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// VaultContent is the plaintext payload of a vault.
type VaultContent struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Note is the wire form of a note, scoped to a vault.
type Note struct {
	ID        string     `json:"id"`
	VaultID   string     `json:"vaultId"`
	Content   CipherText `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NoteContent is the plaintext payload of a note.
type NoteContent struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	TagIDs []string `json:"tagIds,omitempty"`
}

// Template is the wire form of a note template, scoped to a vault.
type Template struct {
	ID        string     `json:"id"`
	VaultID   string     `json:"vaultId"`
	Content   CipherText `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TemplateContent is the plaintext payload of a template.
type TemplateContent struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// Tag is the wire form of a tag, scoped to a vault.
type Tag struct {
	ID        string     `json:"id"`
	VaultID   string     `json:"vaultId"`
	Content   CipherText `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TagContent is the plaintext payload of a tag.
type TagContent struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ListOptions carries pagination parameters for list endpoints.
// Zero values mean "server default".
type ListOptions struct {
	Take int `json:"take,omitempty"`
	Skip int `json:"skip,omitempty"`
}
