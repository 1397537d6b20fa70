// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

// Package service composes the session client and the encryption envelope
// into the record pipeline: every vault-scoped payload is encrypted before
// it leaves the process and decrypted when it returns, with the
// data-encryption key resolved from memory or the credential store before
// any such operation.
package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/ben-ryder/headbase/internal/credstore"
	"github.com/ben-ryder/headbase/internal/crypto"
	"github.com/ben-ryder/headbase/internal/logger"
	"github.com/ben-ryder/headbase/models"
)

// Client is the encrypted request pipeline. It is the only component that
// holds the plaintext DEK in memory (single writer; readers fall back to the
// credential store on a miss).
type Client struct {
	session  Caller
	creds    credstore.Store
	envelope crypto.Envelope
	log      *logger.Logger

	mu  sync.RWMutex
	dek []byte
}

// NewClient builds the pipeline over a session caller, a credential store
// and an encryption envelope.
func NewClient(sess Caller, creds credstore.Store, envelope crypto.Envelope, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{session: sess, creds: creds, envelope: envelope, log: log}
}

// resolveDEK returns the active data-encryption key, loading it from the
// credential store on a memory miss. ErrNoEncryptionKey when absent in both.
func (c *Client) resolveDEK(ctx context.Context) ([]byte, error) {
	c.mu.RLock()
	dek := c.dek
	c.mu.RUnlock()
	if len(dek) > 0 {
		return dek, nil
	}

	loaded, err := c.creds.LoadDEK(ctx)
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			return nil, ErrNoEncryptionKey
		}
		return nil, err
	}

	c.mu.Lock()
	c.dek = loaded
	c.mu.Unlock()
	return loaded, nil
}

func (c *Client) setDEK(dek []byte) {
	c.mu.Lock()
	c.dek = dek
	c.mu.Unlock()
}

func (c *Client) clearDEK() {
	c.setDEK(nil)
}

// encrypt seals payload under the resolved DEK.
func (c *Client) encrypt(ctx context.Context, payload any) (models.CipherText, error) {
	dek, err := c.resolveDEK(ctx)
	if err != nil {
		return "", err
	}
	return c.envelope.EncryptRecord(dek, payload)
}

// decrypt opens record into target using the resolved DEK.
func (c *Client) decrypt(ctx context.Context, record models.CipherText, target any) error {
	dek, err := c.resolveDEK(ctx)
	if err != nil {
		return err
	}
	return c.envelope.DecryptRecord(dek, record, target)
}

// listQuery converts pagination options into query parameters.
func listQuery(opts models.ListOptions) map[string]string {
	q := map[string]string{}
	if opts.Take > 0 {
		q["take"] = strconv.Itoa(opts.Take)
	}
	if opts.Skip > 0 {
		q["skip"] = strconv.Itoa(opts.Skip)
	}
	if len(q) == 0 {
		return nil
	}
	return q
}
