// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package service

import (
	"context"
	"fmt"

	"github.com/ben-ryder/headbase/internal/session"
	"github.com/ben-ryder/headbase/models"
)

// CreateVault encrypts content and creates a vault. The response envelope is
// returned as-is: it contains no sensitive fields.
func (c *Client) CreateVault(ctx context.Context, content models.VaultContent) (models.Vault, error) {
	ct, err := c.encrypt(ctx, content)
	if err != nil {
		return models.Vault{}, err
	}

	var vault models.Vault
	err = c.session.CallJSON(ctx, session.Request{
		Method: "POST",
		Path:   "/v1/vaults",
		Body:   map[string]any{"content": ct},
	}, &vault)
	if err != nil {
		return models.Vault{}, err
	}
	return vault, nil
}

// GetVaults lists vaults and decrypts every element. A single failed
// decryption fails the whole call; see the package documentation on list
// error handling.
func (c *Client) GetVaults(ctx context.Context, opts models.ListOptions) ([]models.DecryptedVault, models.ListMeta, error) {
	var resp models.VaultsResponse
	err := c.session.CallJSON(ctx, session.Request{
		Method: "GET",
		Path:   "/v1/vaults",
		Query:  listQuery(opts),
	}, &resp)
	if err != nil {
		return nil, models.ListMeta{}, err
	}

	vaults := make([]models.DecryptedVault, 0, len(resp.Vaults))
	for _, v := range resp.Vaults {
		var content models.VaultContent
		if err := c.decrypt(ctx, v.Content, &content); err != nil {
			return nil, models.ListMeta{}, fmt.Errorf("decrypt vault %s: %w", v.ID, err)
		}
		vaults = append(vaults, models.DecryptedVault{
			ID: v.ID, Content: content, CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt,
		})
	}
	return vaults, resp.Meta, nil
}

// GetVault fetches and decrypts a single vault.
func (c *Client) GetVault(ctx context.Context, vaultID string) (models.DecryptedVault, error) {
	var vault models.Vault
	err := c.session.CallJSON(ctx, session.Request{
		Method: "GET",
		Path:   "/v1/vaults/" + vaultID,
	}, &vault)
	if err != nil {
		return models.DecryptedVault{}, err
	}

	var content models.VaultContent
	if err := c.decrypt(ctx, vault.Content, &content); err != nil {
		return models.DecryptedVault{}, fmt.Errorf("decrypt vault %s: %w", vault.ID, err)
	}
	return models.DecryptedVault{
		ID: vault.ID, Content: content, CreatedAt: vault.CreatedAt, UpdatedAt: vault.UpdatedAt,
	}, nil
}

// UpdateVault encrypts the new content and patches the vault.
func (c *Client) UpdateVault(ctx context.Context, vaultID string, content models.VaultContent) (models.Vault, error) {
	ct, err := c.encrypt(ctx, content)
	if err != nil {
		return models.Vault{}, err
	}

	var vault models.Vault
	err = c.session.CallJSON(ctx, session.Request{
		Method: "PATCH",
		Path:   "/v1/vaults/" + vaultID,
		Body:   map[string]any{"content": ct},
	}, &vault)
	if err != nil {
		return models.Vault{}, err
	}
	return vault, nil
}

// DeleteVault removes a vault and everything in it.
func (c *Client) DeleteVault(ctx context.Context, vaultID string) error {
	_, err := c.session.Call(ctx, session.Request{
		Method: "DELETE",
		Path:   "/v1/vaults/" + vaultID,
	})
	return err
}
