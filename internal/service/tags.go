package service

import (
	"context"
	"fmt"

	"github.com/ben-ryder/headbase/internal/session"
	"github.com/ben-ryder/headbase/models"
)

func tagsPath(vaultID string) string { return "/v1/vaults/" + vaultID + "/tags" }

// CreateTag encrypts content and creates a tag inside the vault.
func (c *Client) CreateTag(ctx context.Context, vaultID string, content models.TagContent) (models.Tag, error) {
	ct, err := c.encrypt(ctx, content)
	if err != nil {
		return models.Tag{}, err
	}

	var tag models.Tag
	err = c.session.CallJSON(ctx, session.Request{
		Method: "POST",
		Path:   tagsPath(vaultID),
		Body:   map[string]any{"content": ct},
	}, &tag)
	if err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

// GetTags lists the vault's tags and decrypts every element.
func (c *Client) GetTags(ctx context.Context, vaultID string, opts models.ListOptions) ([]models.DecryptedTag, models.ListMeta, error) {
	var resp models.TagsResponse
	err := c.session.CallJSON(ctx, session.Request{
		Method: "GET",
		Path:   tagsPath(vaultID),
		Query:  listQuery(opts),
	}, &resp)
	if err != nil {
		return nil, models.ListMeta{}, err
	}

	tags := make([]models.DecryptedTag, 0, len(resp.Tags))
	for _, tag := range resp.Tags {
		var content models.TagContent
		if err := c.decrypt(ctx, tag.Content, &content); err != nil {
			return nil, models.ListMeta{}, fmt.Errorf("decrypt tag %s: %w", tag.ID, err)
		}
		tags = append(tags, models.DecryptedTag{
			ID: tag.ID, VaultID: tag.VaultID, Content: content,
			CreatedAt: tag.CreatedAt, UpdatedAt: tag.UpdatedAt,
		})
	}
	return tags, resp.Meta, nil
}

// GetTag fetches and decrypts a single tag.
func (c *Client) GetTag(ctx context.Context, vaultID, tagID string) (models.DecryptedTag, error) {
	var tag models.Tag
	err := c.session.CallJSON(ctx, session.Request{
		Method: "GET",
		Path:   tagsPath(vaultID) + "/" + tagID,
	}, &tag)
	if err != nil {
		return models.DecryptedTag{}, err
	}

	var content models.TagContent
	if err := c.decrypt(ctx, tag.Content, &content); err != nil {
		return models.DecryptedTag{}, fmt.Errorf("decrypt tag %s: %w", tag.ID, err)
	}
	return models.DecryptedTag{
		ID: tag.ID, VaultID: tag.VaultID, Content: content,
		CreatedAt: tag.CreatedAt, UpdatedAt: tag.UpdatedAt,
	}, nil
}

// UpdateTag encrypts the new content and patches the tag.
func (c *Client) UpdateTag(ctx context.Context, vaultID, tagID string, content models.TagContent) (models.Tag, error) {
	ct, err := c.encrypt(ctx, content)
	if err != nil {
		return models.Tag{}, err
	}

	var tag models.Tag
	err = c.session.CallJSON(ctx, session.Request{
		Method: "PATCH",
		Path:   tagsPath(vaultID) + "/" + tagID,
		Body:   map[string]any{"content": ct},
	}, &tag)
	if err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

// DeleteTag removes a tag.
func (c *Client) DeleteTag(ctx context.Context, vaultID, tagID string) error {
	_, err := c.session.Call(ctx, session.Request{
		Method: "DELETE",
		Path:   tagsPath(vaultID) + "/" + tagID,
	})
	return err
}
