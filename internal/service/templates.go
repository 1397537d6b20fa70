package service

import (
	"context"
	"fmt"

	"github.com/ben-ryder/headbase/internal/session"
	"github.com/ben-ryder/headbase/models"
)

func templatesPath(vaultID string) string { return "/v1/vaults/" + vaultID + "/templates" }

// CreateTemplate encrypts content and creates a template inside the vault.
func (c *Client) CreateTemplate(ctx context.Context, vaultID string, content models.TemplateContent) (models.Template, error) {
	ct, err := c.encrypt(ctx, content)
	if err != nil {
		return models.Template{}, err
	}

	var tpl models.Template
	err = c.session.CallJSON(ctx, session.Request{
		Method: "POST",
		Path:   templatesPath(vaultID),
		Body:   map[string]any{"content": ct},
	}, &tpl)
	if err != nil {
		return models.Template{}, err
	}
	return tpl, nil
}

// GetTemplates lists the vault's templates and decrypts every element.
func (c *Client) GetTemplates(ctx context.Context, vaultID string, opts models.ListOptions) ([]models.DecryptedTemplate, models.ListMeta, error) {
	var resp models.TemplatesResponse
	err := c.session.CallJSON(ctx, session.Request{
		Method: "GET",
		Path:   templatesPath(vaultID),
		Query:  listQuery(opts),
	}, &resp)
	if err != nil {
		return nil, models.ListMeta{}, err
	}

	templates := make([]models.DecryptedTemplate, 0, len(resp.Templates))
	for _, tpl := range resp.Templates {
		var content models.TemplateContent
		if err := c.decrypt(ctx, tpl.Content, &content); err != nil {
			return nil, models.ListMeta{}, fmt.Errorf("decrypt template %s: %w", tpl.ID, err)
		}
		templates = append(templates, models.DecryptedTemplate{
			ID: tpl.ID, VaultID: tpl.VaultID, Content: content,
			CreatedAt: tpl.CreatedAt, UpdatedAt: tpl.UpdatedAt,
		})
	}
	return templates, resp.Meta, nil
}

// GetTemplate fetches and decrypts a single template.
func (c *Client) GetTemplate(ctx context.Context, vaultID, templateID string) (models.DecryptedTemplate, error) {
	var tpl models.Template
	err := c.session.CallJSON(ctx, session.Request{
		Method: "GET",
		Path:   templatesPath(vaultID) + "/" + templateID,
	}, &tpl)
	if err != nil {
		return models.DecryptedTemplate{}, err
	}

	var content models.TemplateContent
	if err := c.decrypt(ctx, tpl.Content, &content); err != nil {
		return models.DecryptedTemplate{}, fmt.Errorf("decrypt template %s: %w", tpl.ID, err)
	}
	return models.DecryptedTemplate{
		ID: tpl.ID, VaultID: tpl.VaultID, Content: content,
		CreatedAt: tpl.CreatedAt, UpdatedAt: tpl.UpdatedAt,
	}, nil
}

// UpdateTemplate encrypts the new content and patches the template.
func (c *Client) UpdateTemplate(ctx context.Context, vaultID, templateID string, content models.TemplateContent) (models.Template, error) {
	ct, err := c.encrypt(ctx, content)
	if err != nil {
		return models.Template{}, err
	}

	var tpl models.Template
	err = c.session.CallJSON(ctx, session.Request{
		Method: "PATCH",
		Path:   templatesPath(vaultID) + "/" + templateID,
		Body:   map[string]any{"content": ct},
	}, &tpl)
	if err != nil {
		return models.Template{}, err
	}
	return tpl, nil
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, vaultID, templateID string) error {
	_, err := c.session.Call(ctx, session.Request{
		Method: "DELETE",
		Path:   templatesPath(vaultID) + "/" + templateID,
	})
	return err
}
