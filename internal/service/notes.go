package service

import (
	"context"
	"fmt"

	"github.com/ben-ryder/headbase/internal/session"
	"github.com/ben-ryder/headbase/models"
)

func notesPath(vaultID string) string { return "/v1/vaults/" + vaultID + "/notes" }

// CreateNote encrypts content and creates a note inside the given vault.
func (c *Client) CreateNote(ctx context.Context, vaultID string, content models.NoteContent) (models.Note, error) {
	ct, err := c.encrypt(ctx, content)
	if err != nil {
		return models.Note{}, err
	}

	var note models.Note
	err = c.session.CallJSON(ctx, session.Request{
		Method: "POST",
		Path:   notesPath(vaultID),
		Body:   map[string]any{"content": ct},
	}, &note)
	if err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// GetNotes lists the vault's notes and decrypts every element.
func (c *Client) GetNotes(ctx context.Context, vaultID string, opts models.ListOptions) ([]models.DecryptedNote, models.ListMeta, error) {
	var resp models.NotesResponse
	err := c.session.CallJSON(ctx, session.Request{
		Method: "GET",
		Path:   notesPath(vaultID),
		Query:  listQuery(opts),
	}, &resp)
	if err != nil {
		return nil, models.ListMeta{}, err
	}

	notes := make([]models.DecryptedNote, 0, len(resp.Notes))
	for _, n := range resp.Notes {
		var content models.NoteContent
		if err := c.decrypt(ctx, n.Content, &content); err != nil {
			return nil, models.ListMeta{}, fmt.Errorf("decrypt note %s: %w", n.ID, err)
		}
		notes = append(notes, models.DecryptedNote{
			ID: n.ID, VaultID: n.VaultID, Content: content,
			CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt,
		})
	}
	return notes, resp.Meta, nil
}

// GetNote fetches and decrypts a single note.
func (c *Client) GetNote(ctx context.Context, vaultID, noteID string) (models.DecryptedNote, error) {
	var note models.Note
	err := c.session.CallJSON(ctx, session.Request{
		Method: "GET",
		Path:   notesPath(vaultID) + "/" + noteID,
	}, &note)
	if err != nil {
		return models.DecryptedNote{}, err
	}

	var content models.NoteContent
	if err := c.decrypt(ctx, note.Content, &content); err != nil {
		return models.DecryptedNote{}, fmt.Errorf("decrypt note %s: %w", note.ID, err)
	}
	return models.DecryptedNote{
		ID: note.ID, VaultID: note.VaultID, Content: content,
		CreatedAt: note.CreatedAt, UpdatedAt: note.UpdatedAt,
	}, nil
}

// UpdateNote encrypts the new content and patches the note.
func (c *Client) UpdateNote(ctx context.Context, vaultID, noteID string, content models.NoteContent) (models.Note, error) {
	ct, err := c.encrypt(ctx, content)
	if err != nil {
		return models.Note{}, err
	}

	var note models.Note
	err = c.session.CallJSON(ctx, session.Request{
		Method: "PATCH",
		Path:   notesPath(vaultID) + "/" + noteID,
		Body:   map[string]any{"content": ct},
	}, &note)
	if err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, vaultID, noteID string) error {
	_, err := c.session.Call(ctx, session.Request{
		Method: "DELETE",
		Path:   notesPath(vaultID) + "/" + noteID,
	})
	return err
}
