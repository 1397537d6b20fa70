package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ben-ryder/headbase/internal/adapter"
	"github.com/ben-ryder/headbase/internal/crypto"
	"github.com/ben-ryder/headbase/internal/session"
	"github.com/ben-ryder/headbase/models"
)

// withDEK primes the in-memory key so record operations skip the store.
func (f *fixture) withDEK(dek []byte) *fixture {
	f.client.setDEK(dek)
	return f
}

func TestCreateNote_EncryptsBeforeSend(t *testing.T) {
	f := newFixture(t).withDEK([]byte("dek"))
	ctx := context.Background()

	content := models.NoteContent{Title: "groceries", Body: "eggs"}
	f.envelope.EXPECT().EncryptRecord([]byte("dek"), content).Return(models.CipherText("ct"), nil)
	f.caller.EXPECT().
		CallJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req session.Request, target any) error {
			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, "/v1/vaults/v-1/notes", req.Path)
			body, ok := req.Body.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, models.CipherText("ct"), body["content"], "plaintext must never reach the wire")
			*(target.(*models.Note)) = models.Note{ID: "n-1", VaultID: "v-1", Content: "ct"}
			return nil
		})

	note, err := f.client.CreateNote(ctx, "v-1", content)
	require.NoError(t, err)
	assert.Equal(t, "n-1", note.ID)
}

func TestCreateNote_NoKeyFailsBeforeNetwork(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.creds.EXPECT().LoadDEK(ctx).Return(nil, errors.New("keyring locked"))

	_, err := f.client.CreateNote(ctx, "v-1", models.NoteContent{Title: "x"})
	require.Error(t, err)
}

func TestGetNotes_DecryptsEveryElement(t *testing.T) {
	f := newFixture(t).withDEK([]byte("dek"))
	ctx := context.Background()
	now := time.Now().UTC()

	f.caller.EXPECT().
		CallJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req session.Request, target any) error {
			assert.Equal(t, "GET", req.Method)
			assert.Equal(t, map[string]string{"take": "10", "skip": "20"}, req.Query)
			*(target.(*models.NotesResponse)) = models.NotesResponse{
				Notes: []models.Note{
					{ID: "n-1", VaultID: "v-1", Content: "ct1", CreatedAt: now},
					{ID: "n-2", VaultID: "v-1", Content: "ct2", CreatedAt: now},
				},
				Meta: models.ListMeta{Total: 2},
			}
			return nil
		})
	f.envelope.EXPECT().
		DecryptRecord([]byte("dek"), models.CipherText("ct1"), gomock.Any()).
		DoAndReturn(func(_ []byte, _ models.CipherText, target any) error {
			*(target.(*models.NoteContent)) = models.NoteContent{Title: "one"}
			return nil
		})
	f.envelope.EXPECT().
		DecryptRecord([]byte("dek"), models.CipherText("ct2"), gomock.Any()).
		DoAndReturn(func(_ []byte, _ models.CipherText, target any) error {
			*(target.(*models.NoteContent)) = models.NoteContent{Title: "two"}
			return nil
		})

	notes, meta, err := f.client.GetNotes(ctx, "v-1", models.ListOptions{Take: 10, Skip: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Total)
	require.Len(t, notes, 2)
	assert.Equal(t, "one", notes[0].Content.Title)
	assert.Equal(t, "two", notes[1].Content.Title)
}

func TestGetNotes_OneBadRecordFailsTheCall(t *testing.T) {
	f := newFixture(t).withDEK([]byte("dek"))
	ctx := context.Background()

	f.caller.EXPECT().
		CallJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ session.Request, target any) error {
			*(target.(*models.NotesResponse)) = models.NotesResponse{
				Notes: []models.Note{
					{ID: "n-1", Content: "ct1"},
					{ID: "n-2", Content: "corrupted"},
				},
			}
			return nil
		})
	f.envelope.EXPECT().
		DecryptRecord(gomock.Any(), models.CipherText("ct1"), gomock.Any()).
		Return(nil)
	f.envelope.EXPECT().
		DecryptRecord(gomock.Any(), models.CipherText("corrupted"), gomock.Any()).
		Return(crypto.ErrDecrypt)

	_, _, err := f.client.GetNotes(ctx, "v-1", models.ListOptions{})
	require.ErrorIs(t, err, crypto.ErrDecrypt)
	assert.Contains(t, err.Error(), "n-2")
}

func TestUpdateVault_Patches(t *testing.T) {
	f := newFixture(t).withDEK([]byte("dek"))
	ctx := context.Background()

	content := models.VaultContent{Name: "renamed"}
	f.envelope.EXPECT().EncryptRecord([]byte("dek"), content).Return(models.CipherText("ct"), nil)
	f.caller.EXPECT().
		CallJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req session.Request, target any) error {
			assert.Equal(t, "PATCH", req.Method)
			assert.Equal(t, "/v1/vaults/v-1", req.Path)
			*(target.(*models.Vault)) = models.Vault{ID: "v-1", Content: "ct"}
			return nil
		})

	vault, err := f.client.UpdateVault(ctx, "v-1", content)
	require.NoError(t, err)
	assert.Equal(t, "v-1", vault.ID)
}

func TestDeleteTag_PropagatesTransportError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	wantErr := errors.New("not found")
	f.caller.EXPECT().
		Call(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req session.Request) (*adapter.Response, error) {
			assert.Equal(t, "DELETE", req.Method)
			assert.Equal(t, "/v1/vaults/v-1/tags/t-9", req.Path)
			return nil, wantErr
		})

	err := f.client.DeleteTag(ctx, "v-1", "t-9")
	require.ErrorIs(t, err, wantErr)
}

func TestGetTemplate_RoundTrip(t *testing.T) {
	f := newFixture(t).withDEK([]byte("dek"))
	ctx := context.Background()

	f.caller.EXPECT().
		CallJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req session.Request, target any) error {
			assert.Equal(t, "/v1/vaults/v-1/templates/tpl-1", req.Path)
			*(target.(*models.Template)) = models.Template{ID: "tpl-1", VaultID: "v-1", Content: "ct"}
			return nil
		})
	f.envelope.EXPECT().
		DecryptRecord([]byte("dek"), models.CipherText("ct"), gomock.Any()).
		DoAndReturn(func(_ []byte, _ models.CipherText, target any) error {
			*(target.(*models.TemplateContent)) = models.TemplateContent{Name: "daily"}
			return nil
		})

	tpl, err := f.client.GetTemplate(ctx, "v-1", "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "daily", tpl.Content.Name)
}
