package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ben-ryder/headbase/internal/adapter"
	"github.com/ben-ryder/headbase/internal/credstore"
	"github.com/ben-ryder/headbase/internal/mock"
	"github.com/ben-ryder/headbase/internal/session"
	"github.com/ben-ryder/headbase/models"
)

type fixture struct {
	caller   *mock.MockCaller
	creds    *mock.MockStore
	envelope *mock.MockEnvelope
	client   *Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		caller:   mock.NewMockCaller(ctrl),
		creds:    mock.NewMockStore(ctrl),
		envelope: mock.NewMockEnvelope(ctrl),
	}
	f.client = NewClient(f.caller, f.creds, f.envelope, nil)
	return f
}

func TestLogin_WithoutEncryptionSecret(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := models.User{ID: "u-1", Username: "mallory"}
	keys := models.AccountKeys{ServerPassword: "sp", MasterKey: []byte("mk")}

	f.envelope.EXPECT().DeriveAccountKeys("mallory", "hunter2").Return(keys, nil)
	f.caller.EXPECT().
		CallJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req session.Request, target any) error {
			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, "/v1/auth/login", req.Path)
			assert.True(t, req.NoAuth)
			body, ok := req.Body.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, "sp", body["password"], "must send the derived server password, never the plaintext")
			*(target.(*models.LoginResponse)) = models.LoginResponse{
				User: user, AccessToken: "AT", RefreshToken: "RT",
			}
			return nil
		})

	f.creds.EXPECT().SaveCurrentUser(ctx, user).Return(nil)
	f.creds.EXPECT().SaveAccessToken(ctx, "AT").Return(nil)
	f.creds.EXPECT().SaveRefreshToken(ctx, "RT").Return(nil)
	f.caller.EXPECT().SetSession(models.Session{AccessToken: "AT", RefreshToken: "RT"})

	got, err := f.client.Login(ctx, "mallory", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestLogin_WithEncryptionSecret(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := models.User{ID: "u-1", Username: "mallory", EncryptionSecret: "wrapped-dek"}
	keys := models.AccountKeys{ServerPassword: "sp", MasterKey: []byte("mk")}
	dek := []byte("0123456789abcdef0123456789abcdef")

	f.envelope.EXPECT().DeriveAccountKeys("mallory", "hunter2").Return(keys, nil)
	f.caller.EXPECT().
		CallJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ session.Request, target any) error {
			*(target.(*models.LoginResponse)) = models.LoginResponse{
				User: user, AccessToken: "AT", RefreshToken: "RT",
			}
			return nil
		})
	f.envelope.EXPECT().UnwrapKey([]byte("mk"), "wrapped-dek").Return(dek, nil)

	f.creds.EXPECT().SaveCurrentUser(ctx, user).Return(nil)
	f.creds.EXPECT().SaveAccessToken(ctx, "AT").Return(nil)
	f.creds.EXPECT().SaveRefreshToken(ctx, "RT").Return(nil)
	f.creds.EXPECT().SaveDEK(ctx, dek).Return(nil)
	f.caller.EXPECT().SetSession(gomock.Any())

	_, err := f.client.Login(ctx, "mallory", "hunter2")
	require.NoError(t, err)

	// The unwrapped DEK must be cached: an encrypt right after login must
	// not hit the credential store.
	f.envelope.EXPECT().EncryptRecord(dek, gomock.Any()).Return(models.CipherText("ct"), nil)
	ct, err := f.client.encrypt(ctx, models.NoteContent{Title: "n"})
	require.NoError(t, err)
	assert.Equal(t, models.CipherText("ct"), ct)
}

func TestLogin_UnwrapFailureAbortsBeforePersisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	keys := models.AccountKeys{ServerPassword: "sp", MasterKey: []byte("mk")}
	f.envelope.EXPECT().DeriveAccountKeys("mallory", "wrong").Return(keys, nil)
	f.caller.EXPECT().
		CallJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ session.Request, target any) error {
			*(target.(*models.LoginResponse)) = models.LoginResponse{
				User: models.User{EncryptionSecret: "wrapped-dek"},
				AccessToken: "AT", RefreshToken: "RT",
			}
			return nil
		})
	f.envelope.EXPECT().UnwrapKey([]byte("mk"), "wrapped-dek").Return(nil, errors.New("cipher: message authentication failed"))

	_, err := f.client.Login(ctx, "mallory", "wrong")
	require.ErrorIs(t, err, ErrLoginFailed)
}

func TestLogin_PersistFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	keys := models.AccountKeys{ServerPassword: "sp", MasterKey: []byte("mk")}
	f.envelope.EXPECT().DeriveAccountKeys("mallory", "hunter2").Return(keys, nil)
	f.caller.EXPECT().
		CallJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ session.Request, target any) error {
			*(target.(*models.LoginResponse)) = models.LoginResponse{
				User: models.User{ID: "u-1"}, AccessToken: "AT", RefreshToken: "RT",
			}
			return nil
		})

	f.creds.EXPECT().SaveCurrentUser(ctx, gomock.Any()).Return(nil)
	f.creds.EXPECT().SaveAccessToken(ctx, "AT").Return(errors.New("keyring locked"))
	f.caller.EXPECT().ClearCredentials(ctx).Return(nil)

	_, err := f.client.Login(ctx, "mallory", "hunter2")
	require.ErrorIs(t, err, ErrLoginFailed)
}

func TestRegister_GeneratesAndWrapsKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	keys := models.AccountKeys{ServerPassword: "sp", MasterKey: []byte("mk")}
	dek := []byte("fresh-dek")
	user := models.User{ID: "u-2", Username: "mallory", EncryptionSecret: "wrapped"}

	f.envelope.EXPECT().DeriveAccountKeys("mallory", "hunter2").Return(keys, nil)
	f.envelope.EXPECT().GenerateKey().Return(dek, nil)
	f.envelope.EXPECT().WrapKey([]byte("mk"), dek).Return("wrapped", nil)
	f.caller.EXPECT().
		CallJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req session.Request, target any) error {
			assert.Equal(t, "/v1/users", req.Path)
			body, ok := req.Body.(models.CreateUserRequest)
			require.True(t, ok)
			assert.Equal(t, "sp", body.Password)
			assert.Equal(t, "wrapped", body.EncryptionSecret)
			*(target.(*models.LoginResponse)) = models.LoginResponse{
				User: user, AccessToken: "AT", RefreshToken: "RT",
			}
			return nil
		})

	f.creds.EXPECT().SaveCurrentUser(ctx, user).Return(nil)
	f.creds.EXPECT().SaveAccessToken(ctx, "AT").Return(nil)
	f.creds.EXPECT().SaveRefreshToken(ctx, "RT").Return(nil)
	f.creds.EXPECT().SaveDEK(ctx, dek).Return(nil)
	f.caller.EXPECT().SetSession(models.Session{AccessToken: "AT", RefreshToken: "RT"})

	got, err := f.client.Register(ctx, "mallory", "m@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestLogout_RevokesBeforeDeleting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.caller.EXPECT().Session().Return(models.Session{AccessToken: "AT", RefreshToken: "RT"})
	revoke := f.caller.EXPECT().
		Call(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req session.Request) (*adapter.Response, error) {
			assert.Equal(t, "/v1/auth/revoke", req.Path)
			body, ok := req.Body.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, "AT", body["accessToken"])
			assert.Equal(t, "RT", body["refreshToken"])
			return &adapter.Response{StatusCode: 200}, nil
		})
	f.caller.EXPECT().ClearCredentials(ctx).Return(nil).After(revoke)

	require.NoError(t, f.client.Logout(ctx))
}

func TestLogout_RevokeFailureStillClears(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.caller.EXPECT().Session().Return(models.Session{AccessToken: "AT", RefreshToken: "RT"})
	f.caller.EXPECT().Call(gomock.Any(), gomock.Any()).Return(nil, errors.New("network down"))
	f.caller.EXPECT().ClearCredentials(ctx).Return(nil)

	require.NoError(t, f.client.Logout(ctx))
}

func TestLogout_StoredTokensRevokedOnMemoryMiss(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A fresh process holds no in-memory session; the persisted tokens must
	// still be revoked before deletion.
	f.caller.EXPECT().Session().Return(models.Session{})
	f.creds.EXPECT().LoadAccessToken(ctx).Return("AT-stored", nil)
	f.creds.EXPECT().LoadRefreshToken(ctx).Return("RT-stored", nil)
	revoke := f.caller.EXPECT().
		Call(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req session.Request) (*adapter.Response, error) {
			assert.Equal(t, "/v1/auth/revoke", req.Path)
			body, ok := req.Body.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, "AT-stored", body["accessToken"])
			assert.Equal(t, "RT-stored", body["refreshToken"])
			return &adapter.Response{StatusCode: 200}, nil
		})
	f.caller.EXPECT().ClearCredentials(ctx).Return(nil).After(revoke)

	require.NoError(t, f.client.Logout(ctx))
}

func TestLogout_NoTokensAnywhereSkipsRevoke(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.caller.EXPECT().Session().Return(models.Session{})
	f.creds.EXPECT().LoadAccessToken(ctx).Return("", credstore.ErrNotFound)
	f.creds.EXPECT().LoadRefreshToken(ctx).Return("", credstore.ErrNotFound)
	f.caller.EXPECT().ClearCredentials(ctx).Return(nil)

	require.NoError(t, f.client.Logout(ctx))
}

func TestResolveDEK_FallsBackToStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dek := []byte("stored-dek")
	f.creds.EXPECT().LoadDEK(ctx).Return(dek, nil)

	got, err := f.client.resolveDEK(ctx)
	require.NoError(t, err)
	assert.Equal(t, dek, got)

	// Second call is served from memory, so no further store expectation.
	got, err = f.client.resolveDEK(ctx)
	require.NoError(t, err)
	assert.Equal(t, dek, got)
}

func TestResolveDEK_AbsentEverywhere(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.creds.EXPECT().LoadDEK(ctx).Return(nil, credstore.ErrNotFound)

	_, err := f.client.resolveDEK(ctx)
	require.ErrorIs(t, err, ErrNoEncryptionKey)
}
