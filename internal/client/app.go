// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package client

import (
	"context"
	"fmt"

	"github.com/ben-ryder/headbase/internal/adapter"
	"github.com/ben-ryder/headbase/internal/config"
	"github.com/ben-ryder/headbase/internal/credstore"
	"github.com/ben-ryder/headbase/internal/crypto"
	"github.com/ben-ryder/headbase/internal/localdoc"
	"github.com/ben-ryder/headbase/internal/logger"
	"github.com/ben-ryder/headbase/internal/service"
	"github.com/ben-ryder/headbase/internal/session"
	"github.com/ben-ryder/headbase/internal/store"
)

// App wires every client component together for one configured account.
type App struct {
	cfg *config.ClientConfig
	log *logger.Logger

	// Session is the authenticated transport with refresh-and-retry.
	Session *session.Client
	// Service is the encrypted request pipeline over Session.
	Service *service.Client
	// Document is the local CRDT document store.
	Document *localdoc.Store
	// Creds is the credential store backing Session and Service.
	Creds credstore.Store

	db  *store.DB
	job *localdoc.SyncJob
}

// NewApp builds the full client from configuration. The credential store
// backend is the OS keychain unless a credential file path is configured.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}

	creds, err := newCredentialStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("create credential store: %w", err)
	}

	envelope := crypto.NewEnvelope()
	transport := adapter.NewHTTPTransport(adapter.HTTPConfig{
		BaseURL: cfg.Server.URL,
		Timeout: cfg.Server.RequestTimeout,
	}, log)

	sess := session.NewClient(transport, creds, log)
	svc := service.NewClient(sess, creds, envelope, log)

	db, err := store.NewConnectSQLite(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	repo := store.NewDocumentRepository(db, log)
	doc, err := localdoc.Open(ctx, repo, sess, creds, envelope, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open local document: %w", err)
	}

	return &App{
		cfg:      cfg,
		log:      log,
		Session:  sess,
		Service:  svc,
		Document: doc,
		Creds:    creds,
		db:       db,
		job:      localdoc.NewSyncJob(doc, log),
	}, nil
}

func newCredentialStore(cfg *config.ClientConfig) (credstore.Store, error) {
	if cfg.Credentials.File != "" {
		return credstore.NewFileStore(cfg.Credentials.File)
	}
	return credstore.NewKeyringStore(cfg.Credentials.KeyringService), nil
}

// StartSync launches the background sync job at the configured interval.
func (a *App) StartSync(ctx context.Context) {
	a.job.Start(ctx, a.cfg.Sync.Interval)
}

// StopSync stops the background sync job and waits for it to exit.
func (a *App) StopSync() {
	a.job.Stop()
}

// Close releases the local database. StopSync first if sync is running.
func (a *App) Close() error {
	a.job.Stop()
	return a.db.Close()
}
