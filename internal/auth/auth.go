// Package auth is the session manager of a single client: it keeps the
// client's signup records and the identity that is currently logged in.
//
// This is an account gate for the UI and nothing more. Passwords are stored
// verbatim and Login does not check them.
package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sujalbistaa/zevina/internal/models"
	"github.com/sujalbistaa/zevina/internal/storage"
)

const (
	KeyIdentity = "zevina_user"
	KeyAccounts = "zevina_accounts"

	MinPasswordLength = 6
)

// Manager holds at most one logged in identity.
type Manager struct {
	store    storage.Storage
	log      *zap.Logger
	identity *models.Identity
}

// Open loads the persisted identity, if any. It is not revalidated against
// the stored accounts and never expires.
func Open(ctx context.Context, store storage.Storage, log *zap.Logger) (*Manager, error) {
	m := &Manager{store: store, log: log}

	id, err := storage.LoadJSON[*models.Identity](ctx, store, log, KeyIdentity, nil, validIdentity)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	m.identity = id
	return m, nil
}

// Current returns the logged in identity.
func (m *Manager) Current() (models.Identity, bool) {
	if m.identity == nil {
		return models.Identity{}, false
	}
	return *m.identity, true
}

func (m *Manager) IsAuthenticated() bool {
	return m.identity != nil
}

// Login logs in the account registered under email. The password is
// accepted whatever its value.
func (m *Manager) Login(ctx context.Context, email, _ string) (models.Identity, error) {
	accounts, err := m.accounts(ctx)
	if err != nil {
		return models.Identity{}, err
	}

	for _, a := range accounts {
		if a.Email == email {
			return m.setIdentity(ctx, models.Identity{Name: a.Name, Email: a.Email})
		}
	}
	return models.Identity{}, ErrAccountNotFound
}

// Signup registers a new account and logs it in. An email can be
// registered once; the existing record is left untouched.
func (m *Manager) Signup(ctx context.Context, name, email, password string) (models.Identity, error) {
	accounts, err := m.accounts(ctx)
	if err != nil {
		return models.Identity{}, err
	}

	for _, a := range accounts {
		if a.Email == email {
			return models.Identity{}, ErrAccountExists
		}
	}

	accounts = append(accounts, models.Credential{Name: name, Email: email, Password: password})
	if err := storage.SaveJSON(ctx, m.store, KeyAccounts, accounts); err != nil {
		return models.Identity{}, fmt.Errorf("save accounts: %w", err)
	}
	m.log.Info("Account created", zap.String("email", email))

	return m.setIdentity(ctx, models.Identity{Name: name, Email: email})
}

// Logout clears the identity. Calling it while logged out is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Remove(ctx, KeyIdentity); err != nil {
		return fmt.Errorf("remove identity: %w", err)
	}
	m.identity = nil
	return nil
}

func (m *Manager) setIdentity(ctx context.Context, id models.Identity) (models.Identity, error) {
	if err := storage.SaveJSON(ctx, m.store, KeyIdentity, id); err != nil {
		return models.Identity{}, fmt.Errorf("save identity: %w", err)
	}
	m.identity = &id
	return id, nil
}

func (m *Manager) accounts(ctx context.Context) ([]models.Credential, error) {
	accounts, err := storage.LoadJSON[[]models.Credential](ctx, m.store, m.log, KeyAccounts, nil, validAccounts)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return accounts, nil
}

func validIdentity(id *models.Identity) error {
	if id == nil || id.Email == "" {
		return errors.New("identity without email")
	}
	return nil
}

func validAccounts(accounts []models.Credential) error {
	for i, a := range accounts {
		if a.Email == "" {
			return fmt.Errorf("account %d has no email", i)
		}
	}
	return nil
}
