package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/storage"
)

// ErrNoAdminSession mirrors ErrNoSession for the admin domain.
var ErrNoAdminSession = errors.New("session: admin not signed in")

// SetAdmin stores the admin credential. Admin tokens are not refreshed and
// carry no rememberMe tiering; they always land in the durable tier.
func (m *Manager) SetAdmin(ctx context.Context, token, adminName string) error {
	rec := domain.AdminSession{Token: token, AdminName: adminName, IssuedAt: m.nowFn().UTC()}
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if m.cipher != nil {
		if payload, err = m.cipher.Seal(payload); err != nil {
			return err
		}
	}
	return m.durable.Put(ctx, storage.KeyAdminSession, payload)
}

func (m *Manager) GetAdmin(ctx context.Context) (*domain.AdminSession, error) {
	payload, err := m.durable.Get(ctx, storage.KeyAdminSession)
	if err != nil {
		return nil, ErrNoAdminSession
	}
	if m.cipher != nil {
		if payload, err = m.cipher.Open(payload); err != nil {
			_ = m.durable.Delete(ctx, storage.KeyAdminSession)
			return nil, ErrNoAdminSession
		}
	}
	var rec domain.AdminSession
	if err := json.Unmarshal(payload, &rec); err != nil || rec.Token == "" {
		_ = m.durable.Delete(ctx, storage.KeyAdminSession)
		return nil, ErrNoAdminSession
	}
	return &rec, nil
}

func (m *Manager) ClearAdmin(ctx context.Context) error {
	return m.durable.Delete(ctx, storage.KeyAdminSession)
}
