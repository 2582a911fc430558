package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spf13/cast"

	"storefront/internal/kv"
	"storefront/internal/logging"
	"storefront/pkg/domain"
)

// Session flag keys. They live beside the snapshot key but are never part of it.
const (
	KeyIsLoggedIn     = "isLoggedIn"
	KeyIsAdmin        = "isAdmin"
	KeyCurrentAccount = "currentAccount"
)

var _ domain.SessionStore = (*Session)(nil)

// Session persists the three session flags independently so that one
// corrupt value only resets itself.
type Session struct {
	medium kv.Medium
	logger logging.Logger
}

// NewSession returns a session store on medium.
func NewSession(medium kv.Medium, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{medium: medium, logger: logger}
}

// Load reads each flag, defaulting to false/false/absent.
func (s *Session) Load(ctx context.Context) domain.Session {
	return domain.Session{
		IsLoggedIn:     s.readBool(ctx, KeyIsLoggedIn),
		IsAdmin:        s.readBool(ctx, KeyIsAdmin),
		CurrentAccount: s.readAccount(ctx),
	}
}

// Save writes the three flags. Failures are logged per key.
func (s *Session) Save(ctx context.Context, session domain.Session) {
	s.write(ctx, KeyIsLoggedIn, session.IsLoggedIn)
	s.write(ctx, KeyIsAdmin, session.IsAdmin)
	s.write(ctx, KeyCurrentAccount, session.CurrentAccount)
}

func (s *Session) raw(ctx context.Context, key string) ([]byte, bool) {
	b, err := s.medium.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("read session value failed", "key", key, "error", err)
		return nil, false
	}
	return b, true
}

func (s *Session) readBool(ctx context.Context, key string) bool {
	b, ok := s.raw(ctx, key)
	if !ok {
		return false
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		s.logger.Warn("corrupt session value", "key", key, "error", err)
		return false
	}
	if v == nil {
		return false
	}
	// tolerate "true"/1 written by older clients
	flag, err := cast.ToBoolE(v)
	if err != nil {
		s.logger.Warn("corrupt session value", "key", key, "error", err)
		return false
	}
	return flag
}

func (s *Session) readAccount(ctx context.Context) *domain.Account {
	b, ok := s.raw(ctx, KeyCurrentAccount)
	if !ok {
		return nil
	}
	var acct *domain.Account
	if err := json.Unmarshal(b, &acct); err != nil {
		s.logger.Warn("corrupt session value", "key", KeyCurrentAccount, "error", err)
		return nil
	}
	if acct != nil {
		cp := acct.Clone()
		acct = &cp
	}
	return acct
}

func (s *Session) write(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode session value failed", "key", key, "error", err)
		return
	}
	if err := s.medium.Set(ctx, key, data); err != nil {
		s.logger.Error("persist session value failed", "key", key, "error", err)
	}
}
