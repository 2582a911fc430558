package core

import (
	"context"
	"strconv"
	"strings"

	"storefront/pkg/domain"
)

// Session returns a copy of the current session flags.
func (s *Service) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

// Accounts returns all customer accounts.
func (s *Service) Accounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, 0, len(s.snapshot.Accounts))
	for _, a := range s.snapshot.Accounts {
		out = append(out, a.Clone())
	}
	return out
}

// Administrators returns the administrator list.
func (s *Service) Administrators() []domain.AdminAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AdminAccount(nil), s.admins...)
}

// Signup registers a customer and logs them in.
func (s *Service) Signup(ctx context.Context, name, email, password string) (domain.Account, error) {
	var created domain.Account
	err := s.run(ctx, "signup", func() (effect, error) {
		acct, err := s.createAccount(name, email, password)
		if err != nil {
			return 0, err
		}
		created = acct
		s.session = domain.Session{IsLoggedIn: true, CurrentAccount: ptrAccount(acct)}
		return changedSnapshot | changedSession, nil
	})
	return created, err
}

// AddAccount registers a customer on behalf of an administrator; the session
// is left alone.
func (s *Service) AddAccount(ctx context.Context, name, email, password string) (domain.Account, error) {
	var created domain.Account
	err := s.run(ctx, "add_account", func() (effect, error) {
		acct, err := s.createAccount(name, email, password)
		if err != nil {
			return 0, err
		}
		created = acct
		return changedSnapshot, nil
	})
	return created, err
}

func (s *Service) createAccount(name, email, password string) (domain.Account, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return domain.Account{}, domain.Invalid("name, email and password are required")
	}
	if _, ok := s.findAccountByEmail(email); ok {
		return domain.Account{}, domain.ErrDuplicateAccount
	}
	acct := domain.Account{
		ID:        s.ids.NextID(),
		Name:      name,
		Email:     email,
		Password:  password,
		Addresses: []domain.ShippingAddress{},
	}
	s.snapshot.Accounts = append(s.snapshot.Accounts, acct)
	return acct.Clone(), nil
}

// Login authenticates a customer by email (any case) and exact password, or
// takes the administrator path when creds.Admin is set. Without strict admin
// login the administrator path does not consult the administrator list.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) error {
	return s.run(ctx, "login", func() (effect, error) {
		if creds.Admin {
			if s.strictAdmin && !s.adminMatches(creds.Username, creds.Password) {
				return 0, domain.ErrInvalidCredentials
			}
			s.session = domain.Session{IsLoggedIn: true, IsAdmin: true}
			return changedSession, nil
		}
		if creds.Email == "" || creds.Password == "" {
			return 0, domain.ErrMissingCredentials
		}
		acct, ok := s.findAccountByEmail(creds.Email)
		if !ok || acct.Password != creds.Password {
			return 0, domain.ErrInvalidCredentials
		}
		s.session = domain.Session{IsLoggedIn: true, CurrentAccount: ptrAccount(acct)}
		return changedSession, nil
	})
}

// Logout clears the session unconditionally. The cart is kept.
func (s *Service) Logout(ctx context.Context) error {
	return s.run(ctx, "logout", func() (effect, error) {
		s.session = domain.Session{}
		return changedSession, nil
	})
}

// RemoveAccount deletes the account's orders, then the account. A removed
// account that is logged in is logged out.
func (s *Service) RemoveAccount(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := s.run(ctx, "remove_account", func() (effect, error) {
		orders := make([]domain.Order, 0, len(s.snapshot.Orders))
		for _, o := range s.snapshot.Orders {
			if o.UserID != id {
				orders = append(orders, o)
			}
		}
		accounts := make([]domain.Account, 0, len(s.snapshot.Accounts))
		for _, a := range s.snapshot.Accounts {
			if a.ID == id {
				found = true
				continue
			}
			accounts = append(accounts, a)
		}
		changed := effect(0)
		if found || len(orders) != len(s.snapshot.Orders) {
			s.snapshot.Orders = orders
			s.snapshot.Accounts = accounts
			changed |= changedSnapshot
		}
		if cur := s.session.CurrentAccount; cur != nil && cur.ID == id {
			s.session = domain.Session{}
			changed |= changedSession
		}
		return changed, nil
	})
	return found, err
}

// AddAdministrator appends an administrator with a fresh id.
func (s *Service) AddAdministrator(ctx context.Context, username, password string) (domain.AdminAccount, error) {
	var created domain.AdminAccount
	err := s.run(ctx, "add_administrator", func() (effect, error) {
		if strings.TrimSpace(username) == "" || password == "" {
			return 0, domain.Invalid("username and password are required")
		}
		created = domain.AdminAccount{ID: s.ids.NextID(), Username: strings.TrimSpace(username), Password: password}
		s.admins = append(s.admins, created)
		return changedAdministrators, nil
	})
	return created, err
}

// RemoveAdministrator removes one administrator but never the last one.
func (s *Service) RemoveAdministrator(ctx context.Context, id int64) error {
	return s.run(ctx, "remove_administrator", func() (effect, error) {
		if len(s.admins) <= 1 {
			s.logger.Warn("refusing to remove the last administrator", "id", id)
			return 0, domain.ErrLastAdministrator
		}
		kept := make([]domain.AdminAccount, 0, len(s.admins))
		for _, a := range s.admins {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		if len(kept) == len(s.admins) {
			return 0, domain.NotFoundError{Entity: domain.EntityAdministrator, ID: strconv.FormatInt(id, 10)}
		}
		s.admins = kept
		return changedAdministrators, nil
	})
}

func (s *Service) adminMatches(username, password string) bool {
	for _, a := range s.admins {
		if a.Username == username && a.Password == password {
			return true
		}
	}
	return false
}

func (s *Service) findAccount(id int64) (domain.Account, bool) {
	for _, a := range s.snapshot.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Account{}, false
}

func (s *Service) findAccountByEmail(email string) (domain.Account, bool) {
	for _, a := range s.snapshot.Accounts {
		if a.EmailMatches(email) {
			return a, true
		}
	}
	return domain.Account{}, false
}

func ptrAccount(a domain.Account) *domain.Account {
	cp := a.Clone()
	return &cp
}
