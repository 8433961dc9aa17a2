package basic

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned for an unknown user or a wrong password.
var ErrBadCredentials = errors.New("bad credentials")

// Principal is an authenticated user.
type Principal struct {
	Username string
	Roles    []string
}

// CredentialStore verifies username/password pairs.
type CredentialStore interface {
	Authenticate(username, password string) (Principal, error)
}

type storedUser struct {
	hash  []byte
	roles []string
}

// BcryptStore is a read-only in-memory CredentialStore of bcrypt hashes. Safe
// for concurrent use.
type BcryptStore struct {
	users map[string]storedUser

	// compared against for unknown users so both paths cost one bcrypt run
	dummyHash []byte
}

var _ CredentialStore = (*BcryptStore)(nil)

// NewBcryptStore validates every hash and builds the store.
func NewBcryptStore(users []UserConfig) (*BcryptStore, error) {
	s := &BcryptStore{users: make(map[string]storedUser, len(users))}
	for _, u := range users {
		cost, err := bcrypt.Cost([]byte(u.PasswordHash))
		if err != nil {
			return nil, fmt.Errorf("user %q: invalid bcrypt hash: %w", u.Username, err)
		}
		s.users[u.Username] = storedUser{hash: []byte(u.PasswordHash), roles: u.Roles}
		if s.dummyHash == nil {
			s.dummyHash = dummyHash(cost)
		}
	}
	return s, nil
}

func dummyHash(cost int) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("not-a-password"), cost)
	if err != nil {
		return nil
	}
	return hash
}

func (s *BcryptStore) Authenticate(username, password string) (Principal, error) {
	user, ok := s.users[username]
	if !ok {
		if s.dummyHash != nil {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		}
		return Principal{}, ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.hash, []byte(password)); err != nil {
		return Principal{}, ErrBadCredentials
	}
	return Principal{Username: username, Roles: user.roles}, nil
}

// HashPassword returns a bcrypt hash suitable for UserConfig.PasswordHash.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
