package account

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu         sync.RWMutex
	accounts   map[uuid.UUID]*Account
	byUsername map[string]uuid.UUID
	byEmail    map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory account store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:   make(map[uuid.UUID]*Account),
		byUsername: make(map[string]uuid.UUID),
		byEmail:    make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore) Register(ctx context.Context, acc *Account) error {
	if err := acc.Methods.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[acc.Username]; taken {
		return ErrDuplicateAccount
	}
	if _, taken := s.byEmail[acc.Email]; taken {
		return ErrDuplicateAccount
	}
	if _, taken := s.accounts[acc.ID]; taken {
		return ErrDuplicateAccount
	}

	s.accounts[acc.ID] = acc.Clone()
	s.byUsername[acc.Username] = acc.ID
	s.byEmail[acc.Email] = acc.ID

	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc.Clone(), nil
}

func (s *MemoryStore) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return s.lookup(s.byUsername, username)
}

func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return s.lookup(s.byEmail, email)
}

func (s *MemoryStore) lookup(index map[string]uuid.UUID, key string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := index[key]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return s.accounts[id].Clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}

	delete(s.accounts, id)
	delete(s.byUsername, acc.Username)
	delete(s.byEmail, acc.Email)

	return nil
}

func (s *MemoryStore) Verify(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	acc.VerificationToken = nil

	return nil
}

func (s *MemoryStore) AuthenticationMethods(ctx context.Context, id uuid.UUID) ([]Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc.Methods.Tags(), nil
}

func (s *MemoryStore) UpdateAuthenticationMethod(ctx context.Context, id uuid.UUID, tag Tag, value string) error {
	if !tag.Valid() {
		return ErrInvalidTag
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	acc.Methods[tag] = value

	return nil
}

func (s *MemoryStore) RemoveAuthenticationMethod(ctx context.Context, id uuid.UUID, tag Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	if len(acc.Methods) <= 1 {
		return ErrLastMethod
	}
	if _, held := acc.Methods[tag]; !held {
		return ErrMethodNotFound
	}
	delete(acc.Methods, tag)

	return nil
}
