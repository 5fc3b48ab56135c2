package storefront

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mallow/storefront/pkg/logger"
)

// IdentityStorageKey is the fixed key the cart identifier is stored under
const IdentityStorageKey = "mallow_cart_id"

// IdentityStore persists the cart identifier for one device profile.
// Load never fails: storage errors read as absent.
type IdentityStore interface {
	Load(ctx context.Context) (CartIdentifier, bool)
	Save(ctx context.Context, id CartIdentifier) error
}

// FileIdentityStore keeps the identifier in a single file inside dir
type FileIdentityStore struct {
	dir string
	log *logger.Logger
}

func NewFileIdentityStore(dir string) *FileIdentityStore {
	return &FileIdentityStore{
		dir: dir,
		log: logger.Get().Component("identity_store"),
	}
}

func (s *FileIdentityStore) path() string {
	return filepath.Join(s.dir, IdentityStorageKey)
}

func (s *FileIdentityStore) Load(ctx context.Context) (CartIdentifier, bool) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("Failed to read stored cart id, treating as absent", map[string]interface{}{
				"path":  s.path(),
				"error": err.Error(),
			})
		}
		return "", false
	}

	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", false
	}
	return CartIdentifier(id), true
}

func (s *FileIdentityStore) Save(ctx context.Context, id CartIdentifier) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	// write-then-rename so a crash never leaves a truncated id behind
	tmp, err := os.CreateTemp(s.dir, IdentityStorageKey+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.WriteString(string(id)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cart id: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store cart id: %w", err)
	}

	s.log.Debug("Cart id stored", map[string]interface{}{
		"path":    s.path(),
		"cart_id": string(id),
	})
	return nil
}

// MemoryIdentityStore is a process-local store
type MemoryIdentityStore struct {
	mu sync.Mutex
	id CartIdentifier
}

func NewMemoryIdentityStore(initial CartIdentifier) *MemoryIdentityStore {
	return &MemoryIdentityStore{id: initial}
}

func (s *MemoryIdentityStore) Load(ctx context.Context) (CartIdentifier, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.id != ""
}

func (s *MemoryIdentityStore) Save(ctx context.Context, id CartIdentifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	return nil
}
