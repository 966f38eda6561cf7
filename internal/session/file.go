package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps the session in a small cookie-jar file. Each entry carries
// its own expiry; an expired or missing entry makes the whole session absent.
type FileStore struct {
	path string
	ttl  time.Duration
	now  func() time.Time
	mu   sync.Mutex
}

type jarEntry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewFileStore(path string, ttl time.Duration) *FileStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileStore{
		path: path,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(ctx context.Context) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	jar, err := f.read()
	if err != nil {
		return nil, err
	}
	if jar == nil {
		return nil, nil
	}

	now := f.now()
	token, ok := jar[TokenKey]
	if !ok || token.Value == "" || !now.Before(token.ExpiresAt) {
		if err := f.remove(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	userRaw := ""
	if entry, ok := jar[UserKey]; ok && now.Before(entry.ExpiresAt) {
		userRaw = entry.Value
	}

	return decodeUser(token.Value, userRaw), nil
}

func (f *FileStore) Set(ctx context.Context, s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	userRaw, err := encodeUser(s)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	expires := f.now().Add(f.ttl)
	jar := map[string]jarEntry{
		TokenKey: {Value: s.Token, ExpiresAt: expires},
		UserKey:  {Value: userRaw, ExpiresAt: expires},
	}

	data, err := json.MarshalIndent(jar, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remove()
}

func (f *FileStore) read() (map[string]jarEntry, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var jar map[string]jarEntry
	if err := json.Unmarshal(data, &jar); err != nil {
		// A corrupt jar is treated like no session at all.
		return nil, f.remove()
	}
	return jar, nil
}

func (f *FileStore) remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
