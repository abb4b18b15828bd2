package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/karanch577/sneakerx-admin/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FlagKey names the persisted login flag
const FlagKey = "isLoggedIn"

// FlagStore persists the login flag across restarts, independently of the
// user record
type FlagStore interface {
	LoggedIn(ctx context.Context) (bool, error)
	SetLoggedIn(ctx context.Context, v bool) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the flag in memory
type MemoryStore struct {
	mu sync.Mutex
	v  bool
}

func (m *MemoryStore) LoggedIn(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v, nil
}

func (m *MemoryStore) SetLoggedIn(_ context.Context, v bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.v = v
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	return m.SetLoggedIn(ctx, false)
}

// FileStore keeps the flag in a small JSON document
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore stores the flag at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) LoggedIn(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read session file: %w", err)
	}
	doc := map[string]bool{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return false, fmt.Errorf("decode session file: %w", err)
	}
	return doc[FlagKey], nil
}

func (f *FileStore) SetLoggedIn(_ context.Context, v bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := json.Marshal(map[string]bool{FlagKey: v})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// LoginFlag is the row backing DBStore
type LoginFlag struct {
	Name     string `gorm:"primaryKey;size:64"`
	LoggedIn bool   `gorm:"not null"`
}

// TableName sets the table name for the LoginFlag model
func (LoginFlag) TableName() string {
	return "console_login_flags"
}

// DBStore keeps the flag in postgres through gorm, one row per key
type DBStore struct {
	db  *gorm.DB
	key string
}

// NewDBStore migrates the flag table and returns a store for key. An
// empty key uses FlagKey.
func NewDBStore(db *gorm.DB, key string) (*DBStore, error) {
	if key == "" {
		key = FlagKey
	}
	if err := database.MigrateModels(db, &LoginFlag{}); err != nil {
		return nil, err
	}
	return &DBStore{db: db, key: key}, nil
}

func (s *DBStore) LoggedIn(ctx context.Context) (bool, error) {
	var row LoginFlag
	err := s.db.WithContext(ctx).Where("name = ?", s.key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return row.LoggedIn, nil
}

func (s *DBStore) SetLoggedIn(ctx context.Context, v bool) error {
	row := LoginFlag{Name: s.key, LoggedIn: v}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"logged_in"}),
	}).Create(&row).Error
}

func (s *DBStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("name = ?", s.key).Delete(&LoginFlag{}).Error
}
