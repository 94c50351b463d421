package database

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studifund/studifund-api/internal/models"
)

// SessionStore persists login sessions in the relational database so that
// server restarts do not invalidate active sessions. It satisfies the
// fiber.Storage contract used by the session middleware.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore constructs a database-backed session storage.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Get returns the session payload for the key, or nil when absent or expired.
// Expired rows are removed lazily on access.
func (s *SessionStore) Get(key string) ([]byte, error) {
	var session models.Session
	if err := s.db.First(&session, "id = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	if !session.ExpiresAt.IsZero() && session.ExpiresAt.Before(time.Now()) {
		_ = s.db.Delete(&models.Session{}, "id = ?", key).Error
		return nil, nil
	}

	return session.Data, nil
}

// Set upserts the session payload under the key with the given lifetime.
func (s *SessionStore) Set(key string, val []byte, exp time.Duration) error {
	session := models.Session{ID: key, Data: val}
	if exp > 0 {
		session.ExpiresAt = time.Now().Add(exp)
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at", "updated_at"}),
	}).Create(&session).Error
}

// Delete removes the session row for the key.
func (s *SessionStore) Delete(key string) error {
	return s.db.Delete(&models.Session{}, "id = ?", key).Error
}

// Reset removes every stored session.
func (s *SessionStore) Reset() error {
	return s.db.Where("1 = 1").Delete(&models.Session{}).Error
}

// Close is a no-op; the shared database handle outlives the store.
func (s *SessionStore) Close() error {
	return nil
}
