package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studifund/studifund-api/internal/database"
	"github.com/studifund/studifund-api/internal/models"
)

func newSessionStore(t *testing.T) *database.SessionStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:sessionstore?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Session{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return database.NewSessionStore(db)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := newSessionStore(t)

	require.NoError(t, store.Set("abc", []byte("payload"), time.Hour))

	data, err := store.Get("abc")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)

	require.NoError(t, store.Set("abc", []byte("updated"), time.Hour))
	data, err = store.Get("abc")
	require.NoError(t, err)
	require.Equal(t, []byte("updated"), data, "setting an existing key overwrites it")
}

func TestSessionStoreMissingKey(t *testing.T) {
	store := newSessionStore(t)

	data, err := store.Get("missing")
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestSessionStoreExpiry(t *testing.T) {
	store := newSessionStore(t)

	require.NoError(t, store.Set("stale", []byte("old"), -time.Minute))

	data, err := store.Get("stale")
	require.NoError(t, err)
	require.Nil(t, data, "expired sessions read as absent")

	data, err = store.Get("stale")
	require.NoError(t, err)
	require.Nil(t, data, "expired row was removed")
}

func TestSessionStoreDeleteAndReset(t *testing.T) {
	store := newSessionStore(t)

	require.NoError(t, store.Set("one", []byte("1"), time.Hour))
	require.NoError(t, store.Set("two", []byte("2"), time.Hour))

	require.NoError(t, store.Delete("one"))
	data, err := store.Get("one")
	require.NoError(t, err)
	require.Nil(t, data)

	require.NoError(t, store.Reset())
	data, err = store.Get("two")
	require.NoError(t, err)
	require.Nil(t, data)
}
