package storage_test

import (
	"testing"

	"baudok-backend/internal/models"
	"baudok-backend/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := storage.NewMemoryStore()
	id := uuid.New().String()

	assert.NoError(t, store.Put(id, []byte("jpeg-bytes"), "image/jpeg"))

	data, err := store.Get(id)
	assert.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)

	assert.NoError(t, store.Delete(id))

	_, err = store.Get(id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := storage.NewMemoryStore()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryStore_PutCopiesData(t *testing.T) {
	store := storage.NewMemoryStore()

	buf := []byte("original")
	assert.NoError(t, store.Put("id", buf, "image/jpeg"))
	buf[0] = 'X'

	data, err := store.Get("id")
	assert.NoError(t, err)
	assert.Equal(t, []byte("original"), data)
}
