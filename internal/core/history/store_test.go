package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/neilberkman/kapro/internal/core/db"
	"github.com/neilberkman/kapro/internal/core/document"
	"github.com/neilberkman/kapro/internal/core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSlot struct {
	values  map[string]string
	putErr  error
	deletes int
}

func newMemSlot() *memSlot { return &memSlot{values: map[string]string{}} }

func (m *memSlot) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memSlot) Put(key, value string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.values[key] = value
	return nil
}

func (m *memSlot) Delete(key string) error {
	m.deletes++
	delete(m.values, key)
	return nil
}

func sampleDoc(t *testing.T) *models.Document {
	t.Helper()
	raw, err := os.ReadFile("../document/testdata/sample.json")
	require.NoError(t, err)
	doc, err := document.Parse(string(raw))
	require.NoError(t, err)
	return doc
}

func TestLoad_MissingSlot(t *testing.T) {
	slot := newMemSlot()
	sessions := New(slot).Load()
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
	assert.Equal(t, 0, slot.deletes)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	slot := newMemSlot()
	store := New(slot)
	doc := sampleDoc(t)

	a := store.Create(doc)
	b := store.Create(doc)
	require.NoError(t, store.Save([]models.Session{b, a}))

	loaded := store.Load()
	require.Len(t, loaded, 2)
	assert.Equal(t, b.ID, loaded[0].ID)
	assert.Equal(t, a.ID, loaded[1].ID)
	assert.Equal(t, *doc, loaded[0].Data)
	assert.Equal(t, "v2 Launch", loaded[0].Title)
}

func TestSave_Idempotent(t *testing.T) {
	slot := newMemSlot()
	store := New(slot)
	sessions := []models.Session{store.Create(sampleDoc(t))}

	require.NoError(t, store.Save(sessions))
	first := slot.values[store.Key()]
	require.NoError(t, store.Save(sessions))
	assert.Equal(t, first, slot.values[store.Key()])

	require.NoError(t, store.Save(store.Load()))
	assert.Equal(t, first, slot.values[store.Key()])
}

func TestSave_EmptyWritesArray(t *testing.T) {
	slot := newMemSlot()
	store := New(slot)
	require.NoError(t, store.Save(nil))
	assert.Equal(t, "[]", slot.values[store.Key()])
	assert.Empty(t, store.Load())
}

func TestSave_PutFailure(t *testing.T) {
	slot := newMemSlot()
	slot.putErr = errors.New("disk full")
	err := New(slot).Save([]models.Session{})
	assert.ErrorIs(t, err, slot.putErr)
}

func TestCreate(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	n := 0
	store := New(newMemSlot(),
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)

	doc := sampleDoc(t)
	sess := store.Create(doc)
	assert.Equal(t, "id-1", sess.ID)
	assert.Equal(t, int64(1_700_000_000_000), sess.Timestamp)
	assert.Equal(t, doc.ThemeMap.Title, sess.Title)

	doc.ThemeMap.Title = "   "
	assert.Equal(t, models.DefaultTitle, store.Create(doc).Title)
}

func TestCreate_UniqueIDs(t *testing.T) {
	store := New(newMemSlot())
	doc := sampleDoc(t)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := store.Create(doc).ID
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestLoad_CorruptDiscarded(t *testing.T) {
	raw, err := os.ReadFile("../document/testdata/sample.json")
	require.NoError(t, err)
	data := string(raw)

	var withoutMove map[string]any
	require.NoError(t, json.Unmarshal(raw, &withoutMove))
	delete(withoutMove, "theOneMove")
	broken, err := json.Marshal(withoutMove)
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
	}{
		{"not json", "{{{"},
		{"object instead of array", `{"id":"a"}`},
		{"null", "null"},
		{"array of strings", `["a","b"]`},
		{"missing data", `[{"id":"a","timestamp":1,"title":"t"}]`},
		{"missing id", `[{"timestamp":1,"title":"t","data":` + data + `}]`},
		{"zero timestamp", `[{"id":"a","timestamp":0,"title":"t","data":` + data + `}]`},
		{"data missing required key", `[{"id":"a","timestamp":1,"title":"t","data":` + string(broken) + `}]`},
		{"duplicate ids", `[{"id":"a","timestamp":1,"title":"t","data":` + data + `},{"id":"a","timestamp":2,"title":"u","data":` + data + `}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := newMemSlot()
			store := New(slot)
			slot.values[store.Key()] = tt.value

			sessions := store.Load()
			assert.Empty(t, sessions)
			assert.Equal(t, 1, slot.deletes)
			_, ok := slot.values[store.Key()]
			assert.False(t, ok)
		})
	}
}

func TestDecode_CorruptionError(t *testing.T) {
	store := New(newMemSlot())
	_, err := store.decode("{{{")
	require.Error(t, err)
	assert.True(t, IsCorruption(err))

	var pErr *PersistenceCorruptionError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, store.Key(), pErr.Key)
}

func TestWithKey(t *testing.T) {
	slot := newMemSlot()
	store := New(slot, WithKey("other"))
	require.NoError(t, store.Save([]models.Session{}))
	_, ok := slot.values["other"]
	assert.True(t, ok)
}

func TestStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kapro.db")
	database, err := db.New(dbPath)
	require.NoError(t, err)

	store := New(database)
	sess := store.Create(sampleDoc(t))
	require.NoError(t, store.Save([]models.Session{sess}))
	require.NoError(t, database.Close())

	database, err = db.New(dbPath)
	require.NoError(t, err)
	defer database.Close()

	loaded := New(database).Load()
	require.Len(t, loaded, 1)
	assert.Equal(t, sess.ID, loaded[0].ID)
	assert.Equal(t, sess.Timestamp, loaded[0].Timestamp)
}
