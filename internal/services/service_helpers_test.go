package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/avelinec/wayfarer/internal/db"
)

// openTestKV builds a real sqlite-backed key/value repository in a temp dir.
func openTestKV(t *testing.T) *db.KVRepository {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "wayfarer-test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return db.NewKVRepository(database)
}

// fakeKV is an in-memory key/value store with injectable write failures.
type fakeKV struct {
	mu       sync.Mutex
	values   map[string]string
	failSets bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string)}
}

func (kv *fakeKV) Get(key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	value, found := kv.values[key]
	return value, found, nil
}

func (kv *fakeKV) Set(key string, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.failSets {
		return errors.New("injected write failure")
	}
	kv.values[key] = value
	return nil
}

func (kv *fakeKV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.values, key)
	return nil
}

// fakeReminders records scheduler traffic and lets tests force failures and
// control what counts as future.
type fakeReminders struct {
	nextHandle  int
	failNext    bool
	future      bool
	scheduled   []string
	cancelled   []string
	lastTitle   string
	lastDateISO string
	lastTime    string
}

func newFakeReminders() *fakeReminders {
	return &fakeReminders{future: true}
}

func (reminders *fakeReminders) Schedule(dateISO string, timeOfDay string, title string) (string, error) {
	if reminders.failNext {
		reminders.failNext = false
		return "", ErrPastInstant
	}
	reminders.nextHandle++
	handle := fmt.Sprintf("handle-%d", reminders.nextHandle)
	reminders.scheduled = append(reminders.scheduled, handle)
	reminders.lastDateISO = dateISO
	reminders.lastTime = timeOfDay
	reminders.lastTitle = title
	return handle, nil
}

func (reminders *fakeReminders) Cancel(handle string) {
	reminders.cancelled = append(reminders.cancelled, handle)
}

func (reminders *fakeReminders) StillFuture(dateISO string, timeOfDay string) bool {
	return reminders.future
}
