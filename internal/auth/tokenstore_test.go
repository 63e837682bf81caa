package auth

import (
	"errors"
	"strconv"
	"testing"
	"time"
)

type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Get(key string) (string, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m *memStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memStore) Delete(key string) error {
	delete(m.values, key)
	return nil
}

func TestTokenStoreSetAndGet(t *testing.T) {
	tokens := NewTokenStore(newMemStore())

	if err := tokens.Set("ghp_test123"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	token, ok := tokens.Get()
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if token != "ghp_test123" {
		t.Errorf("Get() = %q, want %q", token, "ghp_test123")
	}
}

type failingStore struct {
	*memStore
	failKey string
}

func (f *failingStore) Set(key, value string) error {
	if key == f.failKey {
		return errDiskFull
	}
	return f.memStore.Set(key, value)
}

var errDiskFull = errors.New("disk full")

func TestTokenStoreSetTokenWriteFailureRestoresTimestamp(t *testing.T) {
	store := &failingStore{memStore: newMemStore(), failKey: keyToken}
	tokens := NewTokenStore(store)

	if err := tokens.Set("ghp_doomed"); !errors.Is(err, errDiskFull) {
		t.Fatalf("Set() error = %v, want %v", err, errDiskFull)
	}

	if _, ok := tokens.Get(); ok {
		t.Error("Get() ok = true after failed Set, want false")
	}
	if _, ok := tokens.AgeMinutes(); ok {
		t.Error("AgeMinutes() ok = true with no stored token")
	}
}

func TestTokenStoreSetTokenWriteFailureKeepsPreviousTimestamp(t *testing.T) {
	store := newMemStore()
	tokens := NewTokenStore(store)
	if err := tokens.Set("ghp_original"); err != nil {
		t.Fatalf("seeding Set() error = %v", err)
	}
	prevStamp := store.values[keyTimestamp]

	failing := &failingStore{memStore: store, failKey: keyToken}
	broken := NewTokenStore(failing)

	if err := broken.Set("ghp_replacement"); !errors.Is(err, errDiskFull) {
		t.Fatalf("Set() error = %v, want %v", err, errDiskFull)
	}

	token, ok := broken.Get()
	if !ok || token != "ghp_original" {
		t.Errorf("Get() = %q, %v, want previous token intact", token, ok)
	}
	if store.values[keyTimestamp] != prevStamp {
		t.Errorf("timestamp = %q, want previous %q restored", store.values[keyTimestamp], prevStamp)
	}
}

func TestTokenStoreSetEmptyIsNoop(t *testing.T) {
	store := newMemStore()
	tokens := NewTokenStore(store)

	if err := tokens.Set(""); err != nil {
		t.Fatalf("Set(\"\") error = %v", err)
	}

	if _, ok := tokens.Get(); ok {
		t.Error("Get() ok = true after empty Set, want false")
	}
	if _, ok := store.values[keyTimestamp]; ok {
		t.Error("empty Set recorded a timestamp")
	}
}

func TestTokenStoreClear(t *testing.T) {
	store := newMemStore()
	tokens := NewTokenStore(store)

	if err := tokens.Set("ghp_test123"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	store.values[keyOAuthState] = "pending-state"

	if err := tokens.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if _, ok := tokens.Get(); ok {
		t.Error("Get() ok = true after Clear, want false")
	}
	if _, ok := tokens.AgeMinutes(); ok {
		t.Error("AgeMinutes() ok = true after Clear, want false")
	}
	if _, ok := store.values[keyOAuthState]; ok {
		t.Error("Clear() left the pending OAuth state behind")
	}
}

func TestTokenStoreAgeMinutes(t *testing.T) {
	store := newMemStore()
	tokens := NewTokenStore(store)

	if _, ok := tokens.AgeMinutes(); ok {
		t.Error("AgeMinutes() ok = true before any Set, want false")
	}

	issued := time.Now().Add(-42 * time.Minute).UnixMilli()
	store.values[keyTimestamp] = strconv.FormatInt(issued, 10)

	age, ok := tokens.AgeMinutes()
	if !ok {
		t.Fatal("AgeMinutes() ok = false, want true")
	}
	if age != 42 {
		t.Errorf("AgeMinutes() = %d, want 42", age)
	}
}

func TestTokenStoreAgeMinutesBadTimestamp(t *testing.T) {
	store := newMemStore()
	tokens := NewTokenStore(store)

	store.values[keyTimestamp] = "not-a-number"
	if _, ok := tokens.AgeMinutes(); ok {
		t.Error("AgeMinutes() ok = true for corrupt timestamp, want false")
	}
}
