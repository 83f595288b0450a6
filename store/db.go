package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"path/filepath"
	"sync"

	"passkey-server/auth"

	"github.com/akrylysov/pogreb"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Store backs the three ceremony namespaces with separate pogreb databases:
// users (username -> identity handle), credentials (handle -> credential set)
// and challenges (handle -> pending session).
type Store struct {
	users       *pogreb.DB
	credentials *pogreb.DB
	challenges  *pogreb.DB
	locks       cmap.ConcurrentMap[string, *sync.Mutex]
}

func Open(dir string) (*Store, error) {
	users, err := pogreb.Open(filepath.Join(dir, "users.db"), nil)
	if err != nil {
		return nil, fmt.Errorf("opening users.db: %w", err)
	}

	credentials, err := pogreb.Open(filepath.Join(dir, "credentials.db"), nil)
	if err != nil {
		users.Close()
		return nil, fmt.Errorf("opening credentials.db: %w", err)
	}

	challenges, err := pogreb.Open(filepath.Join(dir, "challenges.db"), nil)
	if err != nil {
		users.Close()
		credentials.Close()
		return nil, fmt.Errorf("opening challenges.db: %w", err)
	}

	return &Store{
		users:       users,
		credentials: credentials,
		challenges:  challenges,
		locks:       cmap.New[*sync.Mutex](),
	}, nil
}

func (s *Store) Close() {
	s.users.Close()
	s.credentials.Close()
	s.challenges.Close()
}

// lock returns the mutex for key, creating it on first use. Pogreb has no
// transactions, so read-modify-write sequences and take-by-delete are
// serialized per key within the process.
func (s *Store) lock(key string) *sync.Mutex {
	s.locks.SetIfAbsent(key, &sync.Mutex{})
	mu, _ := s.locks.Get(key)
	return mu
}

func marshalBinary(v any) ([]byte, error) {
	var b bytes.Buffer
	enc := gob.NewEncoder(&b)
	err := enc.Encode(v)
	return b.Bytes(), err
}

func unmarshalBinary(buf []byte, pointer any) error {
	b := bytes.NewBuffer(buf)
	dec := gob.NewDecoder(b)
	return dec.Decode(pointer)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", auth.ErrStoreUnavailable, op, err)
}
