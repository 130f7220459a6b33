package keystore

import (
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var (
	bktCredentials = []byte("credentials")

	accessKey  = []byte("access_token")
	refreshKey = []byte("refresh_token")
)

// BoltStore keeps the credential pair in a bbolt file, sealing each value
// with AES-GCM before it touches disk. It survives process restarts.
type BoltStore struct {
	db     *bolt.DB
	sealer *Sealer
}

// OpenBolt opens (or creates) the store file. The secret must be sourced
// from the platform's secure keychain; the file alone is useless without it.
func OpenBolt(path string, secret [32]byte) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open keystore")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bktCredentials)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init keystore bucket")
	}
	return &BoltStore{db: db, sealer: NewSealer(secret)}, nil
}

// Close releases the underlying file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Save overwrites both stored values. Empty fields delete their keys, so
// saving a pair with only the refresh token drops the access token.
func (s *BoltStore) Save(pair Pair) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bktCredentials)
		if err := s.put(bkt, accessKey, pair.Access); err != nil {
			return err
		}
		return s.put(bkt, refreshKey, pair.Refresh)
	})
}

func (s *BoltStore) put(bkt *bolt.Bucket, key []byte, value string) error {
	if value == "" {
		return bkt.Delete(key)
	}
	sealed, err := s.sealer.Seal(value)
	if err != nil {
		return err
	}
	return bkt.Put(key, sealed)
}

// Access returns the stored access token, or "" when absent.
func (s *BoltStore) Access() (string, error) {
	return s.get(accessKey)
}

// Refresh returns the stored refresh token, or "" when absent.
func (s *BoltStore) Refresh() (string, error) {
	return s.get(refreshKey)
}

func (s *BoltStore) get(key []byte) (string, error) {
	var sealed []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bktCredentials).Get(key)
		if raw != nil {
			sealed = append([]byte(nil), raw...)
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "read keystore")
	}
	if sealed == nil {
		return "", nil
	}
	return s.sealer.Open(sealed)
}

// Clear removes both tokens. Clearing an empty store is a no-op.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bktCredentials)
		if err := bkt.Delete(accessKey); err != nil {
			return err
		}
		return bkt.Delete(refreshKey)
	})
}
