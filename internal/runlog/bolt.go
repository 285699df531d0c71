package runlog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"
)

var runsBucket = []byte("runs")

// Bolt stores records msgpack-encoded in a bbolt database, keyed by a
// time-ordered UUID so iteration follows arrival order.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("run log: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run log: create bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

// Write stores rec. An empty rec.ID is replaced with a fresh one.
func (b *Bolt) Write(rec Record) error {
	id, err := recordKey(rec.ID)
	if err != nil {
		return err
	}
	rec.ID = id.String()

	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("run log: encode: %w", err)
	}
	key, err := id.MarshalBinary()
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).Put(key, data)
	})
}

// Records returns every stored record in key order.
func (b *Bolt) Records() ([]Record, error) {
	var out []Record
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(_, v []byte) error {
			var rec Record
			if err := msgpack.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("run log: decode: %w", err)
			}
			out = append(out, rec)
			return nil
		})
	})
	return out, err
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func recordKey(id string) (uuid.UUID, error) {
	if id == "" {
		return uuid.NewV7()
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("run log: bad record id %q: %w", id, err)
	}
	return u, nil
}
