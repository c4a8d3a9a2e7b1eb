package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"tendermatch/internal/domain"
)

var (
	bucketTenders = []byte("tenders")
	bucketVectors = []byte("vectors")
)

// BoltStore persists the ordered tender collection and its embedding
// vectors in one BoltDB file. Tender at ordinal i and vector at ordinal i
// are always written in the same transaction, so the index/store alignment
// invariant is crash-consistent.
type BoltStore struct {
	db *bbolt.DB
}

type storedTender struct {
	Tender domain.Tender `json:"tender"`
}

type storedVector struct {
	V []float32 `json:"v"`
}

// Open opens or creates the store at path.
func Open(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketTenders, bucketVectors} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// AppendBatch appends tenders and their embeddings at the next ordinals.
// The whole batch is one transaction: either every tender/vector pair lands
// or none do.
func (s *BoltStore) AppendBatch(tenders []domain.Tender) error {
	if len(tenders) == 0 {
		return nil
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTenders)
		vb := tx.Bucket(bucketVectors)

		next := uint64(0)
		if k, _ := tb.Cursor().Last(); k != nil {
			next = ordinalOf(k) + 1
		}
		for i, tender := range tenders {
			key := ordinalKey(next + uint64(i))

			tdata, err := json.Marshal(storedTender{Tender: tender})
			if err != nil {
				return fmt.Errorf("marshal tender %s: %w", tender.ID, err)
			}
			if err := tb.Put(key, tdata); err != nil {
				return err
			}

			vdata, err := json.Marshal(storedVector{V: tender.Embedding})
			if err != nil {
				return fmt.Errorf("marshal vector for %s: %w", tender.ID, err)
			}
			if err := vb.Put(key, vdata); err != nil {
				return err
			}
		}
		return nil
	})
}

// All returns every stored tender in append order, with embeddings attached.
func (s *BoltStore) All() ([]domain.Tender, error) {
	var tenders []domain.Tender
	err := s.db.View(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTenders)
		vb := tx.Bucket(bucketVectors)

		return tb.ForEach(func(k, v []byte) error {
			var st storedTender
			if err := json.Unmarshal(v, &st); err != nil {
				return fmt.Errorf("corrupt tender record at ordinal %d: %w", ordinalOf(k), err)
			}

			if vdata := vb.Get(k); vdata != nil {
				var sv storedVector
				if err := json.Unmarshal(vdata, &sv); err != nil {
					return fmt.Errorf("corrupt vector record at ordinal %d: %w", ordinalOf(k), err)
				}
				st.Tender.Embedding = sv.V
			}

			tenders = append(tenders, st.Tender)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return tenders, nil
}

// Vectors returns all embedding vectors in append order.
func (s *BoltStore) Vectors() ([][]float32, error) {
	var vectors [][]float32
	err := s.db.View(func(tx *bbolt.Tx) error {
		vb := tx.Bucket(bucketVectors)
		return vb.ForEach(func(k, v []byte) error {
			var sv storedVector
			if err := json.Unmarshal(v, &sv); err != nil {
				return fmt.Errorf("corrupt vector record at ordinal %d: %w", ordinalOf(k), err)
			}
			vectors = append(vectors, sv.V)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return vectors, nil
}

// Count returns the number of stored tenders.
func (s *BoltStore) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketTenders).Stats().KeyN
		return nil
	})
	return n, err
}

// Reset drops all stored tenders and vectors. Used when a load finds
// corrupt records and the caller degrades to an empty dataset.
func (s *BoltStore) Reset() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketTenders, bucketVectors} {
			if err := tx.DeleteBucket(b); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(b); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// ordinalKey encodes an ordinal as a big-endian key so bucket iteration
// yields append order.
func ordinalKey(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}

func ordinalOf(key []byte) uint64 {
	if len(key) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(key)
}
