// Package gendb provides the generation database: persistent tracking of
// generation runs and CRC-based snapshot change detection, backed by
// bbolt.
package gendb

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names for the bbolt database
const (
	BucketRuns      = "runs"
	BucketSnapshots = "snapshots"
)

// Run status values
const (
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// DB wraps a bbolt database for run tracking and snapshot CRC indexing
type DB struct {
	db   *bolt.DB
	path string
}

// RunRecord represents a single generation run.
type RunRecord struct {
	UUID         string    `json:"uuid"`
	SnapshotPath string    `json:"snapshot_path"`
	SnapshotCRC  uint32    `json:"snapshot_crc"`
	Status       string    `json:"status"` // "running" | "success" | "failed"
	Packages     int       `json:"packages"`
	Files        int       `json:"files"`
	BytesWritten int64     `json:"bytes_written"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
}

// Open opens or creates the generation database at path and initializes
// the required buckets.
func Open(path string) (*DB, error) {
	bdb, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}

	err = bdb.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketRuns)); err != nil {
			return &DatabaseError{Op: "create bucket", Bucket: BucketRuns, Err: err}
		}
		// snapshots: snapshot path -> binary uint32 CRC of the last
		// successfully generated snapshot content
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketSnapshots)); err != nil {
			return &DatabaseError{Op: "create bucket", Bucket: BucketSnapshots, Err: err}
		}
		return nil
	})
	if err != nil {
		bdb.Close()
		return nil, err
	}

	return &DB{db: bdb, path: path}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	if db.db == nil {
		return ErrDatabaseClosed
	}
	err := db.db.Close()
	db.db = nil
	return err
}

// StartRun records a new running generation.
func (db *DB) StartRun(rec *RunRecord) error {
	if rec.UUID == "" {
		return &ValidationError{Field: "uuid", Err: ErrEmptyUUID}
	}
	rec.Status = RunStatusRunning
	return db.saveRun(rec)
}

// FinishRun marks the run done and stores its final counters.
func (db *DB) FinishRun(rec *RunRecord, status string, endTime time.Time) error {
	rec.Status = status
	rec.EndTime = endTime
	return db.saveRun(rec)
}

func (db *DB) saveRun(rec *RunRecord) error {
	if db.db == nil {
		return ErrDatabaseNotOpen
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return &DatabaseError{Op: "marshal run", Err: err}
	}

	return db.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketRuns))
		if bucket == nil {
			return ErrBucketNotFound
		}
		return bucket.Put([]byte(rec.UUID), data)
	})
}

// GetRun fetches a run record by its UUID.
func (db *DB) GetRun(uuid string) (*RunRecord, error) {
	if db.db == nil {
		return nil, ErrDatabaseNotOpen
	}
	if uuid == "" {
		return nil, &ValidationError{Field: "uuid", Err: ErrEmptyUUID}
	}

	var rec RunRecord
	err := db.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketRuns))
		if bucket == nil {
			return ErrBucketNotFound
		}
		data := bucket.Get([]byte(uuid))
		if data == nil {
			return ErrRecordNotFound
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptedData, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRuns returns every stored run record, unordered.
func (db *DB) ListRuns() ([]*RunRecord, error) {
	if db.db == nil {
		return nil, ErrDatabaseNotOpen
	}

	var runs []*RunRecord
	err := db.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketRuns))
		if bucket == nil {
			return ErrBucketNotFound
		}
		return bucket.ForEach(func(k, v []byte) error {
			var rec RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("%w: %v", ErrCorruptedData, err)
			}
			runs = append(runs, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// SnapshotCRC computes the CRC32 (IEEE) of the snapshot file content.
func SnapshotCRC(path string) (uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return crc32.ChecksumIEEE(data), nil
}

// NeedsGeneration reports whether the snapshot content differs from the
// CRC recorded at the last successful generation.
func (db *DB) NeedsGeneration(snapshotPath string, crc uint32) (bool, error) {
	if db.db == nil {
		return false, ErrDatabaseNotOpen
	}

	needs := true
	err := db.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketSnapshots))
		if bucket == nil {
			return ErrBucketNotFound
		}
		data := bucket.Get([]byte(snapshotPath))
		if len(data) == 4 && binary.BigEndian.Uint32(data) == crc {
			needs = false
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return needs, nil
}

// RecordGeneration stores the CRC of a successfully generated snapshot.
func (db *DB) RecordGeneration(snapshotPath string, crc uint32) error {
	if db.db == nil {
		return ErrDatabaseNotOpen
	}

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], crc)

	return db.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketSnapshots))
		if bucket == nil {
			return ErrBucketNotFound
		}
		return bucket.Put([]byte(snapshotPath), buf[:])
	})
}
