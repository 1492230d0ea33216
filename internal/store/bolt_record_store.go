package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/models"
)

// bucketRecords holds one nested bucket per record type.
var bucketRecords = []byte("records")

// BoltRecordStore keeps the local copy of synchronized records in bbolt. Each
// call runs in its own transaction, so a cancelled cycle never leaves more
// than one record half-written.
type BoltRecordStore struct {
	db     *bbolt.DB
	logger *logger.Logger
}

// NewBoltRecordStore opens (creating if needed) the bbolt file at path.
func NewBoltRecordStore(path string, log *logger.Logger) (*BoltRecordStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize record buckets: %w", err)
	}

	return &BoltRecordStore{db: db, logger: log}, nil
}

func (s *BoltRecordStore) Close() error {
	return s.db.Close()
}

// FetchRecords returns all records of recordType in key order.
func (s *BoltRecordStore) FetchRecords(ctx context.Context, recordType string) ([]models.Record, error) {
	var records []models.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		typed := tx.Bucket(bucketRecords).Bucket([]byte(recordType))
		if typed == nil {
			return nil
		}
		return typed.ForEach(func(k, v []byte) error {
			var rec models.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("%w: %s/%s: %w", ErrCorruptedEntry, recordType, k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "BoltRecordStore.FetchRecords").
			Str("type", recordType).
			Msg("failed to read records")
		return nil, err
	}

	return records, nil
}

// ApplyChange writes change into the store. Creates and updates overlay the
// change's fields on the stored record; deletes remove it. Applying the same
// change twice leaves the same state as applying it once.
func (s *BoltRecordStore) ApplyChange(ctx context.Context, change models.SyncChange) error {
	if change.Action == models.ActionDelete {
		return s.DeleteRecord(ctx, change.RecordType, change.RecordID)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		typed, err := tx.Bucket(bucketRecords).CreateBucketIfNotExists([]byte(change.RecordType))
		if err != nil {
			return fmt.Errorf("failed to create %s bucket: %w", change.RecordType, err)
		}

		key := []byte(change.RecordID)
		rec := models.Record{ID: change.RecordID, Type: change.RecordType}
		if data := typed.Get(key); data != nil {
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrCorruptedEntry, change.Key(), err)
			}
		}

		rec.Fields = rec.Fields.Union(change.Fields)
		if change.Timestamp.After(rec.UpdatedAt) {
			rec.UpdatedAt = change.Timestamp
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", change.Key(), err)
		}
		return typed.Put(key, data)
	})
}

// DeleteRecord removes a record. Deleting a missing record is not an error.
func (s *BoltRecordStore) DeleteRecord(_ context.Context, recordType, recordID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		typed := tx.Bucket(bucketRecords).Bucket([]byte(recordType))
		if typed == nil {
			return nil
		}
		return typed.Delete([]byte(recordID))
	})
}

// Record returns a single record.
func (s *BoltRecordStore) Record(_ context.Context, recordType, recordID string) (models.Record, error) {
	var rec models.Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		typed := tx.Bucket(bucketRecords).Bucket([]byte(recordType))
		if typed == nil {
			return ErrRecordNotFound
		}
		data := typed.Get([]byte(recordID))
		if data == nil {
			return ErrRecordNotFound
		}
		return json.Unmarshal(data, &rec)
	})
	return rec, err
}
