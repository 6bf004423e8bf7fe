package stores

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/zeebo/blake3"

	"gratia-output/internal/models"
	"gratia-output/internal/shared/codecs"
	"gratia-output/internal/shared/filestorages"
)

const outboxExt = ".cbor"

var (
	ErrOutboxRecordAlreadyExist = errors.New("outbox record already exists")
	ErrOutboxRecordNotFound     = errors.New("outbox record not found")
)

// recordDomainKey is the ASCII domain name zero-padded to the 32 bytes BLAKE3 keyed mode needs.
var recordDomainKey = func() (key [32]byte) {
	copy(key[:], "gratia-output.outbox.record")
	return key
}()

// OutboxStore keeps submitted usage records on disk until their bundle is accepted by the
// collector. Put is create-if-absent: storing a record that is already outstanding for the
// same probe returns ErrOutboxRecordAlreadyExist together with its id.
//
// Layout: outbox/<probe>/<record id>.cbor
//
//go:generate mockgen -source=outbox_store.go -destination=./mocks/outbox_store_mock.go -package=mocks
type OutboxStore interface {
	Put(ctx context.Context, probe string, record *models.UsageRecord) (string, error)
	// List returns the outstanding records of probe ordered by id.
	List(ctx context.Context, probe string) ([]*models.OutboxRecord, error)
	Delete(ctx context.Context, probe string, id string) error
}

type outboxStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewOutboxStore(fileStorage filestorages.FileStorage) OutboxStore {
	return &outboxStore{fileStorage: fileStorage, dir: "outbox"}
}

// RecordID returns the hex keyed BLAKE3 digest of the record's deterministic CBOR encoding.
func RecordID(record *models.UsageRecord) (string, error) {
	data, err := codecs.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal usage record: %w", err)
	}
	return recordIDFromBytes(data), nil
}

func recordIDFromBytes(data []byte) string {
	hasher, err := blake3.NewKeyed(recordDomainKey[:])
	if err != nil {
		panic("stores: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

func (s *outboxStore) Put(ctx context.Context, probe string, record *models.UsageRecord) (string, error) {
	data, err := codecs.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal usage record: %w", err)
	}
	id := recordIDFromBytes(data)

	_, err = s.fileStorage.Put(ctx, s.key(probe, id), bytes.NewReader(data), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return id, ErrOutboxRecordAlreadyExist
		}
		return "", fmt.Errorf("failed to put outbox record: %w", err)
	}
	return id, nil
}

func (s *outboxStore) List(ctx context.Context, probe string) ([]*models.OutboxRecord, error) {
	keys, err := s.fileStorage.List(ctx, s.probeDir(probe))
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox records: %w", err)
	}

	outstanding := make([]*models.OutboxRecord, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, outboxExt) {
			continue
		}
		record, err := s.read(ctx, key)
		if err != nil {
			return nil, err
		}
		outstanding = append(outstanding, &models.OutboxRecord{
			ID:     strings.TrimSuffix(path.Base(key), outboxExt),
			Record: record,
		})
	}
	return outstanding, nil
}

func (s *outboxStore) Delete(ctx context.Context, probe string, id string) error {
	err := s.fileStorage.Delete(ctx, s.key(probe, id))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return ErrOutboxRecordNotFound
		}
		return fmt.Errorf("failed to delete outbox record: %w", err)
	}
	return nil
}

func (s *outboxStore) read(ctx context.Context, key string) (*models.UsageRecord, error) {
	rc, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to open outbox record %s: %w", key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read outbox record %s: %w", key, err)
	}

	var record models.UsageRecord
	if err := codecs.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outbox record %s: %w", key, err)
	}
	return &record, nil
}

func (s *outboxStore) probeDir(probe string) string {
	return fmt.Sprintf("%s/%s", s.dir, strings.ReplaceAll(probe, "/", "_"))
}

func (s *outboxStore) key(probe, id string) string {
	return fmt.Sprintf("%s/%s%s", s.probeDir(probe), id, outboxExt)
}
