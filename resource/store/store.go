// Package store is the resource pipeline's storage backend: an embedded
// key-value metadata table (buntdb) plus one payload file per resource on
// the filesystem, content-addressed by a fixed-seed xxhash digest.
// Grounded on the teacher's go.mod pairing of tidwall/buntdb with
// OneOfOne/xxhash and on the Rust original's storage_backend/mod.rs
// ReadStorageBackend/WriteStorageBackend split.
package store

import (
	"os"
	"path/filepath"

	"github.com/tidwall/buntdb"

	"github.com/byte-engine/engine/cmn/cos"
	"github.com/byte-engine/engine/cmn/nlog"
	"github.com/byte-engine/engine/resource"
)

// Backend is the single-node content-addressed store spec.md §4.B
// describes: one buntdb database for metadata, one payload file per
// resource under Root.
type Backend struct {
	db   *buntdb.DB
	Root string
}

// Open creates Root if needed and opens (or creates) the metadata
// database inside it.
func Open(root string) (*Backend, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, cos.ErrStorageError(err, "creating destination root %q", root)
	}
	dbPath := filepath.Join(root, "resources.db")
	db, err := buntdb.Open(dbPath)
	if err != nil {
		return nil, cos.ErrStorageError(err, "opening metadata store at %q", dbPath)
	}
	return &Backend{db: db, Root: root}, nil
}

func (b *Backend) Close() error { return b.db.Close() }

// Store writes the metadata record into buntdb and the raw payload into a
// sibling file named by the derived key, per spec.md §4.B/§6.2.
func (b *Backend) Store(pa *resource.ProcessedAsset) (*resource.SerializableResource, error) {
	hash := ContentHash(pa.Payload)
	key := DeriveKey(pa.ID.Full())

	rec := &resource.SerializableResource{
		ID:      pa.ID.Full(),
		Hash:    hash,
		Class:   pa.Class,
		Size:    uint64(len(pa.Payload)),
		Model:   pa.Model,
		Streams: pa.Streams,
	}
	data, err := cos.JSON.Marshal(rec)
	if err != nil {
		return nil, cos.ErrStorageError(err, "serializing metadata for %q", pa.ID)
	}

	payloadPath := filepath.Join(b.Root, key.String())
	if err := os.WriteFile(payloadPath, pa.Payload, 0o644); err != nil {
		return nil, cos.ErrStorageError(err, "writing payload for %q", pa.ID)
	}

	err = b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key.String(), string(data), nil)
		return err
	})
	if err != nil {
		return nil, cos.ErrStorageError(err, "committing metadata for %q", pa.ID)
	}
	nlog.Infof("stored %q (class=%s size=%d)", pa.ID, pa.Class, rec.Size)
	return rec, nil
}

// Read returns the deserialized metadata and a reader positioned at the
// payload's start.
func (b *Backend) Read(id resource.ID) (*resource.SerializableResource, *PayloadReader, error) {
	key := DeriveKey(id.Full())

	var data string
	err := b.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key.String())
		if err != nil {
			return err
		}
		data = v
		return nil
	})
	if err != nil {
		if err == buntdb.ErrNotFound {
			return nil, nil, cos.ErrNotFound("resource %q", id.Full())
		}
		return nil, nil, cos.ErrStorageError(err, "reading metadata for %q", id.Full())
	}

	var rec resource.SerializableResource
	if err := cos.JSON.Unmarshal([]byte(data), &rec); err != nil {
		return nil, nil, cos.ErrDeserializationFailed(err, "decoding metadata for %q", id.Full())
	}

	payloadPath := filepath.Join(b.Root, key.String())
	f, err := os.Open(payloadPath)
	if err != nil {
		return nil, nil, cos.ErrStorageError(err, "opening payload for %q", id.Full())
	}
	return &rec, &PayloadReader{f: f, streams: rec.Streams}, nil
}

// Delete removes both the metadata record and the payload file, if
// present. Deleting an id that does not exist is not an error.
func (b *Backend) Delete(id resource.ID) error {
	key := DeriveKey(id.Full())
	err := b.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key.String())
		if err == buntdb.ErrNotFound {
			return nil
		}
		return err
	})
	if err != nil {
		return cos.ErrStorageError(err, "deleting metadata for %q", id.Full())
	}
	_ = os.Remove(filepath.Join(b.Root, key.String()))
	return nil
}

// List returns every resource id currently stored.
func (b *Backend) List() ([]string, error) {
	var ids []string
	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend("", func(_, v string) bool {
			var rec resource.SerializableResource
			if jerr := cos.JSON.Unmarshal([]byte(v), &rec); jerr == nil {
				ids = append(ids, rec.ID)
			}
			return true
		})
	})
	if err != nil {
		return nil, cos.ErrStorageError(err, "listing resources")
	}
	return ids, nil
}

// Query scans the metadata store for records whose class tag matches q.
func (b *Backend) Query(q *Query) ([]resource.SerializableResource, error) {
	var out []resource.SerializableResource
	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend("", func(_, v string) bool {
			var rec resource.SerializableResource
			if jerr := cos.JSON.Unmarshal([]byte(v), &rec); jerr == nil && q.matches(rec.Class) {
				out = append(out, rec)
			}
			return true
		})
	})
	if err != nil {
		return nil, cos.ErrStorageError(err, "querying resources")
	}
	return out, nil
}

// Wipe deletes every resource's metadata and payload.
func (b *Backend) Wipe() error {
	ids, err := b.List()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := b.Delete(resource.ID(id)); err != nil {
			return err
		}
	}
	return nil
}
