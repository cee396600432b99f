/*
 * store.go, part of atomstruct.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package sessionstore keeps structure sessions in a badger database. Each
// session is the flat session data of a structure, gob-encoded and zstd
// compressed, stored under its own UUID next to a small metadata record.
package sessionstore

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/rmera/atomstruct"
	"github.com/rmera/atomstruct/config"
)

const (
	sessionPrefix = "session/"
	metaPrefix    = "meta/"
)

// ErrNotFound is returned for session IDs not in the store.
var ErrNotFound = errors.New("sessionstore: session not found")

// Meta describes a stored session.
type Meta struct {
	ID       uuid.UUID
	Name     string
	Version  int
	Atoms    int
	Residues int
	Bytes    int //compressed size
	SavedAt  time.Time
}

// record is what gets compressed under the session key.
type record struct {
	Version int
	Name    string
	Data    atomstruct.SessionData
}

// badgerLogger sends badger's messages to slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Store is a session store. It is safe for concurrent use.
type Store struct {
	db     *badger.DB
	enc    *zstd.Encoder
	dec    *zstd.Decoder
	logger *slog.Logger
}

// Open opens (or creates) the store described by cfg. A nil logger disables
// badger's own logging and uses slog.Default for the store's messages.
func Open(cfg config.Store, logger *slog.Logger) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("sessionstore: a path is required for a persistent store")
	}
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, errors.Wrapf(err, "sessionstore: creating %s", cfg.Path)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger})
	} else {
		opts = opts.WithLogger(nil)
		logger = slog.Default()
	}
	level := zstd.EncoderLevel(cfg.CompressionLevel)
	if level < zstd.SpeedFastest || level > zstd.SpeedBestCompression {
		level = zstd.SpeedDefault
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, errors.Wrap(err, "sessionstore: zstd encoder")
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, errors.Wrap(err, "sessionstore: zstd decoder")
	}
	db, err := badger.Open(opts)
	if err != nil {
		enc.Close()
		dec.Close()
		return nil, errors.Wrap(err, "sessionstore: opening badger database")
	}
	return &Store{db: db, enc: enc, dec: dec, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.dec.Close()
	if err := s.enc.Close(); err != nil {
		s.logger.Warn("closing zstd encoder", "err", err)
	}
	return errors.Wrap(s.db.Close(), "sessionstore: closing database")
}

func sessionKey(id uuid.UUID) []byte { return []byte(sessionPrefix + id.String()) }
func metaKey(id uuid.UUID) []byte    { return []byte(metaPrefix + id.String()) }

func encodeGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save stores a session of S under a new ID and returns it.
func (s *Store) Save(ctx context.Context, S *atomstruct.Structure) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	rec := record{Name: S.Name()}
	version, err := S.SessionInfo(&rec.Data)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "sessionstore: saving %s", S.Name())
	}
	rec.Version = version
	raw, err := encodeGob(&rec)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "sessionstore: gob encode")
	}
	blob := s.enc.EncodeAll(raw, nil)
	id := uuid.New()
	meta := Meta{
		ID:       id,
		Name:     S.Name(),
		Version:  version,
		Atoms:    S.NumAtoms(),
		Residues: S.NumResidues(),
		Bytes:    len(blob),
		SavedAt:  time.Now().UTC(),
	}
	mraw, err := encodeGob(&meta)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "sessionstore: gob encode")
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(sessionKey(id), blob); err != nil {
			return err
		}
		return txn.Set(metaKey(id), mraw)
	})
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "sessionstore: writing session %s", id)
	}
	s.logger.Debug("session saved", "id", id, "structure", S.Name(), "raw", len(raw), "compressed", len(blob))
	return id, nil
}

func (s *Store) get(txn *badger.Txn, key []byte, id uuid.UUID) ([]byte, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

// Load rebuilds the structure stored under id. opts configure the new
// structure (logger, tracker, metrics...).
func (s *Store) Load(ctx context.Context, id uuid.UUID, opts ...atomstruct.Option) (*atomstruct.Structure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		blob, err = s.get(txn, sessionKey(id), id)
		return err
	})
	if err != nil {
		return nil, errors.WithMessage(err, "sessionstore: loading")
	}
	raw, err := s.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "sessionstore: decompressing session %s", id)
	}
	var rec record
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
		return nil, errors.Wrapf(err, "sessionstore: decoding session %s", id)
	}
	S, err := atomstruct.RestoreSession(rec.Version, &rec.Data, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "sessionstore: restoring session %s", id)
	}
	return S, nil
}

// Meta returns the metadata of the session under id.
func (s *Store) Meta(ctx context.Context, id uuid.UUID) (Meta, error) {
	var m Meta
	if err := ctx.Err(); err != nil {
		return m, err
	}
	err := s.db.View(func(txn *badger.Txn) error {
		raw, err := s.get(txn, metaKey(id), id)
		if err != nil {
			return err
		}
		return gob.NewDecoder(bytes.NewReader(raw)).Decode(&m)
	})
	return m, errors.WithMessage(err, "sessionstore: reading metadata")
}

// List returns the metadata of every stored session, oldest first.
func (s *Store) List(ctx context.Context) ([]Meta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var ret []Meta
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(metaPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var m Meta
			err := it.Item().Value(func(val []byte) error {
				return gob.NewDecoder(bytes.NewReader(val)).Decode(&m)
			})
			if err != nil {
				return errors.Wrapf(err, "decoding %s", it.Item().Key())
			}
			ret = append(ret, m)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithMessage(err, "sessionstore: listing")
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].SavedAt.Before(ret[j].SavedAt) })
	return ret, nil
}

// Delete removes the session under id.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(metaKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.Wrapf(ErrNotFound, "id %s", id)
			}
			return err
		}
		if err := txn.Delete(sessionKey(id)); err != nil {
			return err
		}
		return txn.Delete(metaKey(id))
	})
	if err != nil {
		return errors.WithMessage(err, "sessionstore: deleting")
	}
	s.logger.Debug("session deleted", "id", id)
	return nil
}
