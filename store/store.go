/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package store persists encoded predicates by name.

Each predicate is stored in its own file. The first byte of a file selects
the payload format: raw JSON or a zstd compressed JSON document. Decoded
trees are kept in a cache; trees are immutable so a cached tree can be
handed out to any number of callers.
*/
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"devt.de/krotik/common/datautil"
	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/logutil"
	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/predicate/config"
	"devt.de/krotik/predicate/expr"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/klauspost/compress/zstd"
)

/*
Payload format markers
*/
const (
	FormatRaw  byte = 'j'
	FormatZstd byte = 'z'
)

/*
FileSuffix is the suffix of all predicate files
*/
const FileSuffix = ".pred"

var logger = logutil.GetLogger("predicate.store")

/*
Store related error types
*/
var (
	ErrInvalidName   = errors.New("Invalid predicate name")
	ErrNotFound      = errors.New("Predicate not found")
	ErrInvalidFormat = errors.New("Invalid predicate file format")
	ErrAccess        = errors.New("Could not access predicate file")
)

/*
StoreError is a store related error.
*/
type StoreError struct {
	Type   error  // Error type (to be used for equal checks)
	Name   string // Name of the predicate
	Detail string // Details of this error
}

/*
Error returns a human-readable string representation of this error.
*/
func (se *StoreError) Error() string {
	if se.Detail != "" {
		return fmt.Sprintf("Predicate store error for %v: %v (%v)", se.Name, se.Type, se.Detail)
	}
	return fmt.Sprintf("Predicate store error for %v: %v", se.Name, se.Type)
}

/*
Unwrap returns the error type.
*/
func (se *StoreError) Unwrap() error {
	return se.Type
}

/*
cacheEntry is a loaded predicate. The tree is nil if the predicate could
not be decoded through the registry.
*/
type cacheEntry struct {
	data []byte
	tree interface{}
}

/*
Store stores predicates in a filesystem.
*/
type Store struct {
	fs       billy.Filesystem // Filesystem holding the predicate files
	registry *expr.Registry   // Registry used for decoding
	compress bool             // Flag if new predicates are compressed
	encoder  *zstd.Encoder    // Compressor for payloads
	decoder  *zstd.Decoder    // Decompressor for payloads
	cache    *datautil.MapCache
	lock     *sync.RWMutex
}

/*
NewStore creates a new store on top of a given filesystem. A cacheMaxSize
or cacheMaxAge of 0 means the cache is not limited in that regard.
*/
func NewStore(fs billy.Filesystem, registry *expr.Registry, compress bool,
	cacheMaxSize uint64, cacheMaxAge int64) *Store {

	enc, err := zstd.NewWriter(nil)
	errorutil.AssertOk(err)

	dec, err := zstd.NewReader(nil)
	errorutil.AssertOk(err)

	return &Store{fs, registry, compress, enc, dec,
		datautil.NewMapCache(cacheMaxSize, cacheMaxAge), &sync.RWMutex{}}
}

/*
NewStoreFromConfig creates a new store from the global configuration.
*/
func NewStoreFromConfig(registry *expr.Registry) *Store {
	var fs billy.Filesystem

	if config.Bool(config.MemoryOnlyStorage) {
		logger.Info("Using memory only predicate store")
		fs = memfs.New()

	} else {
		loc := config.Str(config.LocationPredicateStore)
		logger.Info("Using predicate store in ", loc)
		fs = osfs.New(loc)
	}

	return NewStore(fs, registry, config.Bool(config.EnableCompression),
		uint64(config.Int(config.DecodeCacheMaxSize)),
		config.Int(config.DecodeCacheMaxAgeSeconds))
}

/*
Close releases the codec resources of this store.
*/
func (s *Store) Close() error {
	s.decoder.Close()
	return s.encoder.Close()
}

/*
Put encodes a given node and stores it under a given name. An existing
predicate of the same name is overwritten.
*/
func (s *Store) Put(name string, node interface{}) error {
	if err := checkName(name); err != nil {
		return err
	}

	data, err := expr.Encode(node)
	if err != nil {
		return err
	}

	var payload []byte

	if s.compress {
		payload = s.encoder.EncodeAll(data, []byte{FormatZstd})
	} else {
		payload = append([]byte{FormatRaw}, data...)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err = util.WriteFile(s.fs, filename(name), payload, 0644); err != nil {
		return &StoreError{ErrAccess, name, err.Error()}
	}

	s.cache.Remove(name)

	logger.Debug(fmt.Sprintf("Stored predicate %v (%v bytes)", name, len(payload)))

	return nil
}

/*
Get returns a stored predicate decoded as T.
*/
func Get[T any](s *Store, name string) (T, error) {
	var ret T

	entry, err := s.load(name)
	if err != nil {
		return ret, err
	}

	if tree, ok := entry.tree.(T); ok {
		return tree, nil
	}

	return expr.Decode[T](entry.data, s.registry)
}

/*
Fingerprint returns the fingerprint of a stored predicate.
*/
func (s *Store) Fingerprint(name string) (uint32, error) {
	entry, err := s.load(name)
	if err != nil {
		return 0, err
	}

	return expr.FingerprintData(entry.data)
}

/*
Names returns the sorted names of all stored predicates.
*/
func (s *Store) Names() ([]string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	var ret []string

	infos, err := s.fs.ReadDir("/")
	if err != nil {
		if os.IsNotExist(err) {
			return ret, nil
		}
		return nil, &StoreError{ErrAccess, "/", err.Error()}
	}

	for _, info := range infos {
		if !info.IsDir() && strings.HasSuffix(info.Name(), FileSuffix) {
			ret = append(ret, strings.TrimSuffix(info.Name(), FileSuffix))
		}
	}

	sort.Strings(ret)

	return ret, nil
}

/*
Remove removes a stored predicate. Returns if the predicate existed.
*/
func (s *Store) Remove(name string) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.cache.Remove(name)

	if err := s.fs.Remove(filename(name)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &StoreError{ErrAccess, name, err.Error()}
	}

	logger.Debug("Removed predicate ", name)

	return true, nil
}

/*
load returns the cache entry of a given predicate.
*/
func (s *Store) load(name string) (*cacheEntry, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	if e, ok := s.cache.Get(name); ok {
		return e.(*cacheEntry), nil
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	payload, err := s.readFile(name)
	if err != nil {
		return nil, err
	}

	var data []byte

	switch payload[0] {
	case FormatRaw:
		data = payload[1:]

	case FormatZstd:
		if data, err = s.decoder.DecodeAll(payload[1:], nil); err != nil {
			return nil, &StoreError{ErrInvalidFormat, name, err.Error()}
		}

	default:
		return nil, &StoreError{ErrInvalidFormat, name,
			fmt.Sprintf("Unknown format marker %q", payload[0])}
	}

	entry := &cacheEntry{data: data}

	if s.registry != nil {
		if entry.tree, err = expr.Decode[interface{}](data, s.registry); err != nil {
			logger.Debug(fmt.Sprintf("Could not decode predicate %v through registry: %v", name, err))
			entry.tree = nil
		}
	}

	s.cache.Put(name, entry)

	return entry, nil
}

/*
readFile reads the contents of a predicate file.
*/
func (s *Store) readFile(name string) ([]byte, error) {
	f, err := s.fs.Open(filename(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &StoreError{ErrNotFound, name, ""}
		}
		return nil, &StoreError{ErrAccess, name, err.Error()}
	}
	defer f.Close()

	payload, err := io.ReadAll(f)
	if err != nil {
		return nil, &StoreError{ErrAccess, name, err.Error()}
	}

	if len(payload) == 0 {
		return nil, &StoreError{ErrInvalidFormat, name, "Empty file"}
	}

	return payload, nil
}

func checkName(name string) error {
	if name == "" || !stringutil.IsAlphaNumeric(name) {
		return &StoreError{ErrInvalidName, name, ""}
	}
	return nil
}

func filename(name string) string {
	return path.Join("/", name+FileSuffix)
}
