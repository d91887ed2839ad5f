// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket provides logical bucket for kv store.
type Bucket string

func (b Bucket) key(key []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(key)), b...), key...)
}

// NewStore creates a bucket store from the source store.
// Keys seen through the returned store have the bucket prefix stripped.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{b, src}
}

// NewBulk creates a bucket bulk from the source bulk, so that writes to several
// buckets can share one atomic batch.
func (b Bucket) NewBulk(src Bulk) Bulk {
	return &bucketBulk{b, src}
}

type bucketStore struct {
	b   Bucket
	src Store
}

func (s *bucketStore) Get(key []byte) ([]byte, error) { return s.src.Get(s.b.key(key)) }
func (s *bucketStore) Has(key []byte) (bool, error)   { return s.src.Has(s.b.key(key)) }
func (s *bucketStore) IsNotFound(err error) bool      { return s.src.IsNotFound(err) }
func (s *bucketStore) Put(key, val []byte) error      { return s.src.Put(s.b.key(key), val) }
func (s *bucketStore) Delete(key []byte) error        { return s.src.Delete(s.b.key(key)) }
func (s *bucketStore) Bulk() Bulk                     { return s.b.NewBulk(s.src.Bulk()) }

func (s *bucketStore) Iterate(r Range) Iterator {
	var rng Range
	if r.Start != nil {
		rng.Start = s.b.key(r.Start)
	} else {
		rng.Start = []byte(s.b)
	}
	if r.Limit != nil {
		rng.Limit = s.b.key(r.Limit)
	} else {
		rng.Limit = util.BytesPrefix([]byte(s.b)).Limit
	}
	return &bucketIterator{s.src.Iterate(rng), len(s.b)}
}

type bucketBulk struct {
	b   Bucket
	src Bulk
}

func (bb *bucketBulk) Put(key, val []byte) error { return bb.src.Put(bb.b.key(key), val) }
func (bb *bucketBulk) Delete(key []byte) error   { return bb.src.Delete(bb.b.key(key)) }
func (bb *bucketBulk) Len() int                  { return bb.src.Len() }
func (bb *bucketBulk) Write() error              { return bb.src.Write() }

type bucketIterator struct {
	Iterator
	prefixLen int
}

func (i *bucketIterator) Key() []byte {
	return i.Iterator.Key()[i.prefixLen:]
}
