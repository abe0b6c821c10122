// Package pebble is an on-disk provider.Provider backed by cockroachdb/pebble.
//
// Pebble has no native expiry. Each record is stored as
//
//	expires(u64 be, unix nanos; 0 = never) | value
//
// and expired records are deleted lazily by the Get that finds them. Get
// strips the prefix, so callers see exactly the bytes they Set.
package pebble

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	pdb "github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	pr "github.com/unkn0wn-root/binser/provider"
)

const expiryLen = 8

type Provider struct {
	db   *pdb.DB
	wo   *pdb.WriteOptions
	now  func() time.Time
	owns bool
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	// Dir is the database directory. Required unless DB is set.
	Dir string
	// FS overrides the filesystem, e.g. vfs.NewMem() in tests.
	FS vfs.FS
	// Sync makes every write durable before Set returns.
	Sync bool
	// DB reuses an already open database. It is not closed by Close.
	DB *pdb.DB
}

var ErrNoDir = errors.New("pebble provider: no directory")

func New(cfg Config) (*Provider, error) {
	wo := pdb.NoSync
	if cfg.Sync {
		wo = pdb.Sync
	}
	if cfg.DB != nil {
		return &Provider{db: cfg.DB, wo: wo, now: time.Now}, nil
	}
	if cfg.Dir == "" {
		return nil, ErrNoDir
	}
	opts := &pdb.Options{}
	if cfg.FS != nil {
		opts.FS = cfg.FS
	}
	db, err := pdb.Open(cfg.Dir, opts)
	if err != nil {
		return nil, err
	}
	return &Provider{db: db, wo: wo, now: time.Now, owns: true}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pdb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()

	if len(raw) < expiryLen {
		// not written by this provider
		return nil, false, p.db.Delete([]byte(key), p.wo)
	}
	if exp := binary.BigEndian.Uint64(raw[:expiryLen]); exp != 0 && uint64(p.now().UnixNano()) >= exp {
		return nil, false, p.db.Delete([]byte(key), p.wo)
	}
	// raw is only valid until closer.Close.
	out := make([]byte, len(raw)-expiryLen)
	copy(out, raw[expiryLen:])
	return out, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	var exp uint64
	if ttl > 0 {
		exp = uint64(p.now().Add(ttl).UnixNano())
	}
	rec := make([]byte, expiryLen, expiryLen+len(value))
	binary.BigEndian.PutUint64(rec, exp)
	rec = append(rec, value...)
	if err := p.db.Set([]byte(key), rec, p.wo); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	return p.db.Delete([]byte(key), p.wo)
}

func (p *Provider) Close(context.Context) error {
	if !p.owns {
		return nil
	}
	return p.db.Close()
}
