// Package store keeps typed values in a byte provider.
//
// Every entry is the codec output wrapped in an integrity frame
// (internal/frame). Reads that find a bad frame or an undecodable payload
// delete the entry and report a miss, so one corrupt write never turns into
// a stream of errors.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unkn0wn-root/binser"
	"github.com/unkn0wn-root/binser/codec"
	"github.com/unkn0wn-root/binser/internal/frame"
	"github.com/unkn0wn-root/binser/provider"
)

var (
	ErrNoProvider  = errors.New("store: provider is required")
	ErrNoCodec     = errors.New("store: codec is required")
	ErrNoNamespace = errors.New("store: namespace is required")
)

// Store reads and writes framed values of type V under one namespace of a
// provider. It is safe for concurrent use when its provider is.
type Store[V any] struct {
	ns         string
	provider   provider.Provider
	codec      codec.Codec[V]
	log        binser.Logger
	hooks      Hooks
	enabled    bool
	defaultTTL time.Duration
	cost       SetCostFunc
}

// New validates opts and fills in defaults for the optional fields.
func New[V any](opts Options[V]) (*Store[V], error) {
	switch {
	case opts.Provider == nil:
		return nil, ErrNoProvider
	case opts.Codec == nil:
		return nil, ErrNoCodec
	case opts.Namespace == "":
		return nil, ErrNoNamespace
	}

	s := &Store[V]{
		ns:       opts.Namespace,
		provider: opts.Provider,
		codec:    opts.Codec,
		enabled:  !opts.Disabled,
	}
	s.log = coalesce[binser.Logger](opts.Logger, binser.NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	s.defaultTTL = coalesce(opts.DefaultTTL, defaultTTL)
	s.cost = opts.ComputeSetCost
	if s.cost == nil {
		s.cost = unitCost
	}
	return s, nil
}

// Enabled reports whether the store was built with Disabled unset.
func (s *Store[V]) Enabled() bool { return s.enabled }

// Namespace returns the key prefix owned by this store.
func (s *Store[V]) Namespace() string { return s.ns }

// Close closes the underlying provider.
func (s *Store[V]) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}

func (s *Store[V]) key(k string) string { return s.ns + ":" + k }

// Get returns the value stored under key. A corrupt entry is deleted and
// reported as a miss; only provider failures are returned as errors.
func (s *Store[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	if !s.enabled {
		return zero, false, nil
	}
	k := s.key(key)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil {
		s.hooks.ProviderError(s.ns, "get", k, err)
		return zero, false, fmt.Errorf("store: get %q: %w", key, err)
	}
	if !ok {
		return zero, false, nil
	}

	payload, err := frame.Decode(raw)
	if err != nil {
		s.heal(ctx, k, ReasonCorrupt, err)
		return zero, false, nil
	}
	v, err := s.codec.Decode(payload)
	if err != nil {
		s.heal(ctx, k, ReasonValueDecode, err)
		return zero, false, nil
	}
	return v, true, nil
}

// Set stores value under key. ttl == 0 uses the default TTL; a negative ttl
// asks the provider for no expiry.
func (s *Store[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if !s.enabled {
		return nil
	}
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	payload, err := s.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", key, err)
	}
	k := s.key(key)
	framed := frame.Encode(payload)
	ok, err := s.provider.Set(ctx, k, framed, s.cost(k, framed), ttl)
	if err != nil {
		s.hooks.ProviderError(s.ns, "set", k, err)
		return fmt.Errorf("store: set %q: %w", key, err)
	}
	if !ok {
		s.log.Debug("set rejected by provider (pressure)", binser.Fields{"key": key, "size": len(framed)})
		s.hooks.ProviderSetRejected(s.ns, k)
	}
	return nil
}

// Del removes key. Removing a missing key is not an error.
func (s *Store[V]) Del(ctx context.Context, key string) error {
	if !s.enabled {
		return nil
	}
	k := s.key(key)
	if err := s.provider.Del(ctx, k); err != nil {
		s.hooks.ProviderError(s.ns, "del", k, err)
		return fmt.Errorf("store: del %q: %w", key, err)
	}
	return nil
}

func (s *Store[V]) heal(ctx context.Context, k, reason string, cause error) {
	if err := s.provider.Del(ctx, k); err != nil {
		s.log.Warn("self-heal delete failed", binser.Fields{"key": k, "reason": reason, "err": err})
		s.hooks.ProviderError(s.ns, "del", k, err)
	} else {
		s.log.Debug("self-healed entry", binser.Fields{"key": k, "reason": reason, "cause": cause})
	}
	s.hooks.SelfHeal(s.ns, k, reason)
}
