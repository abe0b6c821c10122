package store

import (
	"time"

	"github.com/unkn0wn-root/binser"
	"github.com/unkn0wn-root/binser/codec"
	"github.com/unkn0wn-root/binser/provider"
)

// SetCostFunc returns the provider cost of a framed entry.
type SetCostFunc func(storageKey string, framed []byte) int64

// Options configure a Store. Namespace, Provider and Codec are required;
// the rest default when zero.
type Options[V any] struct {
	Namespace string // e.g. "order", "user:v2"
	Provider  provider.Provider
	Codec     codec.Codec[V]

	Logger         binser.Logger // nil => NopLogger
	Hooks          Hooks         // nil => NopHooks
	DefaultTTL     time.Duration // used when Set gets ttl == 0; 0 => 10m
	ComputeSetCost SetCostFunc   // nil => 1 per entry
	Disabled       bool          // every call becomes a miss / no-op
}

const defaultTTL = 10 * time.Minute

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func unitCost(string, []byte) int64 { return 1 }

// ByteCost charges the framed size, for providers like ristretto whose
// MaxCost is a memory budget.
func ByteCost(_ string, framed []byte) int64 { return int64(len(framed)) }
