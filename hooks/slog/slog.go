// Package sloghook logs store events through log/slog.
package sloghook

import (
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/zeebo/blake3"

	"github.com/unkn0wn-root/binser/store"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery uint64
	// Optional key redactor. Defaults to a BLAKE3 prefix of the key.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr atomic.Uint64
}

var _ store.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := blake3.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n <= 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) SelfHeal(ns, storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("binser.store.self_heal",
		"ns", ns,
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) ProviderSetRejected(ns, storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("binser.store.provider_set_rejected",
		"ns", ns,
		"key", h.redact(storageKey))
}

func (h *Hooks) ProviderError(ns, op, storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("binser.store.provider_error",
		"ns", ns,
		"op", op,
		"key", h.redact(storageKey),
		"err", err)
}
