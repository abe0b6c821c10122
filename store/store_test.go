package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/google/go-cmp/cmp"

	"github.com/unkn0wn-root/binser"
	"github.com/unkn0wn-root/binser/bin"
	"github.com/unkn0wn-root/binser/codec"
	"github.com/unkn0wn-root/binser/internal/frame"
	pr "github.com/unkn0wn-root/binser/provider"
	"github.com/unkn0wn-root/binser/provider/pebble"
	"github.com/unkn0wn-root/binser/record"
)

type memEntry struct {
	v   []byte
	ttl time.Duration
}

type memProvider struct {
	m        map[string]memEntry
	rejectOK bool
	fail     error
}

var _ pr.Provider = (*memProvider)(nil)

func newMemProvider() *memProvider { return &memProvider{m: make(map[string]memEntry)} }

func (p *memProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	if p.fail != nil {
		return nil, false, p.fail
	}
	e, ok := p.m[key]
	return e.v, ok, nil
}

func (p *memProvider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if p.fail != nil {
		return false, p.fail
	}
	if p.rejectOK {
		return false, nil
	}
	p.m[key] = memEntry{v: value, ttl: ttl}
	return true, nil
}

func (p *memProvider) Del(_ context.Context, key string) error {
	if p.fail != nil {
		return p.fail
	}
	delete(p.m, key)
	return nil
}

func (p *memProvider) Close(_ context.Context) error { return nil }

type event struct {
	kind, ns, key, detail string
}

type recHooks struct {
	mu     sync.Mutex
	events []event
}

func (h *recHooks) add(e event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recHooks) SelfHeal(ns, k, reason string) { h.add(event{"self_heal", ns, k, reason}) }
func (h *recHooks) ProviderSetRejected(ns, k string) {
	h.add(event{"set_rejected", ns, k, ""})
}
func (h *recHooks) ProviderError(ns, op, k string, _ error) {
	h.add(event{"provider_error", ns, k, op})
}

type order struct {
	ID    uint64
	Items []string
}

var orderSchema = record.Register(
	record.Field("id", bin.Uint64, func(o *order) *uint64 { return &o.ID }),
	record.Field("items", bin.Slice(bin.String), func(o *order) *[]string { return &o.Items }),
)

func (order) Schema() *record.Schema[order] { return orderSchema }

func newTestStore(t *testing.T, p pr.Provider, tweak func(*Options[order])) (*Store[order], *recHooks) {
	t.Helper()
	h := &recHooks{}
	opts := Options[order]{
		Namespace: "order",
		Provider:  p,
		Codec:     codec.Record[order](),
		Hooks:     h,
	}
	if tweak != nil {
		tweak(&opts)
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, h
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	s, h := newTestStore(t, mp, nil)

	in := order{ID: 7, Items: []string{"apple", "pear"}}
	if err := s.Set(ctx, "7", in, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	e, ok := mp.m["order:7"]
	if !ok {
		t.Fatalf("entry not stored under namespaced key: %v", mp.m)
	}
	if e.ttl != defaultTTL {
		t.Fatalf("ttl=%v want default %v", e.ttl, defaultTTL)
	}

	got, ok, err := s.Get(ctx, "7")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	if err := s.Del(ctx, "7"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "7"); ok {
		t.Fatalf("hit after Del")
	}
	if len(h.events) != 0 {
		t.Fatalf("unexpected hooks: %+v", h.events)
	}
}

func TestExplicitTTL(t *testing.T) {
	mp := newMemProvider()
	s, _ := newTestStore(t, mp, func(o *Options[order]) { o.DefaultTTL = time.Hour })
	_ = s.Set(context.Background(), "a", order{}, 0)
	_ = s.Set(context.Background(), "b", order{}, time.Second)
	if mp.m["order:a"].ttl != time.Hour || mp.m["order:b"].ttl != time.Second {
		t.Fatalf("ttls: %v %v", mp.m["order:a"].ttl, mp.m["order:b"].ttl)
	}
}

func TestSelfHeal(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		raw    []byte
		reason string
	}{
		{"garbage", []byte("not a frame"), ReasonCorrupt},
		{"bit flip", func() []byte {
			b := frame.Encode(binser.Marshal(order{ID: 1}))
			b[10] ^= 0xff
			return b
		}(), ReasonCorrupt},
		{"undecodable payload", frame.Encode([]byte{1, 2, 3}), ReasonValueDecode},
		{"trailing payload bytes", frame.Encode(append(binser.Marshal(order{ID: 1}), 0)), ReasonValueDecode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mp := newMemProvider()
			s, h := newTestStore(t, mp, nil)
			mp.m["order:k"] = memEntry{v: tc.raw}

			_, ok, err := s.Get(ctx, "k")
			if ok || err != nil {
				t.Fatalf("ok=%v err=%v", ok, err)
			}
			if _, still := mp.m["order:k"]; still {
				t.Fatalf("corrupt entry not deleted")
			}
			want := []event{{"self_heal", "order", "order:k", tc.reason}}
			if diff := cmp.Diff(want, h.events, cmp.AllowUnexported(event{})); diff != "" {
				t.Fatalf("hooks (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProviderSetRejected(t *testing.T) {
	mp := newMemProvider()
	mp.rejectOK = true
	s, h := newTestStore(t, mp, nil)
	if err := s.Set(context.Background(), "x", order{ID: 1}, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	want := []event{{"set_rejected", "order", "order:x", ""}}
	if diff := cmp.Diff(want, h.events, cmp.AllowUnexported(event{})); diff != "" {
		t.Fatalf("hooks (-want +got):\n%s", diff)
	}
}

func TestProviderErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	mp := newMemProvider()
	mp.fail = boom
	s, h := newTestStore(t, mp, nil)

	if _, _, err := s.Get(ctx, "a"); !errors.Is(err, boom) {
		t.Fatalf("Get err=%v", err)
	}
	if err := s.Set(ctx, "a", order{}, 0); !errors.Is(err, boom) {
		t.Fatalf("Set err=%v", err)
	}
	if err := s.Del(ctx, "a"); !errors.Is(err, boom) {
		t.Fatalf("Del err=%v", err)
	}
	var ops []string
	for _, e := range h.events {
		ops = append(ops, e.detail)
	}
	if diff := cmp.Diff([]string{"get", "set", "del"}, ops); diff != "" {
		t.Fatalf("ops (-want +got):\n%s", diff)
	}
}

func TestEncodeError(t *testing.T) {
	lim := codec.LimitCodec[order]{Inner: codec.Record[order](), MaxEncode: 4}
	mp := newMemProvider()
	s, _ := newTestStore(t, mp, func(o *Options[order]) { o.Codec = lim })
	err := s.Set(context.Background(), "big", order{ID: 1, Items: []string{"x"}}, 0)
	if !errors.Is(err, codec.ErrTooLarge) {
		t.Fatalf("err=%v", err)
	}
	if len(mp.m) != 0 {
		t.Fatalf("entry written despite encode error")
	}
}

func TestDisabled(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	s, _ := newTestStore(t, mp, func(o *Options[order]) { o.Disabled = true })
	if s.Enabled() {
		t.Fatalf("Enabled() = true")
	}
	_ = s.Set(ctx, "a", order{ID: 1}, 0)
	if len(mp.m) != 0 {
		t.Fatalf("disabled store wrote")
	}
	mp.m["order:a"] = memEntry{v: frame.Encode(binser.Marshal(order{ID: 1}))}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Fatalf("disabled store hit")
	}
}

func TestCostFunc(t *testing.T) {
	var seen int64
	cp := &costProvider{memProvider: newMemProvider(), seen: &seen}
	s, _ := newTestStore(t, cp, func(o *Options[order]) { o.ComputeSetCost = ByteCost })
	_ = s.Set(context.Background(), "a", order{ID: 1}, 0)
	want := int64(frame.Overhead + len(binser.Marshal(order{ID: 1})))
	if seen != want {
		t.Fatalf("cost=%d want %d", seen, want)
	}
}

type costProvider struct {
	*memProvider
	seen *int64
}

func (p *costProvider) Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (bool, error) {
	*p.seen = cost
	return p.memProvider.Set(ctx, key, value, cost, ttl)
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		opts Options[order]
		want error
	}{
		{Options[order]{Namespace: "n", Codec: codec.Record[order]()}, ErrNoProvider},
		{Options[order]{Namespace: "n", Provider: newMemProvider()}, ErrNoCodec},
		{Options[order]{Provider: newMemProvider(), Codec: codec.Record[order]()}, ErrNoNamespace},
	}
	for _, tc := range cases {
		if _, err := New(tc.opts); !errors.Is(err, tc.want) {
			t.Errorf("err=%v want %v", err, tc.want)
		}
	}
}

func TestWithPebbleProvider(t *testing.T) {
	ctx := context.Background()
	pp, err := pebble.New(pebble.Config{Dir: "store", FS: vfs.NewMem()})
	if err != nil {
		t.Fatal(err)
	}
	s, _ := newTestStore(t, pp, nil)
	defer s.Close(ctx)

	in := order{ID: 99, Items: []string{"disk"}}
	if err := s.Set(ctx, "99", in, -1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(ctx, "99")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}
