package store

// Hooks are callbacks for high-signal store events.
// Implementations MUST be cheap and non-blocking; the store calls them on
// the read and write paths. Wrap slow sinks in hooks/async.
//
// ns is the store's Namespace. It is passed separately because keys and
// namespaces may both contain ':', so it cannot be recovered from storageKey.
type Hooks interface {
	// An entry was deleted by the store on read.
	// reason ∈ {"corrupt", "value_decode"}
	SelfHeal(ns, storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(ns, storageKey string)

	// A provider call failed. op ∈ {"get", "set", "del"}
	ProviderError(ns, op, storageKey string, err error)
}

// Self-heal reasons.
const (
	ReasonCorrupt     = "corrupt"
	ReasonValueDecode = "value_decode"
)

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string, string)             {}
func (NopHooks) ProviderSetRejected(string, string)          {}
func (NopHooks) ProviderError(string, string, string, error) {}
