package uce

import (
	"log/slog"
	"time"
)

// ContactURI identifies one contact of a capability query,
// e.g. "sip:alice@example.com".
type ContactURI string

func (u ContactURI) String() string { return string(u) }

// CapabilityMechanism is the discovery mechanism that produced a capability record.
type CapabilityMechanism int

const (
	// MechanismPresence is SUBSCRIBE/NOTIFY presence based discovery.
	MechanismPresence CapabilityMechanism = iota + 1
	// MechanismOptions is SIP OPTIONS based discovery.
	MechanismOptions
)

func (m CapabilityMechanism) String() string {
	switch m {
	case MechanismPresence:
		return "presence"
	case MechanismOptions:
		return "options"
	default:
		return "unknown"
	}
}

// CapabilitySource tells where a capability record was obtained from.
type CapabilitySource int

const (
	// SourceNetwork marks capabilities discovered from the network.
	SourceNetwork CapabilitySource = iota + 1
	// SourceCached marks capabilities served from the local cache.
	SourceCached
)

func (s CapabilitySource) String() string {
	switch s {
	case SourceNetwork:
		return "network"
	case SourceCached:
		return "cached"
	default:
		return "unknown"
	}
}

// CapabilityResult is the per-contact outcome carried by a capability record.
type CapabilityResult int

const (
	// ResultFound marks a contact whose capabilities were discovered.
	ResultFound CapabilityResult = iota + 1
	// ResultNotFound marks a contact the network confirmed as non-existent.
	ResultNotFound
	// ResultTerminated marks a contact whose resource subscription was terminated.
	ResultTerminated
)

func (r CapabilityResult) String() string {
	switch r {
	case ResultFound:
		return "found"
	case ResultNotFound:
		return "not_found"
	case ResultTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Capability is one contact's discovered capability set. Records are produced
// by the PIDF-parsing collaborator or synthesized by this package for
// not-found and terminated contacts. The core treats records as opaque items
// delivered to the caller in batches.
type Capability struct {
	// Contact is the contact this record describes.
	Contact ContactURI
	// Mechanism is the discovery mechanism.
	Mechanism CapabilityMechanism
	// Source tells whether the record came from the network or the cache.
	Source CapabilitySource
	// Result is the per-contact outcome.
	Result CapabilityResult
	// FeatureTags are the discovered feature tags.
	FeatureTags []string
	// TerminatedReason is set when Result is [ResultTerminated].
	TerminatedReason string
	// Timestamp is when the record was produced.
	Timestamp time.Time
}

// LogValue implements [slog.LogValuer].
func (c *Capability) LogValue() slog.Value {
	if c == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("contact", string(c.Contact)),
		slog.String("mechanism", c.Mechanism.String()),
		slog.String("source", c.Source.String()),
		slog.String("result", c.Result.String()),
		slog.Int("feature_tags", len(c.FeatureTags)),
	)
}

// NewNotFoundCapability synthesizes the record delivered to the caller when
// the network confirmed the contact does not exist. The caller receives an
// explicit not-found record instead of silence.
func NewNotFoundCapability(contact ContactURI) *Capability {
	return &Capability{
		Contact:   contact,
		Mechanism: MechanismPresence,
		Source:    SourceNetwork,
		Result:    ResultNotFound,
		Timestamp: time.Now(),
	}
}

// NewTerminatedCapability synthesizes the record delivered to the caller when
// the network terminated the contact's resource subscription.
func NewTerminatedCapability(contact ContactURI, reason string) *Capability {
	return &Capability{
		Contact:          contact,
		Mechanism:        MechanismPresence,
		Source:           SourceNetwork,
		Result:           ResultTerminated,
		TerminatedReason: reason,
		Timestamp:        time.Now(),
	}
}

// TerminatedResource is the raw per-contact termination report from the
// transport layer, converted to a [Capability] by the response accumulator.
type TerminatedResource struct {
	Contact ContactURI
	Reason  string
}
