// Package uce implements the coordination core of a User Capabilities
// Exchange (UCE) stack: it tracks concurrent SIP SUBSCRIBE capability
// requests against an IMS network, classifies SIP and command errors into a
// stable application error taxonomy, aggregates per-request outcomes and
// reports a single terminal result per logical query.
//
// The package does not implement a SIP transport, PIDF parsing or a
// persistent capability cache. Those collaborators are consumed through the
// [CapabilitySubscriber] and [CapabilityCache] interfaces and feed the core
// with already-parsed capability records and response metadata.
//
// The entry point is [RequestManager]. One [RequestCoordinator] oversees all
// sub-requests ([SubscribeRequest]) of one caller-issued query and emits the
// terminal callback once the last sub-request finishes.
package uce

//go:generate mockgen -destination internal/mocks/mocks.go -package mocks github.com/ghettovoice/gouce CapabilitiesCallback,RequestManagerCallback,CapabilitySubscriber,CapabilityCache

import (
	"log/slog"

	"github.com/ghettovoice/gouce/internal/log"
)

// DefaultLog returns the package default logger.
// It is used by all components unless a logger is provided via options.
func DefaultLog() *slog.Logger { return log.Default() }

// SetDefaultLog replaces the package default logger.
// Passing nil resets it to the built-in console logger.
func SetDefaultLog(l *slog.Logger) { log.SetDefault(l) }
