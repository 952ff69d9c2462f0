// Package config bundles the collaborators an ALTA session needs: a
// hasher, a verifier, a logger and a metrics registerer. Components take
// their dependencies through a Config rather than constructing them
// internally, the way pipeline and gossip components take a Config
// struct upstream.
package config

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alta-network/alta/crypto"
	"github.com/alta-network/alta/log"
	"github.com/alta-network/alta/packet"
)

// Config bundles the collaborators a send or receive session needs.
type Config struct {
	// Hasher computes an entry's total hash. Required.
	Hasher packet.Hasher

	// Verifier checks a signature against a digest on the receive
	// side. Nil is valid for a send-only session.
	Verifier packet.Verifier

	// Logger receives structured session events. Defaults to
	// log.Default() when nil.
	Logger *log.Logger

	// Registerer receives the session's Prometheus collectors.
	// Defaults to prometheus.DefaultRegisterer when nil.
	Registerer prometheus.Registerer
}

// DefaultConfig returns a Config wired with Keccak-256 hashing, an
// ECDSA verifier over pub, the default logger, and the default
// Prometheus registerer.
func DefaultConfig(pub *crypto.ECDSAVerifier) Config {
	return Config{
		Hasher:     crypto.KeccakHasher{},
		Verifier:   pub,
		Logger:     log.Default(),
		Registerer: prometheus.DefaultRegisterer,
	}
}

// EffectiveLogger returns c.Logger, falling back to the package default.
func (c Config) EffectiveLogger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// EffectiveRegisterer returns c.Registerer, falling back to the
// default registry.
func (c Config) EffectiveRegisterer() prometheus.Registerer {
	if c.Registerer != nil {
		return c.Registerer
	}
	return prometheus.DefaultRegisterer
}
