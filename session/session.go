// Package session drives the send and receive ring buffers through a
// full packet lifecycle: push a payload, sweep the forward cursor,
// drain ready entries onto the wire on the send side; decode wire
// bytes, authenticate, drain on the receive side. It mirrors the
// push/forward/pop loop the original buffer tests exercise by hand,
// packaged as a reusable driver.
package session

import (
	"errors"

	"github.com/alta-network/alta/config"
	"github.com/alta-network/alta/crypto"
	"github.com/alta-network/alta/metrics"
	"github.com/alta-network/alta/packet"
	"github.com/alta-network/alta/ringbuffer"
	"github.com/alta-network/alta/types"
	"github.com/alta-network/alta/wire"
)

// SendSession assigns sequential identifiers to pushed payloads, drives
// the forward-hash cursor, and encodes ready entries onto the wire.
type SendSession struct {
	buf    *ringbuffer.SendBuffer
	cfg    config.Config
	nextID types.PacketID
}

// NewSendSession returns an empty SendSession using cfg.Hasher to
// compute total hashes.
func NewSendSession(cfg config.Config) *SendSession {
	buf := ringbuffer.NewSendBuffer(cfg.Hasher)
	buf.SetLogger(cfg.EffectiveLogger())
	return &SendSession{
		buf: buf,
		cfg: cfg,
	}
}

// Push assigns the next sequential identifier to payload and inserts
// it into the send buffer.
func (s *SendSession) Push(payload []byte) (types.PacketID, error) {
	entry := packet.NewWithPayload(s.nextID, payload)
	if err := s.buf.InsertInSequence(entry); err != nil {
		return 0, err
	}
	id := s.nextID
	s.nextID++
	return id, nil
}

// ForwardOnce advances the forward cursor by one step and attempts to
// forward that entry's hash. A missing-hash or out-of-window result is
// expected and silently absorbed. The cursor does not come back to that
// identifier; ForwardSweep's window pass forwards it later, once its
// predecessors have forwarded.
func (s *SendSession) ForwardOnce() error {
	id := s.buf.NextForwardID()
	err := s.buf.ForwardHash(id)
	if errors.Is(err, ringbuffer.ErrMissingHash) || errors.Is(err, ringbuffer.ErrOutOfBoundID) {
		return nil
	}
	return err
}

// ForwardSweep runs ForwardOnce once per buffered slot, then passes over
// the whole window, repeating until a pass forwards nothing, so entries
// the cursor skipped are forwarded as soon as their predecessors have.
func (s *SendSession) ForwardSweep() error {
	for i := 0; i < ringbuffer.Capacity; i++ {
		if err := s.ForwardOnce(); err != nil {
			return err
		}
	}
	for progress := true; progress; {
		progress = false
		for id := s.buf.LowestID(); id < s.buf.LowestID()+ringbuffer.Capacity; id++ {
			if e := s.buf.EntryAt(id); e == nil || e.State == packet.ReadyToSend {
				continue
			}
			switch err := s.buf.ForwardHash(id); {
			case err == nil:
				progress = true
			case !errors.Is(err, ringbuffer.ErrMissingHash) && !errors.Is(err, ringbuffer.ErrOutOfBoundID):
				return err
			}
		}
	}
	return nil
}

// EntryAt returns the buffered entry at id, or nil if none is held.
// Callers use this to attach a signature (via Sign) to a sparse entry
// before it is popped and encoded.
func (s *SendSession) EntryAt(id types.PacketID) *packet.Entry {
	return s.buf.EntryAt(id)
}

// Sign computes the total hash of the entry at id using cfg.Hasher and
// attaches a signature over it with signer. The entry must already
// have collected every predecessor hash it expects; callers typically
// sign a sparse subset of entries as trust anchors, not every one.
func (s *SendSession) Sign(id types.PacketID, signer *crypto.ECDSASigner) error {
	e := s.buf.EntryAt(id)
	if e == nil {
		return ringbuffer.ErrOutOfBoundID
	}
	digest, err := e.ComputeTotalHash(s.cfg.Hasher)
	if err != nil {
		return err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return err
	}
	e.Signature = &sig
	return nil
}

// PopReady drains and returns every entry that has become ReadyToSend,
// starting at the lowest buffered identifier.
func (s *SendSession) PopReady() []*packet.Entry {
	return s.buf.PopReadyInSequence()
}

// Encode wraps a popped entry and its payload into wire bytes.
func (s *SendSession) Encode(e *packet.Entry) ([]byte, error) {
	return wire.EncodeToBytes(e, e.Payload)
}

// Drain sweeps the forward cursor, pops every entry that became
// ReadyToSend, and encodes each onto the wire alongside its payload.
// Use ForwardSweep, EntryAt, Sign and PopReady directly when a sparse
// signature needs to be attached between the sweep and the pop.
func (s *SendSession) Drain() ([][]byte, error) {
	if err := s.ForwardSweep(); err != nil {
		return nil, err
	}

	ready := s.PopReady()
	out := make([][]byte, 0, len(ready))
	for _, e := range ready {
		b, err := s.Encode(e)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Collector returns a Prometheus collector reporting this session's
// send buffer occupancy. Callers register it, typically once at
// startup via prometheus.MustRegister.
func (s *SendSession) Collector() *metrics.BufferCollector {
	return metrics.NewSendBufferCollector(s.buf)
}

// RecvSession decodes wire bytes, authenticates entries against the
// receive buffer, and drains entries once authenticated.
type RecvSession struct {
	buf *ringbuffer.RecvBuffer
	cfg config.Config
}

// NewRecvSession returns an empty RecvSession using cfg.Hasher to
// recompute total hashes and cfg.Verifier to check carried signatures.
func NewRecvSession(cfg config.Config) *RecvSession {
	buf := ringbuffer.NewRecvBuffer(cfg.Hasher, cfg.Verifier)
	buf.SetLogger(cfg.EffectiveLogger())
	return &RecvSession{
		buf: buf,
		cfg: cfg,
	}
}

// Receive decodes raw wire bytes and inserts the resulting entry into
// the receive buffer, attempting authentication immediately. A
// BadAuthentication result is returned as an error so the caller can
// decide how to treat the sender.
func (r *RecvSession) Receive(raw []byte) error {
	e, err := wire.Decode(raw)
	if err != nil {
		return err
	}
	return r.buf.Insert(e)
}

// Drain pops every Authenticated entry starting at the lowest buffered
// identifier.
func (r *RecvSession) Drain() []*packet.Entry {
	return r.buf.PopReadyInSequence()
}

// Collector returns a Prometheus collector reporting this session's
// receive buffer occupancy.
func (r *RecvSession) Collector() *metrics.BufferCollector {
	return metrics.NewRecvBufferCollector(r.buf)
}
