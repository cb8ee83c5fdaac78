//----------------------------------------------------------------------
// This file is part of leatea-routing.
// Copyright (C) 2022 Bernd Fix >Y<
//
// leatea-routing is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// leatea-routing is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package core

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"
)

// FrameKind is a tagged variant for the protocol data unit kinds, so a
// dispatcher can switch on it exhaustively instead of matching strings.
type FrameKind int

const (
	Beacon FrameKind = iota + 1
	Ack
	Rreq
	Rrep
	Data
	Error
)

// String returns the wire name of the kind (Encode zero-pads it to 8
// bytes).
func (k FrameKind) String() string {
	switch k {
	case Beacon:
		return "BEACON"
	case Ack:
		return "ACK"
	case Rreq:
		return "RREQ"
	case Rrep:
		return "RREP"
	case Data:
		return "DATA"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseFrameKind maps a wire type name back to a FrameKind. ok is false
// for an unrecognized kind (the caller logs and discards the frame).
func ParseFrameKind(s string) (k FrameKind, ok bool) {
	switch s {
	case "BEACON":
		return Beacon, true
	case "ACK":
		return Ack, true
	case "RREQ":
		return Rreq, true
	case "RREP":
		return Rrep, true
	case "DATA":
		return Data, true
	case "ERROR":
		return Error, true
	default:
		return 0, false
	}
}

// Frame is an immutable protocol data unit. Destination is nil when the
// frame has no single addressee (BEACON, broadcast RREQ). Metadata
// carries the structured fields RREQ (source_id, target_id, max_hops)
// and RREP (dest_id, requester_id, hop_count) need, as the JSON block
// of the wire encoding (§6);
// Payload stays opaque bytes (position records, application data).
type Frame struct {
	Kind        FrameKind
	SenderID    int32
	Destination *int32
	Payload     []byte
	TTL         int32
	HopCount    int32
	Created     time.Time
	Metadata    map[string]any
	CRC         uint32
}

// Forwardable reports whether the frame may still be relayed: its hop
// count must not exceed its TTL (hop-count cap).
func (f Frame) Forwardable() bool {
	return f.HopCount <= f.TTL
}

// WithIncrementedHop returns a new frame identical to f except for an
// incremented hop count (frames are otherwise immutable).
func (f Frame) WithIncrementedHop() Frame {
	g := f
	g.HopCount = f.HopCount + 1
	return g
}

// computeCRC returns the CRC-32 over kind ‖ sender ‖ destination-or-empty ‖ payload.
func computeCRC(kind FrameKind, sender int32, dest *int32, payload []byte) uint32 {
	buf := bytes.NewBuffer(nil)
	buf.WriteString(kind.String())
	fmt.Fprintf(buf, "%d", sender)
	if dest != nil {
		fmt.Fprintf(buf, "%d", *dest)
	}
	buf.Write(payload)
	return crc32.ChecksumIEEE(buf.Bytes())
}

// NewFrame builds a frame and stamps its integrity tag. created should
// normally come from a core.Clock.
func NewFrame(kind FrameKind, sender int32, dest *int32, payload []byte, ttl, hopCount int32, created time.Time, meta map[string]any) Frame {
	return Frame{
		Kind:        kind,
		SenderID:    sender,
		Destination: dest,
		Payload:     payload,
		TTL:         ttl,
		HopCount:    hopCount,
		Created:     created,
		Metadata:    meta,
		CRC:         computeCRC(kind, sender, dest, payload),
	}
}

// VerifyCRC reports whether the frame's integrity tag still matches its
// content (false means the frame is corrupt and must be dropped).
func (f Frame) VerifyCRC() bool {
	return f.CRC == computeCRC(f.Kind, f.SenderID, f.Destination, f.Payload)
}

// Size returns the wire size in bytes (header + metadata + payload).
// The channel's delay model does not use it; it sizes a frame from its
// payload alone.
func (f Frame) Size() int {
	meta, _ := json.Marshal(f.Metadata)
	if f.Metadata == nil {
		meta = nil
	}
	return headerSize + len(meta) + len(f.Payload)
}

//----------------------------------------------------------------------
// Wire encoding (§6): big-endian header of an 8-byte zero-padded ASCII
// type tag followed by six int32 fields (sender, destination, ttl,
// hop_count, timestamp, metadata_length) — 32 bytes total — then
// metadata_length bytes of JSON metadata, then the opaque payload.
//----------------------------------------------------------------------

const headerSize = 8 + 4 + 4 + 4 + 4 + 4 + 4 // type + sender + dest + ttl + hops + ts + metaLen

// Encode serializes the frame to its wire representation.
func (f Frame) Encode() ([]byte, error) {
	var typeField [8]byte
	copy(typeField[:], f.Kind.String())

	dest := int32(-1)
	if f.Destination != nil {
		dest = *f.Destination
	}

	var meta []byte
	var err error
	if len(f.Metadata) > 0 {
		meta, err = json.Marshal(f.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encode frame metadata: %w", err)
		}
	}

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(meta)+len(f.Payload)))
	buf.Write(typeField[:])
	binary.Write(buf, binary.BigEndian, f.SenderID)   //nolint:errcheck // bytes.Buffer.Write never fails
	binary.Write(buf, binary.BigEndian, dest)         //nolint:errcheck
	binary.Write(buf, binary.BigEndian, f.TTL)        //nolint:errcheck
	binary.Write(buf, binary.BigEndian, f.HopCount)   //nolint:errcheck
	binary.Write(buf, binary.BigEndian, int32(f.Created.Unix())) //nolint:errcheck
	binary.Write(buf, binary.BigEndian, int32(len(meta)))        //nolint:errcheck
	buf.Write(meta)
	buf.Write(f.Payload)
	return buf.Bytes(), nil
}

// DecodeFrame parses a wire frame. The wire encoding carries no CRC, so
// the returned frame's integrity tag is recomputed from the decoded
// fields rather than checked against a transmitted value.
func DecodeFrame(data []byte) (Frame, error) {
	if len(data) < headerSize {
		return Frame{}, fmt.Errorf("decode frame: short header (%d bytes)", len(data))
	}
	var typeField [8]byte
	copy(typeField[:], data[:8])
	kindName := bytes.TrimRight(typeField[:], "\x00")
	kind, ok := ParseFrameKind(string(kindName))
	if !ok {
		return Frame{}, fmt.Errorf("decode frame: unknown type %q", kindName)
	}

	r := bytes.NewReader(data[8:headerSize])
	var sender, dest, ttl, hops, ts, metaLen int32
	for _, v := range []*int32{&sender, &dest, &ttl, &hops, &ts, &metaLen} {
		if err := binary.Read(r, binary.BigEndian, v); err != nil {
			return Frame{}, fmt.Errorf("decode frame header: %w", err)
		}
	}
	if metaLen < 0 || int(metaLen) > len(data)-headerSize {
		return Frame{}, fmt.Errorf("decode frame: invalid metadata length %d", metaLen)
	}

	var meta map[string]any
	if metaLen > 0 {
		if err := json.Unmarshal(data[headerSize:headerSize+int(metaLen)], &meta); err != nil {
			return Frame{}, fmt.Errorf("decode frame metadata: %w", err)
		}
	}
	payload := data[headerSize+int(metaLen):]

	var destPtr *int32
	if dest != -1 {
		d := dest
		destPtr = &d
	}

	f := Frame{
		Kind:        kind,
		SenderID:    sender,
		Destination: destPtr,
		Payload:     payload,
		TTL:         ttl,
		HopCount:    hops,
		Created:     time.Unix(int64(ts), 0),
		Metadata:    meta,
	}
	f.CRC = computeCRC(f.Kind, f.SenderID, f.Destination, f.Payload)
	return f, nil
}

// String returns a human-readable representation.
func (f Frame) String() string {
	dest := "-"
	if f.Destination != nil {
		dest = fmt.Sprintf("%d", *f.Destination)
	}
	return fmt.Sprintf("Frame{%s from=%d to=%s hops=%d/%d size=%d}",
		f.Kind, f.SenderID, dest, f.HopCount, f.TTL, len(f.Payload))
}
