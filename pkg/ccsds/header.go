// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ccsds implements the CCSDS Space Packet Protocol header: the
// 6-byte, bit-packed container every PUS telecommand and telemetry packet
// in this module is carried inside.
//
// The field layout and big-endian, fixed-width struct parsing follow the
// same shape as the Level 0 discovery header in the teacher library's
// pkg/core/core.go (binary.Read into a tightly packed struct), adapted here
// to hand-rolled bit shifting since the CCSDS header packs several fields
// into shared bytes (no Go struct tag can express a 3-bit field).
package ccsds

import (
	"encoding/binary"
	"fmt"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// PacketType distinguishes telemetry from telecommand packets.
type PacketType uint8

const (
	PacketTypeTM PacketType = 0
	PacketTypeTC PacketType = 1
)

func (t PacketType) String() string {
	switch t {
	case PacketTypeTM:
		return "TM"
	case PacketTypeTC:
		return "TC"
	}
	return "<Unknown>"
}

// SequenceFlags classifies a packet's position within a segmented group.
type SequenceFlags uint8

const (
	SeqContinuationSegment SequenceFlags = 0b00
	SeqFirstSegment        SequenceFlags = 0b01
	SeqLastSegment         SequenceFlags = 0b10
	SeqUnsegmented         SequenceFlags = 0b11
)

// HeaderLen is the fixed wire size of a SpacePacketHeader.
const HeaderLen = 6

// SpacePacketHeader is the 6-byte CCSDS Space Packet primary header.
type SpacePacketHeader struct {
	PacketVersion uint8 // 3 bits
	PacketType    PacketType
	SecHeaderFlag bool
	Apid          uint16 // 11 bits, <= 0x7FF
	SeqFlags      SequenceFlags
	SeqCount      uint16 // 14 bits, <= 0x3FFF
	DataLength    uint16
}

// PacketID is the derived view over a SpacePacketHeader's first two bytes.
type PacketID struct {
	PacketVersion uint8
	PacketType    PacketType
	SecHeaderFlag bool
	Apid          uint16
}

// PacketSeqCtrl is the derived view over a SpacePacketHeader's bytes 3-4.
type PacketSeqCtrl struct {
	SeqFlags SequenceFlags
	SeqCount uint16
}

// TotalPacketLen returns the full on-wire packet size this header
// describes: DataLength + 7 (DataLength is the length of the data field
// minus one, by CCSDS convention).
func (h SpacePacketHeader) TotalPacketLen() int {
	return int(h.DataLength) + 7
}

// PacketID returns the derived packet-identification view of h.
func (h SpacePacketHeader) PacketID() PacketID {
	return PacketID{
		PacketVersion: h.PacketVersion,
		PacketType:    h.PacketType,
		SecHeaderFlag: h.SecHeaderFlag,
		Apid:          h.Apid,
	}
}

// PacketSeqCtrl returns the derived sequence-control view of h.
func (h SpacePacketHeader) PacketSeqCtrl() PacketSeqCtrl {
	return PacketSeqCtrl{SeqFlags: h.SeqFlags, SeqCount: h.SeqCount}
}

// Pack encodes p as its big-endian 2-byte wire representation.
func (p PacketID) Pack() ([]byte, error) {
	if p.PacketVersion > 0x7 {
		return nil, fmt.Errorf("packet_version %d: %w", p.PacketVersion, pusioerr.ErrFieldOverflow)
	}
	if p.Apid > 0x7FF {
		return nil, fmt.Errorf("apid %#x: %w", p.Apid, pusioerr.ErrFieldOverflow)
	}
	b := make([]byte, 2)
	b[0] = p.PacketVersion<<5 | uint8(p.PacketType)<<4
	if p.SecHeaderFlag {
		b[0] |= 1 << 3
	}
	b[0] |= uint8(p.Apid >> 8 & 0x7)
	b[1] = uint8(p.Apid & 0xFF)
	return b, nil
}

// Pack encodes s as its big-endian 2-byte wire representation.
func (s PacketSeqCtrl) Pack() ([]byte, error) {
	if s.SeqCount > 0x3FFF {
		return nil, fmt.Errorf("seq_count %d: %w", s.SeqCount, pusioerr.ErrFieldOverflow)
	}
	b := make([]byte, 2)
	b[0] = uint8(s.SeqFlags)<<6 | uint8(s.SeqCount>>8&0x3F)
	b[1] = uint8(s.SeqCount & 0xFF)
	return b, nil
}

// Pack encodes h as the 6-byte CCSDS Space Packet primary header.
func (h SpacePacketHeader) Pack() ([]byte, error) {
	idBytes, err := h.PacketID().Pack()
	if err != nil {
		return nil, err
	}
	seqBytes, err := h.PacketSeqCtrl().Pack()
	if err != nil {
		return nil, err
	}
	b := make([]byte, HeaderLen)
	copy(b[0:2], idBytes)
	copy(b[2:4], seqBytes)
	binary.BigEndian.PutUint16(b[4:6], h.DataLength)
	return b, nil
}

// UnpackSpacePacketHeader decodes the first HeaderLen bytes of b into a
// SpacePacketHeader.
func UnpackSpacePacketHeader(b []byte) (SpacePacketHeader, error) {
	if len(b) < HeaderLen {
		return SpacePacketHeader{}, fmt.Errorf("need %d bytes for CCSDS header, got %d: %w", HeaderLen, len(b), pusioerr.ErrBytesTooShort)
	}
	apid := uint16(b[0]&0x07)<<8 | uint16(b[1])
	seqCount := uint16(b[2]&0x3F)<<8 | uint16(b[3])
	h := SpacePacketHeader{
		PacketVersion: b[0] >> 5,
		PacketType:    PacketType(b[0] >> 4 & 0x1),
		SecHeaderFlag: b[0]&0x08 != 0,
		Apid:          apid,
		SeqFlags:      SequenceFlags(b[2] >> 6),
		SeqCount:      seqCount,
		DataLength:    binary.BigEndian.Uint16(b[4:6]),
	}
	return h, nil
}
