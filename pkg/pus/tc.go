// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pus

import (
	"fmt"

	"github.com/oss-spaceflight/spacepackets-go/pkg/ccsds"
	"github.com/oss-spaceflight/spacepackets-go/pkg/crc16"
	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// Tc is a generic PUS telecommand packet, symmetric to Tm but carrying a
// TcSecondaryHeader (no timestamp).
type Tc struct {
	SpHeader   ccsds.SpacePacketHeader
	SecHeader  TcSecondaryHeader
	SourceData []byte
}

// Pack serializes t, deriving SpHeader.PacketType/SecHeaderFlag/DataLength
// the same way Tm.Pack does.
func (t Tc) Pack() ([]byte, error) {
	secBytes, err := t.SecHeader.Pack()
	if err != nil {
		return nil, err
	}
	dataLength := len(secBytes) + len(t.SourceData) + 2 - 1
	if dataLength < 0 || dataLength > 0xFFFF {
		return nil, fmt.Errorf("data_length %d: %w", dataLength, pusioerr.ErrFieldOverflow)
	}
	sp := t.SpHeader
	sp.PacketType = ccsds.PacketTypeTC
	sp.SecHeaderFlag = true
	sp.DataLength = uint16(dataLength)
	spBytes, err := sp.Pack()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, len(spBytes)+len(secBytes)+len(t.SourceData)+2)
	buf = append(buf, spBytes...)
	buf = append(buf, secBytes...)
	buf = append(buf, t.SourceData...)
	return crc16.AppendChecksum(buf), nil
}

// UnpackTc decodes a PUS telecommand packet from b.
func UnpackTc(b []byte) (t Tc, trailing bool, err error) {
	sp, err := ccsds.UnpackSpacePacketHeader(b)
	if err != nil {
		return Tc{}, false, err
	}
	if sp.PacketType != ccsds.PacketTypeTC {
		return Tc{}, false, fmt.Errorf("packet_type %v: %w", sp.PacketType, pusioerr.ErrWrongPacketType)
	}
	expected := sp.TotalPacketLen()
	if len(b) < expected {
		return Tc{}, false, fmt.Errorf("need %d bytes, have %d: %w", expected, len(b), pusioerr.ErrBytesTooShort)
	}
	secHeader, err := UnpackTcSecondaryHeader(b[ccsds.HeaderLen:])
	if err != nil {
		return Tc{}, false, err
	}
	srcDataStart := ccsds.HeaderLen + TcSecondaryHeaderLen
	if expected < srcDataStart+2 {
		return Tc{}, false, fmt.Errorf("packet too short for secondary header: %w", pusioerr.ErrBytesTooShort)
	}
	sourceData := make([]byte, expected-2-srcDataStart)
	copy(sourceData, b[srcDataStart:expected-2])
	if crc16.Compute(b[:expected]) != 0 {
		return Tc{}, false, pusioerr.ErrInvalidCrc16
	}
	t = Tc{SpHeader: sp, SecHeader: secHeader, SourceData: sourceData}
	trailing = len(b) > expected
	return t, trailing, nil
}

// RequestID is the 4-byte reference to a telecommand a Service 1
// verification report points back at: packet_id ‖ packet_seq_ctrl of the
// original TC's SpacePacketHeader.
type RequestID [4]byte

// RequestIDFromSpHeader builds a RequestID from a SpacePacketHeader. Per
// spec §8 scenario S6, RequestIDFromSpHeader(h).Pack() always equals
// h.Pack()[0:4].
func RequestIDFromSpHeader(h ccsds.SpacePacketHeader) (RequestID, error) {
	b, err := h.Pack()
	if err != nil {
		return RequestID{}, err
	}
	var r RequestID
	copy(r[:], b[:4])
	return r, nil
}

// Pack returns r's 4-byte wire representation.
func (r RequestID) Pack() []byte {
	return r[:]
}
