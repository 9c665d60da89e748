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

// Tm is a generic PUS telemetry packet: a CCSDS SpacePacketHeader, a PUS
// secondary header, opaque application source data, and a trailing CRC-16
// that this type computes — never stores — at pack time.
type Tm struct {
	SpHeader   ccsds.SpacePacketHeader
	SecHeader  TmSecondaryHeader
	SourceData []byte
}

// Pack serializes t. SpHeader.PacketType, SecHeaderFlag and DataLength are
// derived fields and are overwritten with their correct values regardless
// of what t.SpHeader carried in, matching the "mutated only via explicit
// setters that recompute dependent length fields lazily" lifecycle rule.
func (t Tm) Pack() ([]byte, error) {
	secBytes, err := t.SecHeader.Pack()
	if err != nil {
		return nil, err
	}
	dataLength := len(secBytes) + len(t.SourceData) + 2 - 1
	if dataLength < 0 || dataLength > 0xFFFF {
		return nil, fmt.Errorf("data_length %d: %w", dataLength, pusioerr.ErrFieldOverflow)
	}
	sp := t.SpHeader
	sp.PacketType = ccsds.PacketTypeTM
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

// UnpackTm decodes a PUS telemetry packet from b.
//
// trailing reports whether b contained more bytes than the packet's own
// data_length field indicated (spec §4.4's "recoverable trailing bytes
// signal"); it is not an error condition.
func UnpackTm(b []byte, version PusVersion) (t Tm, trailing bool, err error) {
	sp, err := ccsds.UnpackSpacePacketHeader(b)
	if err != nil {
		return Tm{}, false, err
	}
	if sp.PacketType != ccsds.PacketTypeTM {
		return Tm{}, false, fmt.Errorf("packet_type %v: %w", sp.PacketType, pusioerr.ErrWrongPacketType)
	}
	expected := sp.TotalPacketLen()
	if len(b) < expected {
		return Tm{}, false, fmt.Errorf("need %d bytes, have %d: %w", expected, len(b), pusioerr.ErrBytesTooShort)
	}
	secHeader, err := UnpackTmSecondaryHeader(b[ccsds.HeaderLen:], version)
	if err != nil {
		return Tm{}, false, err
	}
	secLen := secHeader.HeaderLen()
	srcDataStart := ccsds.HeaderLen + secLen
	if expected < srcDataStart+2 {
		return Tm{}, false, fmt.Errorf("packet too short for secondary header: %w", pusioerr.ErrBytesTooShort)
	}
	sourceData := make([]byte, expected-2-srcDataStart)
	copy(sourceData, b[srcDataStart:expected-2])
	if crc16.Compute(b[:expected]) != 0 {
		return Tm{}, false, pusioerr.ErrInvalidCrc16
	}
	t = Tm{SpHeader: sp, SecHeader: secHeader, SourceData: sourceData}
	trailing = len(b) > expected
	return t, trailing, nil
}
