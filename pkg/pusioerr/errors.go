// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pusioerr collects the sentinel error kinds shared by every codec
// package in this module, so callers can type-switch on them regardless of
// which layer (CCSDS, PUS, CFDP) produced the failure.
package pusioerr

import "errors"

var (
	// ErrBytesTooShort is returned when an input buffer is shorter than the
	// minimum size, or shorter than a length field embedded in it requires.
	ErrBytesTooShort = errors.New("buffer too short for this field layout")

	// ErrFieldOverflow is returned when a value to be packed exceeds the bit
	// width or PFC width declared for its field.
	ErrFieldOverflow = errors.New("field value exceeds its declared width")

	// ErrInvalidPusVersion is returned when a secondary header's version
	// nibble is neither 0 (PUS-A) nor 2 (PUS-C).
	ErrInvalidPusVersion = errors.New("secondary header version nibble is not a known PUS version")

	// ErrInvalidCrc16 is returned when the trailing CRC-16 of a packet does
	// not close the packet (CRC16 over the full packet is non-zero).
	ErrInvalidCrc16 = errors.New("CRC-16 does not close the packet")

	// ErrTlvTypeMismatch is returned when a typed-TLV conversion is
	// attempted on a CfdpTlv carrying the wrong type code.
	ErrTlvTypeMismatch = errors.New("TLV type code does not match the requested variant")

	// ErrInvalidTlvLength is returned when a TLV length field contradicts
	// the bytes actually available, or a fixed-shape variant's layout.
	ErrInvalidTlvLength = errors.New("TLV length field is inconsistent with its payload")

	// ErrUnsupportedDirectiveCode is returned when a CFDP directive code is
	// not one of the directive codes this module knows how to decode.
	ErrUnsupportedDirectiveCode = errors.New("unsupported CFDP file directive code")

	// ErrDuplicateField is returned when a field that may appear at most
	// once (e.g. a FinishedPdu fault_location) appears twice.
	ErrDuplicateField = errors.New("field present more than once where at most one is allowed")

	// ErrWrongPacketType is returned when a SpacePacketHeader's packet_type
	// does not match the direction (TM/TC) the caller asked to decode.
	ErrWrongPacketType = errors.New("packet_type does not match the requested packet direction")

	// ErrWrongService is returned when a PUS packet's service number does
	// not match the service-specific codec attempting to decode it.
	ErrWrongService = errors.New("service number does not match this service's codec")

	// ErrWrongSubservice is returned when a PUS packet's subservice number
	// is not one this service-specific codec knows how to handle.
	ErrWrongSubservice = errors.New("subservice number is not valid for this service")
)
