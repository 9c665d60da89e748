// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfdp

import (
	"encoding/binary"
	"fmt"

	"github.com/oss-spaceflight/spacepackets-go/pkg/cfdp/tlv"
	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// EofPdu marks the end of a file transfer: checksum and size of the file
// as sent, plus (on failure) where the fault occurred.
type EofPdu struct {
	Header        PduHeader
	ConditionCode ConditionCode
	FileChecksum  uint32
	FileSize      uint64
	FaultLocation *tlv.EntityIDTlv // only meaningful when ConditionCode != ConditionNoError
}

// Pack serializes e as a FileDirectivePdu with directive code EOF.
func (e EofPdu) Pack() ([]byte, error) {
	payload := make([]byte, 0, 9)
	payload = append(payload, uint8(e.ConditionCode)&0x0F)
	checksumBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(checksumBytes, e.FileChecksum)
	payload = append(payload, checksumBytes...)
	if e.Header.LargeFileFlag {
		sizeBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(sizeBytes, e.FileSize)
		payload = append(payload, sizeBytes...)
	} else {
		if e.FileSize > 0xFFFFFFFF {
			return nil, fmt.Errorf("file_size %d overflows 32-bit field: %w", e.FileSize, pusioerr.ErrFieldOverflow)
		}
		sizeBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(sizeBytes, uint32(e.FileSize))
		payload = append(payload, sizeBytes...)
	}
	if e.FaultLocation != nil {
		raw, err := e.FaultLocation.Pack()
		if err != nil {
			return nil, err
		}
		b, err := raw.Pack()
		if err != nil {
			return nil, err
		}
		payload = append(payload, b...)
	}
	fd := FileDirectivePdu{Header: e.Header, DirectiveCode: DirectiveEOF, Payload: payload}
	return fd.Pack()
}

// UnpackEofPdu decodes an EOF PDU from b.
func UnpackEofPdu(b []byte) (EofPdu, error) {
	fd, err := UnpackFileDirectivePdu(b)
	if err != nil {
		return EofPdu{}, err
	}
	if fd.DirectiveCode != DirectiveEOF {
		return EofPdu{}, fmt.Errorf("directive code %#x: %w", fd.DirectiveCode, pusioerr.ErrUnsupportedDirectiveCode)
	}
	sizeWidth := 4
	if fd.Header.LargeFileFlag {
		sizeWidth = 8
	}
	minLen := 1 + 4 + sizeWidth
	if len(fd.Payload) < minLen {
		return EofPdu{}, fmt.Errorf("eof pdu: %w", pusioerr.ErrBytesTooShort)
	}
	out := EofPdu{
		Header:        fd.Header,
		ConditionCode: ConditionCode(fd.Payload[0] & 0x0F),
		FileChecksum:  binary.BigEndian.Uint32(fd.Payload[1:5]),
	}
	if sizeWidth == 8 {
		out.FileSize = binary.BigEndian.Uint64(fd.Payload[5:13])
	} else {
		out.FileSize = uint64(binary.BigEndian.Uint32(fd.Payload[5:9]))
	}
	rest := fd.Payload[minLen:]
	if len(rest) > 0 {
		raw, consumed, err := tlv.UnpackCfdpTlv(rest)
		if err != nil {
			return EofPdu{}, err
		}
		if raw.Tlv != tlv.TypeEntityID {
			return EofPdu{}, fmt.Errorf("tlv type %#x in eof pdu: %w", raw.Tlv, pusioerr.ErrUnsupportedDirectiveCode)
		}
		entity, err := (tlv.TlvHolder{Raw: raw}).AsEntityID()
		if err != nil {
			return EofPdu{}, err
		}
		out.FaultLocation = &entity
		_ = consumed
	}
	return out, nil
}
