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

// ChecksumType identifies the checksum algorithm used to verify the
// transferred file, carried in the low 4 bits of MetadataPdu's first
// payload byte.
type ChecksumType uint8

const (
	ChecksumModular ChecksumType = 0
	ChecksumNull    ChecksumType = 15
)

// MetadataPdu announces an incoming file transfer: its size, names, and
// any option TLVs (message-to-user, filestore requests, flow label).
type MetadataPdu struct {
	Header            PduHeader
	ClosureRequested  bool
	ChecksumType      ChecksumType
	FileSize          uint64
	SourceFileName    string
	DestFileName      string
	MessageToUser     []tlv.MessageToUserTlv
	FilestoreRequests []tlv.FilestoreRequestTlv
	FlowLabel         *tlv.FlowLabelTlv
}

// Pack serializes m as a FileDirectivePdu with directive code Metadata.
func (m MetadataPdu) Pack() ([]byte, error) {
	payload := []byte{boolBit(m.ClosureRequested)<<6 | uint8(m.ChecksumType)&0x0F}
	if m.Header.LargeFileFlag {
		sizeBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(sizeBytes, m.FileSize)
		payload = append(payload, sizeBytes...)
	} else {
		if m.FileSize > 0xFFFFFFFF {
			return nil, fmt.Errorf("file_size %d overflows 32-bit field: %w", m.FileSize, pusioerr.ErrFieldOverflow)
		}
		sizeBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(sizeBytes, uint32(m.FileSize))
		payload = append(payload, sizeBytes...)
	}
	payload = appendLVString(payload, m.SourceFileName)
	payload = appendLVString(payload, m.DestFileName)
	for _, msg := range m.MessageToUser {
		raw, err := msg.Pack()
		if err != nil {
			return nil, err
		}
		b, err := raw.Pack()
		if err != nil {
			return nil, err
		}
		payload = append(payload, b...)
	}
	for _, req := range m.FilestoreRequests {
		raw, err := req.Pack()
		if err != nil {
			return nil, err
		}
		b, err := raw.Pack()
		if err != nil {
			return nil, err
		}
		payload = append(payload, b...)
	}
	if m.FlowLabel != nil {
		raw, err := m.FlowLabel.Pack()
		if err != nil {
			return nil, err
		}
		b, err := raw.Pack()
		if err != nil {
			return nil, err
		}
		payload = append(payload, b...)
	}
	fd := FileDirectivePdu{Header: m.Header, DirectiveCode: DirectiveMetadata, Payload: payload}
	return fd.Pack()
}

func appendLVString(dst []byte, s string) []byte {
	dst = append(dst, uint8(len(s)))
	return append(dst, []byte(s)...)
}

func readLVString(b []byte) (string, int, error) {
	if len(b) < 1 {
		return "", 0, fmt.Errorf("lv length byte: %w", pusioerr.ErrBytesTooShort)
	}
	length := int(b[0])
	if len(b) < 1+length {
		return "", 0, fmt.Errorf("lv value: %w", pusioerr.ErrBytesTooShort)
	}
	return string(b[1 : 1+length]), 1 + length, nil
}

// UnpackMetadataPdu decodes a Metadata PDU from b.
func UnpackMetadataPdu(b []byte) (MetadataPdu, error) {
	fd, err := UnpackFileDirectivePdu(b)
	if err != nil {
		return MetadataPdu{}, err
	}
	if fd.DirectiveCode != DirectiveMetadata {
		return MetadataPdu{}, fmt.Errorf("directive code %#x: %w", fd.DirectiveCode, pusioerr.ErrUnsupportedDirectiveCode)
	}
	if len(fd.Payload) < 1 {
		return MetadataPdu{}, fmt.Errorf("metadata pdu: %w", pusioerr.ErrBytesTooShort)
	}
	out := MetadataPdu{
		Header:           fd.Header,
		ClosureRequested: fd.Payload[0]&0x40 != 0,
		ChecksumType:     ChecksumType(fd.Payload[0] & 0x0F),
	}
	idx := 1
	sizeWidth := 4
	if fd.Header.LargeFileFlag {
		sizeWidth = 8
	}
	if len(fd.Payload) < idx+sizeWidth {
		return MetadataPdu{}, fmt.Errorf("metadata pdu file_size: %w", pusioerr.ErrBytesTooShort)
	}
	if sizeWidth == 8 {
		out.FileSize = binary.BigEndian.Uint64(fd.Payload[idx : idx+8])
	} else {
		out.FileSize = uint64(binary.BigEndian.Uint32(fd.Payload[idx : idx+4]))
	}
	idx += sizeWidth
	srcName, n, err := readLVString(fd.Payload[idx:])
	if err != nil {
		return MetadataPdu{}, err
	}
	out.SourceFileName = srcName
	idx += n
	destName, n, err := readLVString(fd.Payload[idx:])
	if err != nil {
		return MetadataPdu{}, err
	}
	out.DestFileName = destName
	idx += n

	rest := fd.Payload[idx:]
	for len(rest) > 0 {
		raw, consumed, err := tlv.UnpackCfdpTlv(rest)
		if err != nil {
			return MetadataPdu{}, err
		}
		holder := tlv.TlvHolder{Raw: raw}
		switch raw.Tlv {
		case tlv.TypeMessageToUser:
			msg, err := holder.AsMessageToUser()
			if err != nil {
				return MetadataPdu{}, err
			}
			out.MessageToUser = append(out.MessageToUser, msg)
		case tlv.TypeFilestoreRequest:
			req, err := holder.AsFilestoreRequest()
			if err != nil {
				return MetadataPdu{}, err
			}
			out.FilestoreRequests = append(out.FilestoreRequests, req)
		case tlv.TypeFlowLabel:
			fl, err := holder.AsFlowLabel()
			if err != nil {
				return MetadataPdu{}, err
			}
			out.FlowLabel = &fl
		default:
			return MetadataPdu{}, fmt.Errorf("tlv type %#x in metadata pdu: %w", raw.Tlv, pusioerr.ErrUnsupportedDirectiveCode)
		}
		rest = rest[consumed:]
	}
	return out, nil
}
