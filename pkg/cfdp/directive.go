// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfdp

import (
	"fmt"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// DirectiveCode identifies which file directive PDU a payload holds.
type DirectiveCode uint8

const (
	DirectiveEOF       DirectiveCode = 0x04
	DirectiveFinished  DirectiveCode = 0x05
	DirectiveAck       DirectiveCode = 0x06
	DirectiveMetadata  DirectiveCode = 0x07
	DirectiveNak       DirectiveCode = 0x08
	DirectivePrompt    DirectiveCode = 0x09
	DirectiveKeepAlive DirectiveCode = 0x0C
)

// FileDirectivePdu is the generic file directive PDU shape every
// directive-specific type (FinishedPdu, MetadataPdu, EofPdu, AckPdu)
// reduces to: a PduHeader, a one-byte directive code, and the directive's
// own payload bytes. pdu_data_length is always 1 (directive code) plus
// len(Payload).
type FileDirectivePdu struct {
	Header        PduHeader
	DirectiveCode DirectiveCode
	Payload       []byte
}

// Pack serializes d, recomputing Header.PduDataLength from Payload.
func (d FileDirectivePdu) Pack() ([]byte, error) {
	h := d.Header
	h.PduType = PduTypeFileDirective
	dataLen := 1 + len(d.Payload)
	if dataLen > 0xFFFF {
		return nil, fmt.Errorf("pdu_data_length %d: %w", dataLen, pusioerr.ErrFieldOverflow)
	}
	h.PduDataLength = uint16(dataLen)
	headerBytes, err := h.Pack()
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, len(headerBytes)+1+len(d.Payload))
	b = append(b, headerBytes...)
	b = append(b, uint8(d.DirectiveCode))
	b = append(b, d.Payload...)
	return b, nil
}

// UnpackFileDirectivePdu decodes a generic file directive PDU from b.
func UnpackFileDirectivePdu(b []byte) (FileDirectivePdu, error) {
	h, headerLen, err := UnpackPduHeader(b)
	if err != nil {
		return FileDirectivePdu{}, err
	}
	total := headerLen + int(h.PduDataLength)
	if len(b) < total {
		return FileDirectivePdu{}, fmt.Errorf("file directive pdu: %w", pusioerr.ErrBytesTooShort)
	}
	if h.PduDataLength < 1 {
		return FileDirectivePdu{}, fmt.Errorf("file directive pdu missing directive code: %w", pusioerr.ErrBytesTooShort)
	}
	payload := make([]byte, int(h.PduDataLength)-1)
	copy(payload, b[headerLen+1:total])
	return FileDirectivePdu{
		Header:        h,
		DirectiveCode: DirectiveCode(b[headerLen]),
		Payload:       payload,
	}, nil
}
