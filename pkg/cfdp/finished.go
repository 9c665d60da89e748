// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfdp

import (
	"fmt"

	"github.com/oss-spaceflight/spacepackets-go/pkg/cfdp/tlv"
	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// ConditionCode is the CFDP transaction condition code, carried in the
// high nibble of a Finished PDU's first payload byte (and of an ACK PDU's
// second payload byte); an EOF PDU carries it in the low nibble of its
// first payload byte.
type ConditionCode uint8

const (
	ConditionNoError                 ConditionCode = 0
	ConditionPositiveAckLimitReached  ConditionCode = 1
	ConditionKeepAliveLimitReached    ConditionCode = 2
	ConditionInvalidTransmissionMode  ConditionCode = 3
	ConditionFilestoreRejection       ConditionCode = 4
	ConditionFileChecksumFailure      ConditionCode = 5
	ConditionFileSizeError            ConditionCode = 6
	ConditionNakLimitReached          ConditionCode = 7
	ConditionInactivityDetected       ConditionCode = 8
	ConditionInvalidFileStructure     ConditionCode = 9
	ConditionCheckLimitReached        ConditionCode = 10
	ConditionUnsupportedChecksumType  ConditionCode = 12
	ConditionSuspendRequestReceived   ConditionCode = 14
	ConditionCancelRequestReceived    ConditionCode = 15
)

// DeliveryCode reports whether a file was fully delivered.
type DeliveryCode uint8

const (
	DeliveryDataComplete   DeliveryCode = 0
	DeliveryDataIncomplete DeliveryCode = 1
)

// FileStatus reports what happened to the delivered file at the
// receiving end.
type FileStatus uint8

const (
	FileStatusDiscardedFilestoreRejection FileStatus = 0
	FileStatusDiscardedFilesizeError      FileStatus = 1
	FileStatusRetained                    FileStatus = 2
	FileStatusUnreported                  FileStatus = 3
)

// FinishedPdu reports the outcome of a completed file transfer.
type FinishedPdu struct {
	Header             PduHeader
	ConditionCode      ConditionCode
	DeliveryCode       DeliveryCode
	FileStatus         FileStatus
	FaultLocation      *tlv.EntityIDTlv
	FileStoreResponses []tlv.FileStoreResponseTlv
}

// Pack serializes f as a FileDirectivePdu with directive code Finished.
func (f FinishedPdu) Pack() ([]byte, error) {
	statusByte := uint8(f.ConditionCode)<<4 | uint8(f.DeliveryCode)<<2 | uint8(f.FileStatus)
	payload := []byte{statusByte}
	for _, resp := range f.FileStoreResponses {
		raw, err := resp.Pack()
		if err != nil {
			return nil, err
		}
		b, err := raw.Pack()
		if err != nil {
			return nil, err
		}
		payload = append(payload, b...)
	}
	if f.FaultLocation != nil {
		raw, err := f.FaultLocation.Pack()
		if err != nil {
			return nil, err
		}
		b, err := raw.Pack()
		if err != nil {
			return nil, err
		}
		payload = append(payload, b...)
	}
	fd := FileDirectivePdu{Header: f.Header, DirectiveCode: DirectiveFinished, Payload: payload}
	return fd.Pack()
}

// UnpackFinishedPdu decodes a Finished PDU from b.
func UnpackFinishedPdu(b []byte) (FinishedPdu, error) {
	fd, err := UnpackFileDirectivePdu(b)
	if err != nil {
		return FinishedPdu{}, err
	}
	if fd.DirectiveCode != DirectiveFinished {
		return FinishedPdu{}, fmt.Errorf("directive code %#x: %w", fd.DirectiveCode, pusioerr.ErrUnsupportedDirectiveCode)
	}
	if len(fd.Payload) < 1 {
		return FinishedPdu{}, fmt.Errorf("finished pdu status byte: %w", pusioerr.ErrBytesTooShort)
	}
	statusByte := fd.Payload[0]
	out := FinishedPdu{
		Header:        fd.Header,
		ConditionCode: ConditionCode(statusByte >> 4),
		DeliveryCode:  DeliveryCode((statusByte >> 2) & 0x01),
		FileStatus:    FileStatus(statusByte & 0x03),
	}
	rest := fd.Payload[1:]
	for len(rest) > 0 {
		raw, consumed, err := tlv.UnpackCfdpTlv(rest)
		if err != nil {
			return FinishedPdu{}, err
		}
		holder := tlv.TlvHolder{Raw: raw}
		switch raw.Tlv {
		case tlv.TypeEntityID:
			if out.FaultLocation != nil {
				return FinishedPdu{}, fmt.Errorf("fault_location: %w", pusioerr.ErrDuplicateField)
			}
			entity, err := holder.AsEntityID()
			if err != nil {
				return FinishedPdu{}, err
			}
			out.FaultLocation = &entity
		case tlv.TypeFileStoreResponse:
			resp, err := holder.AsFileStoreResponse()
			if err != nil {
				return FinishedPdu{}, err
			}
			out.FileStoreResponses = append(out.FileStoreResponses, resp)
		default:
			return FinishedPdu{}, fmt.Errorf("tlv type %#x in finished pdu: %w", raw.Tlv, pusioerr.ErrUnsupportedDirectiveCode)
		}
		rest = rest[consumed:]
	}
	return out, nil
}
