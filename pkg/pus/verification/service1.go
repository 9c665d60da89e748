// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package verification implements the PUS Service 1 (verification report)
// source-data layout: a thin structural layer on top of a generic
// pus.Tm — this package only knows how to pack/unpack the bytes that go
// into a Tm's SourceData field for service 1, exactly as spec §4.5
// describes it. Building the surrounding SpacePacketHeader and
// TmSecondaryHeader is the caller's job, the same way
// pkg/core/table/base.go in the teacher library wraps a generic
// core.MethodCall without reimplementing method-call framing itself.
package verification

import (
	"fmt"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pus"
	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// ServiceID is the PUS service number for verification reports.
const ServiceID uint8 = 1

// Subservice enumerates the eight Service 1 report kinds.
type Subservice uint8

const (
	AcceptanceSuccess Subservice = 1
	AcceptanceFailure Subservice = 2
	StartSuccess      Subservice = 3
	StartFailure      Subservice = 4
	StepSuccess       Subservice = 5
	StepFailure       Subservice = 6
	CompletionSuccess Subservice = 7
	CompletionFailure Subservice = 8
)

// IsFailure reports whether s is one of the four failure subservices.
func (s Subservice) IsFailure() bool {
	switch s {
	case AcceptanceFailure, StartFailure, StepFailure, CompletionFailure:
		return true
	}
	return false
}

// IsStep reports whether s is one of the two step subservices.
func (s Subservice) IsStep() bool {
	return s == StepSuccess || s == StepFailure
}

// PacketFieldEnum is a PUS "PFC" (packet field code) numeric value: its
// on-wire width — 1, 2, 4 or 8 bytes — is declared out of band by the
// field it occupies (step_id's width and error_code's width are both
// caller-supplied, per spec §4.5's UnpackParams).
type PacketFieldEnum struct {
	Width uint8 // must be 1, 2, 4 or 8
	Value uint64
}

// Pack encodes p in Width bytes, big-endian.
func (p PacketFieldEnum) Pack() ([]byte, error) {
	switch p.Width {
	case 1:
		if p.Value > 0xFF {
			return nil, fmt.Errorf("value %d overflows 1-byte PFC: %w", p.Value, pusioerr.ErrFieldOverflow)
		}
		return []byte{uint8(p.Value)}, nil
	case 2:
		if p.Value > 0xFFFF {
			return nil, fmt.Errorf("value %d overflows 2-byte PFC: %w", p.Value, pusioerr.ErrFieldOverflow)
		}
		return []byte{uint8(p.Value >> 8), uint8(p.Value)}, nil
	case 4:
		if p.Value > 0xFFFFFFFF {
			return nil, fmt.Errorf("value %d overflows 4-byte PFC: %w", p.Value, pusioerr.ErrFieldOverflow)
		}
		return []byte{uint8(p.Value >> 24), uint8(p.Value >> 16), uint8(p.Value >> 8), uint8(p.Value)}, nil
	case 8:
		b := make([]byte, 8)
		for i := 0; i < 8; i++ {
			b[i] = uint8(p.Value >> (56 - 8*i))
		}
		return b, nil
	default:
		return nil, fmt.Errorf("PFC width %d not in {1,2,4,8}: %w", p.Width, pusioerr.ErrFieldOverflow)
	}
}

// UnpackPacketFieldEnum decodes a width-byte big-endian value from the
// front of b.
func UnpackPacketFieldEnum(b []byte, width uint8) (PacketFieldEnum, error) {
	if width != 1 && width != 2 && width != 4 && width != 8 {
		return PacketFieldEnum{}, fmt.Errorf("PFC width %d not in {1,2,4,8}: %w", width, pusioerr.ErrFieldOverflow)
	}
	if len(b) < int(width) {
		return PacketFieldEnum{}, fmt.Errorf("need %d bytes for PFC field, have %d: %w", width, len(b), pusioerr.ErrBytesTooShort)
	}
	var v uint64
	for i := uint8(0); i < width; i++ {
		v = v<<8 | uint64(b[i])
	}
	return PacketFieldEnum{Width: width, Value: v}, nil
}

// FailureNotice is the error_code + error_data pair carried by the four
// failure subservices.
type FailureNotice struct {
	ErrorCode PacketFieldEnum
	ErrorData []byte
}

// Report is the decoded/to-be-encoded content of a Service 1 TM's
// SourceData field.
type Report struct {
	Subservice    Subservice
	RequestID     pus.RequestID
	StepID        *PacketFieldEnum // only present for step subservices
	FailureNotice *FailureNotice   // only present for failure subservices
}

// Pack encodes r as the bytes that belong in a Tm.SourceData field for
// service 1, subservice r.Subservice.
func (r Report) Pack() ([]byte, error) {
	b := append([]byte{}, r.RequestID[:]...)
	if r.Subservice.IsStep() {
		if r.StepID == nil {
			return nil, fmt.Errorf("step subservice %d requires a StepID: %w", r.Subservice, pusioerr.ErrFieldOverflow)
		}
		stepBytes, err := r.StepID.Pack()
		if err != nil {
			return nil, err
		}
		b = append(b, stepBytes...)
	}
	if r.Subservice.IsFailure() {
		if r.FailureNotice == nil {
			return nil, fmt.Errorf("failure subservice %d requires a FailureNotice: %w", r.Subservice, pusioerr.ErrFieldOverflow)
		}
		codeBytes, err := r.FailureNotice.ErrorCode.Pack()
		if err != nil {
			return nil, err
		}
		b = append(b, codeBytes...)
		b = append(b, r.FailureNotice.ErrorData...)
	}
	return b, nil
}

// UnpackParams supplies the out-of-band field widths spec §4.5 requires:
// Service 1 source data carries no self-describing width for step_id or
// error_code, so the caller must know them ahead of time.
type UnpackParams struct {
	BytesErrCode uint8
	BytesStepID  uint8
}

// Unpack decodes source data into a Report for the given subservice.
func Unpack(sourceData []byte, subservice Subservice, params UnpackParams) (Report, error) {
	const requestIDLen = 4
	if len(sourceData) < requestIDLen {
		return Report{}, fmt.Errorf("service 1 source data: %w", pusioerr.ErrBytesTooShort)
	}
	r := Report{Subservice: subservice}
	copy(r.RequestID[:], sourceData[:requestIDLen])
	idx := requestIDLen
	if subservice.IsStep() {
		step, err := UnpackPacketFieldEnum(sourceData[idx:], params.BytesStepID)
		if err != nil {
			return Report{}, err
		}
		r.StepID = &step
		idx += int(params.BytesStepID)
	}
	if subservice.IsFailure() {
		code, err := UnpackPacketFieldEnum(sourceData[idx:], params.BytesErrCode)
		if err != nil {
			return Report{}, err
		}
		idx += int(params.BytesErrCode)
		errData := make([]byte, len(sourceData)-idx)
		copy(errData, sourceData[idx:])
		r.FailureNotice = &FailureNotice{ErrorCode: code, ErrorData: errData}
	}
	return r, nil
}
