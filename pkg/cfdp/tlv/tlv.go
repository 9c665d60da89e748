// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tlv implements the CFDP type-length-value encoding shared by
// file directive PDU option fields, and the typed-variant pattern
// (CfdpTlv as the generic/"unknown" shape, TlvHolder converting it to
// one of the named option types) this module uses in place of a
// tagged-union dynamic dispatch hierarchy.
package tlv

import (
	"fmt"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// Type is a CFDP TLV type code. This module's numbering matches CCSDS
// 727.0-B-5 Table 5-47 except for FileStoreResponse, which is pinned to
// 0x06 by a wire sample rather than the Blue Book's 0x05 (see DESIGN.md).
type Type uint8

const (
	TypeFilestoreRequest     Type = 0x00
	TypeMessageToUser        Type = 0x02
	TypeFaultHandlerOverride Type = 0x03
	TypeFlowLabel            Type = 0x04
	TypeFileStoreResponse    Type = 0x06
	TypeEntityID             Type = 0x09
)

// CfdpTlv is the generic type+length+value shape every option field
// reduces to: the "unknown variant" and a lowering target when iterating
// a TLV list without caring about its specific type.
type CfdpTlv struct {
	Tlv   Type
	Value []byte
}

// Pack encodes t as tlv_type ‖ length ‖ value.
func (t CfdpTlv) Pack() ([]byte, error) {
	if len(t.Value) > 0xFF {
		return nil, fmt.Errorf("tlv value length %d: %w", len(t.Value), pusioerr.ErrInvalidTlvLength)
	}
	b := make([]byte, 2+len(t.Value))
	b[0] = uint8(t.Tlv)
	b[1] = uint8(len(t.Value))
	copy(b[2:], t.Value)
	return b, nil
}

// UnpackCfdpTlv decodes one TLV from the front of b, returning the TLV and
// the number of bytes it consumed.
func UnpackCfdpTlv(b []byte) (t CfdpTlv, consumed int, err error) {
	if len(b) < 2 {
		return CfdpTlv{}, 0, fmt.Errorf("tlv header: %w", pusioerr.ErrBytesTooShort)
	}
	length := int(b[1])
	if len(b) < 2+length {
		return CfdpTlv{}, 0, fmt.Errorf("tlv value: %w", pusioerr.ErrBytesTooShort)
	}
	value := make([]byte, length)
	copy(value, b[2:2+length])
	return CfdpTlv{Tlv: Type(b[0]), Value: value}, 2 + length, nil
}

// TlvHolder wraps a CfdpTlv and offers fallible conversions to each named
// option-field variant, checking the type code before parsing the value.
type TlvHolder struct {
	Raw CfdpTlv
}

func (h TlvHolder) checkType(want Type) error {
	if h.Raw.Tlv != want {
		return fmt.Errorf("tlv type %#x, want %#x: %w", h.Raw.Tlv, want, pusioerr.ErrTlvTypeMismatch)
	}
	return nil
}

// EntityIDTlv carries an entity identifier, raw-byte form (width implied
// by len(ID), matching the enclosing PDU header's entity-ID length).
type EntityIDTlv struct {
	ID []byte
}

// AsEntityID converts h to an EntityIDTlv.
func (h TlvHolder) AsEntityID() (EntityIDTlv, error) {
	if err := h.checkType(TypeEntityID); err != nil {
		return EntityIDTlv{}, err
	}
	return EntityIDTlv{ID: append([]byte(nil), h.Raw.Value...)}, nil
}

// Pack returns the TLV-framed bytes for e.
func (e EntityIDTlv) Pack() (CfdpTlv, error) {
	return CfdpTlv{Tlv: TypeEntityID, Value: e.ID}, nil
}

// FlowLabelTlv carries an opaque flow label.
type FlowLabelTlv struct {
	Value []byte
}

func (h TlvHolder) AsFlowLabel() (FlowLabelTlv, error) {
	if err := h.checkType(TypeFlowLabel); err != nil {
		return FlowLabelTlv{}, err
	}
	return FlowLabelTlv{Value: append([]byte(nil), h.Raw.Value...)}, nil
}

func (f FlowLabelTlv) Pack() (CfdpTlv, error) {
	return CfdpTlv{Tlv: TypeFlowLabel, Value: f.Value}, nil
}

// MessageToUserTlv carries an opaque application message, with a
// well-known reserved form ("cfdp" ‖ subtype ‖ ...) used by proxy/
// directory-listing operations.
type MessageToUserTlv struct {
	Value []byte
}

func (h TlvHolder) AsMessageToUser() (MessageToUserTlv, error) {
	if err := h.checkType(TypeMessageToUser); err != nil {
		return MessageToUserTlv{}, err
	}
	return MessageToUserTlv{Value: append([]byte(nil), h.Raw.Value...)}, nil
}

func (m MessageToUserTlv) Pack() (CfdpTlv, error) {
	return CfdpTlv{Tlv: TypeMessageToUser, Value: m.Value}, nil
}

// IsReservedCfdpMessage reports whether m's value begins with the
// 4-byte ASCII marker "cfdp" that identifies a reserved CFDP message
// (as opposed to an opaque user message).
func (m MessageToUserTlv) IsReservedCfdpMessage() bool {
	return len(m.Value) >= 4 &&
		m.Value[0] == 'c' && m.Value[1] == 'f' && m.Value[2] == 'd' && m.Value[3] == 'p'
}

// FaultHandlerOverrideTlv overrides the fault handler for one condition
// code: byte 0 = [condition_code:4][handler_code:4].
type FaultHandlerOverrideTlv struct {
	ConditionCode uint8
	HandlerCode   uint8
}

func (h TlvHolder) AsFaultHandlerOverride() (FaultHandlerOverrideTlv, error) {
	if err := h.checkType(TypeFaultHandlerOverride); err != nil {
		return FaultHandlerOverrideTlv{}, err
	}
	if len(h.Raw.Value) != 1 {
		return FaultHandlerOverrideTlv{}, fmt.Errorf("fault handler override value: %w", pusioerr.ErrInvalidTlvLength)
	}
	b := h.Raw.Value[0]
	return FaultHandlerOverrideTlv{ConditionCode: b >> 4, HandlerCode: b & 0x0F}, nil
}

func (f FaultHandlerOverrideTlv) Pack() (CfdpTlv, error) {
	if f.ConditionCode > 0x0F || f.HandlerCode > 0x0F {
		return CfdpTlv{}, fmt.Errorf("fault handler override field: %w", pusioerr.ErrFieldOverflow)
	}
	return CfdpTlv{Tlv: TypeFaultHandlerOverride, Value: []byte{f.ConditionCode<<4 | f.HandlerCode}}, nil
}

// FilestoreRequestTlv carries a requested filestore action, the TC-side
// counterpart of FileStoreResponseTlv: byte 0 =
// [action_code:4][reserved:4], LV first_file_name, optional LV
// second_file_name (iff action_code requires two names).
type FilestoreRequestTlv struct {
	ActionCode     ActionCode
	FirstFileName  string
	SecondFileName string // only meaningful when ActionCode.NeedsSecondName()
}

func (h TlvHolder) AsFilestoreRequest() (FilestoreRequestTlv, error) {
	if err := h.checkType(TypeFilestoreRequest); err != nil {
		return FilestoreRequestTlv{}, err
	}
	return parseFilestoreRequestValue(h.Raw.Value)
}

func parseFilestoreRequestValue(v []byte) (FilestoreRequestTlv, error) {
	if len(v) < 1 {
		return FilestoreRequestTlv{}, fmt.Errorf("filestore request value: %w", pusioerr.ErrBytesTooShort)
	}
	action := ActionCode(v[0] >> 4)
	idx := 1
	first, n, err := readLV(v[idx:])
	if err != nil {
		return FilestoreRequestTlv{}, err
	}
	idx += n
	req := FilestoreRequestTlv{ActionCode: action, FirstFileName: string(first)}
	if action.NeedsSecondName() {
		second, _, err := readLV(v[idx:])
		if err != nil {
			return FilestoreRequestTlv{}, err
		}
		req.SecondFileName = string(second)
	}
	return req, nil
}

func (f FilestoreRequestTlv) Pack() (CfdpTlv, error) {
	if f.ActionCode.NeedsSecondName() && f.SecondFileName == "" {
		return CfdpTlv{}, fmt.Errorf("action code %v requires a second file name: %w", f.ActionCode, pusioerr.ErrInvalidTlvLength)
	}
	value := append([]byte{uint8(f.ActionCode) << 4}, appendLV(nil, f.FirstFileName)...)
	if f.ActionCode.NeedsSecondName() {
		value = appendLV(value, f.SecondFileName)
	}
	return CfdpTlv{Tlv: TypeFilestoreRequest, Value: value}, nil
}

// ActionCode enumerates the filestore request/response actions.
type ActionCode uint8

const (
	ActionCreateFile      ActionCode = 0
	ActionDeleteFile      ActionCode = 1
	ActionRenameFile      ActionCode = 2
	ActionAppendFile      ActionCode = 3
	ActionReplaceFile     ActionCode = 4
	ActionCreateDirectory ActionCode = 5
	ActionRemoveDirectory ActionCode = 6
	ActionDenyFile        ActionCode = 7
	ActionDenyDirectory   ActionCode = 8
)

// NeedsSecondName reports whether a this action carries two file names.
func (a ActionCode) NeedsSecondName() bool {
	return a == ActionRenameFile || a == ActionAppendFile || a == ActionReplaceFile
}

// FileStoreResponseTlv carries the outcome of a requested filestore
// action: byte 0 = [action_code:4][status_code:4], LV first_file_name,
// optional LV second_file_name, LV filestore_message.
type FileStoreResponseTlv struct {
	ActionCode       ActionCode
	StatusCode       uint8
	FirstFileName    string
	SecondFileName   string
	FilestoreMessage string
}

func (h TlvHolder) AsFileStoreResponse() (FileStoreResponseTlv, error) {
	if err := h.checkType(TypeFileStoreResponse); err != nil {
		return FileStoreResponseTlv{}, err
	}
	v := h.Raw.Value
	if len(v) < 1 {
		return FileStoreResponseTlv{}, fmt.Errorf("filestore response value: %w", pusioerr.ErrBytesTooShort)
	}
	action := ActionCode(v[0] >> 4)
	status := v[0] & 0x0F
	idx := 1
	first, n, err := readLV(v[idx:])
	if err != nil {
		return FileStoreResponseTlv{}, err
	}
	idx += n
	resp := FileStoreResponseTlv{ActionCode: action, StatusCode: status, FirstFileName: string(first)}
	if action.NeedsSecondName() {
		second, n2, err := readLV(v[idx:])
		if err != nil {
			return FileStoreResponseTlv{}, err
		}
		idx += n2
		resp.SecondFileName = string(second)
	}
	msg, _, err := readLV(v[idx:])
	if err != nil {
		return FileStoreResponseTlv{}, err
	}
	resp.FilestoreMessage = string(msg)
	return resp, nil
}

func (f FileStoreResponseTlv) Pack() (CfdpTlv, error) {
	if f.StatusCode > 0x0F {
		return CfdpTlv{}, fmt.Errorf("status_code %d: %w", f.StatusCode, pusioerr.ErrFieldOverflow)
	}
	if f.ActionCode.NeedsSecondName() && f.SecondFileName == "" {
		return CfdpTlv{}, fmt.Errorf("action code %v requires a second file name: %w", f.ActionCode, pusioerr.ErrInvalidTlvLength)
	}
	value := append([]byte{uint8(f.ActionCode)<<4 | f.StatusCode}, appendLV(nil, f.FirstFileName)...)
	if f.ActionCode.NeedsSecondName() {
		value = appendLV(value, f.SecondFileName)
	}
	value = appendLV(value, f.FilestoreMessage)
	return CfdpTlv{Tlv: TypeFileStoreResponse, Value: value}, nil
}

func readLV(b []byte) (value []byte, consumed int, err error) {
	if len(b) < 1 {
		return nil, 0, fmt.Errorf("lv length byte: %w", pusioerr.ErrBytesTooShort)
	}
	length := int(b[0])
	if len(b) < 1+length {
		return nil, 0, fmt.Errorf("lv value: %w", pusioerr.ErrBytesTooShort)
	}
	out := make([]byte, length)
	copy(out, b[1:1+length])
	return out, 1 + length, nil
}

func appendLV(dst []byte, s string) []byte {
	dst = append(dst, uint8(len(s)))
	return append(dst, []byte(s)...)
}
