// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verification

import (
	"errors"
	"reflect"
	"testing"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pus"
	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

func TestReport_PackUnpack_AcceptanceSuccess(t *testing.T) {
	r := Report{Subservice: AcceptanceSuccess, RequestID: pus.RequestID{0x18, 0xEF, 0xC0, 0x16}}
	b, err := r.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if len(b) != 4 {
		t.Fatalf("len(Pack()) = %d; want 4", len(b))
	}
	got, err := Unpack(b, AcceptanceSuccess, UnpackParams{})
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Errorf("round trip = %+v; want %+v", got, r)
	}
}

func TestReport_PackUnpack_StepFailure(t *testing.T) {
	r := Report{
		Subservice: StepFailure,
		RequestID:  pus.RequestID{1, 2, 3, 4},
		StepID:     &PacketFieldEnum{Width: 1, Value: 3},
		FailureNotice: &FailureNotice{
			ErrorCode: PacketFieldEnum{Width: 2, Value: 0xBEEF},
			ErrorData: []byte{0xAA, 0xBB},
		},
	}
	b, err := r.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	// request_id(4) + step_id(1) + error_code(2) + error_data(2) = 9
	if len(b) != 9 {
		t.Fatalf("len(Pack()) = %d; want 9", len(b))
	}
	got, err := Unpack(b, StepFailure, UnpackParams{BytesErrCode: 2, BytesStepID: 1})
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Errorf("round trip = %+v; want %+v", got, r)
	}
}

func TestReport_Pack_StepMissingStepID(t *testing.T) {
	r := Report{Subservice: StepSuccess, RequestID: pus.RequestID{1, 2, 3, 4}}
	if _, err := r.Pack(); err == nil {
		t.Fatalf("Pack() error = nil; want non-nil")
	}
}

func TestPacketFieldEnum_Pack_Overflow(t *testing.T) {
	p := PacketFieldEnum{Width: 1, Value: 0x100}
	if _, err := p.Pack(); !errors.Is(err, pusioerr.ErrFieldOverflow) {
		t.Errorf("err = %v; want ErrFieldOverflow", err)
	}
}

func TestPacketFieldEnum_Pack_InvalidWidth(t *testing.T) {
	p := PacketFieldEnum{Width: 3, Value: 1}
	if _, err := p.Pack(); !errors.Is(err, pusioerr.ErrFieldOverflow) {
		t.Errorf("err = %v; want ErrFieldOverflow", err)
	}
}

func TestUnpack_BytesTooShort(t *testing.T) {
	if _, err := Unpack([]byte{1, 2, 3}, AcceptanceSuccess, UnpackParams{}); !errors.Is(err, pusioerr.ErrBytesTooShort) {
		t.Errorf("err = %v; want ErrBytesTooShort", err)
	}
}

func TestPacketFieldEnum_8ByteRoundTrip(t *testing.T) {
	p := PacketFieldEnum{Width: 8, Value: 0x0102030405060708}
	b, err := p.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	got, err := UnpackPacketFieldEnum(b, 8)
	if err != nil {
		t.Fatalf("UnpackPacketFieldEnum() error = %v", err)
	}
	if got != p {
		t.Errorf("round trip = %+v; want %+v", got, p)
	}
}
