// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfdp

import (
	"reflect"
	"testing"

	"github.com/oss-spaceflight/spacepackets-go/pkg/cfdp/tlv"
)

func TestEofPdu_PackUnpack_RoundTrip_SmallFile(t *testing.T) {
	e := EofPdu{
		Header:        defaultHeaderForDirective(),
		ConditionCode: ConditionNoError,
		FileChecksum:  0xDEADBEEF,
		FileSize:      1024,
	}
	b, err := e.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	got, err := UnpackEofPdu(b)
	if err != nil {
		t.Fatalf("UnpackEofPdu() error = %v", err)
	}
	got.Header.PduDataLength = e.Header.PduDataLength
	if !reflect.DeepEqual(got, e) {
		t.Errorf("round trip = %+v; want %+v", got, e)
	}
}

func TestEofPdu_PackUnpack_RoundTrip_LargeFileWithFault(t *testing.T) {
	h := defaultHeaderForDirective()
	h.LargeFileFlag = true
	fault := tlv.EntityIDTlv{ID: []byte{0x01, 0x02}}
	e := EofPdu{
		Header:        h,
		ConditionCode: ConditionFileChecksumFailure,
		FileChecksum:  0x12345678,
		FileSize:      1 << 40,
		FaultLocation: &fault,
	}
	b, err := e.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	got, err := UnpackEofPdu(b)
	if err != nil {
		t.Fatalf("UnpackEofPdu() error = %v", err)
	}
	got.Header.PduDataLength = e.Header.PduDataLength
	if !reflect.DeepEqual(got, e) {
		t.Errorf("round trip = %+v; want %+v", got, e)
	}
}
