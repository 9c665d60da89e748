// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfdp

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

func defaultHeader(dataLength uint16) PduHeader {
	return PduHeader{
		Version:       1,
		PduType:       PduTypeFileDirective,
		PduDataLength: dataLength,
		LenEntityID:   1,
		LenSeqNumber:  1,
	}
}

func TestPduHeader_PackUnpack_RoundTrip(t *testing.T) {
	h := PduHeader{
		Version:              1,
		PduType:              PduTypeFileData,
		Direction:            DirectionTowardSender,
		TransmissionMode:     TransmissionModeAcknowledged,
		CrcFlag:              true,
		LargeFileFlag:        true,
		PduDataLength:        0x1234,
		SegmentationControl:  1,
		LenEntityID:          2,
		SegmentMetadataFlag:  1,
		LenSeqNumber:         4,
		SourceEntityID:       0xABCD,
		TransactionSeqNumber: 0x11223344,
		DestEntityID:         0xBEEF,
	}
	b, err := h.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if len(b) != h.HeaderLen() {
		t.Fatalf("len(Pack()) = %d; want %d", len(b), h.HeaderLen())
	}
	got, headerLen, err := UnpackPduHeader(b)
	if err != nil {
		t.Fatalf("UnpackPduHeader() error = %v", err)
	}
	if headerLen != len(b) {
		t.Errorf("headerLen = %d; want %d", headerLen, len(b))
	}
	if !reflect.DeepEqual(got, h) {
		t.Errorf("round trip = %+v; want %+v", got, h)
	}
}

func TestPduHeader_S1Header(t *testing.T) {
	h := defaultHeader(2)
	b, err := h.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	want := []byte{0x20, 0x00, 0x02, 0x11, 0x00, 0x00, 0x00}
	if !bytes.Equal(b, want) {
		t.Errorf("header bytes = % x; want % x", b, want)
	}
}

func TestPduHeader_BytesTooShort(t *testing.T) {
	if _, _, err := UnpackPduHeader([]byte{1, 2, 3}); !errors.Is(err, pusioerr.ErrBytesTooShort) {
		t.Errorf("err = %v; want ErrBytesTooShort", err)
	}
}

func TestPduHeader_WidthOverflow(t *testing.T) {
	h := PduHeader{LenEntityID: 1, LenSeqNumber: 1, SourceEntityID: 0x100}
	if _, err := h.Pack(); !errors.Is(err, pusioerr.ErrFieldOverflow) {
		t.Errorf("err = %v; want ErrFieldOverflow", err)
	}
}
