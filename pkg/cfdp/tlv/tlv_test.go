// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tlv

import (
	"bytes"
	"errors"
	"testing"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

func TestCfdpTlv_PackUnpack_RoundTrip(t *testing.T) {
	tl := CfdpTlv{Tlv: TypeEntityID, Value: []byte{0x01, 0x02}}
	b, err := tl.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	got, consumed, err := UnpackCfdpTlv(b)
	if err != nil {
		t.Fatalf("UnpackCfdpTlv() error = %v", err)
	}
	if consumed != len(b) {
		t.Errorf("consumed = %d; want %d", consumed, len(b))
	}
	if got.Tlv != tl.Tlv || !bytes.Equal(got.Value, tl.Value) {
		t.Errorf("round trip = %+v; want %+v", got, tl)
	}
}

func TestFileStoreResponseTlv_S2Sample(t *testing.T) {
	// S2's pinned trailing bytes: tlv_type=0x06, length=0x0B, action=Remove
	// Directory(6)/status=0, first_file_name="test.txt", empty message.
	sample := []byte{0x06, 0x0B, 0x60, 0x08, 0x74, 0x65, 0x73, 0x74, 0x2E, 0x74, 0x78, 0x74, 0x00}
	raw, consumed, err := UnpackCfdpTlv(sample)
	if err != nil {
		t.Fatalf("UnpackCfdpTlv() error = %v", err)
	}
	if consumed != len(sample) {
		t.Fatalf("consumed = %d; want %d", consumed, len(sample))
	}
	resp, err := TlvHolder{Raw: raw}.AsFileStoreResponse()
	if err != nil {
		t.Fatalf("AsFileStoreResponse() error = %v", err)
	}
	if resp.ActionCode != ActionRemoveDirectory {
		t.Errorf("ActionCode = %v; want ActionRemoveDirectory", resp.ActionCode)
	}
	if resp.StatusCode != 0 {
		t.Errorf("StatusCode = %d; want 0", resp.StatusCode)
	}
	if resp.FirstFileName != "test.txt" {
		t.Errorf("FirstFileName = %q; want test.txt", resp.FirstFileName)
	}
	if resp.FilestoreMessage != "" {
		t.Errorf("FilestoreMessage = %q; want empty", resp.FilestoreMessage)
	}
	packed, err := resp.Pack()
	if err != nil {
		t.Fatalf("resp.Pack() error = %v", err)
	}
	b, err := packed.Pack()
	if err != nil {
		t.Fatalf("packed.Pack() error = %v", err)
	}
	if !bytes.Equal(b, sample) {
		t.Errorf("repacked = % x; want % x", b, sample)
	}
}

func TestFileStoreResponseTlv_RenameRequiresSecondName(t *testing.T) {
	resp := FileStoreResponseTlv{ActionCode: ActionRenameFile, FirstFileName: "a"}
	if _, err := resp.Pack(); !errors.Is(err, pusioerr.ErrInvalidTlvLength) {
		t.Errorf("err = %v; want ErrInvalidTlvLength", err)
	}
}

func TestFilestoreRequestTlv_RenameRoundTrip(t *testing.T) {
	req := FilestoreRequestTlv{ActionCode: ActionRenameFile, FirstFileName: "old.txt", SecondFileName: "new.txt"}
	raw, err := req.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	got, err := TlvHolder{Raw: raw}.AsFilestoreRequest()
	if err != nil {
		t.Fatalf("AsFilestoreRequest() error = %v", err)
	}
	if got != req {
		t.Errorf("round trip = %+v; want %+v", got, req)
	}
}

func TestTlvHolder_TypeMismatch(t *testing.T) {
	h := TlvHolder{Raw: CfdpTlv{Tlv: TypeFlowLabel, Value: []byte{0x01}}}
	if _, err := h.AsEntityID(); !errors.Is(err, pusioerr.ErrTlvTypeMismatch) {
		t.Errorf("err = %v; want ErrTlvTypeMismatch", err)
	}
}

func TestMessageToUserTlv_IsReservedCfdpMessage(t *testing.T) {
	m := MessageToUserTlv{Value: []byte("cfdp-proxy-put")}
	if !m.IsReservedCfdpMessage() {
		t.Errorf("IsReservedCfdpMessage() = false; want true")
	}
	m2 := MessageToUserTlv{Value: []byte("opaque")}
	if m2.IsReservedCfdpMessage() {
		t.Errorf("IsReservedCfdpMessage() = true; want false")
	}
}

func TestFaultHandlerOverrideTlv_RoundTrip(t *testing.T) {
	f := FaultHandlerOverrideTlv{ConditionCode: 4, HandlerCode: 2}
	raw, err := f.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	got, err := TlvHolder{Raw: raw}.AsFaultHandlerOverride()
	if err != nil {
		t.Fatalf("AsFaultHandlerOverride() error = %v", err)
	}
	if got != f {
		t.Errorf("round trip = %+v; want %+v", got, f)
	}
}
