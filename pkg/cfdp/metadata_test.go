// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfdp

import (
	"reflect"
	"testing"

	"github.com/oss-spaceflight/spacepackets-go/pkg/cfdp/tlv"
)

func TestMetadataPdu_PackUnpack_RoundTrip(t *testing.T) {
	m := MetadataPdu{
		Header:           defaultHeaderForDirective(),
		ClosureRequested: true,
		ChecksumType:     ChecksumModular,
		FileSize:         4096,
		SourceFileName:   "source.bin",
		DestFileName:     "dest.bin",
		MessageToUser:    []tlv.MessageToUserTlv{{Value: []byte("cfdp-proxy")}},
		FilestoreRequests: []tlv.FilestoreRequestTlv{
			{ActionCode: tlv.ActionCreateFile, FirstFileName: "new.txt"},
		},
		FlowLabel: &tlv.FlowLabelTlv{Value: []byte{0x01}},
	}
	b, err := m.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	got, err := UnpackMetadataPdu(b)
	if err != nil {
		t.Fatalf("UnpackMetadataPdu() error = %v", err)
	}
	got.Header.PduDataLength = m.Header.PduDataLength
	if !reflect.DeepEqual(got, m) {
		t.Errorf("round trip = %+v; want %+v", got, m)
	}
}

func TestMetadataPdu_NoOptionTlvs(t *testing.T) {
	m := MetadataPdu{
		Header:         defaultHeaderForDirective(),
		ChecksumType:   ChecksumNull,
		FileSize:       0,
		SourceFileName: "a",
		DestFileName:   "b",
	}
	b, err := m.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	got, err := UnpackMetadataPdu(b)
	if err != nil {
		t.Fatalf("UnpackMetadataPdu() error = %v", err)
	}
	got.Header.PduDataLength = m.Header.PduDataLength
	if !reflect.DeepEqual(got, m) {
		t.Errorf("round trip = %+v; want %+v", got, m)
	}
}
