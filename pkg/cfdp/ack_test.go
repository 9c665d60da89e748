// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfdp

import (
	"reflect"
	"testing"
)

func TestAckPdu_PackUnpack_RoundTrip(t *testing.T) {
	a := AckPdu{
		Header:                  defaultHeaderForDirective(),
		DirectiveCodeOfAckedPdu: DirectiveFinished,
		DirectiveSubtypeCode:    0,
		ConditionCode:           ConditionNoError,
		TransactionStatus:       TransactionStatusTerminated,
	}
	b, err := a.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	got, err := UnpackAckPdu(b)
	if err != nil {
		t.Fatalf("UnpackAckPdu() error = %v", err)
	}
	got.Header.PduDataLength = a.Header.PduDataLength
	if !reflect.DeepEqual(got, a) {
		t.Errorf("round trip = %+v; want %+v", got, a)
	}
}
