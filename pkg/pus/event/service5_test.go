// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"errors"
	"reflect"
	"testing"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

func TestReport_PackUnpack_RoundTrip(t *testing.T) {
	for _, sev := range []Severity{SeverityInfo, SeverityLow, SeverityMedium, SeverityHigh} {
		r := Report{Severity: sev, EventID: 0xBEEF, ParamValues: []byte{1, 2, 3}}
		b := r.Pack()
		got, err := UnpackReport(b, SubserviceForSeverity(sev))
		if err != nil {
			t.Fatalf("UnpackReport() error = %v", err)
		}
		if !reflect.DeepEqual(got, r) {
			t.Errorf("severity %d: round trip = %+v; want %+v", sev, got, r)
		}
	}
}

func TestSeverityFromSubservice_OutOfRange(t *testing.T) {
	if _, err := SeverityFromSubservice(5); !errors.Is(err, pusioerr.ErrWrongSubservice) {
		t.Errorf("err = %v; want ErrWrongSubservice", err)
	}
	if _, err := SeverityFromSubservice(0); !errors.Is(err, pusioerr.ErrWrongSubservice) {
		t.Errorf("err = %v; want ErrWrongSubservice", err)
	}
}

func TestUnpackReport_BytesTooShort(t *testing.T) {
	if _, err := UnpackReport([]byte{0x01}, uint8(SeverityInfo)); !errors.Is(err, pusioerr.ErrBytesTooShort) {
		t.Errorf("err = %v; want ErrBytesTooShort", err)
	}
}
