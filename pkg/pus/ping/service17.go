// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ping implements PUS Service 17 (test), the simplest possible
// PUS service: the subservice says which half of the ping a packet is.
// Only service and subservice are validated; any SourceData (usually
// empty) is packed and unpacked as-is.
package ping

import (
	"fmt"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pus"
	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// ServiceID is the PUS service number for the test service.
const ServiceID uint8 = 17

const (
	SubserviceTcPing  uint8 = 1
	SubserviceTmReply uint8 = 2
)

// ValidateTm checks that t actually belongs to Service 17.
func ValidateTm(t pus.Tm) error {
	if t.SecHeader.Service != ServiceID {
		return fmt.Errorf("service %d: %w", t.SecHeader.Service, pusioerr.ErrWrongService)
	}
	if t.SecHeader.Subservice != SubserviceTmReply {
		return fmt.Errorf("subservice %d: %w", t.SecHeader.Subservice, pusioerr.ErrWrongSubservice)
	}
	return nil
}

// ValidateTc checks that t actually belongs to Service 17.
func ValidateTc(t pus.Tc) error {
	if t.SecHeader.Service != ServiceID {
		return fmt.Errorf("service %d: %w", t.SecHeader.Service, pusioerr.ErrWrongService)
	}
	if t.SecHeader.Subservice != SubserviceTcPing {
		return fmt.Errorf("subservice %d: %w", t.SecHeader.Subservice, pusioerr.ErrWrongSubservice)
	}
	return nil
}

// PackTmReply serializes t after confirming it is a well-formed Service
// 17 TM_REPLY.
func PackTmReply(t pus.Tm) ([]byte, error) {
	if err := ValidateTm(t); err != nil {
		return nil, err
	}
	return t.Pack()
}

// UnpackTmReply decodes a generic Tm from b and confirms it is a Service
// 17 TM_REPLY.
func UnpackTmReply(b []byte, version pus.PusVersion) (pus.Tm, bool, error) {
	t, trailing, err := pus.UnpackTm(b, version)
	if err != nil {
		return pus.Tm{}, false, err
	}
	if err := ValidateTm(t); err != nil {
		return pus.Tm{}, false, err
	}
	return t, trailing, nil
}

// PackTcPing serializes t after confirming it is a well-formed Service 17
// TC_PING.
func PackTcPing(t pus.Tc) ([]byte, error) {
	if err := ValidateTc(t); err != nil {
		return nil, err
	}
	return t.Pack()
}

// UnpackTcPing decodes a generic Tc from b and confirms it is a Service
// 17 TC_PING.
func UnpackTcPing(b []byte) (pus.Tc, bool, error) {
	t, trailing, err := pus.UnpackTc(b)
	if err != nil {
		return pus.Tc{}, false, err
	}
	if err := ValidateTc(t); err != nil {
		return pus.Tc{}, false, err
	}
	return t, trailing, nil
}
