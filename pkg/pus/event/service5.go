// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package event implements PUS Service 5 (event reporting). All four
// severities share one wire shape; Severity is derived from the
// subservice number rather than carried in source_data.
package event

import (
	"encoding/binary"
	"fmt"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// ServiceID is the PUS service number for event reporting.
const ServiceID uint8 = 5

// Severity classifies an event report by its PUS subservice number.
type Severity uint8

const (
	SeverityInfo   Severity = 1
	SeverityLow    Severity = 2
	SeverityMedium Severity = 3
	SeverityHigh   Severity = 4
)

// SubserviceForSeverity returns the PUS subservice number for sev.
func SubserviceForSeverity(sev Severity) uint8 {
	return uint8(sev)
}

// SeverityFromSubservice derives a Severity from a Service 5 subservice
// number, erroring if it is not 1-4.
func SeverityFromSubservice(subservice uint8) (Severity, error) {
	if subservice < 1 || subservice > 4 {
		return 0, fmt.Errorf("event subservice %d: %w", subservice, pusioerr.ErrWrongSubservice)
	}
	return Severity(subservice), nil
}

// Report is the content of a Service 5 TM's source_data:
// event_id(u16 BE) ‖ param_values(opaque).
type Report struct {
	Severity    Severity
	EventID     uint16
	ParamValues []byte
}

// Pack encodes r.EventID/r.ParamValues as source data. Severity is not
// part of the wire encoding: it is carried by the enclosing Tm's
// subservice field instead.
func (r Report) Pack() []byte {
	b := make([]byte, 2+len(r.ParamValues))
	binary.BigEndian.PutUint16(b, r.EventID)
	copy(b[2:], r.ParamValues)
	return b
}

// UnpackReport decodes a Report from source data given the subservice it
// arrived under.
func UnpackReport(sourceData []byte, subservice uint8) (Report, error) {
	sev, err := SeverityFromSubservice(subservice)
	if err != nil {
		return Report{}, err
	}
	if len(sourceData) < 2 {
		return Report{}, fmt.Errorf("event report: %w", pusioerr.ErrBytesTooShort)
	}
	paramValues := make([]byte, len(sourceData)-2)
	copy(paramValues, sourceData[2:])
	return Report{
		Severity:    sev,
		EventID:     binary.BigEndian.Uint16(sourceData[:2]),
		ParamValues: paramValues,
	}, nil
}
