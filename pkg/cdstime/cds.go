// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cdstime implements the CCSDS Day Segmented (CDS) short timestamp,
// the 7-byte time code carried in PUS secondary headers.
package cdstime

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// Len is the fixed wire size of a Short timestamp.
const Len = 7

// pFieldCDS is the low nibble of p_field identifying the CDS time code, per
// CCSDS 301.0-B-4 table 3-3.
const pFieldCDS = 0b0100

// Epoch is the CCSDS-default day epoch, 1958-01-01 (TAI).
var Epoch = time.Date(1958, time.January, 1, 0, 0, 0, 0, time.UTC)

// Clock is the sole external collaborator this package accepts: an
// injectable wall-clock source. Production embedders pass time.Now;
// callers that need determinism (tests, replay tooling) pass a fixed-time
// stub. The package itself never calls time.Now directly.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Short is the 7-byte CDS short timestamp: [p_field:1][days:2 BE][ms_of_day:4 BE].
type Short struct {
	PField       uint8
	DaysFromEpoch uint16
	MsOfDay      uint32
}

// NewFromClock builds a Short timestamp reflecting clock.Now(), relative to
// Epoch.
func NewFromClock(clock Clock) Short {
	return NewFromTime(clock.Now())
}

// NewFromTime builds a Short timestamp for the given instant, relative to
// Epoch. Days and milliseconds-of-day wrap silently past the 16-bit/32-bit
// range, matching the wire format's fixed width (callers needing longer
// baselines use the CDS *long* variant, out of this module's scope).
func NewFromTime(t time.Time) Short {
	t = t.UTC()
	days := uint16(t.Sub(Epoch).Hours() / 24)
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	ms := uint32(t.Sub(midnight).Milliseconds())
	return Short{PField: pFieldCDS, DaysFromEpoch: days, MsOfDay: ms}
}

// Pack encodes s as its 7-byte wire representation.
func (s Short) Pack() []byte {
	b := make([]byte, Len)
	b[0] = s.PField
	binary.BigEndian.PutUint16(b[1:3], s.DaysFromEpoch)
	binary.BigEndian.PutUint32(b[3:7], s.MsOfDay)
	return b
}

// Unpack decodes the first Len bytes of b into a Short timestamp.
func Unpack(b []byte) (Short, error) {
	if len(b) < Len {
		return Short{}, fmt.Errorf("need %d bytes for CDS short timestamp, got %d: %w", Len, len(b), pusioerr.ErrBytesTooShort)
	}
	return Short{
		PField:        b[0],
		DaysFromEpoch: binary.BigEndian.Uint16(b[1:3]),
		MsOfDay:       binary.BigEndian.Uint32(b[3:7]),
	}, nil
}

// IsExtended reports whether the extension flag (p_field high bit) is set.
func (s Short) IsExtended() bool {
	return s.PField&0x80 != 0
}

// TimeCodeID returns the low nibble of p_field identifying the time code.
func (s Short) TimeCodeID() uint8 {
	return s.PField & 0x0F
}
