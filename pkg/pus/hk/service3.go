// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hk implements the two PUS Service 3 (housekeeping) source-data
// bodies this module supports: the periodic parameter report and the
// structure definition report. Like pkg/pus/verification and
// pkg/pus/ping, these are thin structural layers over a generic pus.Tm —
// they only know the bytes that belong in SourceData.
package hk

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// ServiceID is the PUS service number for housekeeping.
const ServiceID uint8 = 3

const (
	SubserviceHkReport                  uint8 = 25
	SubserviceDiagnosticReport          uint8 = 26
	SubserviceHkStructureReport         uint8 = 10
	SubserviceDiagnosticStructureReport uint8 = 12
)

// ParameterReport is the periodic (or diagnostic) housekeeping report
// body: source_data = struct_id ‖ param_values.
type ParameterReport struct {
	StructID    uint32
	ParamValues []byte
}

// Pack encodes r as source data.
func (r ParameterReport) Pack() []byte {
	b := make([]byte, 4+len(r.ParamValues))
	binary.BigEndian.PutUint32(b, r.StructID)
	copy(b[4:], r.ParamValues)
	return b
}

// UnpackParameterReport decodes a ParameterReport from source data.
func UnpackParameterReport(sourceData []byte) (ParameterReport, error) {
	if len(sourceData) < 4 {
		return ParameterReport{}, fmt.Errorf("hk parameter report: %w", pusioerr.ErrBytesTooShort)
	}
	paramValues := make([]byte, len(sourceData)-4)
	copy(paramValues, sourceData[4:])
	return ParameterReport{
		StructID:    binary.BigEndian.Uint32(sourceData[:4]),
		ParamValues: paramValues,
	}, nil
}

// StructureReport describes which parameters a housekeeping structure
// collects and at what interval: source_data = struct_id ‖
// collection_interval(float32 BE) ‖ n_param_ids(u16 BE) ‖
// param_ids([]u32 BE).
type StructureReport struct {
	StructID           uint32
	CollectionInterval float32
	ParamIDs           []uint32
}

// Pack encodes r as source data.
func (r StructureReport) Pack() ([]byte, error) {
	if len(r.ParamIDs) > 0xFFFF {
		return nil, fmt.Errorf("n_param_ids %d: %w", len(r.ParamIDs), pusioerr.ErrFieldOverflow)
	}
	b := make([]byte, 4+4+2+4*len(r.ParamIDs))
	binary.BigEndian.PutUint32(b, r.StructID)
	binary.BigEndian.PutUint32(b[4:], math.Float32bits(r.CollectionInterval))
	binary.BigEndian.PutUint16(b[8:], uint16(len(r.ParamIDs)))
	for i, id := range r.ParamIDs {
		binary.BigEndian.PutUint32(b[10+4*i:], id)
	}
	return b, nil
}

// UnpackStructureReport decodes a StructureReport from source data,
// validating that its length matches 4+4+2+4*n_param_ids exactly.
func UnpackStructureReport(sourceData []byte) (StructureReport, error) {
	const headerLen = 4 + 4 + 2
	if len(sourceData) < headerLen {
		return StructureReport{}, fmt.Errorf("hk structure report: %w", pusioerr.ErrBytesTooShort)
	}
	nParamIDs := int(binary.BigEndian.Uint16(sourceData[8:10]))
	want := headerLen + 4*nParamIDs
	if len(sourceData) != want {
		return StructureReport{}, fmt.Errorf("hk structure report: have %d bytes, n_param_ids=%d needs %d: %w", len(sourceData), nParamIDs, want, pusioerr.ErrBytesTooShort)
	}
	paramIDs := make([]uint32, nParamIDs)
	for i := 0; i < nParamIDs; i++ {
		paramIDs[i] = binary.BigEndian.Uint32(sourceData[headerLen+4*i:])
	}
	return StructureReport{
		StructID:           binary.BigEndian.Uint32(sourceData[:4]),
		CollectionInterval: math.Float32frombits(binary.BigEndian.Uint32(sourceData[4:8])),
		ParamIDs:           paramIDs,
	}, nil
}
