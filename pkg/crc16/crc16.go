// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crc16 implements CRC-16/CCITT-FALSE, the checksum ECSS PUS-C
// packets carry as their trailing two bytes.
package crc16

// Polynomial, initial value and the absence of any reflection/final-XOR step
// are fixed by the CRC-16/CCITT-FALSE definition: poly 0x1021, init 0xFFFF,
// refin/refout false, xorout 0x0000.
const (
	poly    = 0x1021
	initVal = 0xFFFF
)

var table [256]uint16

func init() {
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
}

// Compute returns the CRC-16/CCITT-FALSE checksum of b.
//
// For any packet P produced by a codec in this module that appends a
// trailing CRC-16, Compute(P) == 0.
func Compute(b []byte) uint16 {
	crc := uint16(initVal)
	for _, by := range b {
		crc = (crc << 8) ^ table[byte(crc>>8)^by]
	}
	return crc
}

// PutUint16 appends the big-endian encoding of v to b and returns the
// extended slice, mirroring encoding/binary.BigEndian.PutUint16 but for
// append-style construction used throughout this module's Pack() methods.
func PutUint16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}

// AppendChecksum computes Compute(b) and appends it to b big-endian,
// returning the extended slice. This is the standard packet-closing step:
// the caller packs every preceding field into b, then calls AppendChecksum
// once at the end.
func AppendChecksum(b []byte) []byte {
	return PutUint16(b, Compute(b))
}
