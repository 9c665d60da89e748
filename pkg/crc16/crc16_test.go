// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crc16

import "testing"

func TestCompute(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want uint16
	}{
		{"empty", []byte{}, 0xFFFF},
		{"123456789", []byte("123456789"), 0x29B1}, // CRC-16/CCITT-FALSE check value
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Compute(tc.data); got != tc.want {
				t.Errorf("Compute(%q) = %#04x; want %#04x", tc.data, got, tc.want)
			}
		})
	}
}

func TestAppendChecksum_ClosesPacket(t *testing.T) {
	packets := [][]byte{
		{},
		{0x00},
		{0x20, 0x00, 0x02, 0x11, 0x00, 0x00, 0x00},
		[]byte("hello, spacecraft"),
	}
	for _, p := range packets {
		closed := AppendChecksum(append([]byte{}, p...))
		if got := Compute(closed); got != 0 {
			t.Errorf("Compute(AppendChecksum(%v)) = %#04x; want 0", p, got)
		}
	}
}

func TestPutUint16(t *testing.T) {
	got := PutUint16([]byte{0xAA}, 0x1234)
	want := []byte{0xAA, 0x12, 0x34}
	if len(got) != len(want) {
		t.Fatalf("PutUint16 = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PutUint16[%d] = %#02x; want %#02x", i, got[i], want[i])
		}
	}
}
