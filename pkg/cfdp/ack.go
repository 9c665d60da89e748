// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfdp

import (
	"fmt"

	"github.com/oss-spaceflight/spacepackets-go/pkg/pusioerr"
)

// TransactionStatus reports the receiving entity's view of a transaction
// when acknowledging a directive.
type TransactionStatus uint8

const (
	TransactionStatusUndefined    TransactionStatus = 0
	TransactionStatusActive       TransactionStatus = 1
	TransactionStatusTerminated   TransactionStatus = 2
	TransactionStatusUnrecognized TransactionStatus = 3
)

// AckPdu acknowledges receipt of another file directive PDU (typically
// EOF or Finished). Its packet_len (2 bytes) excludes the shared
// directive_code byte, consistent with how FileDirectivePdu already
// accounts for that byte.
type AckPdu struct {
	Header                  PduHeader
	DirectiveCodeOfAckedPdu DirectiveCode
	DirectiveSubtypeCode    uint8
	ConditionCode           ConditionCode
	TransactionStatus       TransactionStatus
}

// Pack serializes a as a FileDirectivePdu with directive code Ack.
func (a AckPdu) Pack() ([]byte, error) {
	payload := []byte{
		uint8(a.DirectiveCodeOfAckedPdu)<<4 | a.DirectiveSubtypeCode&0x0F,
		uint8(a.ConditionCode)<<4 | uint8(a.TransactionStatus)&0x03,
	}
	fd := FileDirectivePdu{Header: a.Header, DirectiveCode: DirectiveAck, Payload: payload}
	return fd.Pack()
}

// UnpackAckPdu decodes an ACK PDU from b.
func UnpackAckPdu(b []byte) (AckPdu, error) {
	fd, err := UnpackFileDirectivePdu(b)
	if err != nil {
		return AckPdu{}, err
	}
	if fd.DirectiveCode != DirectiveAck {
		return AckPdu{}, fmt.Errorf("directive code %#x: %w", fd.DirectiveCode, pusioerr.ErrUnsupportedDirectiveCode)
	}
	if len(fd.Payload) != 2 {
		return AckPdu{}, fmt.Errorf("ack pdu: %w", pusioerr.ErrBytesTooShort)
	}
	return AckPdu{
		Header:                  fd.Header,
		DirectiveCodeOfAckedPdu: DirectiveCode(fd.Payload[0] >> 4),
		DirectiveSubtypeCode:    fd.Payload[0] & 0x0F,
		ConditionCode:           ConditionCode(fd.Payload[1] >> 4),
		TransactionStatus:       TransactionStatus(fd.Payload[1] & 0x03),
	}, nil
}
