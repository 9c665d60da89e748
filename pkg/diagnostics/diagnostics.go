// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diagnostics holds optional observability hooks an embedder can
// report codec activity through: Prometheus counters for pack/unpack
// activity, CRC failures and trailing-bytes warnings, plus a go-spew dump
// helper for ad hoc debugging. No codec package calls into it; the
// embedder records events itself (for example when UnpackTm returns
// trailing == true). Every Metrics method is a nil-safe no-op when the
// embedder never constructs a Metrics value, matching the propagation
// policy that the core performs no logging beyond optional diagnostic
// hooks.
package diagnostics

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks Prometheus counters for this module's codec activity.
// All metrics use the spacepackets_ prefix.
type Metrics struct {
	PacksTotal         *prometheus.CounterVec
	UnpacksTotal       *prometheus.CounterVec
	CrcFailuresTotal   *prometheus.CounterVec
	TrailingBytesTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the counters against reg (typically
// prometheus.DefaultRegisterer). Panics if registration fails, which is
// only expected to happen during process initialization.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacepackets_packs_total",
				Help: "Total Pack() calls by codec kind",
			},
			[]string{"kind"},
		),
		UnpacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacepackets_unpacks_total",
				Help: "Total Unpack() calls by codec kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		CrcFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacepackets_crc_failures_total",
				Help: "Total CRC-16 validation failures by codec kind",
			},
			[]string{"kind"},
		),
		TrailingBytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacepackets_trailing_bytes_total",
				Help: "Total decodes that found more bytes than data_length indicated",
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(m.PacksTotal, m.UnpacksTotal, m.CrcFailuresTotal, m.TrailingBytesTotal)
	return m
}

// RecordPack increments the pack counter for kind.
func (m *Metrics) RecordPack(kind string) {
	if m == nil {
		return
	}
	m.PacksTotal.WithLabelValues(kind).Inc()
}

// RecordUnpack increments the unpack counter for kind/outcome (typically
// "ok" or "error").
func (m *Metrics) RecordUnpack(kind, outcome string) {
	if m == nil {
		return
	}
	m.UnpacksTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordCrcFailure increments the CRC-failure counter for kind.
func (m *Metrics) RecordCrcFailure(kind string) {
	if m == nil {
		return
	}
	m.CrcFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordTrailingBytes increments the trailing-bytes counter for kind.
func (m *Metrics) RecordTrailingBytes(kind string) {
	if m == nil {
		return
	}
	m.TrailingBytesTotal.WithLabelValues(kind).Inc()
}

// NullMetrics returns nil, which acts as a no-op Metrics collector: every
// Metrics method tolerates a nil receiver.
func NullMetrics() *Metrics {
	return nil
}

// Dump renders v with go-spew, for use in tests and ad hoc debugging of
// decoded packet structures — never on a production logging path.
func Dump(v interface{}) string {
	return spew.Sdump(v)
}
