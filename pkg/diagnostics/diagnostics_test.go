// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagnostics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestMetrics_RecordPack_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := NewMetrics(reg)
	m.RecordPack("tm")
	m.RecordPack("tm")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	got := findCounterValue(t, mfs, "spacepackets_packs_total", "tm")
	if got != 2 {
		t.Errorf("packs_total{kind=tm} = %v; want 2", got)
	}
}

func TestMetrics_NilReceiver_IsNoop(t *testing.T) {
	var m *Metrics
	m.RecordPack("tm")
	m.RecordUnpack("tm", "ok")
	m.RecordCrcFailure("tm")
	m.RecordTrailingBytes("tm")
}

func TestDump_ContainsFieldName(t *testing.T) {
	type sample struct{ Foo int }
	out := Dump(sample{Foo: 42})
	if !strings.Contains(out, "Foo") {
		t.Errorf("Dump() = %q; want it to mention field Foo", out)
	}
}

func findCounterValue(t *testing.T, mfs []*dto.MetricFamily, name, label string) float64 {
	t.Helper()
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetValue() == label {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{%s} not found", name, label)
	return 0
}
