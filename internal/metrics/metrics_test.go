// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDispatch(t *testing.T) {
	before := testutil.ToFloat64(DispatchTotal.WithLabelValues("metrics-test", "applied"))

	RecordDispatch("metrics-test", "applied", 15*time.Millisecond)
	RecordDispatch("metrics-test", "applied", 20*time.Millisecond)

	after := testutil.ToFloat64(DispatchTotal.WithLabelValues("metrics-test", "applied"))
	if after-before != 2 {
		t.Errorf("expected dispatch counter to grow by 2, got %v", after-before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/metrics-test", "200"))

	RecordAPIRequest("GET", "/metrics-test", "200", time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/metrics-test", "200"))
	if after-before != 1 {
		t.Errorf("expected api request counter to grow by 1, got %v", after-before)
	}
}
