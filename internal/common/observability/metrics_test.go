package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestObservability(t *testing.T) (*Observability, *promclient.Registry, *tracetest.SpanRecorder) {
	t.Helper()
	reg := promclient.NewRegistry()
	recorder := tracetest.NewSpanRecorder()
	o := New("studio-growth-test", WithRegisterer(reg), WithSpanProcessor(recorder), WithoutGlobal())
	t.Cleanup(o.Shutdown)
	return o, reg, recorder
}

func TestObservability_RecordsMetrics(t *testing.T) {
	o, reg, _ := newTestObservability(t)
	ctx := context.Background()

	o.RecordProjection(ctx, "ideal_fit")
	o.RecordEnquiry(ctx, "sent")
	o.RecordSendDuration(ctx, "resend", 120*time.Millisecond, "ok")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["growth_lab_projections_total"], "families: %v", names)
	assert.True(t, names["enquiries_processed_total"], "families: %v", names)

	histogram := false
	for name := range names {
		if strings.HasPrefix(name, "enquiries_send_duration") {
			histogram = true
		}
	}
	assert.True(t, histogram, "families: %v", names)
}

func TestObservability_StartSpan(t *testing.T) {
	o, _, recorder := newTestObservability(t)

	_, span := o.StartSpan(context.Background(), "enquiry.send", attribute.String("provider", "resend"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "enquiry.send", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("provider", "resend"))
}

func TestObservability_NilSafe(t *testing.T) {
	var o *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		o.RecordProjection(ctx, "foundational")
		o.RecordEnquiry(ctx, "failed")
		o.RecordSendDuration(ctx, "ses", time.Second, "error")
		_, span := o.StartSpan(ctx, "noop")
		span.End()
		o.Shutdown()
	})
}
