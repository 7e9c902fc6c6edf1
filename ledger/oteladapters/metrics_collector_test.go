package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger/oteladapters"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))

	// act
	collector.RecordDuration("ledger_query_duration_seconds", 150*time.Millisecond, map[string]string{"operation": "find_book"})

	// assert
	resourceMetrics := collect(t, reader)
	histogram, ok := findMetric(resourceMetrics, "ledger_query_duration_seconds").(metricdata.Histogram[float64])
	require.True(t, ok, "duration should be a histogram")
	require.Len(t, histogram.DataPoints, 1, "Expected exactly one data point")
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001, "duration should be recorded in seconds")

	value, found := histogram.DataPoints[0].Attributes.Value("operation")
	assert.True(t, found, "operation label should be an attribute")
	assert.Equal(t, "find_book", value.AsString(), "operation label should be kept")
}

func Test_MetricsCollector_IncrementCounterContext(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	labels := map[string]string{"command_type": "CreateLoan"}

	// act
	collector.IncrementCounterContext(context.Background(), "commandhandler_handle_calls_total", labels)
	collector.IncrementCounter("commandhandler_handle_calls_total", labels)

	// assert
	sum, ok := findMetric(collect(t, reader), "commandhandler_handle_calls_total").(metricdata.Sum[int64])
	require.True(t, ok, "counter should be a sum")
	require.Len(t, sum.DataPoints, 1, "same labels should share one data point")
	assert.Equal(t, int64(2), sum.DataPoints[0].Value, "counter should be incremented twice")
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))

	// act
	collector.RecordValue("ledger_rows_returned", 7, nil)

	// assert
	gauge, ok := findMetric(collect(t, reader), "ledger_rows_returned").(metricdata.Gauge[float64])
	require.True(t, ok, "value should be a gauge")
	require.Len(t, gauge.DataPoints, 1, "Expected exactly one data point")
	assert.Equal(t, 7.0, gauge.DataPoints[0].Value, "value should be recorded")
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics), "collecting metrics should work")

	return resourceMetrics
}

func findMetric(resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Aggregation {
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m.Data
			}
		}
	}

	return nil
}
