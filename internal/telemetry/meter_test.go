package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestNewMeterProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		opts          []MeterProviderOption
		expectNoOp    bool
		expectHandler bool
	}{
		{
			name:       "returns no-op provider when no config provided",
			opts:       []MeterProviderOption{},
			expectNoOp: true,
		},
		{
			name: "returns no-op provider when metrics disabled",
			opts: []MeterProviderOption{
				WithMetricsConfig(&MetricsConfig{
					Enabled: false,
				}),
			},
			expectNoOp: true,
		},
		{
			name: "returns SDK provider when metrics enabled",
			opts: []MeterProviderOption{
				WithMetricsConfig(&MetricsConfig{
					Enabled: true,
				}),
				WithMeterInsecure(true),
			},
			expectNoOp: false,
		},
		{
			name: "returns scrape handler in prometheus mode",
			opts: []MeterProviderOption{
				WithMetricsConfig(&MetricsConfig{
					Enabled: true,
					Mode:    ModePrometheus,
				}),
			},
			expectNoOp:    false,
			expectHandler: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			mp, handler, err := NewMeterProvider(ctx, tt.opts...)

			require.NoError(t, err)
			require.NotNil(t, mp)

			if tt.expectHandler {
				assert.NotNil(t, handler)
			} else {
				assert.Nil(t, handler)
			}

			if tt.expectNoOp {
				_, ok := mp.(noop.MeterProvider)
				assert.True(t, ok, "expected no-op meter provider")
			} else {
				sdkMP, ok := mp.(*sdkmetric.MeterProvider)
				assert.True(t, ok, "expected SDK meter provider")

				// Shutdown errors are expected without a collector running
				if sdkMP != nil {
					_ = sdkMP.Shutdown(ctx)
				}
			}
		})
	}
}

func TestMeterProviderOptions(t *testing.T) {
	t.Parallel()

	cfg := &meterProviderConfig{}

	WithMeterServiceName("grocery-sync-test")(cfg)
	WithMeterServiceVersion("1.2.3")(cfg)
	WithMeterEndpoint("otel-collector:4318")(cfg)
	WithMeterInsecure(true)(cfg)

	assert.Equal(t, "grocery-sync-test", cfg.serviceName)
	assert.Equal(t, "1.2.3", cfg.serviceVersion)
	assert.Equal(t, "otel-collector:4318", cfg.endpoint)
	assert.True(t, cfg.insecure)
}

func TestMetricsConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *MetricsConfig
		wantErr bool
	}{
		{name: "nil config is valid", cfg: nil},
		{name: "disabled config is valid", cfg: &MetricsConfig{Enabled: false, Mode: "bogus"}},
		{name: "default mode is valid", cfg: &MetricsConfig{Enabled: true}},
		{name: "otlp mode is valid", cfg: &MetricsConfig{Enabled: true, Mode: ModeOTLP}},
		{name: "prometheus mode is valid", cfg: &MetricsConfig{Enabled: true, Mode: ModePrometheus}},
		{name: "unknown mode is rejected", cfg: &MetricsConfig{Enabled: true, Mode: "statsd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
