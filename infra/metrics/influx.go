package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/pumpflow/core/metrics"
	"github.com/kilianp07/pumpflow/infra/logger"
)

// InfluxSink writes solve results and reservoir traces to an InfluxDB
// instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSolveResult writes the solve summary as a single point.
func (s *InfluxSink) RecordSolveResult(res coremetrics.SolveResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("solve_result").
		AddTag("run_id", res.RunID).
		AddTag("feasible", feasibleTag(res.Feasible)).
		AddField("energy", res.Energy).
		AddField("variables", res.Variables).
		AddField("duration_ms", res.Duration.Milliseconds()).
		AddField("violations", res.Violations).
		AddField("total_flow", res.TotalFlow).
		AddField("total_cost", res.TotalCost).
		SetTime(res.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordReservoirTrace persists the decoded trace as a time series,
// one point per slot.
func (s *InfluxSink) RecordReservoirTrace(points []coremetrics.ReservoirPoint) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, pt := range points {
		p := write.NewPointWithMeasurement("reservoir_level").
			AddTag("run_id", pt.RunID).
			AddField("slot", pt.Slot).
			AddField("level", pt.Level).
			SetTime(pt.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func feasibleTag(ok bool) string {
	if ok {
		return "true"
	}
	return "false"
}
