package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRecords(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var r map[string]any
		require.NoError(t, json.Unmarshal(line, &r))
		records = append(records, r)
	}
	return records
}

func TestAggregatorStopFlushesSummaries(t *testing.T) {
	var buf bytes.Buffer
	agg := NewAggregator(slog.New(slog.NewJSONHandler(&buf, nil)), 60)
	agg.Start()

	agg.Record(CompDial, "render")
	agg.Record(CompDial, "render")
	agg.Record(CompDial, "activate", slog.String("option", "low"))
	agg.Record(CompDial, "render")
	agg.Stop()

	counts := map[string]float64{}
	for _, r := range parseRecords(t, buf.Bytes()) {
		assert.Equal(t, "event_summary", r["msg"])
		counts[r["event"].(string)] = r["count"].(float64)
		if r["event"] == "activate" {
			assert.Equal(t, "low", r["option"])
		}
	}
	assert.Equal(t, map[string]float64{"render": 3, "activate": 1}, counts)
}

func TestAggregatorPeriodicFlush(t *testing.T) {
	var buf syncBuffer
	agg := NewAggregator(slog.New(slog.NewJSONHandler(&buf, nil)), 1)
	agg.Start()
	defer agg.Stop()

	agg.Record(CompUI, "resize")
	assert.Eventually(t, func() bool {
		return bytes.Contains(buf.Bytes(), []byte("resize"))
	}, 3*time.Second, 50*time.Millisecond)
}

func TestAggregatorTotalSurvivesFlush(t *testing.T) {
	agg := NewAggregator(nil, 60)
	agg.Record(CompDial, "activate")
	agg.flush()
	agg.Record(CompDial, "activate")

	assert.Equal(t, int64(2), agg.Total(CompDial, "activate"))
	assert.Equal(t, int64(0), agg.Total(CompDial, "render"))

	agg.Stop()
	agg.Stop()
}

func TestAggregatorSummariesAreOrderedAndCarryTotals(t *testing.T) {
	var buf bytes.Buffer
	agg := NewAggregator(slog.New(slog.NewJSONHandler(&buf, nil)), 60)

	agg.Record(CompUI, "resize")
	agg.Record(CompDial, "render")
	agg.Record(CompDial, "activate")
	agg.flush()

	var order []string
	for _, r := range parseRecords(t, buf.Bytes()) {
		order = append(order, r["component"].(string)+"/"+r["event"].(string))
	}
	assert.Equal(t, []string{"dial/activate", "dial/render", "ui/resize"}, order)

	buf.Reset()
	agg.flush()
	assert.Empty(t, buf.Bytes(), "quiet interval writes nothing")

	agg.Record(CompDial, "render")
	agg.Stop()
	records := parseRecords(t, buf.Bytes())
	require.Len(t, records, 1)
	assert.Equal(t, float64(1), records[0]["count"])
	assert.Equal(t, float64(2), records[0]["total"])
}
