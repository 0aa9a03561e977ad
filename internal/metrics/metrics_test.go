package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStory(t *testing.T) {
	before := testutil.ToFloat64(IngestStoriesTotal.WithLabelValues("new"))
	RecordStory("new")
	RecordStory("new")
	assert.Equal(t, before+2, testutil.ToFloat64(IngestStoriesTotal.WithLabelValues("new")))
}

func TestRecordIngestRun(t *testing.T) {
	before := testutil.ToFloat64(IngestRunsTotal.WithLabelValues("success"))
	RecordIngestRun("success", 1.5)
	assert.Equal(t, before+1, testutil.ToFloat64(IngestRunsTotal.WithLabelValues("success")))
	assert.Equal(t, 1, testutil.CollectAndCount(IngestDuration))
}
