package spatialindex

import (
	"testing"

	"github.com/mikenye/borderlines/point"
	"github.com/mikenye/borderlines/segment"
	"github.com/stretchr/testify/assert"
)

func TestEnvelopeOfSegment(t *testing.T) {
	s := segment.Segment{A: point.New(5, 0), B: point.New(0, 5)}
	env := EnvelopeOfSegment(s)
	assert.Equal(t, Envelope{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5}, env)
}

func TestIndex_Query_FindsOverlapping(t *testing.T) {
	idx := New()
	guid := segment.GUID(1)
	idx.Insert(guid, Envelope{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})

	hits := idx.Query(Envelope{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15})
	assert.Contains(t, hits, guid)
}

func TestIndex_Query_ExcludesDisjoint(t *testing.T) {
	idx := New()
	guid := segment.GUID(1)
	idx.Insert(guid, Envelope{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})

	hits := idx.Query(Envelope{MinX: 100, MinY: 100, MaxX: 110, MaxY: 110})
	assert.NotContains(t, hits, guid)
}

func TestIndex_RebuildFrom_DropsStaleEntries(t *testing.T) {
	idx := New()
	stale := segment.GUID(1)
	idx.Insert(stale, Envelope{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})

	live := segment.Segment{GUID: segment.GUID(2), A: point.New(20, 20), B: point.New(30, 30)}
	idx.RebuildFrom([]segment.Segment{live})

	hits := idx.Query(Envelope{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	assert.NotContains(t, hits, stale, "rebuild must discard entries not passed in")

	hits = idx.Query(Envelope{MinX: 20, MinY: 20, MaxX: 30, MaxY: 30})
	assert.Contains(t, hits, live.GUID)
}

func TestIndex_Query_DegenerateEnvelope(t *testing.T) {
	idx := New()
	guid := segment.GUID(1)
	// A zero-length segment (both endpoints equal) has a zero-area envelope;
	// the rtreego padding must not make Insert panic.
	idx.Insert(guid, Envelope{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5})

	hits := idx.Query(Envelope{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	assert.Contains(t, hits, guid)
}
