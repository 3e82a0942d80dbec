package segment

import (
	"testing"

	"github.com/mikenye/borderlines/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Insert(t *testing.T) {
	s := New()
	line := s.AllocateLineID()

	guid := s.Insert(0, NoOwner, line, point.New(0, 0), point.New(1, 1))
	assert.Equal(t, GUID(1), guid)

	seg, ok := s.Get(guid)
	require.True(t, ok)
	assert.Equal(t, 0, seg.Owner1)
	assert.Equal(t, NoOwner, seg.Owner2)
	assert.False(t, seg.Shared())
	assert.Equal(t, line, seg.LineID)
	assert.False(t, seg.Removed)
}

func TestStore_Insert_SharedSegment(t *testing.T) {
	s := New()
	line := s.AllocateLineID()

	guid := s.Insert(0, 1, line, point.New(0, 0), point.New(1, 1))
	seg, ok := s.Get(guid)
	require.True(t, ok)
	assert.True(t, seg.Shared())

	assert.ElementsMatch(t, []GUID{guid}, guidsOf(s.SegmentsOfFeature(0)))
	assert.ElementsMatch(t, []GUID{guid}, guidsOf(s.SegmentsOfFeature(1)))
}

func TestStore_Get_UnknownGUID(t *testing.T) {
	s := New()
	_, ok := s.Get(GUID(1))
	assert.False(t, ok)

	line := s.AllocateLineID()
	s.Insert(0, NoOwner, line, point.New(0, 0), point.New(1, 1))

	_, ok = s.Get(GUID(0))
	assert.False(t, ok, "GUID 0 is never issued")

	_, ok = s.Get(GUID(2))
	assert.False(t, ok, "GUID 2 was never issued in this store")
}

func TestStore_MarkRemoved(t *testing.T) {
	s := New()
	line := s.AllocateLineID()
	guid := s.Insert(0, NoOwner, line, point.New(0, 0), point.New(1, 1))

	s.MarkRemoved(guid)

	seg, ok := s.Get(guid)
	require.True(t, ok, "tombstoning must not delete the segment")
	assert.True(t, seg.Removed)
	assert.Empty(t, s.SegmentsOfLine(line))
	assert.Equal(t, 0, s.CountActive())
}

func TestStore_MarkRemoved_UnknownGUID(t *testing.T) {
	s := New()
	assert.NotPanics(t, func() { s.MarkRemoved(GUID(99)) })
}

func TestStore_UpdateEndpoints(t *testing.T) {
	s := New()
	line := s.AllocateLineID()
	guid := s.Insert(0, NoOwner, line, point.New(0, 0), point.New(1, 1))

	newA, newB := point.New(5, 5), point.New(6, 6)
	s.UpdateEndpoints(guid, newA, newB)

	seg, ok := s.Get(guid)
	require.True(t, ok)
	assert.True(t, seg.A.Eq(newA))
	assert.True(t, seg.B.Eq(newB))
}

func TestStore_SegmentsOfLine_OrderedAndLiveOnly(t *testing.T) {
	s := New()
	line := s.AllocateLineID()

	g1 := s.Insert(0, NoOwner, line, point.New(0, 0), point.New(1, 0))
	g2 := s.Insert(0, NoOwner, line, point.New(1, 0), point.New(2, 0))
	g3 := s.Insert(0, NoOwner, line, point.New(2, 0), point.New(3, 0))

	segs := s.SegmentsOfLine(line)
	require.Len(t, segs, 3)
	assert.Equal(t, []GUID{g1, g2, g3}, guidsOf(segs))

	s.MarkRemoved(g2)
	segs = s.SegmentsOfLine(line)
	require.Len(t, segs, 2)
	assert.Equal(t, []GUID{g1, g3}, guidsOf(segs))
}

func TestStore_LineIDs(t *testing.T) {
	s := New()
	l1 := s.AllocateLineID()
	l2 := s.AllocateLineID()
	s.Insert(0, NoOwner, l1, point.New(0, 0), point.New(1, 0))
	s.Insert(1, NoOwner, l2, point.New(0, 0), point.New(1, 0))

	assert.ElementsMatch(t, []LineID{l1, l2}, s.LineIDs())
}

func TestStore_AllLive(t *testing.T) {
	s := New()
	line := s.AllocateLineID()
	g1 := s.Insert(0, NoOwner, line, point.New(0, 0), point.New(1, 0))
	g2 := s.Insert(0, NoOwner, line, point.New(1, 0), point.New(2, 0))
	s.MarkRemoved(g2)

	live := s.AllLive()
	require.Len(t, live, 1)
	assert.Equal(t, g1, live[0].GUID)
}

func TestStore_CountActiveAndCountLines(t *testing.T) {
	s := New()
	l1 := s.AllocateLineID()
	l2 := s.AllocateLineID()
	s.Insert(0, NoOwner, l1, point.New(0, 0), point.New(1, 0))
	g2 := s.Insert(0, NoOwner, l1, point.New(1, 0), point.New(2, 0))
	s.Insert(1, NoOwner, l2, point.New(0, 0), point.New(1, 0))

	assert.Equal(t, 3, s.CountActive())
	assert.Equal(t, 2, s.CountLines())

	s.MarkRemoved(g2)
	assert.Equal(t, 2, s.CountActive())
	assert.Equal(t, 2, s.CountLines(), "line 1 still has one live segment")
}

func TestStore_CountLines_AllSegmentsRemoved(t *testing.T) {
	s := New()
	line := s.AllocateLineID()
	guid := s.Insert(0, NoOwner, line, point.New(0, 0), point.New(1, 0))
	s.MarkRemoved(guid)

	assert.Equal(t, 0, s.CountLines())
}

func guidsOf(segs []Segment) []GUID {
	out := make([]GUID, len(segs))
	for i, s := range segs {
		out[i] = s.GUID
	}
	return out
}
