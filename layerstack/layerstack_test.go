package layerstack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushRootLayerAndFetch(t *testing.T) {
	s := New()
	s.PushRootLayer(4)
	require.Equal(t, 1, s.Len())

	row := s.FetchLayer()
	require.Len(t, row, 4)
	for i := range row {
		row[i] = int32(i)
	}
	require.Equal(t, []int32{0, 1, 2, 3}, s.FetchLayer())
	require.Equal(t, "", s.Word())
}

func TestPushLayerTracksWord(t *testing.T) {
	s := New()
	s.PushRootLayer(1)
	s.PushLayer('a', 2)
	s.PushLayer('b', 2)
	require.Equal(t, "ab", s.Word())
	require.Equal(t, 3, s.Len())

	s.PopLayer()
	require.Equal(t, "a", s.Word())
	require.Equal(t, 2, s.Len())
}

func TestFetchLast3LayersDisjointAndOrdered(t *testing.T) {
	s := New()
	s.PushRootLayer(2)
	row0 := s.FetchLayer()
	row0[0], row0[1] = 10, 11

	s.PushLayer('x', 2)
	row1 := s.FetchLayer()
	row1[0], row1[1] = 20, 21

	s.PushLayer('y', 2)
	row2 := s.FetchLayer()
	row2[0], row2[1] = 30, 31

	cur, prev, pprev := s.FetchLast3Layers()
	require.Equal(t, []int32{30, 31}, cur)
	require.Equal(t, []int32{20, 21}, prev)
	require.Equal(t, []int32{10, 11}, pprev)

	// Mutating one must not be visible through another.
	cur[0] = 99
	require.Equal(t, int32(20), prev[0])
	require.Equal(t, int32(10), pprev[0])
}

func TestFetchLast3LayersNearBottomReturnsEmpty(t *testing.T) {
	s := New()
	s.PushRootLayer(1)
	cur, prev, pprev := s.FetchLast3Layers()
	require.Len(t, cur, 1)
	require.Empty(t, prev)
	require.Empty(t, pprev)
}

func TestResetClearsStackForReuse(t *testing.T) {
	s := New()
	s.PushRootLayer(1)
	s.PushLayer('a', 1)
	s.Reset()

	require.Equal(t, 0, s.Len())
	require.Equal(t, "", s.Word())
}

func TestPushRootLayerOnNonEmptyStackPanics(t *testing.T) {
	s := New()
	s.PushRootLayer(1)
	require.Panics(t, func() { s.PushRootLayer(1) })
}
