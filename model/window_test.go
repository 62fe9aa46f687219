package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	t.Run("invalid capacity", func(t *testing.T) {
		for _, capacity := range []int{0, -1} {
			window, err := NewWindow(capacity)
			require.Error(t, err)
			require.Nil(t, window)
			require.ErrorIs(t, err, ErrInvalidCapacity)
			require.True(t, IsConfiguration(err))
		}
	})

	t.Run("capacity one", func(t *testing.T) {
		window, err := NewWindow(1)
		require.NoError(t, err)
		window.Push(Sample{Time: "t1", Value: 1})
		evicted, ok := window.Push(Sample{Time: "t2", Value: 2})
		require.True(t, ok)
		require.Equal(t, "t1", evicted.Time)
		require.Equal(t, []Sample{{Time: "t2", Value: 2}}, window.Samples())
	})
}

func TestWindow_Push(t *testing.T) {
	for _, capacity := range []int{1, 3, 50} {
		t.Run(fmt.Sprintf("capacity %d", capacity), func(t *testing.T) {
			window, err := NewWindow(capacity)
			require.NoError(t, err)

			var pushed []Sample
			for i := 0; i < capacity*2+1; i++ {
				sample := Sample{Time: fmt.Sprintf("t%d", i), Value: float64(i)}
				pushed = append(pushed, sample)
				window.Push(sample)

				require.LessOrEqual(t, window.Len(), capacity)
				expected := pushed
				if len(expected) > capacity {
					expected = expected[len(expected)-capacity:]
				}
				require.Equal(t, expected, window.Samples())
			}
		})
	}
}

func TestWindow_SamplesIsACopy(t *testing.T) {
	window, err := NewWindow(3)
	require.NoError(t, err)
	window.Push(Sample{Time: "t1", Value: 10})

	samples := window.Samples()
	samples[0].Value = 99
	values := window.Values()
	values[0] = 42

	last, ok := window.Last()
	require.True(t, ok)
	assert.Equal(t, 10.0, last.Value)
}

func TestWindow_Load(t *testing.T) {
	window, err := NewWindow(2)
	require.NoError(t, err)
	window.Push(Sample{Time: "old", Value: 1})

	window.Load([]Sample{{Time: "a", Value: 1}, {Time: "b", Value: 2}, {Time: "c", Value: 3}})
	assert.Equal(t, []Sample{{Time: "b", Value: 2}, {Time: "c", Value: 3}}, window.Samples())

	window.Reset()
	assert.Equal(t, 0, window.Len())
	_, ok := window.Last()
	assert.False(t, ok)
	assert.Equal(t, 2, window.Cap())
}
