package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdpulse/pulsewatch/model"
)

func TestReadCSV(t *testing.T) {
	t.Run("without headers", func(t *testing.T) {
		feed, err := ReadCSV(strings.NewReader("t1,40\nt2,60\n"), "cam-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"cam-1"}, feed.Cameras())
		assert.Equal(t, []model.Sample{{Time: "t1", Value: 40}, {Time: "t2", Value: 60}}, feed.Samples("cam-1"))
	})

	t.Run("with headers and cameras", func(t *testing.T) {
		content := "camera,value,timestamp\ncam-1,40,t1\ncam-2,10,t1\ncam-1,55,t2\n"
		feed, err := ReadCSV(strings.NewReader(content), "ignored")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"cam-1", "cam-2"}, feed.Cameras())
		assert.Equal(t, []model.Sample{{Time: "t1", Value: 40}, {Time: "t2", Value: 55}}, feed.Samples("cam-1"))
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("timestamp,value\nt1,NaN\n"), "cam-1")
		require.ErrorIs(t, err, model.ErrInvalidSample)

		_, err = ReadCSV(strings.NewReader("timestamp,value\nt1,abc\n"), "cam-1")
		require.Error(t, err)
	})

	t.Run("missing value column", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("t1\nt2\n"), "cam-1")
		require.ErrorContains(t, err, "line 1")

		_, err = ReadCSV(strings.NewReader("timestamp\nt1\n"), "cam-1")
		require.ErrorContains(t, err, "line 1: expected at least 2 columns, got 1")
	})
}

func TestCSV_LatestSample(t *testing.T) {
	file := filepath.Join(t.TempDir(), "samples.csv")
	require.NoError(t, os.WriteFile(file, []byte("timestamp,value\nt1,40\nt2,60\n"), 0o600))

	feed, err := NewCSV(file, "cam-1")
	require.NoError(t, err)

	history, err := feed.History(context.Background(), "cam-1")
	require.NoError(t, err)
	assert.Empty(t, history)

	first, err := feed.LatestSample(context.Background(), "cam-1")
	require.NoError(t, err)
	assert.Equal(t, "t1", first.Time)

	second, err := feed.LatestSample(context.Background(), "cam-1")
	require.NoError(t, err)
	assert.Equal(t, "t2", second.Time)

	_, err = feed.LatestSample(context.Background(), "cam-1")
	require.ErrorIs(t, err, ErrExhausted)
}
