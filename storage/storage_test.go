package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crowdpulse/pulsewatch/model"
)

func backends(t *testing.T) map[string]Storage {
	t.Helper()

	memory, err := FromMemory()
	require.NoError(t, err)

	file, err := FromFile(filepath.Join(t.TempDir(), "pulsewatch.db"))
	require.NoError(t, err)

	sql, err := FromSQL(sqlite.Open(filepath.Join(t.TempDir(), "pulsewatch.sqlite")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return map[string]Storage{"memory": memory, "file": file, "sql": sql}
}

func TestStorage_Threshold(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Threshold("cam-1")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, repo.SaveThreshold("cam-1", 55))
			require.NoError(t, repo.SaveThreshold("cam-2", 10.5))
			require.NoError(t, repo.SaveThreshold("cam-1", 65))

			value, err := repo.Threshold("cam-1")
			require.NoError(t, err)
			require.Equal(t, 65.0, value)

			value, err = repo.Threshold("cam-2")
			require.NoError(t, err)
			require.Equal(t, 10.5, value)
		})
	}
}

func TestStorage_Events(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			events := []*model.Event{
				{Camera: "cam-1", Category: model.EventWithin, Average: 50, Threshold: 50, Band: 10, CreatedAt: now.Add(-time.Minute)},
				{Camera: "cam-1", Category: model.EventAbove, Average: 70, Threshold: 50, Band: 10, CreatedAt: now},
				{Camera: "cam-2", Category: model.EventBelow, Average: 10, Threshold: 50, Band: 10, CreatedAt: now.Add(time.Minute)},
			}
			for _, event := range events {
				require.NoError(t, repo.CreateEvent(event))
			}
			require.Equal(t, int64(1), events[0].ID)
			require.Equal(t, int64(3), events[2].ID)

			all, err := repo.Events()
			require.NoError(t, err)
			require.Len(t, all, 3)
			require.Equal(t, model.EventWithin, all[0].Category)

			cam1, err := repo.Events(WithCamera("cam-1"))
			require.NoError(t, err)
			require.Len(t, cam1, 2)

			extremes, err := repo.Events(WithCategoryIn(model.EventAbove, model.EventBelow))
			require.NoError(t, err)
			require.Len(t, extremes, 2)

			above, err := repo.Events(WithCamera("cam-1"), WithCategory(model.EventAbove))
			require.NoError(t, err)
			require.Len(t, above, 1)
			require.Equal(t, 70.0, above[0].Average)

			recent, err := repo.Events(WithCreatedAtAfter(now.Add(-time.Second)), WithCreatedAtBeforeOrEqual(now))
			require.NoError(t, err)
			require.Len(t, recent, 1)
			require.Equal(t, model.EventAbove, recent[0].Category)
		})
	}
}
