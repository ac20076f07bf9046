package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
)

// dryRunDB builds statements with the postgres dialect without connecting
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		DSN: "host=localhost user=spamguard dbname=spamguard sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestListQuery(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var records []*entity.PredictionRecord
		return listQuery(tx, 2, 4).Find(&records)
	})

	assert.Contains(t, sql, `FROM "predictions"`)
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT 2")
	assert.Contains(t, sql, "OFFSET 4")
}

func TestStatsQuery(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []statsRow
		return statsQuery(tx).Find(&rows)
	})

	assert.Contains(t, sql, "COUNT(*) AS total")
	assert.Contains(t, sql, "SUM(CASE WHEN is_spam THEN 1 ELSE 0 END), 0) AS spam")
	assert.Contains(t, sql, "AVG(confidence), 0) AS average_confidence")
	assert.Contains(t, sql, `FROM "predictions"`)
	assert.NotContains(t, sql, "LIMIT")
}

func TestStatsRow_ToStats(t *testing.T) {
	tests := []struct {
		name     string
		row      statsRow
		expected entity.PredictionStats
	}{
		{
			name:     "empty history",
			row:      statsRow{},
			expected: entity.PredictionStats{},
		},
		{
			name: "mixed history",
			row:  statsRow{Total: 4, Spam: 1, AverageConfidence: 0.9},
			expected: entity.PredictionStats{
				Total:             4,
				Spam:              1,
				Legitimate:        3,
				SpamRate:          0.25,
				AverageConfidence: 0.9,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, *tt.row.toStats())
		})
	}
}
