package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rep := reportFixture(t).Assemble()
	path := filepath.Join(t.TempDir(), "out", "ratings.json")

	require.NoError(t, WriteJSON(rep, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{
		"RunID",
		"GeneratedAt",
		"TieCDFBound",
		"IsPredictionErrorNormal",
		"PredictionErrorStDev",
		"PredictionErrorDF",
		"NumberOfGames",
		"Season",
		"HomeAdvantage",
		"HomeAdvantageList",
		"ScoreMean",
		"ActualMarginList",
		"PastSchedule",
		"FutureSchedule",
		"TeamRatings",
	} {
		assert.Contains(t, decoded, key)
	}

	var teams map[string]*TeamRating
	require.NoError(t, json.Unmarshal(decoded["TeamRatings"], &teams))
	require.Contains(t, teams, "1")
	assert.Equal(t, 1, teams["1"].Rank)
	assert.Len(t, teams["1"].RatingList, 2)
}

func TestWriteJSONEmptyPath(t *testing.T) {
	assert.Error(t, WriteJSON(&Report{}, ""))
}
