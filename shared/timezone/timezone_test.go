package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litrato/shared/timezone"
)

func TestLoad(t *testing.T) {
	loc, err := timezone.Load("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = timezone.Load("Asia/Jakarta")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", loc.String())

	_, err = timezone.Load("Mars/Olympus")
	assert.ErrorContains(t, err, "Mars/Olympus")
}

func TestNowAndConversions(t *testing.T) {
	loc := timezone.GetLocation()
	require.NotNil(t, loc)

	assert.Equal(t, loc, timezone.Now().Location())

	instant := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, timezone.ToAppTime(instant).Equal(instant))
	assert.Equal(t, instant.In(loc).Format(time.DateTime), timezone.Format(instant, time.DateTime))
}

func TestParse(t *testing.T) {
	parsed, err := timezone.Parse(time.DateOnly, "2026-11-20")
	require.NoError(t, err)

	assert.Equal(t, timezone.GetLocation(), parsed.Location())
	assert.Equal(t, 20, parsed.Day())

	_, err = timezone.Parse(time.DateOnly, "20/11/2026")
	assert.Error(t, err)
}

func TestWall(t *testing.T) {
	stored := time.Date(2026, 11, 20, 18, 30, 0, 0, time.UTC)
	wall := timezone.Wall(stored)

	assert.Equal(t, 18, wall.Hour())
	assert.Equal(t, 30, wall.Minute())
	assert.Equal(t, 20, wall.Day())
	assert.Equal(t, timezone.GetLocation(), wall.Location())

	assert.True(t, timezone.Wall(time.Time{}).IsZero())
}
