package timezone_test

import (
	"rental/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationOverride(t *testing.T) {
	riyadh, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)

	timezone.SetLocation(riyadh)
	t.Cleanup(func() { timezone.SetLocation(time.UTC) })

	assert.Equal(t, riyadh, timezone.GetLocation())
	assert.Equal(t, riyadh, timezone.Now().Location())

	utc := time.Date(2025, time.March, 29, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-30 01:30", timezone.Format(utc, "2006-01-02 15:04"))

	parsed, err := timezone.Parse(time.DateTime, "2025-03-30 01:30:00")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(utc))
}

func TestToday(t *testing.T) {
	timezone.SetLocation(time.UTC)

	today := timezone.Today()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), today.Format(time.DateOnly))
}
