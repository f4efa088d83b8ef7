package timezone

import (
	"rental/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimezone = "UTC"

var (
	appLocation *time.Location
	loadOnce    sync.Once
)

func load() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = defaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Use IANA names like 'Asia/Riyadh' or 'UTC'")

		appLocation = time.UTC

		return
	}

	appLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// GetLocation returns the application timezone, loading it from config on first use.
func GetLocation() *time.Location {
	loadOnce.Do(load)

	return appLocation
}

// SetLocation overrides the application timezone, mainly for tests.
func SetLocation(loc *time.Location) {
	loadOnce.Do(func() {})

	appLocation = loc
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// Today is the current calendar day in the application timezone, as a UTC midnight date
// comparable with the DATE columns of bookings and holidays.
func Today() time.Time {
	year, month, day := Now().Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ToAppTime converts a time to the application timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse parses a time string in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

// Format formats a time in the application timezone.
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
