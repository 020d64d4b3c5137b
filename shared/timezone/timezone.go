package timezone

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"litrato/config"

	"github.com/rs/zerolog/log"
)

var appLocation = time.UTC

func init() {
	name := config.Get().App.Timezone

	loc, err := Load(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("falling back to UTC, use an IANA name such as Asia/Jakarta")

		return
	}

	appLocation = loc
	log.Info().Str("timezone", loc.String()).Msg("application timezone set")
}

// Load resolves an IANA zone name. An empty name means UTC.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}

	return loc, nil
}

func GetLocation() *time.Location {
	return appLocation
}

func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// Parse reads value as a wall clock reading in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Wall keeps the clock reading of t but places it in the application
// timezone. Postgres TIMESTAMP columns come back without a zone.
func Wall(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	y, mo, d := t.Date()
	h, mi, s := t.Clock()

	return time.Date(y, mo, d, h, mi, s, t.Nanosecond(), appLocation)
}
