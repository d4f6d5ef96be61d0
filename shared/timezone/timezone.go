package timezone

import (
	"sync"
	"time"

	"cowork/config"

	"github.com/rs/zerolog/log"
)

const fallbackZone = "Asia/Kolkata"

var (
	location *time.Location
	once     sync.Once
	mu       sync.RWMutex
)

func load() {
	name := config.Get().App.Timezone
	if name == "" {
		name = fallbackZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC.")

		loc = time.UTC
	}

	mu.Lock()
	if location == nil {
		location = loc
	}
	mu.Unlock()

	log.Debug().Str("timezone", loc.String()).Msg("Application timezone loaded.")
}

// GetLocation returns the configured application location, loading it on first use.
func GetLocation() *time.Location {
	once.Do(load)

	mu.RLock()
	defer mu.RUnlock()

	return location
}

// SetLocation overrides the application location.
func SetLocation(loc *time.Location) {
	once.Do(func() {})

	mu.Lock()
	location = loc
	mu.Unlock()
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse interprets value as wall-clock time in the application location.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

func StartOfDay(t time.Time) time.Time {
	t = ToAppTime(t)

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func Today() time.Time {
	return StartOfDay(Now())
}
