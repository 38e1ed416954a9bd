package internal

import (
	"fmt"
	"time"
)

type Config struct {
	DatabasePath  string        `env:"DATABASE_PATH,required=true"`
	BusyTimeout   time.Duration `env:"BUSY_TIMEOUT,default=5s"`
	LogLevel      string        `env:"LOG_LEVEL,default=INFO"`
	CacheCapacity int           `env:"PARTICIPANT_CACHE_CAPACITY,default=100"`

	MetricInterval     time.Duration `env:"METRIC_INTERVAL,default=10s"`
	DebugPort          int           `env:"DEBUG_PORT,default=8081"`
	WorkerRestartDelay time.Duration `env:"WORKER_RESTART_DELAY,default=200ms"`

	CensoredWords   []string `env:"CENSORED_WORDS"`
	CensoredChar    string   `env:"CENSORED_CHARACTER,default=*"`
	DirectoryURL    string   `env:"USER_DIRECTORY_URL,required=true"`
	DirectoryAPIKey string   `env:"USER_DIRECTORY_API_KEY"`
}

// CharacterRune enforces that the configured replacement is one character.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CENSORED_CHARACTER must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
