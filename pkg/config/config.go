package config

import (
	"strings"
	"time"
)

type DB struct {
	Url             string        `envconfig:"URL" default:"sqlite://fintrack.db"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
}

// Driver reports which gorm dialector the URL selects.
func (d *DB) Driver() string {
	switch {
	case strings.HasPrefix(d.Url, "postgres://"), strings.HasPrefix(d.Url, "postgresql://"):
		return "postgres"
	default:
		return "sqlite"
	}
}

// DSN returns the URL without the sqlite:// scheme understood by the sqlite driver.
func (d *DB) DSN() string {
	return strings.TrimPrefix(d.Url, "sqlite://")
}

type Jwt struct {
	Secret     string        `envconfig:"SECRET" required:"true"`
	Expiry     time.Duration `envconfig:"EXPIRY" default:"24h"`
	CookieName string        `envconfig:"COOKIE_NAME" default:"fintrack_token"`
}

type Auth struct {
	Strategy string `envconfig:"STRATEGY" default:"jwt"`
	Jwt      *Jwt   `envconfig:"JWT"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:""`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"fintrack:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests     int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window          time.Duration `envconfig:"WINDOW" default:"1m"`
	AuthMaxRequests int           `envconfig:"AUTH_MAX_REQUESTS" default:"10"`
	AuthWindow      time.Duration `envconfig:"AUTH_WINDOW" default:"5m"`
}

// Beta caps the number of registered users while the service is in beta.
// A zero MaxUsers disables the cap.
type Beta struct {
	MaxUsers int `envconfig:"MAX_USERS" default:"100"`
}

type Idempotency struct {
	TTL time.Duration `envconfig:"TTL" default:"24h"`
}

type Dashboard struct {
	RecentLimit int    `envconfig:"RECENT_LIMIT" default:"5"`
	Timezone    string `envconfig:"TIMEZONE" default:"UTC"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[fintrack]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env         string       `envconfig:"APP_ENV" default:"development"`
	Server      *Server      `envconfig:"SERVER"`
	Log         *Log         `envconfig:"LOG"`
	DB          *DB          `envconfig:"DATABASE"`
	Auth        *Auth        `envconfig:"AUTH"`
	Redis       *Redis       `envconfig:"REDIS"`
	RateLimit   *RateLimit   `envconfig:"RATE_LIMIT"`
	Beta        *Beta        `envconfig:"BETA"`
	Idempotency *Idempotency `envconfig:"IDEMPOTENCY"`
	Dashboard   *Dashboard   `envconfig:"DASHBOARD"`
}
