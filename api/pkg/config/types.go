package config

type Config struct {
	// Server settings
	Server ServerConfig `json:"server"`

	// Storage backend selection
	Backend BackendConfig `json:"backend"`

	// ORM database settings
	Database DatabaseConfig `json:"database"`

	// Hosted backend-as-a-service settings
	Hosted HostedConfig `json:"hosted"`

	// Security settings
	Security SecurityConfig `json:"security"`

	// Logging settings
	Logging LoggingConfig `json:"logging"`

	// Attraction cache settings
	Cache CacheConfig `json:"cache"`

	// Itinerary planner settings
	Planner PlannerConfig `json:"planner"`
}

type ServerConfig struct {
	Host         string   `json:"host" default:"localhost"`
	Port         int      `json:"port" default:"3001"`
	ReadTimeout  int      `json:"read_timeout" default:"30"`  // seconds
	WriteTimeout int      `json:"write_timeout" default:"30"` // seconds
	IdleTimeout  int      `json:"idle_timeout" default:"120"` // seconds
	GracefulStop int      `json:"graceful_stop" default:"30"` // seconds
	Mode         string   `json:"mode" default:"debug"`       // gin mode: debug, release, test
	CORSOrigins  []string `json:"cors_origins"`
}

const (
	BackendORM    = "orm"
	BackendHosted = "hosted"
)

type BackendConfig struct {
	UseHosted bool `json:"use_hosted" default:"false"`
}

// Mode names the selected storage backend.
func (c *BackendConfig) Mode() string {
	if c.UseHosted {
		return BackendHosted
	}
	return BackendORM
}

type DatabaseConfig struct {
	Driver   string `json:"driver" default:"sqlite"` // sqlite, postgres
	Host     string `json:"host" default:"localhost"`
	Port     int    `json:"port" default:"5432"`
	Database string `json:"database" default:"japan_trip_planner.db"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSLMode  string `json:"ssl_mode" default:"disable"`
	URL      string `json:"url"` // full DSN, overrides the fields above

	// Connection pool settings
	MaxOpenConns    int `json:"max_open_conns" default:"25"`
	MaxIdleConns    int `json:"max_idle_conns" default:"5"`
	ConnMaxLifetime int `json:"conn_max_lifetime" default:"300"` // seconds

	SeedCatalog bool `json:"seed_catalog" default:"true"`
}

type HostedConfig struct {
	URL     string `json:"url"`
	APIKey  string `json:"api_key"`
	Timeout int    `json:"timeout" default:"10"` // seconds
}

type SecurityConfig struct {
	SessionSecret       string `json:"session_secret"`
	SessionCookieName   string `json:"session_cookie_name" default:"trip_planner_session"`
	SessionCookieSecure bool   `json:"session_cookie_secure" default:"false"`
	SessionMaxAge       int    `json:"session_max_age" default:"604800"` // seconds
	DemoUserID          string `json:"demo_user_id" default:"demo-user"`

	// Rate limiting
	RateLimitEnabled   bool `json:"rate_limit_enabled" default:"true"`
	RateLimitPerMinute int  `json:"rate_limit_per_minute" default:"120"`
	RateLimitBurstSize int  `json:"rate_limit_burst_size" default:"20"`
}

type LoggingConfig struct {
	Level      string `json:"level" default:"info"`    // debug, info, warn, error
	Format     string `json:"format" default:"json"`   // json, text
	Output     string `json:"output" default:"stdout"` // stdout, file, both
	FilePath   string `json:"file_path" default:"logs/trip-planner.log"`
	MaxSize    int    `json:"max_size" default:"100"` // MB
	MaxBackups int    `json:"max_backups" default:"3"`
	MaxAge     int    `json:"max_age" default:"28"` // days
	Compress   bool   `json:"compress" default:"true"`
}

type CacheConfig struct {
	RedisURL     string `json:"redis_url"` // empty disables the cache
	TTL          int    `json:"ttl" default:"600"` // seconds
	WarmSchedule string `json:"warm_schedule" default:"@every 30m"`
}

// Enabled reports whether a redis cache is configured.
func (c *CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

type PlannerConfig struct {
	HistoryDepth      int    `json:"history_depth" default:"10"`
	GenerationDelayMS int    `json:"generation_delay_ms" default:"0"`
	WorkspaceTTL      int    `json:"workspace_ttl" default:"120"` // minutes
	SweepSchedule     string `json:"sweep_schedule" default:"@every 5m"`
}
