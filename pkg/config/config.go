package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
)

const (
	// DefaultRPCURL is the public Polkadot endpoint used when none is configured.
	DefaultRPCURL = "wss://rpc.polkadot.io"

	// DefaultScanWindow is the number of blocks behind head used as default start block.
	DefaultScanWindow = 10
)

// Config represents the complete configuration for the SubstrateScanner.
type Config struct {
	// Chain contains the Substrate node connection settings
	Chain ChainConfig `yaml:"chain" json:"chain" toml:"chain"`

	// Scan contains block range defaults
	Scan ScanConfig `yaml:"scan" json:"scan" toml:"scan"`

	// Export contains the remote archive submission settings
	Export *ExportConfig `yaml:"export,omitempty" json:"export,omitempty" toml:"export,omitempty"`

	// Store contains the local scan archive settings
	Store *StoreConfig `yaml:"store,omitempty" json:"store,omitempty" toml:"store,omitempty"`

	// API contains REST API server configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`
}

// ChainConfig represents the Substrate node connection configuration.
type ChainConfig struct {
	// RPCURL is the WebSocket endpoint of the node (ws:// or wss://)
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url"`

	// HealthCheckInterval enables a background system_health probe when non-zero.
	// A failing probe aborts the scan running on that connection.
	HealthCheckInterval common.Duration `yaml:"health_check_interval" json:"health_check_interval" toml:"health_check_interval"` //nolint:lll

	// Retry contains connection retry configuration with exponential backoff.
	// Only dialing is retried, block fetches are never retried.
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty"`
}

// ApplyDefaults sets default values for optional chain configuration fields.
func (c *ChainConfig) ApplyDefaults() {
	if c.RPCURL == "" {
		c.RPCURL = DefaultRPCURL
	}

	if c.Retry != nil {
		c.Retry.ApplyDefaults()
	}
}

// Validate checks if the chain configuration is valid.
func (c *ChainConfig) Validate() error {
	if err := ValidateEndpoint(c.RPCURL); err != nil {
		return fmt.Errorf("chain.rpc_url: %w", err)
	}

	if c.HealthCheckInterval.Duration < 0 {
		return fmt.Errorf("chain.health_check_interval: must not be negative")
	}

	return nil
}

// ValidateEndpoint checks that endpoint is a WebSocket URL with a host.
func ValidateEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("endpoint %q must use ws:// or wss://", endpoint)
	}

	if u.Host == "" {
		return fmt.Errorf("endpoint %q has no host", endpoint)
	}

	return nil
}

// RetryConfig represents connection retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts"`

	// InitialBackoff is the initial backoff duration before first retry
	InitialBackoff common.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff"`

	// MaxBackoff is the maximum backoff duration
	MaxBackoff common.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff"`

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64 `yaml:"backoff_multiplier" json:"backoff_multiplier" toml:"backoff_multiplier"`
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 3
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = common.NewDuration(1 * time.Second)
	}
	if r.MaxBackoff.Duration == 0 {
		r.MaxBackoff = common.NewDuration(10 * time.Second) //nolint:mnd
	}
	if r.BackoffMultiplier == 0 {
		r.BackoffMultiplier = 2.0
	}
}

// ScanConfig holds block range defaults.
type ScanConfig struct {
	// DefaultWindow is how many blocks behind the chain head a default scan starts
	DefaultWindow uint64 `yaml:"default_window" json:"default_window" toml:"default_window"`
}

// ApplyDefaults sets default values for scan configuration.
func (s *ScanConfig) ApplyDefaults() {
	if s.DefaultWindow == 0 {
		s.DefaultWindow = DefaultScanWindow
	}
}

// ExportConfig configures submission of scan results to a remote GraphQL archive.
type ExportConfig struct {
	// Enabled controls whether completed scans are submitted
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ServerURL is the archive base URL; the mutation is posted to <ServerURL>/graphql
	ServerURL string `yaml:"server_url" json:"server_url" toml:"server_url"`

	// Timeout bounds a single submission request
	Timeout common.Duration `yaml:"timeout" json:"timeout" toml:"timeout"`
}

// ApplyDefaults sets default values for export configuration.
func (e *ExportConfig) ApplyDefaults() {
	e.ServerURL = strings.TrimRight(e.ServerURL, "/")
	if e.Timeout.Duration == 0 {
		e.Timeout = common.NewDuration(30 * time.Second) //nolint:mnd
	}
}

// Validate checks if the export configuration is valid.
func (e *ExportConfig) Validate() error {
	if !e.Enabled {
		return nil
	}

	if e.ServerURL == "" {
		return fmt.Errorf("server_url is required when export is enabled")
	}

	u, err := url.Parse(e.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server_url must be an http(s) URL")
	}

	return nil
}

// StoreConfig configures the local scan archive.
type StoreConfig struct {
	// DB contains database configuration for the archive
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// MaxScans is the number of most recent scans to retain (0 = unlimited)
	MaxScans int `yaml:"max_scans" json:"max_scans" toml:"max_scans"`

	// Maintenance contains optional database maintenance settings
	Maintenance *MaintenanceConfig `yaml:"maintenance,omitempty" json:"maintenance,omitempty" toml:"maintenance,omitempty"`
}

// ApplyDefaults sets default values for store configuration.
func (s *StoreConfig) ApplyDefaults() {
	s.DB.ApplyDefaults()

	if s.Maintenance != nil {
		s.Maintenance.ApplyDefaults()
	}
}

// Validate checks if the store configuration is valid.
func (s *StoreConfig) Validate() error {
	if s.DB.Path == "" {
		return fmt.Errorf("db.path is required")
	}

	if err := s.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}

	if s.MaxScans < 0 {
		return fmt.Errorf("max_scans must not be negative")
	}

	if s.Maintenance != nil {
		if err := s.Maintenance.Validate(); err != nil {
			return fmt.Errorf("maintenance: %w", err)
		}
	}

	return nil
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	// WAL mode is recommended for better concurrency
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`

	// EnableForeignKeys enables foreign key constraint enforcement
	EnableForeignKeys bool `yaml:"enable_foreign_keys" json:"enable_foreign_keys" toml:"enable_foreign_keys"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 25
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 5
	}
}

// Validate checks the journal and synchronous modes.
func (d *DatabaseConfig) Validate() error {
	if d.JournalMode != "" &&
		!slices.Contains([]string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}, d.JournalMode) {
		return fmt.Errorf("journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}

	if d.Synchronous != "" && !slices.Contains([]string{"FULL", "NORMAL", "OFF"}, d.Synchronous) {
		return fmt.Errorf("synchronous must be one of: FULL, NORMAL, OFF")
	}

	return nil
}

// MaintenanceConfig configures database maintenance behavior.
type MaintenanceConfig struct {
	// Enabled controls whether background maintenance runs
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// CheckInterval is how often to run maintenance (e.g., "30m", "1h")
	CheckInterval common.Duration `yaml:"check_interval" json:"check_interval" toml:"check_interval"`

	// VacuumOnStartup runs maintenance immediately on startup
	VacuumOnStartup bool `yaml:"vacuum_on_startup" json:"vacuum_on_startup" toml:"vacuum_on_startup"`

	// WALCheckpointMode controls the WAL checkpoint aggressiveness
	// Options: PASSIVE, FULL, RESTART, TRUNCATE
	WALCheckpointMode string `yaml:"wal_checkpoint_mode" json:"wal_checkpoint_mode" toml:"wal_checkpoint_mode"`
}

// ApplyDefaults sets default values for optional maintenance configuration fields.
func (m *MaintenanceConfig) ApplyDefaults() {
	if m.CheckInterval.Duration == 0 {
		m.CheckInterval = common.NewDuration(30 * time.Minute) //nolint:mnd
	}
	if m.WALCheckpointMode == "" {
		m.WALCheckpointMode = "TRUNCATE"
	}
}

// Validate checks if the maintenance configuration is valid.
func (m *MaintenanceConfig) Validate() error {
	if m.WALCheckpointMode != "" {
		validModes := []string{"PASSIVE", "FULL", "RESTART", "TRUNCATE"}
		if !slices.Contains(validModes, m.WALCheckpointMode) {
			return fmt.Errorf("wal_checkpoint_mode: must be one of: PASSIVE, FULL, RESTART, TRUNCATE")
		}
	}

	return nil
}

// APIConfig configures the REST API server.
type APIConfig struct {
	// Enabled controls whether the API server starts with `serve`
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the API server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request on keep-alive connections
	IdleTimeout common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS contains cross-origin settings
	CORS *CORSConfig `yaml:"cors,omitempty" json:"cors,omitempty" toml:"cors,omitempty"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	// AllowedOrigins lists the origins allowed to call the API ("*" allows any)
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`

	// AllowCredentials sets Access-Control-Allow-Credentials
	AllowCredentials bool `yaml:"allow_credentials" json:"allow_credentials" toml:"allow_credentials"`
}

// ApplyDefaults sets default values for API configuration.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS == nil {
		a.CORS = &CORSConfig{AllowedOrigins: []string{"*"}}
	}
}

// Validate checks if the API configuration is valid.
func (a *APIConfig) Validate() error {
	if a.Enabled && a.ListenAddress == "" {
		return fmt.Errorf("listen_address is required when the api is enabled")
	}

	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - scanner: Block range collection
	//   - rpc: Substrate node client
	//   - export: Remote archive submission
	//   - session: Scan session management
	//   - scan-store: Local scan archive
	//   - maintenance: Database maintenance
	//   - api: REST API server
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if level, ok := l.ComponentLevels[component]; ok {
		return common.ToLowerWithTrim(level)
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l.Development
}

// ComponentLogger builds the logger for component. A nil config yields defaults.
func (c *Config) ComponentLogger(component string) *logger.Logger {
	if c == nil || c.Logging == nil {
		return logger.NewComponentLoggerFromConfig(component, nil)
	}

	return logger.NewComponentLoggerFromConfig(component, c.Logging)
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	// Format: "host:port" or ":port"
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Chain.ApplyDefaults()
	c.Scan.ApplyDefaults()

	if c.Export != nil {
		c.Export.ApplyDefaults()
	}

	if c.Store != nil {
		c.Store.ApplyDefaults()
	}

	if c.API != nil {
		c.API.ApplyDefaults()
	}

	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Chain.Validate(); err != nil {
		return err
	}

	if c.Export != nil {
		if err := c.Export.Validate(); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	if c.Store != nil {
		if err := c.Store.Validate(); err != nil {
			return fmt.Errorf("store: %w", err)
		}
	}

	if c.API != nil {
		if err := c.API.Validate(); err != nil {
			return fmt.Errorf("api: %w", err)
		}
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}

// Default returns a configuration with every default applied and no optional sections.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}
