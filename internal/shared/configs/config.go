package configs

// Config holds the run configuration sourced from environment variables and an optional
// dotenv file. Keys are the lower-cased environment variable names.
type Config struct {
	Log            LogConfig            `mapstructure:",squash"`
	Queue          QueueConfig          `mapstructure:",squash"`
	Infrastructure InfrastructureConfig `mapstructure:",squash"`
	Gratia         GratiaConfig         `mapstructure:",squash"`
	Metrics        MetricsConfig        `mapstructure:",squash"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"log_level" validate:"required,oneof=trace debug info warn error fatal panic disabled"`
}

// QueueConfig holds the accounting queue configuration.
type QueueConfig struct {
	OutputPath  string `mapstructure:"output_path" validate:"required"`
	RemovalMode string `mapstructure:"queue_removal_mode" validate:"required,oneof=after_finalize after_convert"`
}

// InfrastructureConfig describes the reporting infrastructure. It is announced to the
// collector during the handshake.
type InfrastructureConfig struct {
	Type        string `mapstructure:"infrastructure_type" validate:"required"`
	Description string `mapstructure:"infrastructure_description"`
	NodeCount   int    `mapstructure:"nodecount" validate:"min=0"`
	Processors  int    `mapstructure:"processors" validate:"min=0"`
}

// GratiaConfig holds the probe registration settings and the path of the probe config file.
type GratiaConfig struct {
	ConfigPath   string `mapstructure:"gratia_config_path" validate:"required,file"`
	Reporter     string `mapstructure:"gratia_reporter"`
	Service      string `mapstructure:"gratia_service"`
	ProbeManager string `mapstructure:"gratia_probe_manager"`
	ProbeVersion string `mapstructure:"gratia_probe_version"`
}

// MetricsConfig holds Pushgateway settings. An empty URL disables pushing.
type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"metrics_pushgateway_url" validate:"omitempty,url"`
	Job            string `mapstructure:"metrics_job" validate:"required"`
}

const (
	RemovalModeAfterFinalize = "after_finalize"
	RemovalModeAfterConvert  = "after_convert"
)

var envDefaults = map[string]any{
	"log_level":                  "info",
	"output_path":                "/srv/kapel",
	"queue_removal_mode":         RemovalModeAfterFinalize,
	"infrastructure_type":        "grid",
	"infrastructure_description": "APEL-KUBERNETES",
	"nodecount":                  0,
	"processors":                 0,
	"gratia_config_path":         "",
	"gratia_reporter":            "",
	"gratia_service":             "",
	"gratia_probe_manager":       "",
	"gratia_probe_version":       "",
	"metrics_pushgateway_url":    "",
	"metrics_job":                "gratia_output",
}

// ProbeConfig holds the sink settings read from the file named by GRATIA_CONFIG_PATH.
type ProbeConfig struct {
	Collector     CollectorConfig `mapstructure:"collector"`
	Bundle        BundleConfig    `mapstructure:"bundle"`
	WorkingFolder string          `mapstructure:"working_folder" validate:"required"`
	LockFile      string          `mapstructure:"lock_file" validate:"required"`
}

// CollectorConfig selects and configures the transport records are reported over.
type CollectorConfig struct {
	Transport          string `mapstructure:"transport" validate:"required,oneof=collector lumberjack"`
	URL                string `mapstructure:"url" validate:"required_if=Transport collector,omitempty,url"`
	LumberjackEndpoint string `mapstructure:"lumberjack_endpoint" validate:"required_if=Transport lumberjack,omitempty,hostname_port"`
	Timeout            int    `mapstructure:"timeout" validate:"required,min=1"` // seconds
	Compress           bool   `mapstructure:"compress"`
}

// BundleConfig controls how many records are sent per transport call.
type BundleConfig struct {
	Size int `mapstructure:"size" validate:"required,min=1"`
}

const (
	TransportCollector  = "collector"
	TransportLumberjack = "lumberjack"
)

var probeDefaults = map[string]any{
	"collector.transport": TransportCollector,
	"collector.timeout":   30,
	"collector.compress":  false,
	"bundle.size":         100,
	"working_folder":      "/var/lib/gratia-output",
	"lock_file":           "/var/lock/gratia-output.lock",
}
