package config

// this holds the resolved configuration values from CLI
var (
	DB                string // connection string for the database
	LogLevel          string // sets the log level (zap log level values)
	SQLLogLevel       string // sets the log level for the sql subsystem
	LogFormat         string // text vs json
	LogFilter         string // zapfilter rules applied to the default logger
	WaitForServices   string // duration to wait for other services to be ready
	ServerAddr        string // listen addr for the HTTP server
	NatsURL           string // URL of the NATS server, empty disables event publishing
	EnableTelemetry   bool   // enable telemetry
	TelemetryEndpoint string // endpoint that receives open telemetry data
	StaleLockAge      string // contest locks older than this are ignored, empty disables the cut-off
	ProfilingPort     int    // port for profiling
)
