// Package config loads the process configuration.
//
// Values are layered in the following order, each layer overriding the previous one:
// built-in defaults, a JSON file (path from -c or CONFIG), environment variables
// (a .env file in the working directory is loaded first), and command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the settings of the running service.
type Config struct {
	// RunAddr is the address the HTTP server listens on.
	RunAddr string `env:"SERVER_ADDRESS" validate:"hostname_port"`

	// GRPCRunAddr is the address of the gRPC server. Empty disables it.
	GRPCRunAddr string `env:"GRPC_SERVER_ADDRESS" validate:"omitempty,hostname_port"`

	LogLevel string `env:"LOG_LEVEL" validate:"loglevel"`

	// EnableGzip turns on gzip compression of responses for clients that accept it.
	EnableGzip bool `env:"ENABLE_GZIP"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gt=0"`

	// ConfigFile is the path of the JSON configuration file.
	ConfigFile string `env:"CONFIG"`
}

// fileConfig mirrors Config for the JSON file. Pointers tell absent keys apart
// from zero values.
type fileConfig struct {
	RunAddr         *string `json:"server_address"`
	GRPCRunAddr     *string `json:"grpc_server_address"`
	LogLevel        *string `json:"log_level"`
	EnableGzip      *bool   `json:"enable_gzip"`
	ReadTimeout     *string `json:"read_timeout"`
	WriteTimeout    *string `json:"write_timeout"`
	ShutdownTimeout *string `json:"shutdown_timeout"`
}

var defaultConfig = Config{
	RunAddr:         ":8080",
	GRPCRunAddr:     "",
	LogLevel:        "info",
	EnableGzip:      true,
	ReadTimeout:     5 * time.Second,
	WriteTimeout:    10 * time.Second,
	ShutdownTimeout: 10 * time.Second,
	ConfigFile:      "",
}

// ErrHelpRequested is returned by New when -h or -help was passed.
// Usage has already been printed by then.
var ErrHelpRequested = flag.ErrHelp

// InitOption tunes the behavior of New.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
	args                []string
}

// WithDisableFlagsParsing skips the command-line layer.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// WithArgs makes New parse the given arguments instead of os.Args[1:].
func WithArgs(args []string) InitOption {
	return func(options *initOptions) {
		options.args = args
	}
}

// New builds and validates the configuration.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		disableFlagsParsing: false,
		args:                os.Args[1:],
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env file: %w", err)
	}

	values := Config{}
	applyDefaults(&values, defaultConfig)

	var cli *flagValues
	if !options.disableFlagsParsing {
		cli, err = parseFlags(options.args)
		if err != nil {
			return nil, err
		}
	}

	configFile := configFilePath(cli)
	if configFile != "" {
		err = values.applyJSONFile(configFile)
		if err != nil {
			return nil, err
		}
	}

	err = env.Parse(&values)
	if err != nil {
		return nil, fmt.Errorf("unable to parse environment: %w", err)
	}
	values.ConfigFile = configFile

	if cli != nil {
		cli.applyTo(&values)
	}

	err = validate(&values)
	if err != nil {
		return nil, err
	}

	return &values, nil
}

func applyDefaults(values *Config, defaults Config) {
	*values = defaults
}

func configFilePath(cli *flagValues) string {
	if cli != nil && cli.set["c"] {
		return cli.configFile
	}

	return os.Getenv("CONFIG")
}

func (c *Config) applyJSONFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read config file %q: %w", path, err)
	}

	var fromFile fileConfig
	err = json.Unmarshal(data, &fromFile)
	if err != nil {
		return fmt.Errorf("unable to parse config file %q: %w", path, err)
	}

	if fromFile.RunAddr != nil {
		c.RunAddr = *fromFile.RunAddr
	}
	if fromFile.GRPCRunAddr != nil {
		c.GRPCRunAddr = *fromFile.GRPCRunAddr
	}
	if fromFile.LogLevel != nil {
		c.LogLevel = *fromFile.LogLevel
	}
	if fromFile.EnableGzip != nil {
		c.EnableGzip = *fromFile.EnableGzip
	}

	durations := []struct {
		raw *string
		dst *time.Duration
	}{
		{fromFile.ReadTimeout, &c.ReadTimeout},
		{fromFile.WriteTimeout, &c.WriteTimeout},
		{fromFile.ShutdownTimeout, &c.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.raw == nil {
			continue
		}
		parsed, err := time.ParseDuration(*d.raw)
		if err != nil {
			return fmt.Errorf("unable to parse duration %q in config file: %w", *d.raw, err)
		}
		*d.dst = parsed
	}

	return nil
}

type flagValues struct {
	set         map[string]bool
	runAddr     string
	grpcRunAddr string
	logLevel    string
	enableGzip  bool
	configFile  string
}

func parseFlags(args []string) (*flagValues, error) {
	values := &flagValues{set: map[string]bool{}}

	flagSet := flag.NewFlagSet("helloserver", flag.ContinueOnError)
	flagSet.StringVar(&values.runAddr, "a", defaultConfig.RunAddr, "address and port to run the HTTP server")
	flagSet.StringVar(&values.grpcRunAddr, "g", defaultConfig.GRPCRunAddr, "address and port to run the gRPC server")
	flagSet.StringVar(&values.logLevel, "l", defaultConfig.LogLevel, "logger level")
	flagSet.BoolVar(&values.enableGzip, "z", defaultConfig.EnableGzip, "compress responses with gzip")
	flagSet.StringVar(&values.configFile, "c", "", "path to the JSON configuration file")

	err := flagSet.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil, ErrHelpRequested
	}
	if err != nil {
		return nil, fmt.Errorf("unable to parse flags: %w", err)
	}

	flagSet.Visit(func(f *flag.Flag) {
		values.set[f.Name] = true
	})

	return values, nil
}

func (f *flagValues) applyTo(c *Config) {
	if f.set["a"] {
		c.RunAddr = f.runAddr
	}
	if f.set["g"] {
		c.GRPCRunAddr = f.grpcRunAddr
	}
	if f.set["l"] {
		c.LogLevel = f.logLevel
	}
	if f.set["z"] {
		c.EnableGzip = f.enableGzip
	}
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug":  true,
		"info":   true,
		"warn":   true,
		"error":  true,
		"dpanic": true,
		"panic":  true,
		"fatal":  true,
	}

	return allowedLogLevels[value]
}

func validate(values *Config) error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	return validate.Struct(values)
}
