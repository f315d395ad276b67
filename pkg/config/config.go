package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const usage = "usage: list_all_transactions [flags] TRANSACTIONS [OUTPUT]"

// Config is everything a run needs. It is built once and handed to the pipeline.
type Config struct {
	// Path to the transactions in JSON format.
	TransactionsPath string
	// A file that contains records of address => alias. Optional.
	AliasesPath string
	// The output file. Empty means STDOUT.
	OutputPath string
	// Write a header row before the CSV records.
	Header bool

	LogLevel    string
	LogEncoding string
	EnvFile     string
}

var (
	validLevels    = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validEncodings = map[string]bool{"console": true, "json": true}
)

// Parse reads flags and positional arguments. The env file is loaded before
// the log flags get their defaults, so LOG_LEVEL and LOG_ENCODING may live there.
func Parse(args []string, stderr io.Writer) (*Config, error) {
	envFile := envFileFromArgs(args)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not load env file %s: %w", envFile, err)
	}

	cfg := &Config{}
	fs := flag.NewFlagSet("list_all_transactions", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.AliasesPath, "aliases", "", "a JSON (or YAML) file mapping address => alias")
	fs.BoolVar(&cfg.Header, "header", false, "write a header row to the CSV output")
	fs.StringVar(&cfg.LogLevel, "log-level", env("LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.StringVar(&cfg.LogEncoding, "log-encoding", env("LOG_ENCODING", "console"), "console or json")
	fs.StringVar(&cfg.EnvFile, "env-file", envFile, "optional env file with LOG_LEVEL/LOG_ENCODING")
	// flags may follow the positional arguments, until a "--" terminator
	var rest []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		remaining := fs.Args()
		if consumed := len(args) - len(remaining); consumed > 0 && args[consumed-1] == "--" {
			rest = append(rest, remaining...)
			break
		}
		if len(remaining) == 0 {
			break
		}
		rest = append(rest, remaining[0])
		args = remaining[1:]
	}

	switch len(rest) {
	case 0:
	case 1:
		cfg.TransactionsPath = rest[0]
	case 2:
		cfg.TransactionsPath, cfg.OutputPath = rest[0], rest[1]
	default:
		return nil, fmt.Errorf("too many arguments: %v\n%s", rest, usage)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TransactionsPath == "" {
		return fmt.Errorf("missing transactions file\n%s", usage)
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if !validEncodings[c.LogEncoding] {
		return fmt.Errorf("invalid log encoding %q", c.LogEncoding)
	}
	return nil
}

// envFileFromArgs finds --env-file ahead of the real parse; flag values
// are needed to compute the other flags' defaults.
func envFileFromArgs(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if name != "env-file" || !strings.HasPrefix(a, "-") {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ".env"
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
