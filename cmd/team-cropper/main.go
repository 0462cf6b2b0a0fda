package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	teamcrop "github.com/menta2k/team-cropper"
	"github.com/menta2k/team-cropper/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one crop pass and returns the process exit status.
// Any failure prints "Error: <message>" to stderr and yields 1.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("team-cropper", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var configPath string
	fs.StringVar(&configPath, "config", "", "JSON crop configuration (defaults to the built-in team layout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := newLogger(stdout)
	defer logger.Sync()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: invalid config: %v\n", err)
		return 1
	}

	if _, err := teamcrop.New(cfg, logger).Run(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zap.InfoLevel)
	return zap.New(core)
}
