package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blogfront/internal/config"
)

var (
	configDir string
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "blogfront",
	Short: "Blog front-end for the content API",
	Long: `blogfront renders a blog from its content API.

  blogfront serve     # serve the web front-end
  blogfront browse    # browse articles in the terminal`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./configs", "directory containing config.yaml")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("api-url", "", "content API base URL")
	rootCmd.PersistentFlags().String("source", "", "article source (remote or static)")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("source.kind", rootCmd.PersistentFlags().Lookup("source"))

	rootCmd.AddCommand(serveCmd, browseCmd)
}

// initConfig loads configuration once flags are parsed.
func initConfig() error {
	var err error
	cfg, err = config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return nil
}

// newLogger builds the application logger at the configured level.
func newLogger(out io.Writer, formatter logrus.Formatter) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	log := logrus.New()
	log.SetFormatter(formatter)
	log.SetOutput(out)
	log.SetLevel(level)
	return log, nil
}

// browseLogOutput keeps log lines off the terminal the browser draws on.
func browseLogOutput() (io.Writer, func(), error) {
	if cfg.Log.File == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
