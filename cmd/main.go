// @title           Home Dashboard API
// @version         1.0
// @description     Gateway between the browser dashboard and the home-automation assistant backend.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"home_dashboard/internal/config"
	"home_dashboard/internal/logger"

	_ "home_dashboard/docs"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const (
	flagConfigDir = "config-dir"
	flagLogLevel  = "log-level"
	flagPort      = "port"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(serve).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(action cli.ActionFunc) *cli.App {
	return &cli.App{
		Name:   "home-dashboard",
		Usage:  "web dashboard for the home assistant backend",
		Action: action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfigDir,
				EnvVars: []string{"DASHBOARD_CONFIG_DIR"},
				Value:   "configs",
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				EnvVars: []string{"DASHBOARD_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    flagPort,
				EnvVars: []string{"DASHBOARD_PORT"},
			},
		},
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	return run(c.Context, cfg, log)
}

// loadConfig reads the config file and lets explicit flags win over it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	v := viper.New()
	if c.IsSet(flagPort) {
		v.Set("port", c.String(flagPort))
	}
	if c.IsSet(flagLogLevel) {
		v.Set("log.level", c.String(flagLogLevel))
	}

	cfg, err := config.Load(v, c.String(flagConfigDir))
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return cfg, nil
}
