package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ughe/tigerpaint/config"
	"github.com/ughe/tigerpaint/imagestore"
	"github.com/ughe/tigerpaint/util"
)

const defaultConfig = "tigerpaint.yaml"

// app holds what every command needs once flags and the config file are read
type app struct {
	cfg    config.Config
	logger *slog.Logger
	store  imagestore.Store
}

func defaultKeys() string {
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	return path.Join(usr.HomeDir, ".aws")
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tigerpaint",
		Short: "Repaint images using every palette colour at most once",
		Long: `tigerpaint recreates an image pixel by pixel, giving each pixel the
closest colour that has not been used yet.

Images are read from and written to local paths, s3://bucket/key or
gs://bucket/object.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.String("config", "", "YAML config file (default ./"+defaultConfig+" if present)")
	flags.String("keys", defaultKeys(), "Path to credentials directory (aws: credentials config, gcp: gcp.json)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.Bool("json", false, "Log as JSON")

	root.AddCommand(
		newRunCmd(a),
		newPaletteCmd(a),
		newReportCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfgPath, _ := flags.GetString("config")
	if cfgPath == "" && config.Exists(defaultConfig) {
		cfgPath = defaultConfig
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("json") {
		cfg.Log.JSON, _ = flags.GetBool("json")
	}
	if flags.Changed("keys") || cfg.Credentials == "" {
		cfg.Credentials, _ = flags.GetString("keys")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := util.NewLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	if a.store == nil {
		a.store = imagestore.NewRouter(cfg.Credentials)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
