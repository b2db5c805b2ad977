package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/decred/slog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/api"
	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/session"
	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/ui"
)

const (
	releaseVersion = "0.1.0"

	defaultServer = "https://contaminados.akamai.meseguercr.com"
)

type config struct {
	server   string
	player   string
	password string
	logFile  string
	debug    bool
}

func (c *config) validate() error {
	if strings.TrimSpace(c.player) == "" {
		return errors.New("--player is required")
	}
	if !strings.HasPrefix(c.server, "http://") && !strings.HasPrefix(c.server, "https://") {
		return fmt.Errorf("invalid server url: %q", c.server)
	}
	return nil
}

// setupLogging returns a disabled logger unless --debug is set, in which
// case lines go to the log file. Logging to the terminal would fight the
// alt-screen UI for the same tty.
func setupLogging(cfg *config) (slog.Logger, func(), error) {
	if !cfg.debug {
		return slog.Disabled, func() {}, nil
	}
	path := cfg.logFile
	if path == "" {
		path = filepath.Join(os.TempDir(), "contaminados.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log := slog.NewBackend(f).Logger("CDOS")
	log.SetLevel(slog.LevelDebug)
	return log, func() { f.Close() }, nil
}

func run(cmd *cobra.Command, cfg *config, args []string) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	log, closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := api.NewClient(cfg.server, log)
	if err != nil {
		return err
	}

	sessions := session.NewStore()

	gameID := ""
	if len(args) == 1 {
		gameID = strings.TrimSpace(args[0])
	}

	log.Infof("connecting to %s as %s", cfg.server, cfg.player)
	return ui.Run(cmd.Context(), client, sessions, log, cfg.player, cfg.password, gameID)
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CONTAMINADOS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "contaminados [game-id]",
		Short:         "Terminal client for the contaminaDOS social deduction game.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.server, "server", "s", defaultServer, "game server base url (env: CONTAMINADOS_SERVER)")
	fs.StringVarP(&cfg.player, "player", "p", "", "player name, 3 to 20 characters (env: CONTAMINADOS_PLAYER)")
	fs.StringVar(&cfg.password, "password", "", "room password, if any (env: CONTAMINADOS_PASSWORD)")
	fs.StringVar(&cfg.logFile, "log-file", "", "debug log destination (env: CONTAMINADOS_LOG_FILE)")
	fs.BoolVar(&cfg.debug, "debug", false, "write debug logs (env: CONTAMINADOS_DEBUG)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("contaminados v{{.Version}}\n")
	cmd.SilenceUsage = true

	return cmd
}

func main() {
	cfg := &config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
