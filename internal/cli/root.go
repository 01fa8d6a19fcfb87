package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devkit-builder/internal/app"
	"devkit-builder/internal/core"
	"devkit-builder/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "DEVKIT"

// toolEnv maps toolchain config keys to the conventional variables that
// override them when no DEVKIT_ variable is set.
var toolEnv = map[string]string{
	"ar":         "AR",
	"cc":         "CC",
	"nm":         "NM",
	"objcopy":    "OBJCOPY",
	"pkg_config": "PKG_CONFIG",
}

type RootConfig struct {
	ConfigFile string
	EnvFile    string
	LogLevel   string
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := newRootCommand()
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		exitCode := exitCodeForError(err)
		log.Error().Err(err).Int("exit_code", exitCode).Msg(errorMessage(err))
		os.Exit(exitCode)
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:     "devkit",
		Short:   "Build self-contained static devkits from pkg-config packages",
		Version: version,
		// Failures are logged with their exit code by Execute.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnvFile(cfg.EnvFile); err != nil {
				return err
			}
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.EnvFile, "env-file", "", "Dotenv file with toolchain overrides (default .env when present)")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().String("family-file", "", "Devkit family definitions (YAML or TOML); built-in families when empty")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("family_file", cmd.PersistentFlags().Lookup("family-file"))

	cmd.AddCommand(newBuildCommand())
	cmd.AddCommand(newPlanCommand())
	cmd.AddCommand(newValidateCommand())
	return cmd
}

func loadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read .env file").
				WithCause(err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read env file").
			WithCause(err)
	}
	return nil
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	for key, env := range toolEnv {
		_ = viper.BindEnv(key, envPrefix+"_"+env, env)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("devkit")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/devkit")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.DefaultContextLogger = &log.Logger
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func toolchainFromConfig() types.Toolchain {
	return types.Toolchain{
		AR:        viper.GetString("ar"),
		CC:        viper.GetString("cc"),
		NM:        viper.GetString("nm"),
		Objcopy:   viper.GetString("objcopy"),
		PkgConfig: viper.GetString("pkg_config"),
	}.WithDefaults()
}

func newAppService() (app.Service, error) {
	return app.NewService(toolchainFromConfig())
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	switch code {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeFailedPrecondition:
		if core.IsInconsistentRenameState(err) {
			return 3
		}
		return 4
	case errbuilder.CodeNotFound:
		return 5
	case errbuilder.CodeInternal:
		return 6
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
