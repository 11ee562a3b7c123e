package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bgdnvk/pcmkctl/internal/command"
	"github.com/bgdnvk/pcmkctl/internal/config"
	"github.com/bgdnvk/pcmkctl/internal/logging"
	"github.com/bgdnvk/pcmkctl/internal/pacemaker"
	"github.com/bgdnvk/pcmkctl/internal/reports"
	"github.com/bgdnvk/pcmkctl/internal/resourceagent"
)

var cfgFile string

// newRunner and lookPath are replaced in tests.
var (
	newRunner = func(logger *slog.Logger) command.Runner {
		return command.NewExecRunner(logger)
	}
	lookPath = exec.LookPath
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pcmkctl",
	Short: "Inspect and validate pacemaker resource agents",
	Long: `pcmkctl reads the metadata of pacemaker resource agents, fence agents and
pacemaker daemons, normalizes OCF 1.0 and 1.1 metadata into one model and
validates resource options against it.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pcmkctl.yaml)")
	flags.Bool("debug", false, "enable debug output (shows pacemaker tool invocations)")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.String("log-format", config.LogFormatText, "log format: text or json")
	flags.String("crm-resource", pacemaker.DefaultCrmResource, "path to crm_resource")
	flags.String("crm-attribute", pacemaker.DefaultCrmAttribute, "path to crm_attribute")
	flags.String("daemon-dir", pacemaker.DefaultDaemonDir, "directory with pacemaker daemons")
	flags.Duration("timeout", pacemaker.DefaultTimeout, "timeout of each pacemaker tool call, 0 disables it")
	flags.String("validator", config.ValidatorAuto, "OCF schema validator: auto, builtin or xmllint")
	flags.String("schema-dir", config.DefaultSchemaDir, "directory with ocf-1.0.rng and ocf-1.1.rng, built-in schemas are used when missing")

	bindings := map[string]string{
		config.KeyDebug:        "debug",
		config.KeyLogLevel:     "log-level",
		config.KeyLogFormat:    "log-format",
		config.KeyCrmResource:  "crm-resource",
		config.KeyCrmAttribute: "crm-attribute",
		config.KeyDaemonDir:    "daemon-dir",
		config.KeyTimeout:      "timeout",
		config.KeyValidator:    "validator",
		config.KeySchemaDir:    "schema-dir",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	config.SetDefaults(viper.GetViper())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pcmkctl")
	}

	config.ConfigureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// app wires the pipeline for one command invocation.
type app struct {
	settings  config.Settings
	logger    *slog.Logger
	runner    command.Runner
	client    *pacemaker.Client
	collector *reports.Collector
}

func newApp(cmd *cobra.Command) (*app, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Config{
		Level:  settings.LogLevel,
		Debug:  settings.Debug,
		JSON:   settings.LogFormat == config.LogFormatJSON,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	runner := newRunner(logger)
	return &app{
		settings:  settings,
		logger:    logger,
		runner:    runner,
		client:    pacemaker.NewClient(runner, settings.Pacemaker, logger),
		collector: reports.NewCollector(logger),
	}, nil
}

func (a *app) schemaValidator() resourceagent.SchemaValidator {
	ocf := a.settings.Ocf
	switch ocf.Validator {
	case config.ValidatorXmllint:
		return resourceagent.NewRelaxNGValidator(a.runner, ocf.Xmllint, ocf.SchemaDir)
	case config.ValidatorAuto:
		if path, err := lookPath(ocf.Xmllint); err == nil {
			a.logger.Debug("validating metadata with xmllint", "path", path)
			return resourceagent.NewRelaxNGValidator(a.runner, path, ocf.SchemaDir)
		}
		a.logger.Debug("xmllint not found, using the built-in validator", "xmllint", ocf.Xmllint)
	}
	return resourceagent.NewStructuralValidator()
}

func (a *app) factory() *resourceagent.FacadeFactory {
	return resourceagent.NewFacadeFactory(a.client, a.schemaValidator(), a.collector)
}
