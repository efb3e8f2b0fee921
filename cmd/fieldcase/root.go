// Root command for the fieldcase CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/quietriot-sec/fieldcase/internal/observability"
	"github.com/quietriot-sec/fieldcase/internal/paths"
)

// Global flag values.
var (
	flagConfigDir string
	flagBaseDir   string
	flagProject   string
	flagJSON      bool
	flagLogLevel  string
	flagLogFile   string
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configBaseDir        string
	configDefaultProject string
)

var rootCmd = &cobra.Command{
	Use:   "fieldcase",
	Short: "Fieldcase is a local-first record keeper for security assessments",
	Long: `Fieldcase keeps per-engagement records on disk: todos, discovered
plugins, AJAX endpoints, network assets, and tool findings. Every record
lives in a plain JSON file under the project directory, so the data stays
greppable and diffable without fieldcase.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configBaseDir = cfg.GetString(cfgKeyBaseDir)
		configDefaultProject = cfg.GetString(cfgKeyDefaultProject)

		level := flagLogLevel
		if level == "" {
			level = cfg.GetString(cfgKeyLogLevel)
		}
		logFile := flagLogFile
		if logFile == "" {
			logFile = cfg.GetString(cfgKeyLogFile)
		}
		observability.Init(observability.Config{
			Level:   level,
			LogFile: logFile,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagBaseDir, "base-dir", "", "projects base directory (default: $(CWD)/.fieldcase)")
	rootCmd.PersistentFlags().StringVarP(&flagProject, "project", "p", "", "project name (default: default_project from config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "append logs to this file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(todoCmd)
	rootCmd.AddCommand(pluginCmd)
	rootCmd.AddCommand(ajaxCmd)
	rootCmd.AddCommand(assetCmd)
	rootCmd.AddCommand(findingCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

// resolveBaseDir returns the projects base directory following precedence:
// --base-dir flag > config.yaml base_dir > FIELDCASE_BASE_DIR env >
// default $(CWD)/.fieldcase.
func resolveBaseDir() (string, error) {
	return paths.ResolveBaseDir(flagBaseDir, configBaseDir)
}

// resolveConfigDir returns the configuration directory following precedence:
// --config-dir flag > FIELDCASE_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
