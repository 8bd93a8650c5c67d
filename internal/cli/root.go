package cli

import (
	"context"
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/benchkit/benchkit/internal/style"
	"github.com/charmbracelet/lipgloss/v2"
)

var (
	// Global flags
	cfgFile      string
	logLevel     string
	outputFormat string
	quiet        bool
	verbose      bool
)

// rootCmd represents the base command. Running it without a subcommand
// fetches all supported benchmarks with the default limit.
var rootCmd = &cobra.Command{
	Use:   "benchkit",
	Short: "Benchkit - benchmark datasets, fetched and flattened",
	Long: `Benchkit downloads public benchmark datasets (PIQA, HellaSwag, BoolQ, GSM8K)
from the Hugging Face datasets-server, truncates each to a fixed sample count,
normalizes their fields and writes one JSON file per dataset.

Run without arguments to fetch all four benchmarks into ./data.`,
	Version: getVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
		go triggerBackgroundUpdateCheck()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		showUpdateNotificationIfAvailable()
	},
	Run: func(cmd *cobra.Command, args []string) {
		runFetch(cmd, nil)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return fang.Execute(context.Background(), rootCmd, fang.WithColorSchemeFunc(func(lightDark lipgloss.LightDarkFunc) fang.ColorScheme {
		return fang.ColorScheme{
			Base:           style.PrimaryTextColor,
			Title:          style.AccentColor,
			Description:    style.PrimaryTextColor,
			Codeblock:      style.CodeColor,
			Program:        style.AccentColor,
			DimmedArgument: style.MutedColor,
			Comment:        style.MutedColor,
			Flag:           style.InfoColor,
			FlagDefault:    style.MutedColor,
			Command:        style.SuccessColor,
			QuotedString:   style.WarningColor,
			Argument:       style.PrimaryTextColor,
			Help:           style.InfoColor,
			Dash:           style.MutedColor,
			ErrorHeader:    [2]color.Color{style.ErrorColor, style.ErrorBgColor},
			ErrorDetails:   style.ErrorColor,
		}
	}))
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.benchkit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "disabled", "log level (debug, info, warn, error) (default: disabled)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".benchkit" (without extension).
		viper.AddConfigPath(home + "/.benchkit")
		viper.AddConfigPath(".")
		viper.AddConfigPath(".benchkit")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("BENCHKIT")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if !quiet {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}
}

// initLogging configures the global logger
func initLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := viper.GetString("log-level")
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	// Configure console output for better readability
	if !viper.GetBool("quiet") && outputFormat == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// getVersion returns the version information
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, go: %s)", Version, Commit, Date, GoVersion)
}

// triggerBackgroundUpdateCheck performs a background check for updates if the cache is expired
func triggerBackgroundUpdateCheck() {
	// Create a dummy command for the update check (won't be used for output)
	dummyCmd := &cobra.Command{}

	checkForUpdate(dummyCmd, false)
}

// showUpdateNotificationIfAvailable checks for available updates and shows a notification
func showUpdateNotificationIfAvailable() {
	if viper.GetBool("quiet") {
		return
	}

	// Cache only, no network calls on the exit path
	updateInfo := ShouldShowUpdateNotification()
	if updateInfo != nil {
		fmt.Fprintf(os.Stderr, "\n%s A newer version (%s) is available! Run 'benchkit update' to upgrade.\n",
			style.InfoIcon(), updateInfo.LatestVersion)
	}
}
