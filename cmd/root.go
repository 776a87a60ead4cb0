package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	catalogFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fankai",
	Short: "fankai catalog resolution cli",
	Long:  `match a local Fankai library against the Fankai metadata catalog`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog-file", "", "read the catalog from a json snapshot instead of the catalog api")
}

const (
	defaultJobTicker   = time.Minute * 10
	defaultConcurrency = 4
)

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("FANKAI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("catalog.uri", "https://metadata.fankai.fr")
	viper.SetDefault("catalog.apiKey", "")
	viper.SetDefault("catalog.maxRetries", 3)
	viper.SetDefault("catalog.backoff", time.Millisecond*500)
	viper.SetDefault("catalog.timeout", time.Second*30)
	viper.SetDefault("catalog.cacheTTL", time.Hour)

	viper.SetDefault("matching.penaltyFactor", 5)
	viper.SetDefault("matching.acceptThreshold", 50)
	viper.SetDefault("matching.yearBonus", 20)

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("library.tv", "")

	viper.SetDefault("storage.filePath", "fankai.sqlite")

	viper.SetDefault("manager.jobs.libraryReconcile", defaultJobTicker)
	viper.SetDefault("manager.concurrency", defaultConcurrency)
}
