// file: cmd/root.go
// version: 2.1.0
// guid: 4d8a2f6c-9b3e-4e7a-8f1d-6c2b9e5a3f74

package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mfigueroa/stockroom/internal/config"
	"github.com/mfigueroa/stockroom/internal/database"
	"github.com/mfigueroa/stockroom/internal/server"
)

var cfgFile string
var databasePath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockroom",
	Short: "Multi-shop inventory catalog with typo-tolerant search",
	Long: `Stockroom keeps per-shop product and category catalogs in SQLite and
serves them over a REST API.

Its search endpoint tolerates typos, abbreviations, and partial input by
combining exact, prefix, substring, acronym, trigram, and edit-distance
matching into one ranked result list.`,
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start the web server that exposes the catalog and search API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitializeStore(config.AppConfig.DatabasePath); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		fmt.Printf("Using database: %s\n", config.AppConfig.DatabasePath)

		// Re-apply configuration when the config file changes on disk.
		// Listen address and database path stay fixed for the process
		// lifetime; tunables like the fuzzy search window pick up the
		// new values on the next request.
		viper.OnConfigChange(func(e fsnotify.Event) {
			log.Printf("Config file changed: %s", e.Name)
			config.InitConfig()
		})
		viper.WatchConfig()

		srv := server.NewServer(database.GlobalStore)
		cfg := server.ServerConfig{
			Host:         config.AppConfig.Host,
			Port:         fmt.Sprintf("%d", config.AppConfig.Port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Override with command line flags if provided
		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}
		if it := cmd.Flag("idle-timeout").Value.String(); it != "" {
			if d, err := time.ParseDuration(it); err == nil {
				cfg.IdleTimeout = d
			}
		}

		return srv.Start(cfg)
	},
}

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all catalog data",
	Long:  `Delete every shop, category, and product from the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitializeStore(config.AppConfig.DatabasePath); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		if err := database.GlobalStore.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Printf("Database reset: %s\n", config.AppConfig.DatabasePath)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.stockroom.yaml)")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "stockroom.db", "path to the SQLite database")

	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)

	// Add serve command specific flags
	serveCmd.Flags().String("port", "", "port to run the web server on")
	serveCmd.Flags().String("host", "", "host to bind the web server to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("idle-timeout", "60s", "idle timeout (e.g. 60s, 2m)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".stockroom")
	}

	viper.SetEnvPrefix("STOCKROOM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	// Ensure database directory exists
	if databasePath != "" {
		dbDir := filepath.Dir(databasePath)
		if dbDir != "." {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				fmt.Printf("Error creating database directory: %v\n", err)
			}
		}
	}

	config.InitConfig()
}
