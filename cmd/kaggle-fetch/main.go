// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kaggle-fetch CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kaggle-fetch/internal/kaggle"
	"github.com/pdiddy/kaggle-fetch/internal/secrets"
	"github.com/pdiddy/kaggle-fetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "kaggle-fetch/0.1"
	secretsDir       = ".secrets/"
)

// loadedSecrets holds key files loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// log is the diagnostic logger. User-facing status goes to the command's
// output writer instead.
var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "kaggle-fetch",
	Short: "Download files from Kaggle datasets",
	Long: `kaggle-fetch authenticates against the Kaggle API and downloads a named
file from a named dataset. Credentials are read from KAGGLE_USERNAME and
KAGGLE_KEY, a .env file, .secrets/kaggle-username and .secrets/kaggle-key,
or kaggle.json in ~/.kaggle (or $KAGGLE_CONFIG_DIR).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(logrus.DebugLevel)
		}

		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}

		s, err := secrets.Load(secretsDir, log)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	log.Out = os.Stderr
	log.SetLevel(logrus.WarnLevel)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./kaggle-fetch.yaml or $XDG_CONFIG_HOME/kaggle-fetch/kaggle-fetch.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests and decisions to stderr")
	rootCmd.PersistentFlags().String("ledger", "", "download history database (default $XDG_DATA_HOME/kaggle-fetch/history.db)")

	viper.BindPFlag("ledger_path", rootCmd.PersistentFlags().Lookup("ledger"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kaggle-fetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join(xdg.ConfigHome, "kaggle-fetch"))
	}

	viper.SetDefault("api_base", kaggle.DefaultAPIBase)
	viper.SetDefault("timeout", defaultTimeout)
	viper.SetDefault("user_agent", defaultUserAgent)

	viper.SetEnvPrefix("KAGGLE_FETCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

// clientConfig builds the API client settings from viper.
func clientConfig() types.ClientConfig {
	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString("user_agent"),
		},
		APIBase: viper.GetString("api_base"),
	}
}

// authenticatedClient constructs a client and authenticates it. No API
// request is possible before this returns successfully.
func authenticatedClient() (*kaggle.Client, error) {
	client := kaggle.NewClient(nil, clientConfig(), log)

	creds, err := secrets.Resolve(secrets.Options{
		Username: viper.GetString("username"),
		Key:      viper.GetString("key"),
		Secrets:  loadedSecrets,
		Log:      log,
	})
	if err != nil {
		return nil, err
	}
	if err := client.Authenticate(creds); err != nil {
		return nil, err
	}
	return client, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
