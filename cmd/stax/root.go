package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/andrewpillar/stax"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func rootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "stax",
		Short:         "Command line client for the Stax Payments API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("api-key", "", "API key, defaults to $STAX_API_KEY")
	flags.String("api-secret", "", "API secret, switches to basic auth")
	flags.String("base-url", "", "override the base URL of the API")
	flags.Bool("sandbox", false, "use the sandbox environment")
	flags.String("proxy", "", "proxy to send requests through")
	flags.String("config", "", "YAML file to read these flags from")
	flags.StringP("output", "o", "json", "output format, json or yaml")
	flags.Bool("debug", false, "log each request made")

	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	v.SetEnvPrefix("STAX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.AddCommand(
		customersCmd(v),
		invoicesCmd(v),
		paymentMethodsCmd(v),
		paymentsCmd(v),
		transactionsCmd(v),
	)
	return cmd
}

// loadConfig loads the .env file of the working directory, if any, and then
// the YAML file given via --config. Flags take precedence over both.
func loadConfig(v *viper.Viper) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	path := v.GetString("config")

	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return nil
}

func newClient(cmd *cobra.Command, v *viper.Viper) (*stax.Client, error) {
	level := slog.LevelWarn

	if v.GetBool("debug") {
		level = slog.LevelDebug
	}

	cfg := stax.Config{
		APIKey:    v.GetString("api-key"),
		APISecret: v.GetString("api-secret"),
		BaseURL:   v.GetString("base-url"),
		Proxy:     v.GetString("proxy"),
		Logger: slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: level,
		})),
	}

	if v.GetBool("sandbox") {
		cfg.Environment = stax.Sandbox
	}
	return stax.New(cfg)
}
