// Command bluefox is a small CLI over the Bluefox.email API, useful for
// poking at subscriber lists and send endpoints from a shell.
//
// Configuration is read from flags, BLUEFOX_* environment variables,
// and an optional .env file in the working directory.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	bluefox "github.com/JamalLyons/bluefox-email"
)

func main() {
	// A missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bluefox",
		Short:         "Interact with the Bluefox.email API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("api-key", "", "Bluefox API key")
	root.PersistentFlags().String("base-url", "", "API base URL override")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	root.PersistentFlags().Duration("timeout", 15*time.Second, "request timeout")

	viper.SetEnvPrefix("BLUEFOX")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("api_key", root.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("base_url", root.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("timeout", root.PersistentFlags().Lookup("timeout"))

	root.AddCommand(newSubscriberCmd())
	root.AddCommand(newSendCmd())
	root.AddCommand(newWebhookCmd())

	return root
}

// newClient builds an SDK client from the resolved configuration.
func newClient() (*bluefox.Client, error) {
	apiKey := viper.GetString("api_key")
	if apiKey == "" {
		return nil, fmt.Errorf("API key required (--api-key or BLUEFOX_API_KEY)")
	}

	opts := []bluefox.Option{
		bluefox.WithTimeout(viper.GetDuration("timeout")),
	}
	if baseURL := viper.GetString("base_url"); baseURL != "" {
		opts = append(opts, bluefox.WithBaseURL(baseURL))
	}
	if viper.GetBool("debug") {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		opts = append(opts, bluefox.WithLogger(logger))
	}

	return bluefox.New(apiKey, opts...)
}
