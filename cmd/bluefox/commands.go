package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	bluefox "github.com/JamalLyons/bluefox-email"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSubscriberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriber",
		Short: "Manage subscriber lists",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <list-id>",
		Short: "List the members of a subscriber list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			list, err := client.Subscribers.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <list-id> <name> <email>",
		Short: "Add a subscriber to a list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			sub, err := client.Subscribers.Add(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return printJSON(sub)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <list-id> <email>",
		Short: "Unsubscribe a member from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			sub, err := client.Subscribers.Remove(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(sub)
		},
	})

	pause := &cobra.Command{
		Use:   "pause <list-id> <email>",
		Short: "Pause delivery to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			client, err := newClient()
			if err != nil {
				return err
			}
			until := time.Now().AddDate(0, 0, days)
			sub, err := client.Subscribers.Pause(cmd.Context(), args[0], args[1], until)
			if err != nil {
				return err
			}
			return printJSON(sub)
		},
	}
	pause.Flags().Int("days", 30, "number of days to pause for")
	cmd.AddCommand(pause)

	cmd.AddCommand(&cobra.Command{
		Use:   "activate <list-id> <email>",
		Short: "Resume delivery to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			sub, err := client.Subscribers.Activate(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(sub)
		},
	})

	return cmd
}

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send transactional or triggered email",
	}

	transactional := &cobra.Command{
		Use:   "transactional <template-id> <email>",
		Short: "Send a transactional email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataJSON, _ := cmd.Flags().GetString("data")
			var data map[string]any
			if dataJSON != "" {
				if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
					return fmt.Errorf("parse --data: %w", err)
				}
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.Emails.SendTransactional(cmd.Context(), bluefox.SendTransactionalParams{
				To:              args[1],
				TransactionalID: args[0],
				Data:            data,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	transactional.Flags().String("data", "", "merge data as a JSON object")
	cmd.AddCommand(transactional)

	triggered := &cobra.Command{
		Use:   "triggered <automation-id> <email>...",
		Short: "Send a triggered email to one or more recipients",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataJSON, _ := cmd.Flags().GetString("data")
			var data map[string]any
			if dataJSON != "" {
				if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
					return fmt.Errorf("parse --data: %w", err)
				}
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.Emails.SendTriggered(cmd.Context(), bluefox.SendTriggeredParams{
				TriggeredID: args[0],
				Emails:      args[1:],
				Data:        data,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	triggered.Flags().String("data", "", "merge data as a JSON object")
	cmd.AddCommand(triggered)

	return cmd
}

func newWebhookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Test and receive webhook events",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "test <url>",
		Short: "POST a synthetic event to an endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			result, err := client.Webhooks.Test(cmd.Context(), args[0], bluefox.EventOpen)
			if err != nil {
				return err
			}
			fmt.Printf("endpoint answered %d in %s\n", result.StatusCode, result.ResponseTime)
			return nil
		},
	})

	listen := &cobra.Command{
		Use:   "listen",
		Short: "Run a local HTTP server that prints incoming events",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			client, err := newClient()
			if err != nil {
				return err
			}

			handler := func(w http.ResponseWriter, r *http.Request) {
				event, err := client.Webhooks.Handle(r.Context(), r)
				if err != nil {
					http.Error(w, err.Error(), http.StatusUnauthorized)
					return
				}
				_ = printJSON(event)
				w.WriteHeader(http.StatusOK)
			}

			fmt.Printf("listening on %s\n", addr)
			return http.ListenAndServe(addr, http.HandlerFunc(handler))
		},
	}
	listen.Flags().String("addr", ":8787", "listen address")
	cmd.AddCommand(listen)

	return cmd
}
