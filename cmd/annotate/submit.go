package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/annotator/internal/submit"
)

func newSubmitCmd(root *rootOptions) *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "submit FILE",
		Short: "POST an exported annotations file to a collection endpoint",
		Long: `Submit sends FILE unchanged to the collection endpoint and waits for the
answer. It exits non-zero when the endpoint is unreachable or answers with
a non-2xx status. The endpoint defaults to submit_url from the config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if url == "" {
				url = cfg.SubmitURL
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.SubmitTimeout
			}

			payload, raw, err := readExport(args[0])
			if err != nil {
				return err
			}

			client := submit.NewClient(url, timeout)
			if err := client.Submit(cmd.Context(), raw); err != nil {
				return fmt.Errorf("submitting %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted %d annotation(s) to %s\n", len(payload.Annotations), client.URL())
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "collection endpoint (default: submit_url from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	return cmd
}
