package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/annotator/internal/config"
	"github.com/pkordes/annotator/internal/domain"
)

type rootOptions struct {
	cfgFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Render, submit and store document annotation exports",
		Long: `annotate works with annotations.json files produced by the annotator
server. It renders them to annotated HTML, submits them to a collection
endpoint, and migrates the database behind /DocumentAnnotations/.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file path (YAML)")

	cmd.AddCommand(newRenderCmd(), newSubmitCmd(opts), newMigrateCmd(opts))
	return cmd
}

func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// readExport reads and decodes an exported payload. The raw bytes are
// returned as well so they can be forwarded unchanged.
func readExport(path string) (domain.ExportPayload, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ExportPayload{}, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var p domain.ExportPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.ExportPayload{}, nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return p, raw, nil
}
