package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/annotator/internal/render"
)

func newRenderCmd() *cobra.Command {
	var colors map[string]string
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render an exported annotations file to annotated HTML",
		Long: `Render prints the annotated markup of FILE to stdout, one line of output
per document line. Labels are colored with --label VALUE=COLOR; labels
without a color get an empty background.`,
		Example: `  annotate render annotations.json --label PER=red --label LOC=#9cf`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, _, err := readExport(args[0])
			if err != nil {
				return err
			}
			out := render.Render(payload.Document, payload.Annotations, func(label string) string {
				return colors[label]
			})
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringToStringVarP(&colors, "label", "l", nil, "label color as VALUE=COLOR (repeatable)")
	return cmd
}
