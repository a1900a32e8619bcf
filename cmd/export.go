package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skorpik-value/service"
)

var exportHTML bool

// ExportCmd writes a trade screenshot to the export output directory
var ExportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export a trade as a PNG screenshot.",
	Example: "  skorpik-value export --give scorp --receive pass1=3",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := fillTrade(a.Session, tradeFlags.give, tradeFlags.receive); err != nil {
			return err
		}
		snap := a.Session.Snapshot()

		name := service.Filename(snap.GeneratedAt)
		var data []byte
		if exportHTML {
			name = strings.TrimSuffix(name, ".png") + ".html"
			html, err := a.Export.RenderHTML(cmd.Context(), snap)
			if err != nil {
				return err
			}
			data = []byte(html)
		} else {
			data, err = a.Export.RenderPNG(cmd.Context(), snap)
			if err != nil {
				return err
			}
		}

		if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
			return errors.Wrap(err, "failed to create output directory")
		}
		path := filepath.Join(cfg.Export.OutputDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}

		log.Info("✅ Export: trade saved", zap.String("path", path), zap.Int("bytes", len(data)))
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	ExportCmd.Flags().StringSliceVar(&tradeFlags.give, "give", nil, "items given, as id or id=quantity")
	ExportCmd.Flags().StringSliceVar(&tradeFlags.receive, "receive", nil, "items received, as id or id=quantity")
	ExportCmd.Flags().BoolVar(&exportHTML, "html", false, "write the HTML page instead of rendering a PNG")
	rootCmd.AddCommand(ExportCmd)
}
