package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/five82/foodlens/internal/app"
	"github.com/five82/foodlens/internal/foodlens"
	"github.com/five82/foodlens/internal/imagefile"
	"github.com/five82/foodlens/internal/state"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// report is the json/yaml shape of a finished analysis.
type report struct {
	File     string            `json:"file" yaml:"file"`
	Analysis foodlens.Analysis `json:"analysis" yaml:"analysis"`
}

func newAnalyzeCmd(s *settings) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyze one image and print the result",
		Long: `Upload a single image, wait for the result and print it.

The exit status is non-zero when the image is rejected or the analysis fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if err := checkFormat(format); err != nil {
				return err
			}
			cfg, err := s.config()
			if err != nil {
				return err
			}

			env, err := app.NewEnv(cfg)
			if err != nil {
				return err
			}
			defer env.Close()

			store := &state.Store{}
			defer store.Close()

			snap, err := app.AnalyzeFile(cmd.Context(), env.Client, store, args[0], env.Logger)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), failureMessage(err))
				return ErrReported
			}
			return writeReport(cmd.OutOrStdout(), format, snap)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

// failureMessage is the line shown to the user; the cause goes to the log.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, imagefile.ErrNotImage):
		return err.Error()
	case foodlens.KindOf(err) != "":
		return foodlens.UserMessage(err)
	default:
		return err.Error()
	}
}

func writeReport(w io.Writer, format string, snap state.Snapshot) error {
	rep := report{File: snap.Image.Name, Analysis: snap.Result}

	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return writeText(w, snap.Result)
	}
}

func writeText(w io.Writer, a foodlens.Analysis) error {
	fmt.Fprintln(w, a.DisplayName())
	fmt.Fprintln(w, a.DisplayDescription())
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range a.Fields() {
		fmt.Fprintf(tw, "%s:\t%s\n", f.Label, f.Value)
	}
	return tw.Flush()
}
