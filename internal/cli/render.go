package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rankwidth/pkg/errors"
	rwio "github.com/matzehuels/rankwidth/pkg/io"
	"github.com/matzehuels/rankwidth/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output file path, derived from the input when empty
	format string // svg or png
}

// renderCommand creates the render command for drawing a decomposition
// written by approx.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: render.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a decomposition (DOT file or JSON report) to SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png")

	return cmd
}

// outputPath derives the output path from the input file when output is empty.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// readDecomposition reads a DOT file, or the decomposition of a JSON report
// when the file ends in .json.
func readDecomposition(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		r, err := rwio.ImportJSON(path)
		if err != nil {
			return "", err
		}
		if r.Trivial {
			return "", errors.New(errors.ErrCodeInvalidInput, "%s: %s, nothing to render", path, r.Reason)
		}
		return r.Decomposition, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "decomposition %s", path)
		}
		return "", err
	}
	return string(data), nil
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, input string, opts *renderOpts) error {
	prog := newProgress(c.Logger)

	dot, err := readDecomposition(input)
	if err != nil {
		return err
	}

	data, err := render.Render(ctx, dot, opts.format)
	if err != nil {
		return fmt.Errorf("render %s: %w", input, err)
	}

	path := outputPath(opts.output, input, opts.format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	prog.done("Rendered " + path)
	printFile(w, path)
	return nil
}
