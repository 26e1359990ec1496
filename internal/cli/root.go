// Package cli implements the geminikit command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skosovsky/geminikit/catalog"
	"github.com/skosovsky/geminikit/internal/jsonx"
	"github.com/skosovsky/geminikit/internal/server"
	"github.com/skosovsky/geminikit/schemagen"
)

// DefaultConfigPath is the --config default.
const DefaultConfigPath = "geminikit.yaml"

type rootOptions struct {
	configPath string
}

// Execute runs the command line args.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := NewRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "geminikit",
		Short:         "Run configured Gemini actions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", DefaultConfigPath, "config yaml path")

	root.AddCommand(
		newRunCmd(opts),
		newModelsCmd(opts),
		newSchemaCmd(opts),
		newSampleCmd(opts),
		newGenCmd(opts),
		newPingCmd(opts),
		newServeCmd(opts),
	)
	return root
}

func (o *rootOptions) load(cmd *cobra.Command) (*app, error) {
	return loadApp(cmd.Context(), o.configPath, cmd.ErrOrStderr())
}

func printJSON(w io.Writer, v any) error {
	data, err := jsonx.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var input, inputFile string
	cmd := &cobra.Command{
		Use:   "run ACTION",
		Short: "Invoke a configured action with a JSON input",
		Long: "Invoke a configured action. The JSON input comes from --input, --input-file, " +
			"or stdin when neither is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, input, inputFile)
			if err != nil {
				return err
			}
			out, err := a.registry.Invoke(cmd.Context(), args[0], data)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON input")
	cmd.Flags().StringVarP(&inputFile, "input-file", "f", "", "file holding the JSON input")
	cmd.MarkFlagsMutuallyExclusive("input", "input-file")
	return cmd
}

func readInput(cmd *cobra.Command, input, inputFile string) ([]byte, error) {
	switch {
	case input != "":
		return []byte(input), nil
	case inputFile != "":
		// #nosec G304 -- path is provided by trusted flag.
		return os.ReadFile(inputFile)
	default:
		return io.ReadAll(cmd.InOrStdin())
	}
}

func newModelsCmd(opts *rootOptions) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available models, optionally as a text, vision or embedding pick-list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if kind == "" {
				models, err := a.catalog.Models(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), models)
			}
			choices, err := a.catalog.PickList(cmd.Context(), catalog.Kind(kind))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), choices)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "pick-list kind: text, vision or embedding")
	return cmd
}

func newSchemaCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema ACTION",
		Short: "Print the output fields of a configured action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			fields, err := a.registry.OutputFields(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), fields)
		},
	}
}

func newSampleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sample ACTION",
		Short: "Print a sample output of a configured action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			sample, err := a.registry.SampleOutput(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), sample)
		},
	}
}

func newGenCmd(opts *rootOptions) *cobra.Command {
	var pkg, typeName, out string
	cmd := &cobra.Command{
		Use:   "gen ACTION",
		Short: "Generate a Go struct for the output of a parse_text action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			def, ok := a.registry.Definition(args[0])
			if !ok || def.Schema.IsZero() {
				return fmt.Errorf("action %q has no parse schema", args[0])
			}
			if typeName == "" {
				typeName = schemagen.GoName(def.Name)
			}
			src, err := schemagen.Generate(pkg, typeName, def.Schema)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
				return err
			}
			return os.WriteFile(out, src, 0o600)
		},
	}
	cmd.Flags().StringVar(&pkg, "package", "models", "package name of the generated file")
	cmd.Flags().StringVar(&typeName, "type", "", "type name (default derived from the action name)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newPingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Verify the credentials with an uncached model listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := a.catalog.Ping(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return err
		},
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve configured actions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			addr := a.cfg.Server.Listen
			if strings.TrimSpace(listen) != "" {
				addr = listen
			}
			return server.New(a.registry, a.catalog, a.logger).Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides server.listen)")
	return cmd
}
