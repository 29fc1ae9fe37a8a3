package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	contactcomponent "github.com/goliatone/go-admaiora/components/contact"
	pkgmodel "github.com/goliatone/go-admaiora/pkg/model"
	pkgopenapi "github.com/goliatone/go-admaiora/pkg/openapi"
	"github.com/goliatone/go-admaiora/pkg/orchestrator"
	"github.com/goliatone/go-admaiora/pkg/render"
	"github.com/goliatone/go-admaiora/pkg/renderers/tui"
	"github.com/goliatone/go-admaiora/pkg/renderers/vanilla"
)

// hint keys consumed by terminal prompts rather than the HTML renderer.
const cliHintPrefix = "cli."

func newSchemaCmd(_ *app) *cobra.Command {
	var (
		lint     bool
		renderer string
	)
	cmd := &cobra.Command{
		Use:   "schema [file]",
		Short: "Print the contact form model built from an OpenAPI description",
		Long: `Builds the form model from the embedded contact description, or from
file when given, and prints it as JSON.

With --lint it instead reports x-form hints that no renderer understands and
fails when any are found. With --render it prints the form through the named
renderer (vanilla for the HTML fragment, tui to walk the prompts).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, name, err := schemaSource(args)
			if err != nil {
				return err
			}
			if renderer != "" {
				return renderForm(cmd.Context(), cmd.OutOrStdout(), files, name, renderer)
			}

			form, err := contactcomponent.FormModelFrom(cmd.Context(), files, name)
			if err != nil {
				return err
			}
			if lint {
				return lintForm(cmd.ErrOrStderr(), form)
			}
			return printForm(cmd.OutOrStdout(), form)
		},
	}
	cmd.Flags().BoolVar(&lint, "lint", false, "report unknown x-form hints")
	cmd.Flags().StringVar(&renderer, "render", "", "render the form with the named renderer")
	return cmd
}

func schemaSource(args []string) (fs.FS, string, error) {
	if len(args) == 0 {
		return contactcomponent.SchemaFS(), contactcomponent.SchemaFile, nil
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		return nil, "", err
	}
	return os.DirFS(filepath.Dir(path)), filepath.Base(path), nil
}

func renderForm(ctx context.Context, w io.Writer, files fs.FS, name, rendererName string) error {
	registry := render.NewRegistry()
	html, err := vanilla.New()
	if err != nil {
		return err
	}
	prompts, err := tui.New(tui.WithOutputFormat(tui.OutputFormatPrettyText), tui.WithOutput(w))
	if err != nil {
		return err
	}
	registry.MustRegister(html)
	registry.MustRegister(prompts)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithLoaderOptions(pkgopenapi.WithFileSystem(files)),
	)
	out, err := orch.Generate(ctx, orchestrator.Request{
		Source:      pkgopenapi.SourceFromFS(name),
		OperationID: contactcomponent.OperationID,
		Renderer:    rendererName,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func printForm(w io.Writer, form pkgmodel.FormModel) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(form)
}

func lintForm(w io.Writer, form pkgmodel.FormModel) error {
	var problems []string
	for _, field := range form.Fields {
		for key := range field.Metadata {
			if strings.HasPrefix(key, cliHintPrefix) {
				continue
			}
			problems = append(problems, fmt.Sprintf("%s: unknown x-form hint %q", field.Name, key))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	for _, p := range problems {
		fmt.Fprintln(w, p)
	}
	return fmt.Errorf("schema: %d unknown hint(s)", len(problems))
}
