package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	contactcomponent "github.com/goliatone/go-admaiora/components/contact"
	"github.com/goliatone/go-admaiora/pkg/model"
	pkgopenapi "github.com/goliatone/go-admaiora/pkg/openapi"
	"github.com/goliatone/go-admaiora/pkg/orchestrator"
	"github.com/goliatone/go-admaiora/pkg/render"
	"github.com/goliatone/go-admaiora/pkg/testsupport"
)

func newOrchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(
		orchestrator.WithLoaderOptions(pkgopenapi.WithFileSystem(contactcomponent.SchemaFS())),
	)
}

func contactRequest() orchestrator.Request {
	return orchestrator.Request{
		Source:      pkgopenapi.SourceFromFS(contactcomponent.SchemaFile),
		OperationID: contactcomponent.OperationID,
	}
}

func TestOrchestrator_Model(t *testing.T) {
	form, err := newOrchestrator().Model(testsupport.Context(), contactRequest())
	if err != nil {
		t.Fatalf("model: %v", err)
	}

	want := []string{"name", "email", "company", "message"}
	if diff := cmp.Diff(want, form.FieldNames()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if form.OperationID != contactcomponent.OperationID {
		t.Fatalf("operation id = %q", form.OperationID)
	}
}

func TestOrchestrator_GenerateDefaultRenderer(t *testing.T) {
	orch := newOrchestrator()
	if diff := cmp.Diff([]string{"vanilla"}, orch.Renderers()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}

	out, err := orch.Generate(testsupport.Context(), contactRequest())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{`data-netlify="true"`, `name="message"`} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, html)
		}
	}
}

func TestOrchestrator_DocumentBypassesLoader(t *testing.T) {
	doc := testsupport.LoadDocument(t, "../../components/contact/schema/contact.yaml")

	orch := orchestrator.New()
	form, err := orch.Model(testsupport.Context(), orchestrator.Request{
		Document:    &doc,
		OperationID: contactcomponent.OperationID,
	})
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	if len(form.Fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(form.Fields))
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	orch := newOrchestrator()
	ctx := testsupport.Context()

	cases := map[string]orchestrator.Request{
		"missing operation id": {Source: pkgopenapi.SourceFromFS(contactcomponent.SchemaFile)},
		"unknown operation": {
			Source:      pkgopenapi.SourceFromFS(contactcomponent.SchemaFile),
			OperationID: "subscribe",
		},
		"missing source":   {OperationID: contactcomponent.OperationID},
		"unknown renderer": func() orchestrator.Request { r := contactRequest(); r.Renderer = "pdf"; return r }(),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := orch.Generate(ctx, req); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := orch.Model(cancelled, contactRequest()); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}

func TestOrchestrator_FallsBackToRegistryDefault(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(textRenderer{})

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithLoaderOptions(pkgopenapi.WithFileSystem(contactcomponent.SchemaFS())),
	)
	out, err := orch.Generate(testsupport.Context(), contactRequest())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "name,email,company,message" {
		t.Fatalf("unexpected output %q", out)
	}

	req := contactRequest()
	req.Renderer = "vanilla"
	if _, err := orch.Generate(testsupport.Context(), req); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

type textRenderer struct{}

func (textRenderer) Name() string        { return "text" }
func (textRenderer) ContentType() string { return "text/plain" }
func (textRenderer) Render(_ context.Context, form model.FormModel, _ render.RenderOptions) ([]byte, error) {
	return []byte(strings.Join(form.FieldNames(), ",")), nil
}
