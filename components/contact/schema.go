package contact

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	pkgmodel "github.com/goliatone/go-admaiora/pkg/model"
	pkgopenapi "github.com/goliatone/go-admaiora/pkg/openapi"
	"github.com/goliatone/go-admaiora/pkg/orchestrator"
)

// SchemaFile is the OpenAPI description inside SchemaFS.
const SchemaFile = "contact.yaml"

// OperationID identifies the submit operation in SchemaFile.
const OperationID = "submitContact"

//go:embed schema/contact.yaml
var embeddedSchema embed.FS

// SchemaFS exposes the embedded OpenAPI description.
func SchemaFS() fs.FS {
	sub, err := fs.Sub(embeddedSchema, "schema")
	if err != nil {
		return embeddedSchema
	}
	return sub
}

// FormModel builds the contact form model from the embedded description.
func FormModel(ctx context.Context) (pkgmodel.FormModel, error) {
	return FormModelFrom(ctx, SchemaFS(), SchemaFile)
}

// FormModelFrom builds the contact form model from an OpenAPI document in
// files.
func FormModelFrom(ctx context.Context, files fs.FS, name string) (pkgmodel.FormModel, error) {
	orch := orchestrator.New(orchestrator.WithLoaderOptions(pkgopenapi.WithFileSystem(files)))
	form, err := orch.Model(ctx, orchestrator.Request{
		Source:      pkgopenapi.SourceFromFS(name),
		OperationID: OperationID,
	})
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("contact: %s: %w", name, err)
	}
	return form, nil
}
