package httprequest

import (
	"context"
	"net/http"

	"github.com/toolweave/toolweave/pkg/catalog"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/protocol"
)

const ToolID = "http_request"

// Factory creates HTTP request executors sharing one client.
type Factory struct {
	client *http.Client
}

// NewFactory creates the HTTP request factory with the default client.
func NewFactory() protocol.ExecutorFactory {
	return &Factory{client: http.DefaultClient}
}

// NewFactoryWithClient creates the factory with a custom client, used by
// tests to stub transport.
func NewFactoryWithClient(client *http.Client) protocol.ExecutorFactory {
	return &Factory{client: client}
}

// ID returns the tool id.
func (f *Factory) ID() string {
	return ToolID
}

// Definition returns the catalog entry.
func (f *Factory) Definition() catalog.ToolDefinition {
	return catalog.ToolDefinition{
		ID:          ToolID,
		DisplayName: "HTTP Request",
		Icon:        "globe",
		Category:    models.CategoryTypeAction,
		Inputs: []catalog.PortDef{
			{Name: InputPortInput, Type: models.ValueTypeAny, Description: "Record the URL and body may template against"},
		},
		Outputs: []catalog.PortDef{
			{Name: OutputPortSuccess, Type: models.ValueTypeStructured, Description: "Response for 2xx/3xx status codes"},
			{Name: OutputPortError, Type: models.ValueTypeStructured, Description: "Failure details for 4xx/5xx or transport errors"},
		},
		ConfigSchema: []catalog.ConfigField{
			{Key: "url", Type: "string", Label: "URL", Required: true},
			{Key: "method", Type: "string", Label: "Method", Default: "GET"},
			{Key: "headers", Type: "object", Label: "Headers"},
			{Key: "body", Type: "string", Label: "Request body"},
		},
	}
}

// Create builds the executor.
func (f *Factory) Create(_ context.Context) (protocol.ToolExecutor, error) {
	return &Executor{client: f.client}, nil
}
