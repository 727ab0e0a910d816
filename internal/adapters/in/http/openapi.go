package http

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISource []byte

// OpenAPIDoc is the validated API description and its JSON rendering.
type OpenAPIDoc struct {
	Spec *openapi3.T
	JSON []byte
}

// LoadOpenAPI parses and validates the embedded document.
func LoadOpenAPI() (*OpenAPIDoc, error) {
	loader := &openapi3.Loader{Context: context.Background()}
	spec, err := loader.LoadFromData(openAPISource)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = spec.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	raw, err := spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	return &OpenAPIDoc{Spec: spec, JSON: raw}, nil
}

// swaggerDoc feeds the Swagger UI served under /swagger.
type swaggerDoc string

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

var swaggerOnce sync.Once

// registerSwagger installs doc as the default swag document. swag allows a
// single registration per name, later calls are ignored.
func registerSwagger(doc *OpenAPIDoc) {
	swaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc(doc.JSON))
	})
}
