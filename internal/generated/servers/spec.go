package servers

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var rawSpec []byte

var (
	loadOnce sync.Once
	loaded   *openapi3.T
	loadErr  error
)

// GetSwagger returns the parsed and validated API document.
func GetSwagger() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			loadErr = fmt.Errorf("error loading spec: %w", err)
			return
		}
		if err := doc.Validate(loader.Context); err != nil {
			loadErr = fmt.Errorf("error validating spec: %w", err)
			return
		}
		loaded = doc
	})
	return loaded, loadErr
}

type swaggerDoc struct{}

// ReadDoc renders the API document as JSON for the swagger UI.
func (swaggerDoc) ReadDoc() string {
	doc, err := GetSwagger()
	if err != nil {
		return "{}"
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}
