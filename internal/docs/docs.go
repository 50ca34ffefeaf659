// Package docs serves the OpenAPI description of the count service API.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed openapi.json
var openAPI []byte

type document struct{}

// ReadDoc returns the OpenAPI document.
func (document) ReadDoc() string {
	return string(openAPI)
}

func init() {
	swag.Register(swag.Name, document{})
}

// OpenAPI returns the raw document.
func OpenAPI() []byte {
	return openAPI
}
