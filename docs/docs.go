// Package docs serves the OpenAPI description of the JSON API.
package docs

import (
	_ "embed"

	"github.com/ghodss/yaml"
	"github.com/swaggo/swag"
)

//go:embed swagger.yaml
var specYAML []byte

type document struct{}

func (document) ReadDoc() string {
	jsonSpec, err := JSON()
	if err != nil {
		return "{}"
	}
	return string(jsonSpec)
}

// JSON returns swagger.yaml converted to JSON.
func JSON() ([]byte, error) {
	return yaml.YAMLToJSON(specYAML)
}

func init() {
	swag.Register(swag.Name, document{})
}
