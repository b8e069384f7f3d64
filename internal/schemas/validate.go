// Package schemas validates candidate catalog documents against their JSON
// schema before they enter the retrieval layer.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed catalog.schema.json
var catalogSchema []byte

// ValidateCatalog checks a raw catalog document against the catalog schema.
// Returns a descriptive error listing every violation, or nil when valid.
func ValidateCatalog(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(catalogSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate catalog: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("catalog does not match schema: %s", strings.Join(problems, "; "))
}
