// Package docs embute o documento OpenAPI servido em /docs.
package docs

import _ "embed"

//go:embed swagger.json
var SwaggerJSON []byte
