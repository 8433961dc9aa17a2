// Package api embeds the OpenAPI document of the sales service.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPISpec []byte
