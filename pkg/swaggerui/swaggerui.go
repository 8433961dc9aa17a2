package swaggerui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

const (
	defaultRoute = "/swagger-ui"

	// DocsPath serves the document as JSON, DocsPath + ".yaml" as YAML.
	DocsPath = "/v3/api-docs"
)

type SwaggerConfig struct {
	// OpenAPIContent is the OpenAPI document in YAML.
	OpenAPIContent []byte
	// Route is where the UI lives. Defaults to /swagger-ui.
	Route string
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
  <title>Swagger UI</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '%s',
      dom_id: '#swagger-ui'
    });
  </script>
</body>
</html>`

func registerSwaggerUI(router *gin.Engine, cfg SwaggerConfig) error {
	docJSON, err := toJSON(cfg.OpenAPIContent)
	if err != nil {
		return err
	}

	page := fmt.Sprintf(indexPage, DocsPath)

	router.GET(DocsPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", docJSON)
	})
	router.GET(DocsPath+".yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", cfg.OpenAPIContent)
	})

	route := strings.TrimSuffix(cfg.Route, "/")
	if route == "" {
		route = defaultRoute
	}
	router.GET(route, func(c *gin.Context) {
		c.Redirect(http.StatusFound, route+"/index.html")
	})
	router.GET(route+"/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, page)
	})
	return nil
}

// toJSON converts a YAML OpenAPI document to JSON.
func toJSON(content []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("OpenAPI document is empty")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert OpenAPI document to JSON: %w", err)
	}
	return data, nil
}
