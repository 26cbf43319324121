// ABOUTME: Serves the API's OpenAPI document
// ABOUTME: The YAML is embedded at build time so the binary is self-describing

package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.yaml
var openapiDoc []byte

func (h *Handler) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(openapiDoc)
}
