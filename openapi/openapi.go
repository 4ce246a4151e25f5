package openapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"
)

const (
	JSONPath = "/openapi.json"
	YAMLPath = "/openapi.yaml"
)

// OpenAPI accumulates the API description as routes are registered.
type OpenAPI struct {
	spec               *openapi3.T
	mu                 sync.RWMutex
	schemaRegistry     map[string]string
	schemaNameRegistry map[string]string
}

func New(title, version string) *OpenAPI {
	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{},
	}

	return &OpenAPI{
		spec:               spec,
		schemaRegistry:     make(map[string]string),
		schemaNameRegistry: make(map[string]string),
	}
}

func (o *OpenAPI) Description(desc string) *OpenAPI {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spec.Info.Description = desc
	return o
}

func (o *OpenAPI) Tag(name, description string) *OpenAPI {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spec.Tags = append(o.spec.Tags, &openapi3.Tag{
		Name:        name,
		Description: description,
	})
	return o
}

func (o *OpenAPI) BearerAuth(name, description string) *OpenAPI {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.spec.Components.SecuritySchemes == nil {
		o.spec.Components.SecuritySchemes = make(openapi3.SecuritySchemes)
	}
	o.spec.Components.SecuritySchemes[name] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
			Description:  description,
		},
	}
	return o
}

func (o *OpenAPI) Spec() *openapi3.T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.spec
}

// Validate checks the accumulated document against the OpenAPI 3 rules.
func (o *OpenAPI) Validate(ctx context.Context) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.spec.Validate(ctx)
}

func (o *OpenAPI) JSON() ([]byte, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return json.MarshalIndent(o.spec, "", "  ")
}

func (o *OpenAPI) YAML() ([]byte, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	intermediate, err := o.spec.MarshalYAML()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(intermediate)
}

func (o *OpenAPI) JSONHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := o.JSON()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
		}
		return c.JSONBlob(http.StatusOK, data)
	}
}

func (o *OpenAPI) YAMLHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := o.YAML()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
		}
		return c.Blob(http.StatusOK, "application/yaml", data)
	}
}

// Mount serves the document in both encodings.
func (o *OpenAPI) Mount(e *echo.Echo) {
	e.GET(JSONPath, o.JSONHandler())
	e.GET(YAMLPath, o.YAMLHandler())
}

func (o *OpenAPI) Document(method, path string) *RouteBuilder {
	rb := &RouteBuilder{
		openapi:   o,
		method:    method,
		path:      path,
		operation: &openapi3.Operation{Responses: openapi3.NewResponses()},
	}
	rb.autoExtractPathParams()
	return rb
}

func (o *OpenAPI) addOperation(method, path string, op *openapi3.Operation) {
	o.mu.Lock()
	defer o.mu.Unlock()

	openAPIPath := echoPathToOpenAPI(path)

	pathItem := o.spec.Paths.Find(openAPIPath)
	if pathItem == nil {
		pathItem = &openapi3.PathItem{}
		o.spec.Paths.Set(openAPIPath, pathItem)
	}

	switch strings.ToUpper(method) {
	case http.MethodGet:
		pathItem.Get = op
	case http.MethodPost:
		pathItem.Post = op
	case http.MethodPut:
		pathItem.Put = op
	case http.MethodDelete:
		pathItem.Delete = op
	case http.MethodPatch:
		pathItem.Patch = op
	}
}

func echoPathToOpenAPI(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			parts[i] = "{" + strings.TrimPrefix(part, ":") + "}"
		}
	}
	return strings.Join(parts, "/")
}
