package openapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/server"
	"github.com/getkin/kin-openapi/openapi3"
)

// BearerScheme is the security scheme name used by authenticated routes.
const BearerScheme = "bearerAuth"

type RouteBuilder struct {
	openapi   *OpenAPI
	method    string
	path      string
	operation *openapi3.Operation
}

func (rb *RouteBuilder) autoExtractPathParams() {
	for _, part := range strings.Split(rb.path, "/") {
		if name, ok := strings.CutPrefix(part, ":"); ok && name != "" {
			rb.findOrCreateParam(name, "path").Required = true
		}
	}
}

func (rb *RouteBuilder) Summary(summary string) *RouteBuilder {
	rb.operation.Summary = summary
	return rb
}

func (rb *RouteBuilder) Description(description string) *RouteBuilder {
	rb.operation.Description = description
	return rb
}

func (rb *RouteBuilder) OperationID(id string) *RouteBuilder {
	rb.operation.OperationID = id
	return rb
}

func (rb *RouteBuilder) Tags(tags ...string) *RouteBuilder {
	rb.operation.Tags = append(rb.operation.Tags, tags...)
	return rb
}

func (rb *RouteBuilder) PathParam(name, description string) *ParamBuilder {
	param := rb.findOrCreateParam(name, "path")
	param.Description = description
	param.Required = true
	return &ParamBuilder{route: rb, param: param}
}

func (rb *RouteBuilder) QueryParam(name, description string) *ParamBuilder {
	param := rb.findOrCreateParam(name, "query")
	param.Description = description
	return &ParamBuilder{route: rb, param: param}
}

func (rb *RouteBuilder) findOrCreateParam(name, in string) *openapi3.Parameter {
	for _, p := range rb.operation.Parameters {
		if p.Value != nil && p.Value.Name == name && p.Value.In == in {
			return p.Value
		}
	}

	param := &openapi3.Parameter{
		Name:   name,
		In:     in,
		Schema: &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
	}
	rb.operation.Parameters = append(rb.operation.Parameters, &openapi3.ParameterRef{Value: param})
	return param
}

func (rb *RouteBuilder) Body(example any, description string) *RouteBuilder {
	rb.operation.RequestBody = &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Description: description,
			Required:    true,
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: rb.openapi.generateSchema(example),
				},
			},
		},
	}
	return rb
}

func (rb *RouteBuilder) Response(statusCode int, example any, description string) *RouteBuilder {
	var content openapi3.Content

	if example != nil {
		content = openapi3.Content{
			"application/json": &openapi3.MediaType{
				Schema: rb.openapi.generateSchema(example),
			},
		}
	}

	rb.operation.Responses.Set(strconv.Itoa(statusCode), &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &description,
			Content:     content,
		},
	})

	return rb
}

// Errors documents {"detail"} failure responses for each status code.
func (rb *RouteBuilder) Errors(statusCodes ...int) *RouteBuilder {
	for _, code := range statusCodes {
		rb.Response(code, server.ErrorResponse{}, http.StatusText(code))
	}
	return rb
}

// Roles marks the route as requiring a bearer token held by one of roles.
// The allowed roles are listed under the x-roles extension.
func (rb *RouteBuilder) Roles(roles ...models.Role) *RouteBuilder {
	rb.operation.Security = &openapi3.SecurityRequirements{
		openapi3.SecurityRequirement{BearerScheme: []string{}},
	}

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	if rb.operation.Extensions == nil {
		rb.operation.Extensions = make(map[string]any)
	}
	rb.operation.Extensions["x-roles"] = names

	if len(roles) > 0 {
		rb.Errors(http.StatusUnauthorized, http.StatusForbidden)
	} else {
		rb.Errors(http.StatusUnauthorized)
	}
	return rb
}

func (rb *RouteBuilder) Build() {
	rb.openapi.addOperation(rb.method, rb.path, rb.operation)
}

type ParamBuilder struct {
	route *RouteBuilder
	param *openapi3.Parameter
}

func (pb *ParamBuilder) Required() *ParamBuilder {
	pb.param.Required = true
	return pb
}

func (pb *ParamBuilder) TypeNumber() *ParamBuilder {
	pb.param.Schema.Value.Type = &openapi3.Types{"number"}
	return pb
}

func (pb *ParamBuilder) Format(format string) *ParamBuilder {
	pb.param.Schema.Value.Format = format
	return pb
}

func (pb *ParamBuilder) Min(min float64) *ParamBuilder {
	pb.param.Schema.Value.Min = &min
	return pb
}

func (pb *ParamBuilder) Max(max float64) *ParamBuilder {
	pb.param.Schema.Value.Max = &max
	return pb
}

func (pb *ParamBuilder) Done() *RouteBuilder {
	return pb.route
}
