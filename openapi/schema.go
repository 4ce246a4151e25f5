package openapi

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

func (o *OpenAPI) generateSchema(example any) *openapi3.SchemaRef {
	o.mu.Lock()
	defer o.mu.Unlock()

	if example == nil {
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"object"}}}
	}

	visited := make(map[string]bool)
	return o.generateSchemaFromType(reflect.TypeOf(example), visited)
}

func getTypeKey(t reflect.Type) string {
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func (o *OpenAPI) generateSchemaFromType(t reflect.Type, visited map[string]bool) *openapi3.SchemaRef {
	if t.Kind() == reflect.Pointer {
		innerRef := o.generateSchemaFromType(t.Elem(), visited)

		if innerRef.Ref != "" {
			return &openapi3.SchemaRef{
				Value: &openapi3.Schema{
					AllOf:    openapi3.SchemaRefs{innerRef},
					Nullable: true,
				},
			}
		}

		if innerRef.Value != nil {
			innerRef.Value.Nullable = true
		}
		return innerRef
	}

	switch t.Kind() {
	case reflect.String:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}}}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Min: ptr(0.0)}}
	case reflect.Float32, reflect.Float64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"number"}}}
	case reflect.Bool:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}}
	case reflect.Slice, reflect.Array:
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:  &openapi3.Types{"array"},
				Items: o.generateSchemaFromType(t.Elem(), visited),
			},
		}
	case reflect.Map:
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type: &openapi3.Types{"object"},
				AdditionalProperties: openapi3.AdditionalProperties{
					Schema: o.generateSchemaFromType(t.Elem(), visited),
				},
			},
		}
	case reflect.Struct:
		return o.generateStructSchema(t, visited)
	default:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"object"}}}
	}
}

// generateStructSchema registers named structs under components/schemas and
// returns a reference. Same-named types from different packages get a
// numeric suffix.
func (o *OpenAPI) generateStructSchema(t reflect.Type, visited map[string]bool) *openapi3.SchemaRef {
	if t.PkgPath() == "time" && t.Name() == "Time" {
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "date-time"}}
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return &openapi3.SchemaRef{Value: o.buildStructSchema(t, visited)}
	}

	typeKey := getTypeKey(t)
	if registeredName, exists := o.schemaRegistry[typeKey]; exists {
		return &openapi3.SchemaRef{Ref: "#/components/schemas/" + registeredName}
	}

	schemaName := t.Name()
	if existingTypeKey, nameExists := o.schemaNameRegistry[schemaName]; nameExists && existingTypeKey != typeKey {
		for suffix := 2; ; suffix++ {
			schemaName = t.Name() + strconv.Itoa(suffix)
			if _, taken := o.schemaNameRegistry[schemaName]; !taken {
				break
			}
		}
	}

	o.schemaRegistry[typeKey] = schemaName
	o.schemaNameRegistry[schemaName] = typeKey

	schema := o.buildStructSchema(t, visited)

	if o.spec.Components.Schemas == nil {
		o.spec.Components.Schemas = make(openapi3.Schemas)
	}
	o.spec.Components.Schemas[schemaName] = &openapi3.SchemaRef{Value: schema}

	return &openapi3.SchemaRef{Ref: "#/components/schemas/" + schemaName}
}

func (o *OpenAPI) buildStructSchema(t reflect.Type, visited map[string]bool) *openapi3.Schema {
	typeKey := getTypeKey(t)

	if typeKey != "" && visited[typeKey] {
		return &openapi3.Schema{Type: &openapi3.Types{"object"}}
	}

	if typeKey != "" {
		visited[typeKey] = true
		defer func() { delete(visited, typeKey) }()
	}

	schema := &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: make(openapi3.Schemas),
	}

	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		tagParts := strings.Split(jsonTag, ",")
		name := field.Name
		if tagParts[0] != "" {
			name = tagParts[0]
		}

		omitempty := false
		for _, part := range tagParts[1:] {
			if part == "omitempty" {
				omitempty = true
				break
			}
		}

		fieldSchemaRef := o.generateSchemaFromType(field.Type, visited)
		rules, hasRules := field.Tag.Lookup("validate")

		if fieldSchemaRef.Value != nil {
			if hasRules {
				applyValidateRules(fieldSchemaRef.Value, rules)
			}
			if ex := field.Tag.Get("example"); ex != "" {
				fieldSchemaRef.Value.Example = ex
			}
		}

		schema.Properties[name] = fieldSchemaRef

		if isRequired(rules, hasRules, omitempty) {
			required = append(required, name)
		}
	}

	if len(required) > 0 {
		schema.Required = required
	}

	return schema
}

// isRequired follows the validate tag when present; otherwise any field
// without omitempty is always serialized and therefore required.
func isRequired(rules string, hasRules, omitempty bool) bool {
	if hasRules {
		for _, rule := range strings.Split(rules, ",") {
			if rule == "required" {
				return true
			}
		}
		return false
	}
	return !omitempty
}

// applyValidateRules mirrors go-playground/validator bounds into the schema.
func applyValidateRules(schema *openapi3.Schema, rules string) {
	isString := schema.Type != nil && schema.Type.Is("string")

	for _, rule := range strings.Split(rules, ",") {
		key, param, _ := strings.Cut(rule, "=")
		switch key {
		case "email":
			schema.Format = "email"
		case "uuid":
			schema.Format = "uuid"
		case "latitude":
			schema.Min, schema.Max = ptr(-90.0), ptr(90.0)
		case "longitude":
			schema.Min, schema.Max = ptr(-180.0), ptr(180.0)
		case "oneof":
			for _, v := range strings.Fields(param) {
				schema.Enum = append(schema.Enum, v)
			}
		case "min", "gte":
			n, err := strconv.ParseFloat(param, 64)
			if err != nil {
				continue
			}
			if isString {
				schema.MinLength = uint64(n)
			} else {
				schema.Min = ptr(n)
			}
		case "max", "lte":
			n, err := strconv.ParseFloat(param, 64)
			if err != nil {
				continue
			}
			if isString {
				schema.MaxLength = ptr(uint64(n))
			} else {
				schema.Max = ptr(n)
			}
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
