package openapi

import "maps"

func errorBody(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}

// NewComponents creates Components with shared schemas and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
			"ValidationError": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Example: "validation failed"},
					"message": {
						Type:        "array",
						Description: "One entry per rejected field or parameter",
						Items:       &Schema{Type: "string"},
					},
				},
			},
			"PageMeta": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":       {Type: "integer", Description: "Requested page (1-based)", Example: 1},
					"limit":      {Type: "integer", Description: "Requested page size", Example: 20},
					"totalItems": {Type: "integer", Description: "Total records in the collection", Example: 125},
					"totalPages": {Type: "integer", Description: "Pages needed at this limit; 0 when empty", Example: 7},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": {
				Description: "Invalid request",
				Content: map[string]*MediaType{
					"application/json": {Schema: SchemaRef("ValidationError")},
				},
			},
			"PayloadTooLarge": errorBody("Request body exceeds the configured limit"),
			"InternalError":   errorBody("The operation could not be completed"),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

