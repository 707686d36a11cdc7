package requests

import "github.com/JaimeStill/intake/pkg/openapi"

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

// OpenAPISchemas returns the component schemas referenced by OpenAPIPaths.
func OpenAPISchemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"CreateRequest": {
			Type:     "object",
			Required: []string{"fullName", "email", "phone", "service", "message"},
			Properties: map[string]*openapi.Schema{
				"fullName": {Type: "string", MaxLength: intPtr(120), Example: "John Doe"},
				"email":    {Type: "string", Format: "email", MaxLength: intPtr(120), Example: "john@example.com"},
				"phone":    {Type: "string", MaxLength: intPtr(30), Pattern: `^[0-9+\-\s()]+$`, Example: "+1 555 123 4567"},
				"service":  {Type: "string", MaxLength: intPtr(120), Example: "Integracion API y soporte"},
				"message":  {Type: "string", MaxLength: intPtr(2000), Example: "Necesito integrar mi formulario web con su API."},
			},
		},
		"Request": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "string", Description: "Opaque identifier assigned by the store"},
				"fullName":  {Type: "string"},
				"email":     {Type: "string", Format: "email"},
				"phone":     {Type: "string"},
				"service":   {Type: "string"},
				"message":   {Type: "string"},
				"status":    {Type: "string", Enum: []any{"pending", "in_progress", "completed"}},
				"createdAt": {Type: "string", Format: "date-time"},
				"updatedAt": {Type: "string", Format: "date-time"},
			},
		},
		"Classification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"category":        {Type: "string", Enum: []any{"sales", "support", "billing", "technical", "general"}},
				"priority":        {Type: "string", Enum: []any{"low", "medium", "high"}},
				"confidence":      {Type: "number", Minimum: floatPtr(0), Maximum: floatPtr(1), Example: 0.81},
				"suggestedStatus": {Type: "string", Enum: []any{"pending", "in_progress"}},
				"summary":         {Type: "string", Example: "Classification: technical with priority medium."},
			},
		},
		"CreateResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"request": openapi.SchemaRef("Request"),
				"ai":      openapi.SchemaRef("Classification"),
			},
		},
		"RequestPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"items": {Type: "array", Items: openapi.SchemaRef("Request")},
				"meta":  openapi.SchemaRef("PageMeta"),
			},
		},
	}
}

// OpenAPIPaths returns the path items for the request endpoints mounted at basePath.
func OpenAPIPaths(basePath string) map[string]*openapi.PathItem {
	return map[string]*openapi.PathItem{
		basePath: {
			Get: &openapi.Operation{
				Summary:     "List requests",
				Description: "Returns requests newest first. An empty collection has totalPages 0.",
				Tags:        []string{"Requests"},
				Parameters: []*openapi.Parameter{
					openapi.QueryParam("page", "integer", "1-based page number (default 1)", false),
					openapi.QueryParam("limit", "integer", "Items per page (default 20, max 100)", false),
				},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Page of requests", "RequestPage"),
					400: openapi.ResponseRef("BadRequest"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
			Post: &openapi.Operation{
				Summary:     "Submit a request",
				Description: "Validates and classifies a contact request, then stores it with the suggested status.",
				Tags:        []string{"Requests"},
				RequestBody: openapi.RequestBodyJSON("CreateRequest", true),
				Responses: map[int]*openapi.Response{
					201: openapi.ResponseJSON("Stored request and its classification", "CreateResult"),
					400: openapi.ResponseRef("BadRequest"),
					413: openapi.ResponseRef("PayloadTooLarge"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
		},
	}
}
