package requests_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/intake/internal/requests"
)

const validBody = `{
	"fullName": "  John Doe  ",
	"email": "  JOHN@Example.COM ",
	"phone": "+1 (555) 123-4567",
	"service": "Integracion API y soporte",
	"message": "Necesito soporte tecnico urgente, no funciona."
}`

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var valErr *requests.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	return valErr.Messages
}

func TestDecodeCreate(t *testing.T) {
	t.Run("normalizes valid body", func(t *testing.T) {
		cmd, err := requests.DecodeCreate(strings.NewReader(validBody))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cmd.FullName != "John Doe" {
			t.Errorf("fullName = %q, want trimmed", cmd.FullName)
		}
		if cmd.Email != "john@example.com" {
			t.Errorf("email = %q, want trimmed lower-case", cmd.Email)
		}
		if cmd.Phone != "+1 (555) 123-4567" {
			t.Errorf("phone = %q", cmd.Phone)
		}
	})

	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "empty object",
			body: `{}`,
			want: []string{
				"fullName should not be empty",
				"email should not be empty",
				"phone should not be empty",
				"service should not be empty",
				"message should not be empty",
			},
		},
		{
			name: "whitespace only fields",
			body: `{"fullName":"   ","email":"a@b.co","phone":"123","service":" ","message":"hi"}`,
			want: []string{"fullName should not be empty", "service should not be empty"},
		},
		{
			name: "invalid email",
			body: `{"fullName":"A","email":"not-an-email","phone":"123","service":"S","message":"M"}`,
			want: []string{"email must be an email"},
		},
		{
			name: "invalid phone",
			body: `{"fullName":"A","email":"a@b.co","phone":"call me","service":"S","message":"M"}`,
			want: []string{"phone must contain only digits and valid phone symbols"},
		},
		{
			name: "name too long",
			body: `{"fullName":"` + strings.Repeat("a", 121) + `","email":"a@b.co","phone":"123","service":"S","message":"M"}`,
			want: []string{"fullName must be shorter than or equal to 120 characters"},
		},
		{
			name: "phone too long",
			body: `{"fullName":"A","email":"a@b.co","phone":"` + strings.Repeat("1", 31) + `","service":"S","message":"M"}`,
			want: []string{"phone must be shorter than or equal to 30 characters"},
		},
		{
			name: "message too long",
			body: `{"fullName":"A","email":"a@b.co","phone":"123","service":"S","message":"` + strings.Repeat("m", 2001) + `"}`,
			want: []string{"message must be shorter than or equal to 2000 characters"},
		},
		{
			name: "unknown properties",
			body: `{"fullName":"A","email":"a@b.co","phone":"123","service":"S","message":"M","role":"admin","age":3}`,
			want: []string{"property age should not exist", "property role should not exist"},
		},
		{
			name: "non-string values",
			body: `{"fullName":42,"email":"a@b.co","phone":["1"],"service":"S","message":"M"}`,
			want: []string{"fullName must be a string", "phone must be a string"},
		},
		{
			name: "null value",
			body: `{"fullName":null,"email":"a@b.co","phone":"123","service":"S","message":"M"}`,
			want: []string{"fullName should not be empty"},
		},
		{
			name: "not an object",
			body: `["a"]`,
			want: []string{"request body must be a JSON object"},
		},
		{
			name: "malformed json",
			body: `{"fullName":`,
			want: []string{"request body must be a JSON object"},
		},
		{
			name: "trailing garbage",
			body: `{"fullName":"A","email":"a@b.co","phone":"123","service":"S","message":"M"}garbage`,
			want: []string{"request body must be a JSON object"},
		},
		{
			name: "second object",
			body: `{"fullName":"A","email":"a@b.co","phone":"123","service":"S","message":"M"} {}`,
			want: []string{"request body must be a JSON object"},
		},
		{
			name: "first failing rule per field",
			body: `{"fullName":"A","email":"` + strings.Repeat("x", 121) + `","phone":"123","service":"S","message":"M"}`,
			want: []string{"email must be an email"},
		},
		{
			name: "empty body",
			body: ``,
			want: []string{"request body must be a JSON object"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := requests.DecodeCreate(strings.NewReader(tt.body))
			got := validationMessages(t, err)

			if !slices.Equal(got, tt.want) {
				t.Errorf("messages = %q, want %q", got, tt.want)
			}
			if !errors.Is(err, requests.ErrValidation) {
				t.Error("error should wrap ErrValidation")
			}
		})
	}

	t.Run("body over limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		body := http.MaxBytesReader(rec, io.NopCloser(strings.NewReader(validBody)), 16)

		_, err := requests.DecodeCreate(body)
		if !errors.Is(err, requests.ErrBodyTooLarge) {
			t.Fatalf("error = %v, want ErrBodyTooLarge", err)
		}
	})

	t.Run("length counts characters", func(t *testing.T) {
		body := `{"fullName":"` + strings.Repeat("ñ", 120) + `","email":"a@b.co","phone":"123","service":"S","message":"M"}`
		if _, err := requests.DecodeCreate(strings.NewReader(body)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
