package pagination_test

import (
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/intake/pkg/pagination"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultPageSize != pagination.DefaultLimit {
		t.Errorf("DefaultPageSize = %d, want %d", cfg.DefaultPageSize, pagination.DefaultLimit)
	}
	if cfg.MaxPageSize != pagination.DefaultMaxLimit {
		t.Errorf("MaxPageSize = %d, want %d", cfg.MaxPageSize, pagination.DefaultMaxLimit)
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_PAGE_SIZE", "50")
	t.Setenv("TEST_MAX_PAGE", "200")

	env := &pagination.ConfigEnv{
		DefaultPageSize: "TEST_PAGE_SIZE",
		MaxPageSize:     "TEST_MAX_PAGE",
	}

	cfg := pagination.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want 50", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 200 {
		t.Errorf("MaxPageSize = %d, want 200", cfg.MaxPageSize)
	}
}

func TestConfigFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     pagination.Config
		wantErr string
	}{
		{"default exceeds max", pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}, "default_page_size 200 exceeds max_page_size 100"},
		{"negative default", pagination.Config{DefaultPageSize: -1}, "default_page_size must be positive"},
		{"negative max", pagination.Config{MaxPageSize: -5}, "max_page_size must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	overlay := pagination.Config{DefaultPageSize: 50}
	base.Merge(&overlay)

	if base.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want 50", base.DefaultPageSize)
	}
	if base.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100 (unchanged)", base.MaxPageSize)
	}
}

func TestParsePageRequest(t *testing.T) {
	cfg := defaultConfig()

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantMsgs  []string
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 20},
		{name: "explicit values", query: "page=3&limit=50", wantPage: 3, wantLimit: 50},
		{name: "limit at max", query: "limit=100", wantPage: 1, wantLimit: 100},
		{name: "limit over max", query: "limit=101", wantMsgs: []string{"limit must not be greater than 100"}},
		{name: "page zero", query: "page=0", wantMsgs: []string{"page must not be less than 1"}},
		{name: "negative limit", query: "limit=-5", wantMsgs: []string{"limit must not be less than 1"}},
		{name: "non-integer page", query: "page=two", wantMsgs: []string{"page must be an integer number"}},
		{name: "fractional limit", query: "limit=2.5", wantMsgs: []string{"limit must be an integer number"}},
		{name: "empty page value", query: "page=", wantMsgs: []string{"page must be an integer number"}},
		{
			name:     "several problems",
			query:    "page=x&limit=0",
			wantMsgs: []string{"page must be an integer number", "limit must not be less than 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}

			req, err := pagination.ParsePageRequest(values, cfg)

			if tt.wantMsgs != nil {
				var reqErr *pagination.RequestError
				if !errors.As(err, &reqErr) {
					t.Fatalf("error = %v, want *RequestError", err)
				}
				if !errors.Is(err, pagination.ErrInvalidRequest) {
					t.Error("error should wrap ErrInvalidRequest")
				}
				if !slices.Equal(reqErr.Messages, tt.wantMsgs) {
					t.Errorf("messages = %q, want %q", reqErr.Messages, tt.wantMsgs)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Page != tt.wantPage || req.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d", req.Page, req.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset int
		wantOK     bool
	}{
		{"page 1", 1, 20, 0, true},
		{"page 2", 2, 20, 20, true},
		{"page 3 size 10", 3, 10, 20, true},
		{"largest addressable page", math.MaxInt/100 + 1, 100, math.MaxInt / 100 * 100, true},
		{"overflowing page", 100000000000000000, 100, 0, false},
		{"max int page size 1", math.MaxInt, 1, math.MaxInt - 1, true},
		{"max int page size 2", math.MaxInt, 2, 0, false},
		{"zero page", 0, 20, 0, false},
		{"zero limit", 1, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, Limit: tt.limit}
			got, ok := req.Offset()
			if ok != tt.wantOK {
				t.Fatalf("Offset() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tt.wantOffset)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		limit      int
		want       int
	}{
		{"empty collection", 0, 20, 0},
		{"single partial page", 5, 20, 1},
		{"exact multiple", 40, 20, 2},
		{"remainder", 41, 20, 3},
		{"one per page", 7, 1, 7},
		{"invalid limit", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pagination.TotalPages(tt.totalItems, tt.limit); got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.totalItems, tt.limit, got, tt.want)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	t.Run("echoes request and computes totals", func(t *testing.T) {
		req := pagination.PageRequest{Page: 9, Limit: 10}
		result := pagination.NewPageResult([]string{}, 25, req)

		want := pagination.Meta{Page: 9, Limit: 10, TotalItems: 25, TotalPages: 3}
		if result.Meta != want {
			t.Errorf("meta = %+v, want %+v", result.Meta, want)
		}
	})

	t.Run("nil items encode as empty array", func(t *testing.T) {
		result := pagination.NewPageResult[string](nil, 0, pagination.PageRequest{Page: 1, Limit: 20})

		data, err := json.Marshal(result)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		want := `{"items":[],"meta":{"page":1,"limit":20,"totalItems":0,"totalPages":0}}`
		if string(data) != want {
			t.Errorf("json = %s, want %s", data, want)
		}
	})
}
