package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantCursor int64
		wantSize   int
		wantErr    bool
	}{
		{"defaults", "", 0, defaultPageSize, false},
		{"explicit values", "?cursor=1700000000000000&page_size=25", 1700000000000000, 25, false},
		{"cursor not an integer", "?cursor=abc", 0, 0, true},
		{"page size not an integer", "?page_size=ten", 0, 0, true},
		// range checks belong to the services; the parser passes values through
		{"out of range passes through", "?page_size=500", 0, 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/apps"+tt.query, nil)
			cursor, pageSize, err := parsePageParams(r)
			if tt.wantErr {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tt.wantCursor, cursor)
			assert.Equal(t, tt.wantSize, pageSize)
		})
	}
}

func TestParseTimeParam(t *testing.T) {
	t.Run("absent param yields nil", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/apps", nil)
		parsed, err := parseTimeParam(r, "created_from")
		assert.Nil(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("valid RFC3339", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/apps?created_from=2025-03-01T00:00:00Z", nil)
		parsed, err := parseTimeParam(r, "created_from")
		assert.Nil(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *parsed)
	})

	t.Run("invalid format", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/apps?created_from=2025-03-01", nil)
		parsed, err := parseTimeParam(r, "created_from")
		assert.NotNil(t, err)
		assert.Nil(t, parsed)
	})
}
