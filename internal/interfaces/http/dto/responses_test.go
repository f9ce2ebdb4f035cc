package dto

import (
	"testing"

	"github.com/ipede/app-admin-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewPageResponse(t *testing.T) {
	first := domain.NewApp("a", "")
	second := domain.NewApp("b", "")
	second.Cursor = first.Cursor + 1

	page := domain.NewPage([]*domain.App{first, second})
	resp := NewPageResponse(page, NewAppResponse)

	assert.Equal(t, 2, resp.ItemCount)
	assert.Equal(t, second.Cursor, resp.NextCursor)
	assert.Equal(t, "a", resp.Data[0].Name)
	assert.Equal(t, "b", resp.Data[1].Name)
}

func TestNewClientResponseUsesTypeName(t *testing.T) {
	client := domain.NewClient("app-1", "worker", "", domain.ClientTypeMachine)
	resp := NewClientResponse(client)
	assert.Equal(t, "machine", resp.Type)

	spa := domain.NewClient("app-1", "spa", "", domain.ClientTypeAuthCode)
	assert.Equal(t, "auth_code", NewClientResponse(spa).Type)
}
