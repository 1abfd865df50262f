package supabase

import (
	"context"

	"github.com/vanixstudio/vanix-bff/internal/domain"
)

// InsertMessage stores a contact form message in the messages table.
func (c *Client) InsertMessage(ctx context.Context, m *domain.ContactMessage) error {
	ctx, span := tracer.Start(ctx, "Supabase.InsertMessage")
	defer span.End()

	row := map[string]any{
		"id":      m.ID,
		"name":    m.Name,
		"email":   m.Email,
		"message": m.Message,
	}
	return c.call(ctx, "messages", func() error {
		_, err := c.doPost(ctx, "messages", []map[string]any{row})
		return err
	})
}
