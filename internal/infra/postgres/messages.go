package postgres

import (
	"context"

	"github.com/vanixstudio/vanix-bff/internal/domain"
)

// InsertMessage stores a contact form message.
func (s *Store) InsertMessage(ctx context.Context, m *domain.ContactMessage) error {
	ctx, span := tracer.Start(ctx, "Postgres.InsertMessage")
	defer span.End()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, name, email, message, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Name, m.Email, m.Message, m.CreatedAt)
	if err != nil {
		return dbError(err)
	}
	return nil
}
