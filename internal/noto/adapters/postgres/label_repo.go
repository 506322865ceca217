package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"noto/internal/noto/domain/entities"
	"noto/internal/noto/ports/repositories"
	"noto/pkg/logger"
)

// LabelRepository реализует repositories.LabelRepository для Postgres.
type LabelRepository struct {
	pool PgxPoolInterface
}

func NewLabelRepository(pool PgxPoolInterface) repositories.LabelRepository {
	return &LabelRepository{pool: pool}
}

func (r *LabelRepository) Create(ctx context.Context, label *entities.Label) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "label"), zap.String("method", "Create"))

	query := `
        INSERT INTO labels (library_id, title, position)
        VALUES ($1, $2, $3)
        RETURNING id
    `

	var id int64
	if err := r.pool.QueryRow(ctx, query, label.LibraryID, label.Title, label.Position).Scan(&id); err != nil {
		log.Error(ctx, "error creating label", zap.Error(err))
		return 0, fmt.Errorf("error creating label: %w", err)
	}
	return id, nil
}

func (r *LabelRepository) ListByLibraryID(ctx context.Context, libraryID int64) ([]*entities.Label, error) {
	log := logger.Log(ctx).With(zap.String("repository", "label"), zap.String("method", "ListByLibraryID"))

	query := `
        SELECT id, library_id, title, position
        FROM labels
        WHERE library_id = $1
        ORDER BY position, id
    `

	rows, err := r.pool.Query(ctx, query, libraryID)
	if err != nil {
		log.Error(ctx, "error listing labels", zap.Error(err))
		return nil, fmt.Errorf("error listing labels: %w", err)
	}
	defer rows.Close()

	labels := make([]*entities.Label, 0)
	for rows.Next() {
		var label entities.Label
		if err := rows.Scan(&label.ID, &label.LibraryID, &label.Title, &label.Position); err != nil {
			return nil, fmt.Errorf("error scanning label: %w", err)
		}
		labels = append(labels, &label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating labels: %w", err)
	}
	return labels, nil
}

// Attach связывает заметку с меткой. Повторная связь не является ошибкой.
func (r *LabelRepository) Attach(ctx context.Context, noteID, labelID int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "label"), zap.String("method", "Attach"))

	query := `
        INSERT INTO note_labels (note_id, label_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `

	if _, err := r.pool.Exec(ctx, query, noteID, labelID); err != nil {
		log.Error(ctx, "error attaching label", zap.Error(err))
		return fmt.Errorf("error attaching label: %w", err)
	}
	return nil
}
