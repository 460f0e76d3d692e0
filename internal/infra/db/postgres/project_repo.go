package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	domain "github.com/bryanwahyu/dealflow/internal/domain/deals"
)

// unique_violation
const pgDupCode = "23505"

// ProjectRepository is the Postgres variant of the Registry port. Same
// contract as the MySQL repository: the primary key over
// (email, project_name) makes Reserve an atomic check-then-create.
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Find(ctx context.Context, key domain.ProjectKey) (*domain.ProjectRecord, error) {
	const q = `
SELECT email, project_name, folder, folder_url, marker, created_at
FROM deal_projects
WHERE email=$1 AND project_name=$2;
`
	var rec domain.ProjectRecord
	var created time.Time
	err := r.db.QueryRowContext(ctx, q, key.Email, key.ProjectName).Scan(
		&rec.Key.Email, &rec.Key.ProjectName, &rec.Folder, &rec.FolderURL, &rec.Marker, &created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = created
	return &rec, nil
}

func (r *ProjectRepository) Reserve(ctx context.Context, rec *domain.ProjectRecord) error {
	const q = `
INSERT INTO deal_projects (email, project_name, folder, folder_url, marker, created_at)
VALUES ($1,$2,$3,$4,$5,$6);
`
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, rec.Key.Email, rec.Key.ProjectName, rec.Folder, rec.FolderURL, rec.Marker, createdAt)
	var pe *pq.Error
	if errors.As(err, &pe) && pe.Code == pgDupCode {
		return domain.ErrDuplicateProject
	}
	return err
}

func (r *ProjectRepository) Attach(ctx context.Context, key domain.ProjectKey, folder, folderURL, marker string) error {
	const q = `
UPDATE deal_projects SET folder=$1, folder_url=$2, marker=$3
WHERE email=$4 AND project_name=$5;
`
	_, err := r.db.ExecContext(ctx, q, folder, folderURL, marker, key.Email, key.ProjectName)
	return err
}

func (r *ProjectRepository) Release(ctx context.Context, key domain.ProjectKey) error {
	const q = `
DELETE FROM deal_projects
WHERE email=$1 AND project_name=$2 AND folder='';
`
	_, err := r.db.ExecContext(ctx, q, key.Email, key.ProjectName)
	return err
}
