package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	domain "github.com/bryanwahyu/dealflow/internal/domain/deals"
)

// duplicate entry for a unique key
const erDupEntry = 1062

// ProjectRepository implements the Registry port on MySQL. The
// deal_projects table carries a unique key over (email, project_name), so
// Reserve is an atomic check-then-create.
//
// Schema:
//
//	CREATE TABLE deal_projects (
//	  email        VARCHAR(255) NOT NULL,
//	  project_name VARCHAR(255) NOT NULL,
//	  folder       VARCHAR(512) NOT NULL DEFAULT '',
//	  folder_url   VARCHAR(1024) NOT NULL DEFAULT '',
//	  marker       TEXT NOT NULL,
//	  created_at   DATETIME NOT NULL,
//	  PRIMARY KEY (email, project_name)
//	);
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Find returns the record for key, or nil when none exists.
func (r *ProjectRepository) Find(ctx context.Context, key domain.ProjectKey) (*domain.ProjectRecord, error) {
	const q = `
SELECT email, project_name, folder, folder_url, marker, created_at
FROM deal_projects
WHERE email=? AND project_name=?;
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

// Reserve inserts the record row. A unique-key violation means another run
// already holds the key and maps to ErrDuplicateProject.
func (r *ProjectRepository) Reserve(ctx context.Context, rec *domain.ProjectRecord) error {
	const q = `
INSERT INTO deal_projects (email, project_name, folder, folder_url, marker, created_at)
VALUES (?,?,?,?,?,?);
`
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, rec.Key.Email, rec.Key.ProjectName, rec.Folder, rec.FolderURL, rec.Marker, createdAt)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == erDupEntry {
		return domain.ErrDuplicateProject
	}
	return err
}

// Attach commits the provisioned folder (and any degrade marker) onto the
// reservation.
func (r *ProjectRepository) Attach(ctx context.Context, key domain.ProjectKey, folder, folderURL, marker string) error {
	const q = `
UPDATE deal_projects SET folder=?, folder_url=?, marker=?
WHERE email=? AND project_name=?;
`
	_, err := r.db.ExecContext(ctx, q, folder, folderURL, marker, key.Email, key.ProjectName)
	return err
}

// Release removes a reservation that never got a folder attached. Committed
// records are never deleted.
func (r *ProjectRepository) Release(ctx context.Context, key domain.ProjectKey) error {
	const q = `
DELETE FROM deal_projects
WHERE email=? AND project_name=? AND folder='';
`
	_, err := r.db.ExecContext(ctx, q, key.Email, key.ProjectName)
	return err
}
