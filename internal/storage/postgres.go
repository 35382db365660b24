package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/your-org/faceline/internal/config"
	"github.com/your-org/faceline/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(cfg config.DatabaseConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Jobs ---

func (s *PostgresStore) CreateJob(ctx context.Context, j *models.DetectionJob) error {
	j.ID = uuid.New()
	j.Status = models.JobStatusQueued
	return s.pool.QueryRow(ctx,
		`INSERT INTO detection_jobs (id, status, face_cascade, eye_cascade, frame_count)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`,
		j.ID, j.Status, j.FaceCascade, j.EyeCascade, j.FrameCount,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
}

func (s *PostgresStore) GetJob(ctx context.Context, id uuid.UUID) (*models.DetectionJob, error) {
	j := &models.DetectionJob{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, status, face_cascade, eye_cascade, frame_count, error_message, created_at, updated_at
		 FROM detection_jobs WHERE id = $1`, id,
	).Scan(&j.ID, &j.Status, &j.FaceCascade, &j.EyeCascade, &j.FrameCount, &j.ErrorMessage, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// ListJobs filters by status (optional) with squirrel-built pagination,
// the same dynamic-WHERE shape the teacher's QueryEvents hand-built
// with fmt.Sprintf placeholders.
func (s *PostgresStore) ListJobs(ctx context.Context, status string, limit, offset int) ([]models.DetectionJob, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	base := psql.Select().From("detection_jobs")
	if status != "" {
		base = base.Where(sq.Eq{"status": status})
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := s.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	pageSQL, pageArgs, err := base.
		Columns("id", "status", "face_cascade", "eye_cascade", "frame_count", "error_message", "created_at", "updated_at").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.pool.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.DetectionJob
	for rows.Next() {
		var j models.DetectionJob
		if err := rows.Scan(&j.ID, &j.Status, &j.FaceCascade, &j.EyeCascade, &j.FrameCount, &j.ErrorMessage, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, total, nil
}

func (s *PostgresStore) UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus, errMsg string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE detection_jobs SET status = $1, error_message = $2, updated_at = now() WHERE id = $3`,
		status, errMsg, id)
	return err
}

// --- Face results ---

func (s *PostgresStore) CreateFaceResult(ctx context.Context, r *models.FaceResult) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO face_results
		 (id, job_id, frame_index, outcome, rect_x, rect_y, rect_w, rect_h,
		  eye_left_x, eye_left_y, eye_right_x, eye_right_y, distance, angle, deduped, crop_key, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		r.ID, r.JobID, r.FrameIndex, r.Outcome, r.RectX, r.RectY, r.RectW, r.RectH,
		r.EyeLeftX, r.EyeLeftY, r.EyeRightX, r.EyeRightY, r.Distance, r.Angle, r.Deduped, r.CropKey, r.CreatedAt)
	return err
}

func (s *PostgresStore) ListFaceResults(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]models.FaceResult, int, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM face_results WHERE job_id = $1`, jobID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count face results: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, job_id, frame_index, outcome, rect_x, rect_y, rect_w, rect_h,
		        eye_left_x, eye_left_y, eye_right_x, eye_right_y, distance, angle, deduped, crop_key, created_at
		 FROM face_results WHERE job_id = $1 ORDER BY frame_index ASC LIMIT $2 OFFSET $3`,
		jobID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list face results: %w", err)
	}
	defer rows.Close()

	var results []models.FaceResult
	for rows.Next() {
		var r models.FaceResult
		if err := rows.Scan(&r.ID, &r.JobID, &r.FrameIndex, &r.Outcome, &r.RectX, &r.RectY, &r.RectW, &r.RectH,
			&r.EyeLeftX, &r.EyeLeftY, &r.EyeRightX, &r.EyeRightY, &r.Distance, &r.Angle, &r.Deduped, &r.CropKey, &r.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan face result: %w", err)
		}
		results = append(results, r)
	}
	return results, total, nil
}

// --- Cascade registry persistence ---

func (s *PostgresStore) UpsertCascadeRecord(ctx context.Context, r *models.CascadeRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO cascade_records (name, hash, window_w, window_h, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (name) DO UPDATE SET hash = $2, window_w = $3, window_h = $4, updated_at = now()`,
		r.Name, r.Hash, r.WindowW, r.WindowH)
	return err
}

func (s *PostgresStore) ListCascadeRecords(ctx context.Context) ([]models.CascadeRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, hash, window_w, window_h, updated_at FROM cascade_records ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list cascade records: %w", err)
	}
	defer rows.Close()

	var records []models.CascadeRecord
	for rows.Next() {
		var r models.CascadeRecord
		if err := rows.Scan(&r.Name, &r.Hash, &r.WindowW, &r.WindowH, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cascade record: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}
