package model

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5"
)

// Source yields the raw bytes of a model bundle.
type Source interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// Load reads and decodes a bundle from src. Every failure is an
// *ArtifactLoadError.
func Load(ctx context.Context, src Source) (*Artifact, error) {
	data, err := src.Read(ctx)
	if err != nil {
		var le *ArtifactLoadError
		if errors.As(err, &le) {
			return nil, le
		}
		return nil, loadErr(src.Name(), "read bundle", err)
	}
	return Decode(src.Name(), data)
}

// FileSource reads the bundle from a file on disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, loadErr(s.Name(), "file not found", err)
		}
		return nil, err
	}
	return data, nil
}

// RowQuerier is the part of *pgxpool.Pool the Postgres source needs.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const latestArtifactSQL = `SELECT bundle FROM model_artifacts WHERE name = $1 ORDER BY version DESC LIMIT 1`

// PostgresSource reads the newest bundle stored under ArtifactName in the
// model_artifacts table (name text, version int, bundle jsonb).
type PostgresSource struct {
	DB           RowQuerier
	ArtifactName string
}

func (s PostgresSource) Name() string { return "postgres:" + s.ArtifactName }

func (s PostgresSource) Read(ctx context.Context) ([]byte, error) {
	var bundle []byte
	err := s.DB.QueryRow(ctx, latestArtifactSQL, s.ArtifactName).Scan(&bundle)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, loadErr(s.Name(), "no stored artifact", nil)
	}
	if err != nil {
		return nil, err
	}
	return bundle, nil
}
