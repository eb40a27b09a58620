package report

import "context"

// Repository port (interface for persistence)
type Repository interface {
	Save(ctx context.Context, r *Report) error
	Get(ctx context.Context, id ID) (*Report, error)
	Latest(ctx context.Context, limit int) ([]*Report, error)
}

// ArtifactStore port (interface for the compiled PDF)
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
	UploadAndCleanup(ctx context.Context, localPath, key string) (string, error)
}

// DocumentRenderer port: compiled HTML in, PDF bytes out.
type DocumentRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}
