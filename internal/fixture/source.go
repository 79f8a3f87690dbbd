package fixture

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ObjectReader downloads a stored object, e.g. from S3.
type ObjectReader interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// Source selects where the fixture comes from. The first configured source
// wins: S3Key, then File, then the built-in Default.
type Source struct {
	File    string
	S3Key   string
	Objects ObjectReader
}

// Load resolves the source into a Fixture.
func (s Source) Load(ctx context.Context) (*Fixture, error) {
	switch {
	case s.S3Key != "":
		if s.Objects == nil {
			return nil, fmt.Errorf("fixture: object store required for key %q", s.S3Key)
		}
		rc, err := s.Objects.Download(ctx, s.S3Key)
		if err != nil {
			return nil, fmt.Errorf("fixture: download %s: %w", s.S3Key, err)
		}
		defer rc.Close()
		slog.Info("loading fixture from object store", "key", s.S3Key)
		return Decode(rc)
	case s.File != "":
		fh, err := os.Open(s.File)
		if err != nil {
			return nil, fmt.Errorf("fixture: open %s: %w", s.File, err)
		}
		defer fh.Close()
		slog.Info("loading fixture from file", "path", s.File)
		return Decode(fh)
	default:
		return Default(), nil
	}
}
