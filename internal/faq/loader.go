package faq

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// maxDocumentBytes bounds a FAQ document.
const maxDocumentBytes = 1 << 20

// fileLoader implements Loader for FAQ files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based FAQ loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "faq-loader").Logger(),
	}
}

// Load reads a YAML FAQ file. Files ending in .gz are decompressed.
func (l *fileLoader) Load(ctx context.Context, path string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		l.logger.Debug().Err(err).Str("file", path).Msg("failed to open FAQ file")
		return nil, fmt.Errorf("failed to open FAQ file %s: %w", path, err)
	}
	defer file.Close()

	entries, err := decode(file, strings.HasSuffix(path, ".gz"))
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read FAQ file")
		return nil, fmt.Errorf("failed to read FAQ file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("entries", len(entries)).
		Msg("FAQ file loaded")

	return entries, nil
}

// decode reads one YAML FAQ document, gunzipping it first when asked.
func decode(r io.Reader, gzipped bool) ([]Entry, error) {
	if gzipped {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes))
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// LoadOrDefault loads path with loader and falls back to Defaults on any
// error. The storefront renders without a content file.
func LoadOrDefault(ctx context.Context, loader Loader, path string, logger zerolog.Logger) []Entry {
	entries, err := loader.Load(ctx, path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("using built-in FAQ")
		return Defaults()
	}
	return entries
}
