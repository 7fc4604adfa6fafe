package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/protonav/pkg/schema"
)

// loadDocument reads a schema file and logs a summary.
// It returns the raw bytes too so callers can fingerprint them.
func loadDocument(ctx context.Context, path string) (*schema.Document, []byte, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	logger.Debug("loading document", "path", path, "format", schema.FormatFromPath(path))
	doc, data, err := schema.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if doc.RootKey() == "" {
		logger.Warn("document has no root $ref", "path", path)
	}
	prog.done(fmt.Sprintf("Loaded %d definitions", len(doc.Definitions)))
	return doc, data, nil
}
