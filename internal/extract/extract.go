package extract

import "context"

// Extractor turns raw document bytes into plain text. The remote
// document-analysis implementation lives in the docintel subpackage; Local
// is the in-process fallback used when no analysis service is configured.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}
