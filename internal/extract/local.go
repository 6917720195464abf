package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Local extracts PDF text in-process with github.com/ledongthuc/pdf.
// Layout fidelity is worse than the remote analysis service; it exists so
// the pipeline works without document-analysis credentials.
type Local struct{}

// NewLocal constructs a Local extractor.
func NewLocal() *Local {
	return &Local{}
}

// ExtractText pulls plain text from PDF bytes.
func (*Local) ExtractText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

var _ Extractor = (*Local)(nil)
