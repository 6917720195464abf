package analyses

import (
	"encoding/json"
	"time"
)

// Record is one completed resume screening, kept for history. The Result
// payload is stored as produced by the evaluator and returned untouched.
type Record struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	TargetRole string          `json:"targetRole"`
	BlobURL    string          `json:"blobUrl"`
	Result     json.RawMessage `json:"analysis"`
	CreatedAt  time.Time       `json:"createdAt"`
}
