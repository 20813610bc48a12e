package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// DocumentCursor is the position of the last document on a page, in listing order.
type DocumentCursor struct {
	DueDate    time.Time
	CreatedAt  time.Time
	DocumentID string
}

// EncodeToken creates a base64 encoded token from a document cursor.
func EncodeToken(c DocumentCursor) string {
	tokenStr := fmt.Sprintf("%s|%s|%s", c.DueDate.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.DocumentID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a document cursor.
func DecodeToken(token string) (DocumentCursor, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return DocumentCursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return DocumentCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	dueDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return DocumentCursor{}, fmt.Errorf("invalid pagination token format (due date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return DocumentCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return DocumentCursor{DueDate: dueDate, CreatedAt: createdAt, DocumentID: parts[2]}, nil
}
