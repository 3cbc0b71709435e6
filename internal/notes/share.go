// ABOUTME: Share formatting for a single note
// ABOUTME: Plain text matches the mobile share sheet; HTML renders the body as Markdown via goldmark

package notes

import (
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
)

// Share returns the share message for note id: the title, a blank line, then
// the description.
func (s *Service) Share(ctx context.Context, id int64) (string, error) {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		s.logger.Warn("sharing note", "id", id, "error", err)
		return "", err
	}
	return n.Title + "\n\n" + n.Description, nil
}

// ShareHTML renders note id as an HTML fragment: the title as a heading and the
// description converted from Markdown.
func (s *Service) ShareHTML(ctx context.Context, id int64) (string, error) {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		s.logger.Warn("sharing note", "id", id, "error", err)
		return "", err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<h1>%s</h1>\n", html.EscapeString(n.Title))
	if err := goldmark.Convert([]byte(n.Description), &buf); err != nil {
		return "", fmt.Errorf("rendering note %d: %w", id, err)
	}
	return buf.String(), nil
}
