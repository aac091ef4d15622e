package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"timebox/internal/modules/sheet/domain"
	sheetout "timebox/internal/modules/sheet/port/out"
	apperrors "timebox/internal/platform/errors"
	"timebox/internal/platform/markdown"
)

const exportBlock = "sheet"

// MarkdownExporter writes a sheet as <dir>/<day>.md. Re-exporting replaces
// only the generated block, so notes written around it survive.
type MarkdownExporter struct{}

func NewMarkdownExporter() sheetout.Exporter {
	return MarkdownExporter{}
}

func (MarkdownExporter) Export(_ context.Context, s domain.Sheet, dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create export dir: %v", apperrors.ErrAdapterFailure, err)
	}
	path := filepath.Join(dir, s.Date+".md")

	doc := markdown.Document{Meta: map[string]any{}}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if doc, err = markdown.Parse(string(raw)); err != nil {
			return "", fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidInput, path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: read %s: %v", apperrors.ErrAdapterFailure, path, err)
	}

	if doc.Meta == nil {
		doc.Meta = map[string]any{}
	}
	doc.Meta["date"] = s.Date
	doc.Meta["title"] = s.FormattedDate
	doc.Meta["priorities"] = nonEmpty(s.Priorities)
	doc.Meta["created_at"] = s.CreatedAt.UTC().Format(time.RFC3339)
	if !s.UpdatedAt.IsZero() {
		doc.Meta["updated_at"] = s.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if s.Window != nil {
		doc.Meta["window"] = fmt.Sprintf("%02d-%02d", s.Window.StartHour, s.Window.EndHour)
	}
	doc.Body = markdown.ReplaceBlock(doc.Body, exportBlock, renderSheet(s))

	out, err := doc.Render()
	if err != nil {
		return "", fmt.Errorf("%w: render %s: %v", apperrors.ErrAdapterFailure, path, err)
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", apperrors.ErrAdapterFailure, path, err)
	}
	return path, nil
}

func renderSheet(s domain.Sheet) string {
	var b strings.Builder
	b.WriteString("## Prioridades\n\n")
	for i, p := range s.Priorities {
		b.WriteString(strconv.Itoa(i+1) + ". " + strings.TrimSpace(p) + "\n")
	}

	b.WriteString("\n## Horario\n\n")
	rows := make([][]string, 0, len(s.Hours))
	for i, slot := range s.Hours {
		rows = append(rows, []string{slotLabel(s.Window, i), slot.Task, slot.Notes})
	}
	b.WriteString(markdown.Table([]string{"Hora", "Tarea", "Notas"}, rows))

	b.WriteString("\n## Brain dump\n\n")
	if dump := strings.TrimSpace(s.BrainDump); dump != "" {
		b.WriteString(dump + "\n")
	}
	return b.String()
}

// slotLabel falls back to the slot number for grids with no recorded window.
func slotLabel(w *domain.Window, i int) string {
	if w == nil {
		return "#" + strconv.Itoa(i+1)
	}
	hour, half := w.SlotHour(i)
	return domain.SlotLabel(hour, half)
}

func nonEmpty(items []string) []string {
	out := []string{}
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
