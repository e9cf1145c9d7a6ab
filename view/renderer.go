// Package view renders records and collections of records as complete,
// themed HTML documents. Rendering is pure: the same input always produces
// the same bytes and nothing is read from or written to the store.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"slices"

	"github.com/unrolled/render"
)

// DefaultPlaceholder is shown instead of a table when a collection is empty.
const DefaultPlaceholder = "No records found."

//go:embed templates
var templates embed.FS

type fieldRow struct {
	Label string
	Value string
}

type headerCell struct {
	Label string
	Width template.CSS
}

type tableData struct {
	Headers []headerCell
	Rows    [][]string
}

type pageData struct {
	Theme       Theme
	Title       string
	Message     string
	Fields      []fieldRow
	Table       *tableData
	Placeholder string
}

type errorData struct {
	Status  int
	Message string
}

// Renderer produces HTML documents in one theme. It holds no per-request
// state and is safe for concurrent use.
type Renderer struct {
	theme  Theme
	render *render.Render
}

func New(theme Theme) *Renderer {
	return &Renderer{
		theme: theme,
		render: render.New(render.Options{
			Directory: "templates",
			FileSystem: &render.EmbedFileSystem{
				FS: templates,
			},
		}),
	}
}

// Theme returns the theme the renderer was built with.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Record renders a single record as a labelled value list. A nil rec renders
// only the title and the message.
func (r *Renderer) Record(title, message string, rec Recordable) (string, error) {
	data := r.page(title, message)

	if !isNil(rec) {
		for _, f := range rec.ToRecord().Without(InternalFields...) {
			data.Fields = append(data.Fields, fieldRow{
				Label: Label(f.Key),
				Value: FormatValue(f.Key, f.Value),
			})
		}
	}

	return r.execute("page", data, true)
}

// Collection renders recs as a table whose columns are introspected from
// the first record.
func (r *Renderer) Collection(title, message string, recs []Recordable) (string, error) {
	return r.Table(title, message, recs, nil, DefaultPlaceholder)
}

// Table renders recs with a fixed column set. When cols is nil the columns
// are derived from the first record, leaving out internal and review noise
// fields. An empty recs renders the empty placeholder instead of a table.
func (r *Renderer) Table(title, message string, recs []Recordable, cols []Column, empty string) (string, error) {
	data := r.page(title, message)

	if len(recs) == 0 {
		if empty == "" {
			empty = DefaultPlaceholder
		}
		data.Placeholder = empty
		return r.execute("page", data, true)
	}

	rows := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if isNil(rec) {
			rows = append(rows, Record{})
			continue
		}
		rows = append(rows, rec.ToRecord())
	}

	if cols == nil {
		cols = DeriveColumns(rows[0], slices.Concat(InternalFields, ReviewNoiseFields)...)
	}

	table := &tableData{
		Headers: make([]headerCell, 0, len(cols)),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, c := range cols {
		table.Headers = append(table.Headers, headerCell{Label: c.Label, Width: template.CSS(c.Width)})
	}
	for _, row := range rows {
		cells := make([]string, 0, len(cols))
		for _, c := range cols {
			cells = append(cells, c.Cell(row))
		}
		table.Rows = append(table.Rows, cells)
	}
	data.Table = table

	return r.execute("page", data, true)
}

// Error renders the standalone error page for an HTTP status.
func (r *Renderer) Error(status int, message string) (string, error) {
	if message == "" {
		message = "An unexpected error occurred."
	}
	return r.execute("error", errorData{Status: status, Message: message}, false)
}

func (r *Renderer) page(title, message string) pageData {
	return pageData{
		Theme:   r.theme,
		Title:   title,
		Message: message,
	}
}

func (r *Renderer) execute(name string, data any, withLayout bool) (string, error) {
	opts := render.HTMLOptions{}
	if withLayout {
		opts.Layout = "layout"
	}

	var buf bytes.Buffer
	if err := r.render.HTML(&buf, http.StatusOK, name, data, opts); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", name, err)
	}
	return buf.String(), nil
}
