package rest

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

//go:embed templates/index.html
var templates embed.FS

type page struct {
	tmpl *template.Template
}

func mustParsePage() *page {
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		"lineBreak": func(cell tictactoe.Cell) bool {
			return (cell.Index+1)%entity.RowSize == 0
		},
	}).ParseFS(templates, "templates/index.html")
	if err != nil {
		panic(fmt.Errorf("failed to parse page template: %w", err))
	}

	return &page{tmpl: tmpl}
}

// Render - writes the document with the game mounted in its root element.
func (that *page) Render(w io.Writer, view *tictactoe.View) error {
	if err := that.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("failed to execute page template: %w", err)
	}
	return nil
}
