package handlers

import (
	"net/http"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"server/internal/imagegen"
)

type vocabularyEntry struct {
	Name     string   `json:"name"`
	Triggers []string `json:"triggers"`
	Clause   string   `json:"clause"`
}

type vocabularyResponse struct {
	ColorPalettes []vocabularyEntry `json:"color_palettes"`
	Styles        []vocabularyEntry `json:"styles"`
}

// Vocabulary handles GET /v1/vocabulary: it lists the recognized prompt
// clause tables in evaluation order, so clients can see which palette and
// style phrases actually influence the generated prompt.
func (a *App) Vocabulary(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, vocabularyResponse{
		ColorPalettes: vocabularyEntries(imagegen.ColorClauses),
		Styles:        vocabularyEntries(imagegen.StyleClauses),
	})
}

func vocabularyEntries(table []imagegen.Clause) []vocabularyEntry {
	titler := cases.Title(language.Und)
	entries := make([]vocabularyEntry, 0, len(table))
	for _, clause := range table {
		entries = append(entries, vocabularyEntry{
			Name:     titler.String(clause.Name),
			Triggers: clause.Triggers,
			Clause:   clause.Text,
		})
	}
	return entries
}
