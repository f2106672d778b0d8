package imagegen

import (
	"fmt"
	"strings"
)

// Clause pairs an ordered set of trigger substrings with the descriptive text
// appended to the prompt when any trigger matches the user input. Keeping the
// vocabulary as explicit ordered tables makes the first-match-wins selection
// auditable and lets new clauses be added without touching control flow.
type Clause struct {
	Name     string
	Triggers []string
	Text     string
}

// ColorClauses is the recognized color-palette vocabulary, evaluated in
// order. The first clause whose trigger appears in the lowercased input wins;
// unmatched input appends nothing.
var ColorClauses = []Clause{
	{
		Name:     "earthy",
		Triggers: []string{"natural", "earthy"},
		Text:     "The color palette is warm and grounded: terracotta, sand beige, olive green, and walnut wood tones softened by natural linen and rattan textures.",
	},
	{
		Name:     "vibrant",
		Triggers: []string{"vibrant", "energetic"},
		Text:     "The color palette is bold and energetic: deep teal, mustard yellow, and coral accents set against crisp white walls.",
	},
	{
		Name:     "neutral",
		Triggers: []string{"neutral", "sophisticated", "calming"},
		Text:     "The color palette is a sophisticated, calming range of neutrals: soft greige, warm white, charcoal, and pale stone accents.",
	},
}

// StyleClauses is the recognized interior-style vocabulary, evaluated in
// order with the same first-match-wins rule as ColorClauses.
var StyleClauses = []Clause{
	{
		Name:     "japandi",
		Triggers: []string{"japandi"},
		Text:     "The japandi aesthetic blends Japanese minimalism with Scandinavian warmth: low-profile wooden furniture, clean lines, and a serene uncluttered layout.",
	},
	{
		Name:     "industrial",
		Triggers: []string{"industrial"},
		Text:     "The industrial character shows through exposed brick, matte black metal fixtures, raw concrete surfaces, and aged leather seating.",
	},
	{
		Name:     "soft minimalism",
		Triggers: []string{"soft minimal"},
		Text:     "Soft minimalism guides the space: rounded silhouettes, generous negative space, plush boucle textiles, and gentle diffused lighting.",
	},
	{
		Name:     "boho",
		Triggers: []string{"boho", "bohemian"},
		Text:     "The bohemian spirit layers patterned kilim rugs, woven wall hangings, abundant potted plants, and eclectic vintage finds.",
	},
	{
		Name:     "classic",
		Triggers: []string{"classic", "traditional"},
		Text:     "The classic styling brings elegant crown moldings, a symmetrical furniture arrangement, and timeless tailored upholstery.",
	},
}

// closingClause enforces render quality regardless of the chosen vocabulary.
const closingClause = "Interior magazine photography, natural window lighting, shot on a full-frame camera, 8k, ultra detailed, sharp focus."

// NegativePrompt enumerates visual defects the provider is steered away from.
// It is submitted alongside every positive prompt at weight -1.
const NegativePrompt = "blurry, low resolution, distorted geometry, warped furniture, unrealistic proportions, oversaturated colors, watermark, text, cartoon, illustration, painting"

// BuildPrompt expands the categorical design inputs into the descriptive
// prompt sent to the image model. It is pure and total: unrecognized style or
// palette values simply fall through with only the base sentence applied.
func BuildPrompt(roomType, style, colorPalette, roomSize string) string {
	roomType = strings.ToLower(strings.TrimSpace(roomType))
	style = strings.ToLower(strings.TrimSpace(style))
	colorPalette = strings.ToLower(strings.TrimSpace(colorPalette))
	roomSize = strings.ToLower(strings.TrimSpace(roomSize))

	parts := []string{
		fmt.Sprintf("A photorealistic interior design of a %s %s, embodying the %s style.", roomSize, roomType, style),
	}
	if clause, ok := matchClause(ColorClauses, colorPalette); ok {
		parts = append(parts, clause.Text)
	}
	if clause, ok := matchClause(StyleClauses, style); ok {
		parts = append(parts, clause.Text)
	}
	parts = append(parts, closingClause)
	return strings.Join(parts, " ")
}

// matchClause returns the first clause whose trigger is contained in the
// input. Evaluation order is fixed: even when several triggers match, only
// the earliest table entry applies, which keeps prompt output stable.
func matchClause(table []Clause, input string) (Clause, bool) {
	for _, clause := range table {
		for _, trigger := range clause.Triggers {
			if strings.Contains(input, trigger) {
				return clause, true
			}
		}
	}
	return Clause{}, false
}
