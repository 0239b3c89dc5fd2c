package form

import (
	"strings"

	"github.com/dsp-forms/core/internal/models"
)

// CategoryAll is the sentinel category that matches every form.
const CategoryAll = "all"

// Filter narrows forms by a free-text search and a category, preserving the
// input order. Search matches case-insensitively against title or description;
// category matches exactly, with CategoryAll (or "") accepting everything.
func Filter(forms []models.FormModel, search, category string) []models.FormModel {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.FormModel, 0, len(forms))
	for _, f := range forms {
		if needle != "" &&
			!strings.Contains(strings.ToLower(f.Title), needle) &&
			!strings.Contains(strings.ToLower(f.Description), needle) {
			continue
		}
		if category != "" && category != CategoryAll && f.Category != category {
			continue
		}
		out = append(out, f)
	}
	return out
}

// CategoryChips returns the selectable category values for a form list:
// CategoryAll first, then each distinct category in first-seen order.
func CategoryChips(forms []models.FormModel) []string {
	chips := []string{CategoryAll}
	seen := map[string]bool{CategoryAll: true}
	for _, f := range forms {
		if f.Category == "" || seen[f.Category] {
			continue
		}
		seen[f.Category] = true
		chips = append(chips, f.Category)
	}
	return chips
}
