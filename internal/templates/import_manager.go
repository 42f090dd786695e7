package templates

import (
	"sort"
	"strings"

	"github.com/fotap/heysync/internal/models"
)

// ImportManager collects imports for one generated file.
type ImportManager struct {
	imports map[models.Import]bool
}

// NewImportManager creates an empty manager.
func NewImportManager() *ImportManager {
	return &ImportManager{imports: make(map[models.Import]bool)}
}

// Add records imports; duplicates are ignored.
func (im *ImportManager) Add(imports ...models.Import) {
	for _, imp := range imports {
		if imp.Path != "" {
			im.imports[imp] = true
		}
	}
}

// Len returns the number of distinct imports.
func (im *ImportManager) Len() int { return len(im.imports) }

// GenerateImports renders an import block, standard library first, each
// group sorted by path.
func (im *ImportManager) GenerateImports() string {
	if len(im.imports) == 0 {
		return ""
	}

	var std, other []models.Import
	for imp := range im.imports {
		if isStandard(imp.Path) {
			std = append(std, imp)
		} else {
			other = append(other, imp)
		}
	}
	sortImports(std)
	sortImports(other)

	var b strings.Builder
	b.WriteString("import (\n")
	for _, imp := range std {
		b.WriteString("\t" + imp.Spec() + "\n")
	}
	if len(std) > 0 && len(other) > 0 {
		b.WriteString("\n")
	}
	for _, imp := range other {
		b.WriteString("\t" + imp.Spec() + "\n")
	}
	b.WriteString(")\n")
	return b.String()
}

func sortImports(imports []models.Import) {
	sort.Slice(imports, func(i, j int) bool {
		if imports[i].Path != imports[j].Path {
			return imports[i].Path < imports[j].Path
		}
		return imports[i].Name < imports[j].Name
	})
}

// Standard library paths have no dot in their first element.
func isStandard(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
