package generator

import "github.com/fotap/heysync/internal/models"

// CodeGenerator produces the publisher file of a package.
type CodeGenerator interface {
	GeneratePackage(pkg *models.Package, opts Options) (*models.GeneratedFile, error)
}
