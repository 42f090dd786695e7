package models

// GeneratedFile is the formatted output for one package.
type GeneratedFile struct {
	PackageName string
	Path        string
	Content     []byte
	Classes     []string
}
