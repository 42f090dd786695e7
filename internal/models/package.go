package models

// Package holds every publisher interface found in one directory.
type Package struct {
	Name       string
	Dir        string
	ImportPath string
	Interfaces []Interface
}

// Interface returns the interface called name.
func (p *Package) Interface(name string) (*Interface, bool) {
	for i := range p.Interfaces {
		if p.Interfaces[i].Name == name {
			return &p.Interfaces[i], true
		}
	}
	return nil, false
}
