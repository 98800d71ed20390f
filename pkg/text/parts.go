package text

import "strings"

// Parts is a filename split at its final period.
type Parts struct {
	Base string // Everything before the final '.'
	Ext  string // The final '.' and what follows, or empty
}

// SplitName splits name so that Base+Ext == name. Ext is empty when name has
// no period; otherwise it starts at the last one.
func SplitName(name string) Parts {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return Parts{Base: name}
	}
	return Parts{Base: name[:i], Ext: name[i:]}
}

func (p Parts) String() string {
	return p.Base + p.Ext
}
