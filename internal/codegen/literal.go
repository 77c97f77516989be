package codegen

// Literal is one build-time value to be sealed, as read from a manifest or
// from an //obfx:literal directive.
type Literal struct {
	Name     string
	Type     string
	Value    string   // scalar or text value
	Values   []string // array elements
	Size     int      // array capacity, 0 means len(Values)
	Level    string
	Profile  string
	Location string // file:line, feeds the seed
}

// SourceInfo groups the literals that are generated into one output file.
type SourceInfo struct {
	PackageName string
	SourceFile  string
	Literals    []Literal
	Guarded     bool // false for a Go source without a //go:build line
	Content     []byte
}
