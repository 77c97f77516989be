package codegen

import (
	"fmt"
	"go/types"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"unicode/utf16"
)

// ElemKind is how a literal's elements are turned into raw words.
type ElemKind int

const (
	KindSigned ElemKind = iota
	KindUnsigned
	KindFloat
)

// Shape is the container a literal is sealed into.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeArray
	ShapeText
)

// TypeInfo describes a supported literal type.
type TypeInfo struct {
	Name   string // as written in the manifest
	GoType string // element type in generated code
	Kind   ElemKind
	Bits   int // 0 for int, uint and uintptr until resolved for the target
	Shape  Shape
}

var scalarTypes = map[string]TypeInfo{
	"int":     {GoType: "int", Kind: KindSigned, Bits: 0},
	"int8":    {GoType: "int8", Kind: KindSigned, Bits: 8},
	"int16":   {GoType: "int16", Kind: KindSigned, Bits: 16},
	"int32":   {GoType: "int32", Kind: KindSigned, Bits: 32},
	"int64":   {GoType: "int64", Kind: KindSigned, Bits: 64},
	"rune":    {GoType: "rune", Kind: KindSigned, Bits: 32},
	"uint":    {GoType: "uint", Kind: KindUnsigned, Bits: 0},
	"uint8":   {GoType: "uint8", Kind: KindUnsigned, Bits: 8},
	"byte":    {GoType: "byte", Kind: KindUnsigned, Bits: 8},
	"uint16":  {GoType: "uint16", Kind: KindUnsigned, Bits: 16},
	"uint32":  {GoType: "uint32", Kind: KindUnsigned, Bits: 32},
	"uint64":  {GoType: "uint64", Kind: KindUnsigned, Bits: 64},
	"uintptr": {GoType: "uintptr", Kind: KindUnsigned, Bits: 0},
	"float32": {GoType: "float32", Kind: KindFloat, Bits: 32},
	"float64": {GoType: "float64", Kind: KindFloat, Bits: 64},
}

var textTypes = map[string]TypeInfo{
	"string":    {GoType: "byte", Kind: KindUnsigned, Bits: 8, Shape: ShapeText},
	"wstring":   {GoType: "rune", Kind: KindSigned, Bits: 32, Shape: ShapeText},
	"u16string": {GoType: "uint16", Kind: KindUnsigned, Bits: 16, Shape: ShapeText},
}

// TargetIntSize is the width in bits of int, uint and uintptr on the
// architecture the generated code is compiled for: $GOARCH when set, which
// go generate exports, otherwise the generator's own.
func TargetIntSize() int {
	arch := os.Getenv("GOARCH")
	if arch == "" {
		arch = runtime.GOARCH
	}
	sizes := types.SizesFor("gc", arch)
	if sizes == nil {
		return strconv.IntSize
	}
	return int(sizes.Sizeof(types.Typ[types.Int])) * 8
}

// LookupType resolves a manifest type name such as "int", "[]uint16" or
// "wstring". Platform-sized types take their width from TargetIntSize.
func LookupType(name string) (TypeInfo, bool) {
	name = strings.TrimSpace(name)

	if ti, ok := textTypes[name]; ok {
		ti.Name = name
		return ti, true
	}

	if elem, ok := strings.CutPrefix(name, "[]"); ok {
		ti, ok := scalarTypes[elem]
		if !ok {
			return TypeInfo{}, false
		}
		ti.Name = name
		ti.Shape = ShapeArray
		return ti.sized(), true
	}

	ti, ok := scalarTypes[name]
	if !ok {
		return TypeInfo{}, false
	}
	ti.Name = name
	return ti.sized(), true
}

func (ti TypeInfo) sized() TypeInfo {
	if ti.Bits == 0 {
		ti.Bits = TargetIntSize()
	}
	return ti
}

// SupportedTypes lists every accepted scalar and text type name.
func SupportedTypes() []string {
	names := make([]string, 0, len(scalarTypes)+len(textTypes))
	for n := range scalarTypes {
		names = append(names, n)
	}
	for n := range textTypes {
		names = append(names, n)
	}
	return names
}

// ParseRaw parses the text of one element into its raw word, matching what
// the runtime codec produces for the same value.
func (ti TypeInfo) ParseRaw(text string) (uint64, error) {
	text = strings.TrimSpace(text)

	switch ti.Kind {
	case KindSigned:
		v, err := strconv.ParseInt(text, 0, ti.Bits)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", ti.GoType, err)
		}
		return uint64(v), nil
	case KindUnsigned:
		v, err := strconv.ParseUint(text, 0, ti.Bits)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", ti.GoType, err)
		}
		return v, nil
	default:
		v, err := strconv.ParseFloat(text, ti.Bits)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", ti.GoType, err)
		}
		if ti.Bits == 32 {
			return uint64(math.Float32bits(float32(v))), nil
		}
		return math.Float64bits(v), nil
	}
}

// textUnits splits s into the code units of a text type, terminator
// included.
func (ti TypeInfo) textUnits(s string) []uint64 {
	var units []uint64
	switch ti.Bits {
	case 8:
		for i := 0; i < len(s); i++ {
			units = append(units, uint64(s[i]))
		}
	case 16:
		for _, u := range utf16.Encode([]rune(s)) {
			units = append(units, uint64(u))
		}
	default:
		for _, r := range s {
			units = append(units, uint64(int64(r)))
		}
	}
	return append(units, 0)
}
