package exrheader

import (
	"github.com/simonhull/exrheader/internal/registry"
)

// Registry maps attribute type names to constructors. It is safe for
// concurrent use; registration takes an exclusive lock.
//
// A custom type name is registered with a constructor returning one of the
// attribute types of this package, usually via OpaqueConstructor:
//
//	reg := exrheader.NewDefaultRegistry()
//	err := reg.Register("myStudioMeta", exrheader.OpaqueConstructor("myStudioMeta"))
type Registry = registry.Registry[Attribute]

// builtinTypes lists every attribute type this package decodes.
var builtinTypes = []struct {
	name string
	ctor func() Attribute
}{
	{"box2f", func() Attribute { return new(Box2fAttribute) }},
	{"box2i", func() Attribute { return new(Box2iAttribute) }},
	{"chlist", func() Attribute { return new(ChannelListAttribute) }},
	{"chromaticities", func() Attribute { return new(ChromaticitiesAttribute) }},
	{"compression", func() Attribute { return new(CompressionAttribute) }},
	{"double", func() Attribute { return new(DoubleAttribute) }},
	{"envmap", func() Attribute { return new(EnvMapAttribute) }},
	{"float", func() Attribute { return new(FloatAttribute) }},
	{"int", func() Attribute { return new(IntAttribute) }},
	{"keycode", func() Attribute { return new(KeyCodeAttribute) }},
	{"lineOrder", func() Attribute { return new(LineOrderAttribute) }},
	{"m33d", func() Attribute { return new(M33dAttribute) }},
	{"m33f", func() Attribute { return new(M33fAttribute) }},
	{"m44d", func() Attribute { return new(M44dAttribute) }},
	{"m44f", func() Attribute { return new(M44fAttribute) }},
	{"preview", func() Attribute { return new(PreviewImageAttribute) }},
	{"rational", func() Attribute { return new(RationalAttribute) }},
	{"string", func() Attribute { return new(StringAttribute) }},
	{"stringvector", func() Attribute { return new(StringVectorAttribute) }},
	{"tiledesc", func() Attribute { return new(TileDescriptionAttribute) }},
	{"timecode", func() Attribute { return new(TimeCodeAttribute) }},
	{"v2d", func() Attribute { return new(V2dAttribute) }},
	{"v2f", func() Attribute { return new(V2fAttribute) }},
	{"v2i", func() Attribute { return new(V2iAttribute) }},
	{"v3d", func() Attribute { return new(V3dAttribute) }},
	{"v3f", func() Attribute { return new(V3fAttribute) }},
	{"v3i", func() Attribute { return new(V3iAttribute) }},
}

// defaultRegistry backs parsing when no registry option is given. It is
// never handed out, so it cannot be extended.
var defaultRegistry = NewDefaultRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return registry.New[Attribute]()
}

// NewDefaultRegistry returns a new registry holding every built-in type.
// Each call returns an independent registry that may be extended freely.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range builtinTypes {
		if err := r.Register(b.name, b.ctor); err != nil {
			panic(err) // duplicate in builtinTypes
		}
	}
	return r
}

// IsBuiltinType reports whether typeName is decoded by this package.
func IsBuiltinType(typeName string) bool {
	return defaultRegistry.IsKnown(typeName)
}
