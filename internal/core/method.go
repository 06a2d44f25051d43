package core

import "reflect"

// Tag identifies a method signature. Expectations registered under one tag never
// accept calls made with another, which keeps instantiations of generic methods apart.
type Tag string

// TagOf returns the tag of the function type F.
func TagOf[F any]() Tag {
	return Tag(reflect.TypeFor[F]().String())
}

// Method describes a mocked method to the engine.
type Method struct {
	Receiver  string
	Name      string
	Arity     int
	Signature Tag
	// Static methods have no receiver value; their expectations are found through the
	// local contexts of an Env instead of a Handle's registry.
	Static bool
}

// Key returns the registry key of the method.
func (m Method) Key() MethodKey {
	return MethodKey{Receiver: m.Receiver, Name: m.Name}
}

func (m Method) String() string {
	if m.Receiver == "" {
		return m.Name
	}

	return m.Receiver + "." + m.Name
}

// MethodKey groups expectations in registries and local contexts.
type MethodKey struct {
	Receiver string
	Name     string
}
