package figure

import "maps"

// Child returns the nested object stored under key, or nil when the key is
// absent or does not hold an object.
func Child[M ~map[string]any](o M, key string) Object {
	child, _ := o[key].(map[string]any)
	return child
}

// HasChild reports whether o holds a nested object under key.
func HasChild[M ~map[string]any](o M, key string) bool {
	return Child(o, key) != nil
}

// ChildCopy returns a shallow copy of the nested object under key. When the
// key is absent or holds something other than an object a new empty object
// is returned.
func ChildCopy[M ~map[string]any](o M, key string) Object {
	child := maps.Clone(Child(o, key))
	if child == nil {
		child = Object{}
	}
	return child
}

// Set returns a shallow copy of o with every entry of kv set.
func Set(o Object, kv Object) Object {
	out := maps.Clone(o)
	if out == nil {
		out = make(Object, len(kv))
	}
	maps.Copy(out, kv)
	return out
}

// Update returns a shallow copy of o whose key holds fn applied to a copy of
// the nested object stored there.
func Update(o Object, key string, fn func(Object) Object) Object {
	return Set(o, Object{key: fn(ChildCopy(o, key))})
}

// Without returns o without key. o itself is returned when key is absent.
func Without(o Object, key string) Object {
	if _, ok := o[key]; !ok {
		return o
	}
	out := maps.Clone(o)
	delete(out, key)
	return out
}
