package vm

// SystemDict returns a fresh Dictionary of every built-in operator.
// Called by New and again by Reset for each Machine rather than shared, so that nothing can observe or depend on
// built-in dictionary identity — the system dictionary is logically
// immutable, and this package exposes no way to mutate one in place.
func SystemDict() Dictionary {
	d := make(Dictionary, len(builtins))
	for name, fn := range builtins {
		d[name] = fn
	}
	return d
}

// Names returns every built-in operator name, used by the compiler's
// fixup scan to tell an external reference (another fragment) apart
// from a reference to a built-in.
func Names() map[string]struct{} {
	names := make(map[string]struct{}, len(builtins))
	for name := range builtins {
		names[name] = struct{}{}
	}
	return names
}
