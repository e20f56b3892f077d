package conf

// Namespaced returns the values of m as defaults, with every key
// nested below ns.
func Namespaced[V any](ns string, m map[string]V) DefaultConfig {
	namespaced := make(DefaultConfig, len(m))
	for key, val := range m {
		namespaced[ns+"."+key] = val
	}

	return namespaced
}

// Merge returns a new DefaultConfig holding the keys of d and of
// all others. Later maps win on conflicting keys.
func (d DefaultConfig) Merge(others ...DefaultConfig) DefaultConfig {
	fullCap := len(d)
	for _, m := range others {
		fullCap += len(m)
	}

	merged := make(DefaultConfig, fullCap)
	for key, val := range d {
		merged[key] = val
	}
	for _, m := range others {
		for key, val := range m {
			merged[key] = val
		}
	}

	return merged
}
