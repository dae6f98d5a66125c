package source

// Memoized returns the number of paths with a remembered module.
func (r *Registry) Memoized() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.modules)
}
