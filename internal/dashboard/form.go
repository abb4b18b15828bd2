package dashboard

import "sync"

// Form holds the values of an add form between submissions. A successful
// add resets it to its defaults.
type Form[In any] struct {
	mu       sync.Mutex
	defaults In
	value    In
}

// NewForm creates a form holding defaults
func NewForm[In any](defaults In) *Form[In] {
	return &Form[In]{defaults: defaults, value: defaults}
}

// Set replaces the held values
func (f *Form[In]) Set(v In) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

// Value returns the held values
func (f *Form[In]) Value() In {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Reset restores the defaults
func (f *Form[In]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = f.defaults
}
