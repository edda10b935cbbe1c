package fact

// Registry indexes instance declarations by address text. A later
// declaration of the same address replaces the earlier one.
type Registry struct {
	byAddr map[string]*InstanceDecl
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byAddr: make(map[string]*InstanceDecl)}
}

// Add records an instance declaration.
func (r *Registry) Add(d *InstanceDecl) {
	if d == nil {
		return
	}
	addr := d.AddressText()
	if _, seen := r.byAddr[addr]; !seen {
		r.order = append(r.order, addr)
	}
	r.byAddr[addr] = d
}

// Observe records f when it is an instance declaration.
func (r *Registry) Observe(f Fact) {
	if d, ok := f.(*InstanceDecl); ok {
		r.Add(d)
	}
}

// Lookup returns the instance declared at addr.
func (r *Registry) Lookup(addr string) (*InstanceDecl, bool) {
	d, ok := r.byAddr[addr]
	return d, ok
}

// Len returns the number of distinct addresses.
func (r *Registry) Len() int { return len(r.order) }

// All returns declarations in first-seen address order.
func (r *Registry) All() []*InstanceDecl {
	out := make([]*InstanceDecl, 0, len(r.order))
	for _, addr := range r.order {
		out = append(out, r.byAddr[addr])
	}
	return out
}

// TopCapsule returns the first declared top capsule instance.
func (r *Registry) TopCapsule() (*InstanceDecl, bool) {
	for _, addr := range r.order {
		if d := r.byAddr[addr]; d.IsTopCapsule() {
			return d, true
		}
	}
	return nil, false
}
