package style

import "strings"

type resolveKey struct {
	role Role
	ov   string
}

type deriveKey struct {
	base  *Descriptor
	roles string
	ov    string
}

// Resolver hands out shared descriptors for one conversion. Equal requests
// return the same pointer. A Resolver is not safe for concurrent use; the
// Sheet behind it is.
type Resolver struct {
	sheet    *Sheet
	resolved map[resolveKey]*Descriptor
	derived  map[deriveKey]*Descriptor
}

// NewResolver creates a Resolver over sheet.
func NewResolver(sheet *Sheet) *Resolver {
	return &Resolver{
		sheet:    sheet,
		resolved: make(map[resolveKey]*Descriptor),
		derived:  make(map[deriveKey]*Descriptor),
	}
}

// Sheet returns the underlying sheet.
func (r *Resolver) Sheet() *Sheet { return r.sheet }

// Resolve returns the descriptor for role with ov applied. Unknown roles
// resolve to Normal.
func (r *Resolver) Resolve(role Role, ov Override) *Descriptor {
	base := r.sheet.Descriptor(role)
	k := resolveKey{role: base.Role, ov: ov.key()}
	if d, ok := r.resolved[k]; ok {
		return d
	}
	d := base
	if !ov.IsZero() {
		v := base.apply(ov)
		d = &v
	}
	r.resolved[k] = d
	return d
}

// Cascade layers run roles over base, in order. Paragraph roles in the
// list are ignored.
func (r *Resolver) Cascade(base *Descriptor, roles ...Role) *Descriptor {
	return r.Derive(base, Override{}, roles...)
}

// Derive layers run roles over base and then applies ov, so explicit run
// attributes win over every role.
func (r *Resolver) Derive(base *Descriptor, ov Override, roles ...Role) *Descriptor {
	var names []string
	for _, role := range roles {
		if role.IsRun() {
			names = append(names, string(role))
		}
	}
	if len(names) == 0 && ov.IsZero() {
		return base
	}
	k := deriveKey{base: base, roles: strings.Join(names, ","), ov: ov.key()}
	if d, ok := r.derived[k]; ok {
		return d
	}
	d := *base
	for _, name := range names {
		d = d.apply(r.sheet.RunOverride(Role(name)))
	}
	d = d.apply(ov)
	r.derived[k] = &d
	return &d
}
