package style

import (
	"fmt"
	"sort"

	"github.com/alnah/go-md2docx/internal/assets"
)

// baseDescriptor sits under Normal, so a preset that sets nothing still
// yields a usable document.
var baseDescriptor = Descriptor{
	Role: RoleNormal,
	Font: Font{
		Family:         "Times New Roman",
		EastAsia:       "SimSun",
		SizeHalfPoints: 24,
		Color:          "000000",
	},
	Paragraph: Paragraph{
		Alignment:   AlignLeft,
		LineSpacing: 240,
	},
}

// Sheet is a resolved preset. It is immutable after NewSheet and may be
// shared by concurrent conversions.
type Sheet struct {
	name        string
	description string
	paragraphs  map[Role]*Descriptor
	runs        map[Role]Override
	runDescs    map[Role]*Descriptor
	basedOn     map[Role]Role
}

// NewSheet resolves a preset with optional per-role overrides applied on
// top, attribute by attribute. Paragraph roles inherit from their basedOn
// role, Normal by default; run roles hold only their own attributes.
func NewSheet(p *Preset, overrides map[string]RoleSpec) (*Sheet, error) {
	if p == nil {
		p = &Preset{}
	}
	specs := make(map[Role]Override)
	basedOn := make(map[Role]Role)

	add := func(name string, spec RoleSpec, source string) error {
		r, err := ParseRole(name)
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		ov, err := spec.Override()
		if err != nil {
			return fmt.Errorf("%s: role %s: %w", source, r, err)
		}
		specs[r] = specs[r].Merge(ov)
		if spec.BasedOn == "" {
			return nil
		}
		parent, err := ParseRole(spec.BasedOn)
		if err != nil {
			return fmt.Errorf("%s: role %s basedOn: %w", source, r, err)
		}
		if parent.IsRun() != r.IsRun() {
			return fmt.Errorf("%w: %s: role %s cannot be based on %s", ErrInvalidPreset, source, r, parent)
		}
		basedOn[r] = parent
		return nil
	}
	for _, name := range sortedKeys(p.Roles) {
		if err := add(name, p.Roles[name], "preset "+p.Name); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedKeys(overrides) {
		if err := add(name, overrides[name], "override"); err != nil {
			return nil, err
		}
	}

	s := &Sheet{
		name:        p.Name,
		description: p.Description,
		paragraphs:  make(map[Role]*Descriptor, len(paragraphRoles)),
		runs:        make(map[Role]Override, len(runRoles)),
		runDescs:    make(map[Role]*Descriptor, len(runRoles)),
		basedOn:     basedOn,
	}
	visiting := make(map[Role]bool)
	for _, r := range paragraphRoles {
		if _, err := s.resolveParagraph(r, specs, visiting); err != nil {
			return nil, err
		}
	}
	for _, r := range runRoles {
		ov, err := s.resolveRun(r, specs, visiting)
		if err != nil {
			return nil, err
		}
		d := s.paragraphs[RoleNormal].apply(ov)
		d.Role = r
		s.runDescs[r] = &d
	}
	return s, nil
}

func (s *Sheet) resolveParagraph(r Role, specs map[Role]Override, visiting map[Role]bool) (*Descriptor, error) {
	if d, ok := s.paragraphs[r]; ok {
		return d, nil
	}
	if visiting[r] {
		return nil, fmt.Errorf("%w: %s", ErrBasedOnCycle, r)
	}
	visiting[r] = true
	defer delete(visiting, r)

	parent := baseDescriptor
	if r != RoleNormal {
		pr, ok := s.basedOn[r]
		if !ok {
			pr = RoleNormal
		}
		pd, err := s.resolveParagraph(pr, specs, visiting)
		if err != nil {
			return nil, err
		}
		parent = *pd
	}
	d := parent.apply(specs[r])
	d.Role = r
	s.paragraphs[r] = &d
	return &d, nil
}

func (s *Sheet) resolveRun(r Role, specs map[Role]Override, visiting map[Role]bool) (Override, error) {
	if ov, ok := s.runs[r]; ok {
		return ov, nil
	}
	if visiting[r] {
		return Override{}, fmt.Errorf("%w: %s", ErrBasedOnCycle, r)
	}
	visiting[r] = true
	defer delete(visiting, r)

	var ov Override
	if pr, ok := s.basedOn[r]; ok {
		parent, err := s.resolveRun(pr, specs, visiting)
		if err != nil {
			return Override{}, err
		}
		ov = parent
	}
	ov = ov.Merge(specs[r])
	s.runs[r] = ov
	return ov, nil
}

// Name returns the preset name.
func (s *Sheet) Name() string { return s.name }

// Description returns the preset description.
func (s *Sheet) Description() string { return s.description }

// Descriptor returns the resolved descriptor for role. Run roles resolve
// over Normal; unknown roles resolve to Normal.
func (s *Sheet) Descriptor(role Role) *Descriptor {
	if d, ok := s.paragraphs[role]; ok {
		return d
	}
	if d, ok := s.runDescs[role]; ok {
		return d
	}
	return s.paragraphs[RoleNormal]
}

// RunOverride returns the attributes a run role sets.
func (s *Sheet) RunOverride(role Role) Override { return s.runs[role] }

// BasedOn returns the role r inherits from, or "" for Normal and run roles
// without a parent.
func (s *Sheet) BasedOn(r Role) Role {
	if p, ok := s.basedOn[r]; ok {
		return p
	}
	if r == RoleNormal || r.IsRun() {
		return ""
	}
	return RoleNormal
}

func sortedKeys(m map[string]RoleSpec) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load loads the named preset through loader and resolves it with
// overrides.
func Load(loader assets.AssetLoader, name string, overrides map[string]RoleSpec) (*Sheet, error) {
	p, err := LoadPreset(loader, name)
	if err != nil {
		return nil, err
	}
	return NewSheet(p, overrides)
}
