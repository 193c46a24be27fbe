package flexgrid

// Breakpoint names a terminal width band.
type Breakpoint uint8

const (
	BreakpointSmall Breakpoint = iota
	BreakpointMedium
	BreakpointLarge
	BreakpointXLarge
)

// String names the breakpoint for logs.
func (b Breakpoint) String() string {
	switch b {
	case BreakpointSmall:
		return "small"
	case BreakpointMedium:
		return "medium"
	case BreakpointLarge:
		return "large"
	case BreakpointXLarge:
		return "xlarge"
	default:
		return "unknown"
	}
}

// BreakpointRange maps a half-open width band [MinWidth, MaxWidth) to a
// breakpoint.
type BreakpointRange struct {
	Breakpoint Breakpoint
	MinWidth   int
	MaxWidth   int
}

// DefaultBreakpoints returns the standard four terminal bands: narrower
// than 80 columns, 80-119, 120-159, and 160 upward.
func DefaultBreakpoints() []BreakpointRange {
	return []BreakpointRange{
		{Breakpoint: BreakpointSmall, MinWidth: 0, MaxWidth: 80},
		{Breakpoint: BreakpointMedium, MinWidth: 80, MaxWidth: 120},
		{Breakpoint: BreakpointLarge, MinWidth: 120, MaxWidth: 160},
		{Breakpoint: BreakpointXLarge, MinWidth: 160, MaxWidth: Unbounded},
	}
}

// Orientation describes the viewport's aspect.
type Orientation uint8

const (
	Landscape Orientation = iota
	Portrait
	Square
)

// String names the orientation for logs.
func (o Orientation) String() string {
	switch o {
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	default:
		return "square"
	}
}

// OrientationOf classifies a size: landscape when wider than tall, portrait
// when taller than wide, square otherwise.
func OrientationOf(s Size) Orientation {
	switch {
	case s.Width > s.Height:
		return Landscape
	case s.Height > s.Width:
		return Portrait
	default:
		return Square
	}
}

// LayoutFactory builds a layout subtree for a viewport size.
type LayoutFactory func(Size) *Node

// Responsive selects and rebuilds a layout subtree only when the viewport
// crosses a breakpoint or flips orientation. Factories registered per
// orientation take priority over per-breakpoint ones.
type Responsive struct {
	table         []BreakpointRange
	byBreakpoint  map[Breakpoint]LayoutFactory
	byOrientation map[Orientation]LayoutFactory

	current     *Node
	breakpoint  Breakpoint
	orientation Orientation
}

// NewResponsive creates a responsive selector over the default breakpoint
// table.
func NewResponsive() *Responsive {
	return &Responsive{
		table:         DefaultBreakpoints(),
		byBreakpoint:  make(map[Breakpoint]LayoutFactory),
		byOrientation: make(map[Orientation]LayoutFactory),
	}
}

// SetBreakpoints replaces the breakpoint table. Entries are consulted in
// order; the first band containing a width wins.
func (r *Responsive) SetBreakpoints(table []BreakpointRange) *Responsive {
	if len(table) > 0 {
		r.table = table
	}
	return r
}

// OnBreakpoint registers a factory for a breakpoint.
func (r *Responsive) OnBreakpoint(b Breakpoint, f LayoutFactory) *Responsive {
	r.byBreakpoint[b] = f
	return r
}

// OnOrientation registers a factory for an orientation. Orientation
// factories win over breakpoint factories when both match.
func (r *Responsive) OnOrientation(o Orientation, f LayoutFactory) *Responsive {
	r.byOrientation[o] = f
	return r
}

// BreakpointFor maps a width to its breakpoint: the first table band whose
// half-open range contains it, defaulting to Medium when none match.
func (r *Responsive) BreakpointFor(width int) Breakpoint {
	for _, band := range r.table {
		if width >= band.MinWidth && width < band.MaxWidth {
			return band.Breakpoint
		}
	}
	return BreakpointMedium
}

// Current returns the most recently built subtree, or nil.
func (r *Responsive) Current() *Node {
	return r.current
}

// State returns the breakpoint and orientation of the last Update.
func (r *Responsive) State() (Breakpoint, Orientation) {
	return r.breakpoint, r.orientation
}

// Update classifies the size and rebuilds the subtree only if the
// breakpoint or orientation changed since the last call, or no subtree has
// been built yet. Otherwise the previously built subtree is returned
// unchanged, avoiding redundant construction.
func (r *Responsive) Update(size Size) *Node {
	bp := r.BreakpointFor(size.Width)
	or := OrientationOf(size)
	if r.current != nil && bp == r.breakpoint && or == r.orientation {
		return r.current
	}
	r.breakpoint = bp
	r.orientation = or

	factory := r.byOrientation[or]
	if factory == nil {
		factory = r.byBreakpoint[bp]
	}
	if factory != nil {
		r.current = factory(size)
	}
	return r.current
}
