package formula

// Node is one element of a translated formula. The variants mirror the
// Office Math (OMML) object model so the serializer can emit them directly.
type Node interface {
	isNode()
}

// RunStyle is the font style of a math run.
type RunStyle int

// Run styles. StyleDefault lets the renderer italicize letters as usual.
const (
	StyleDefault RunStyle = iota
	StylePlain
	StyleBold
	StyleItalic
	StyleBoldItalic
)

// Run is literal math text: identifiers, numbers, operators.
type Run struct {
	Text  string
	Style RunStyle
	// Normal marks text-mode content (\text{...}) rendered with the
	// surrounding document font.
	Normal bool
	// limits marks operator names that take under-scripts (\lim, \max).
	limits bool
}

// Frac is a fraction. NoBar renders a stacked pair, as in binomials.
type Frac struct {
	Num   []Node
	Den   []Node
	NoBar bool
}

// Script attaches a subscript, a superscript, or both, to Base.
// At least one of Sub and Sup is non-nil.
type Script struct {
	Base []Node
	Sub  []Node
	Sup  []Node
}

// Radical is a root. Degree is nil for a square root.
type Radical struct {
	Degree []Node
	Body   []Node
}

// Nary is a big operator (sum, product, integral) with optional bounds.
type Nary struct {
	Op   string
	Sub  []Node
	Sup  []Node
	Body []Node
}

// Delim wraps Body in a pair of stretchy delimiters. Empty strings stand
// for an invisible delimiter.
type Delim struct {
	Open  string
	Close string
	Body  []Node
}

// Accent places a combining mark over Body.
type Accent struct {
	Char string
	Body []Node
}

// Bar draws a line over (Top) or under Body.
type Bar struct {
	Top  bool
	Body []Node
}

// LimLow places Lower under Base, as in lim with x→0 beneath it.
type LimLow struct {
	Base  []Node
	Lower []Node
}

// Matrix is a grid of cells. Rows may have different lengths; the
// serializer pads them.
type Matrix struct {
	Rows [][][]Node
}

func (*Run) isNode()     {}
func (*Frac) isNode()    {}
func (*Script) isNode()  {}
func (*Radical) isNode() {}
func (*Nary) isNode()    {}
func (*Delim) isNode()   {}
func (*Accent) isNode()  {}
func (*Bar) isNode()     {}
func (*LimLow) isNode()  {}
func (*Matrix) isNode()  {}

// Math is a translated formula.
type Math struct {
	Source string
	Nodes  []Node
}
