package assemble

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/imageres"
	"github.com/alnah/go-md2docx/internal/mdtree"
	"github.com/alnah/go-md2docx/internal/numbering"
	"github.com/alnah/go-md2docx/internal/style"
)

// State is the traversal phase of one Assemble call.
type State int

// Traversal states.
const (
	TraversingBlocks State = iota
	InList
	InTable
	Done
)

func (s State) String() string {
	switch s {
	case TraversingBlocks:
		return "TraversingBlocks"
	case InList:
		return "InList"
	case InTable:
		return "InTable"
	case Done:
		return "Done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Layout constants in twips.
const (
	listIndent  = 420
	listHanging = 420
)

// DefaultCaptionLabel prefixes figure captions.
const DefaultCaptionLabel = "Figure"

// Options configures an Assembler.
type Options struct {
	// Page is the page setup; the zero value means A4 portrait.
	Page document.Page
	// Core is copied into the document. Empty fields are filled from the
	// Markdown front matter.
	Core document.CoreProperties
	// Images resolves image sources. Nil resolves nothing.
	Images imageres.Resolver

	// Captions adds "Figure N: alt" below standalone images.
	Captions     bool
	CaptionLabel string
	// NumberEquations numbers display math "(N)" at the right margin.
	NumberEquations bool
	// CodeLabels writes the fence language above code blocks.
	CodeLabels bool
	// HighlightStyle is a chroma style name for code token colors.
	// Empty or "none" disables coloring.
	HighlightStyle string
	// PlainTables draws a full grid instead of three-line rules.
	PlainTables bool

	Logger *zap.Logger
	// Progress is called after each root block.
	Progress func(done, total int)
	// OnState observes traversal state changes.
	OnState func(State)
}

// Assembler builds documents from parsed trees.
type Assembler struct {
	sheet *style.Sheet
	opts  Options
	log   *zap.Logger
}

// New creates an Assembler for sheet.
func New(sheet *style.Sheet, opts Options) *Assembler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.CaptionLabel == "" {
		opts.CaptionLabel = DefaultCaptionLabel
	}
	return &Assembler{sheet: sheet, opts: opts, log: log}
}

// assembly is the per-call state.
type assembly struct {
	ctx     context.Context
	opts    *Options
	log     *zap.Logger
	doc     *document.Document
	styles  *style.Resolver
	tracker numbering.Tracker
	code    *highlighter
	state   State
	// bookmarks maps heading IDs to bookmark names.
	bookmarks map[string]string

	figures      int
	equations    int
	drawings     int
	firstHeading string
}

// scope is the container context of a block: its extra left indent, the
// paragraph role used for plain text and the depth its own lists start at.
type scope struct {
	indent   int
	quote    int
	role     style.Role
	listBase int
}

// Assemble walks tree and returns the finished document. ctx is checked
// between root blocks; a cancelled call returns ctx.Err() and no document.
func (a *Assembler) Assemble(ctx context.Context, tree *mdtree.Document) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page := a.opts.Page
	if page.Width == 0 {
		p, err := document.NewPage(document.SizeA4, false)
		if err != nil {
			return nil, err
		}
		page = p
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	s := &assembly{
		ctx:    ctx,
		opts:   &a.opts,
		log:    a.log,
		doc:    document.New(a.sheet, page),
		styles: style.NewResolver(a.sheet),
		code:   newHighlighter(a.opts.HighlightStyle),
		state:  -1,

		bookmarks: headingBookmarks(tree.Blocks),
	}
	s.setState(TraversingBlocks)

	total := len(tree.Blocks)
	for i, b := range tree.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := b.(*mdtree.ListItem); !ok && s.tracker.Depth() > 0 {
			s.tracker.Reset()
		}
		s.block(b, scope{role: style.RoleNormal})
		s.setState(TraversingBlocks)
		if a.opts.Progress != nil {
			a.opts.Progress(i+1, total)
		}
	}

	s.doc.Core = coreProperties(a.opts.Core, tree.Meta, s.firstHeading)
	s.setState(Done)

	s.log.Debug("document assembled",
		zap.Int("blocks", len(s.doc.Blocks)),
		zap.Int("images", s.doc.Resources.Len()),
		zap.Int("warnings", len(s.doc.Warnings)))
	return s.doc, nil
}

func (s *assembly) setState(st State) {
	if s.state == st {
		return
	}
	s.state = st
	if s.opts.OnState != nil {
		s.opts.OnState(st)
	}
}

func (s *assembly) warn(kind document.WarningKind, line int, detail string, err error) {
	s.doc.Warn(kind, line, detail)
	s.log.Warn("degraded node",
		zap.String("kind", string(kind)),
		zap.Int("line", line),
		zap.String("detail", detail),
		zap.Error(err))
}

func coreProperties(core document.CoreProperties, meta mdtree.Metadata, heading string) document.CoreProperties {
	if core.Title == "" {
		core.Title = meta.Title
	}
	if core.Title == "" {
		core.Title = heading
	}
	if core.Creator == "" {
		core.Creator = meta.Author
	}
	if core.Subject == "" {
		core.Subject = meta.Subject
	}
	if core.Description == "" {
		core.Description = meta.Description
	}
	if len(core.Keywords) == 0 {
		core.Keywords = meta.Keywords
	}
	return core
}
