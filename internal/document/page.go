package document

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Unit conversions.
const (
	TwipsPerInch = 1440
	TwipsPerCM   = 567
	EMUPerTwip   = 635
)

// Page sizes.
const (
	SizeA4     = "a4"
	SizeLetter = "letter"
)

// ErrInvalidPage indicates page settings out of range.
var ErrInvalidPage = errors.New("invalid page settings")

// Margins are page margins in twips.
type Margins struct {
	Top, Bottom, Left, Right int
}

// Page is the section page setup, all lengths in twips.
type Page struct {
	Width     int
	Height    int
	Margins   Margins
	Landscape bool
}

// DefaultMargins are 2.54cm top and bottom, 3.18cm left and right.
var DefaultMargins = Margins{
	Top:    CM(2.54),
	Bottom: CM(2.54),
	Left:   CM(3.18),
	Right:  CM(3.18),
}

// CM converts centimeters to twips.
func CM(cm float64) int {
	return int(math.Round(cm * TwipsPerCM))
}

// NewPage returns the page for a named size. Landscape swaps width and
// height. An empty size means A4.
func NewPage(size string, landscape bool) (Page, error) {
	var p Page
	switch strings.ToLower(strings.TrimSpace(size)) {
	case "", SizeA4:
		p = Page{Width: 11906, Height: 16838}
	case SizeLetter:
		p = Page{Width: 12240, Height: 15840}
	default:
		return Page{}, fmt.Errorf("%w: unknown page size %q (valid: a4, letter)", ErrInvalidPage, size)
	}
	p.Margins = DefaultMargins
	if landscape {
		p.Width, p.Height = p.Height, p.Width
		p.Landscape = true
	}
	return p, nil
}

// TextWidth returns the width between the side margins in twips.
func (p Page) TextWidth() int {
	return p.Width - p.Margins.Left - p.Margins.Right
}

// TextWidthEMU returns TextWidth in EMU.
func (p Page) TextWidthEMU() int64 {
	return int64(p.TextWidth()) * EMUPerTwip
}

// Validate checks that the page has room for text.
func (p Page) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: page size %dx%d", ErrInvalidPage, p.Width, p.Height)
	}
	m := p.Margins
	if m.Top < 0 || m.Bottom < 0 || m.Left < 0 || m.Right < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalidPage)
	}
	if p.TextWidth() <= 0 || p.Height-m.Top-m.Bottom <= 0 {
		return fmt.Errorf("%w: margins leave no room for text", ErrInvalidPage)
	}
	return nil
}
