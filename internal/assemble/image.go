package assemble

import (
	"fmt"

	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/imageres"
	"github.com/alnah/go-md2docx/internal/style"
)

// image resolves and embeds src. On failure it returns a placeholder run
// and false; the warning is already recorded.
func (s *assembly) image(src, alt, title string, base *style.Descriptor, maxWidthEMU int64, line int) (document.Inline, bool) {
	data, err := s.resolveImage(src)
	if err != nil {
		s.warn(document.WarnImageUnavailable, line, src, err)
		return s.placeholder(src, base), false
	}

	h, err := s.doc.Resources.Embed(data, imageres.MIMEHint(src))
	if err != nil {
		s.warn(document.WarnUnsupportedImage, line, src, err)
		return s.placeholder(src, base), false
	}
	cx, cy, err := s.doc.Resources.Extent(h, maxWidthEMU)
	if err != nil {
		// Only a foreign handle fails here, which Embed never returns.
		panic(fmt.Sprintf("assemble: extent of fresh handle: %v", err))
	}

	s.drawings++
	descr := alt
	if descr == "" {
		descr = title
	}
	return &document.Image{
		Handle:  h,
		CX:      cx,
		CY:      cy,
		DocPrID: s.drawings,
		Name:    fmt.Sprintf("Picture %d", s.drawings),
		Descr:   descr,
	}, true
}

func (s *assembly) resolveImage(src string) ([]byte, error) {
	if s.opts.Images == nil {
		return nil, &imageres.UnavailableError{Source: src, Reason: "no image resolver"}
	}
	data, err := s.opts.Images.Resolve(s.ctx, src)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *assembly) placeholder(src string, base *style.Descriptor) *document.Run {
	return &document.Run{
		Text:  fmt.Sprintf("[image unavailable: %s]", src),
		Style: s.styles.Cascade(base, style.RolePlaceholder),
	}
}
