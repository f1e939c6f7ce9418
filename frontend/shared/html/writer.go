package html

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer accumulates the first write error so view code can emit markup without
// checking every call.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (hw *Writer) Raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// Rawf formats trusted markup. Arguments are NOT escaped: pass only numbers or
// constants, and route any string value through Attr or Text.
func (hw *Writer) Rawf(format string, args ...any) {
	hw.Raw(fmt.Sprintf(format, args...))
}

// Text writes s HTML-escaped.
func (hw *Writer) Text(s string) {
	hw.Raw(templ.EscapeString(s))
}

// Textf formats and HTML-escapes the result.
func (hw *Writer) Textf(format string, args ...any) {
	hw.Text(fmt.Sprintf(format, args...))
}

// Attr writes ` name="value"` with value escaped.
func (hw *Writer) Attr(name, value string) {
	hw.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// BoolAttr writes the bare attribute when on is true.
func (hw *Writer) BoolAttr(name string, on bool) {
	if on {
		hw.Raw(" " + name)
	}
}

// Component renders c in place.
func (hw *Writer) Component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

func (hw *Writer) Err() error {
	return hw.err
}
