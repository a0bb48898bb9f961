package chat

import (
	"fmt"
	"io"
)

// printer remembers the first write error so callers can check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) print(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) println(s string) {
	p.print(s + "\n")
}

func (p *printer) printf(format string, args ...interface{}) {
	p.print(fmt.Sprintf(format, args...))
}
