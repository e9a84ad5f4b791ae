package main

import (
	"fmt"
	"io"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// printer writes status lines, coloured when the output is a terminal
type printer struct {
	out   io.Writer
	color bool
}

func (p printer) line(color, mark, format string, a ...any) {
	if p.color {
		fmt.Fprintf(p.out, color+mark+" "+format+colorReset+"\n", a...)
		return
	}
	fmt.Fprintf(p.out, mark+" "+format+"\n", a...)
}

func (p printer) Info(format string, a ...any)    { p.line(colorBlue, "i", format, a...) }
func (p printer) Success(format string, a ...any) { p.line(colorGreen, "ok", format, a...) }
func (p printer) Warning(format string, a ...any) { p.line(colorYellow, "!", format, a...) }
func (p printer) Error(format string, a ...any)   { p.line(colorRed, "x", format, a...) }

func (p printer) Header(title string) {
	if p.color {
		fmt.Fprintf(p.out, "\n"+colorYellow+"=== %s ==="+colorReset+"\n", title)
		return
	}
	fmt.Fprintf(p.out, "\n=== %s ===\n", title)
}
