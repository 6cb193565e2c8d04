package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

const notifyPrefix = "[*] "

// Notifier prints the prefixed status lines every step of the pipeline
// reports through.
type Notifier struct {
	out  io.Writer
	info *color.Color
	fail *color.Color
}

func NewNotifier(out io.Writer) *Notifier {
	if out == nil {
		out = os.Stdout
	}
	return &Notifier{
		out:  out,
		info: color.New(color.FgCyan, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
	}
}

func (n *Notifier) Notify(format string, args ...any) {
	n.line(n.info, fmt.Sprintf(format, args...))
}

// Fail prints a single line describing a fatal condition.
func (n *Notifier) Fail(format string, args ...any) {
	n.line(n.fail, fmt.Sprintf(format, args...))
}

func (n *Notifier) line(c *color.Color, text string) {
	c.Fprint(n.out, notifyPrefix)
	fmt.Fprintln(n.out, text)
}
