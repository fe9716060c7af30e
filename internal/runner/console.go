package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	bannerTitle = "    --- Simple Image Encryption Tool ---"
	bannerWidth = 50
)

// console writes the user-facing lines, colored when enabled.
type console struct {
	out     io.Writer
	plain   *color.Color
	errorC  *color.Color
	noticeC *color.Color
	okC     *color.Color
}

func newConsole(out io.Writer, colorize bool) *console {
	c := &console{
		out:     out,
		plain:   color.New(color.Reset),
		errorC:  color.New(color.FgRed),
		noticeC: color.New(color.FgYellow),
		okC:     color.New(color.FgGreen, color.Bold),
	}
	for _, cc := range []*color.Color{c.plain, c.errorC, c.noticeC, c.okC} {
		if colorize {
			cc.EnableColor()
		} else {
			cc.DisableColor()
		}
	}
	return c
}

func (c *console) banner() {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(c.out, rule)
	fmt.Fprintln(c.out, bannerTitle)
	fmt.Fprintln(c.out, rule)
}

func (c *console) menu() {
	fmt.Fprintln(c.out, "\nChoose Operation:")
	fmt.Fprintln(c.out, "1. Encrypt")
	fmt.Fprintln(c.out, "2. Decrypt")
}

func (c *console) prompt(text string) {
	fmt.Fprint(c.out, text)
}

func (c *console) info(format string, args ...any) {
	c.plain.Fprintf(c.out, format+"\n", args...)
}

func (c *console) notice(msg string) {
	c.noticeC.Fprintln(c.out, msg)
}

func (c *console) fail(msg string) {
	c.errorC.Fprintln(c.out, msg)
}

func (c *console) success(path string) {
	fmt.Fprintln(c.out)
	c.okC.Fprintf(c.out, "Success! Image saved automatically as: %s\n", path)
}
