// Package runner drives one interactive image XOR session: three prompts,
// validation, the transform, and the result report.
package runner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"

	pxerrors "github.com/provide-io/pixelxor/go/pixelxor/pkg/errors"
	"github.com/provide-io/pixelxor/go/pixelxor/pkg/imagefile"
	"github.com/provide-io/pixelxor/go/pixelxor/pkg/mode"
	"github.com/provide-io/pixelxor/go/pixelxor/pkg/pixel"
)

const (
	PromptPath = "Enter the path of the image: "
	PromptMode = "Enter choice (1 or 2): "
	PromptKey  = "Enter the swapping pixel value (integer key, e.g., 125): "
)

// Runner holds the session's I/O. Logger may be nil.
type Runner struct {
	In     io.Reader
	Out    io.Writer
	Logger hclog.Logger
	Color  bool

	con    *console
	reader *bufio.Reader
}

func (r *Runner) init() {
	if r.Logger == nil {
		r.Logger = hclog.NewNullLogger()
	}
	r.con = newConsole(r.Out, r.Color)
	r.reader = bufio.NewReader(r.In)
}

// Run performs one operation. Every failure is printed as a single line and
// also returned; nothing is retried.
func (r *Runner) Run() error {
	r.init()
	r.con.banner()

	raw, err := r.ask(PromptPath)
	if err != nil {
		return r.report(err)
	}
	path, err := ParsePath(raw)
	if err != nil {
		return r.report(err)
	}
	r.Logger.Debug("🔍 Image path accepted", "path", path)

	r.con.menu()
	raw, err = r.ask(PromptMode)
	if err != nil {
		return r.report(err)
	}
	m, err := ParseMode(raw)
	if err != nil {
		return r.report(err)
	}

	raw, err = r.ask(PromptKey)
	if err != nil {
		return r.report(err)
	}
	key, advisory, err := ParseKey(raw)
	if err != nil {
		return r.report(err)
	}
	if advisory {
		r.con.notice(msgKeyAdvisory)
		r.Logger.Warn("⚠️ Key outside 0-255, using low byte",
			"kind", pxerrors.Kind(pxerrors.ErrKeyOutOfRange), "key", key, "masked", pixel.MaskKey(key))
	}

	out, err := r.Process(path, m, key)
	if err != nil {
		return r.report(err)
	}
	r.con.success(out)
	r.Logger.Info("✅ Image saved", "mode", m.String(), "path", out)
	return nil
}

// Process loads path, XORs its pixels with key and saves the result next to
// it. It returns the written path. Panics are returned as ErrUnclassified.
func (r *Runner) Process(path string, m mode.Mode, key int64) (out string, err error) {
	if r.con == nil {
		r.init()
	}
	defer func() {
		if rec := recover(); rec != nil {
			out, err = "", pxerrors.Wrap(pxerrors.ErrUnclassified, fmt.Errorf("%v", rec))
		}
	}()

	r.con.info("\nOpening image from: %s", path)
	grid, format, err := imagefile.Load(path)
	if err != nil {
		return "", err
	}
	r.Logger.Debug("📐 Image decoded", "format", format, "width", grid.Width(), "height", grid.Height())

	r.con.info("Processing pixels...")
	pixel.Transform(grid, key)
	r.Logger.Debug("🔁 Pixels transformed", "key", pixel.MaskKey(key))

	out = imagefile.OutputPath(path, m)
	r.Logger.Debug("💾 Saving image", "path", out)
	if err := imagefile.Save(out, grid); err != nil {
		return "", err
	}
	return out, nil
}

// ask prints a prompt and reads one line. End of input yields what was read.
func (r *Runner) ask(prompt string) (string, error) {
	r.con.prompt(prompt)
	line, err := r.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", pxerrors.Wrap(pxerrors.ErrUnclassified, fmt.Errorf("reading input: %w", err))
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// report prints the diagnostic line for err and returns it. The console gets
// the plain cause; the log entry keeps the full error and its kind.
func (r *Runner) report(err error) error {
	var inputErr *InputError
	switch {
	case errors.As(err, &inputErr):
		r.con.fail(inputErr.Message)
	case errors.Is(err, pxerrors.ErrImageDecode):
		r.con.fail("\n" + msgImageDecode + pxerrors.Cause(err).Error())
	default:
		r.con.fail("\n" + msgUnexpected + pxerrors.Cause(err).Error())
	}

	if pxerrors.IsInput(err) {
		r.Logger.Warn("⚠️ Input rejected", "kind", pxerrors.Kind(err), "error", err)
	} else {
		r.Logger.Error("❌ Operation aborted", "kind", pxerrors.Kind(err), "error", err)
	}
	return err
}
