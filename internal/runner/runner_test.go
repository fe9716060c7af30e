package runner

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pxerrors "github.com/provide-io/pixelxor/go/pixelxor/pkg/errors"
	"github.com/provide-io/pixelxor/go/pixelxor/pkg/imagefile"
	"github.com/provide-io/pixelxor/go/pixelxor/pkg/mode"
	"github.com/provide-io/pixelxor/go/pixelxor/pkg/pixel"
)

func fixture(t *testing.T, dir, name string) (string, *pixel.RGBGrid) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(10 + x), G: uint8(200 + y), B: uint8(x * y), A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path, imagefile.Normalize(img)
}

func session(t *testing.T, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	r := &Runner{
		In:     strings.NewReader(input),
		Out:    &out,
		Logger: hclog.New(&hclog.LoggerOptions{Name: "runner_test", Level: hclog.Trace, Output: &bytes.Buffer{}}),
	}
	err := r.Run()
	return out.String(), err
}

func TestRun_EncryptWritesXoredPNG(t *testing.T) {
	dir := t.TempDir()
	in, orig := fixture(t, dir, "cat.png")

	out, err := session(t, in+"\n1\n125\n")
	require.NoError(t, err)

	want := filepath.Join(dir, "cat_encrypted.png")
	assert.Contains(t, out, PromptPath)
	assert.Contains(t, out, PromptMode)
	assert.Contains(t, out, PromptKey)
	assert.Contains(t, out, "Opening image from: "+in)
	assert.Contains(t, out, "Processing pixels...")
	assert.Contains(t, out, "Success! Image saved automatically as: "+want)
	assert.NotContains(t, out, msgKeyAdvisory)

	got, _, err := imagefile.Load(want)
	require.NoError(t, err)
	expected := orig.Clone()
	pixel.Transform(expected, 125)
	assert.True(t, pixel.Equal(expected, got))
	assert.Equal(t, pixel.RGB{10 ^ 125, 200 ^ 125, 0 ^ 125}, got.At(0, 0))
}

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	in, orig := fixture(t, dir, "cat.png")

	_, err := session(t, in+"\n1\n125\n")
	require.NoError(t, err)

	enc := filepath.Join(dir, "cat_encrypted.png")
	_, err = session(t, enc+"\n2\n125\n")
	require.NoError(t, err)

	got, _, err := imagefile.Load(filepath.Join(dir, "cat_encrypted_decrypted.png"))
	require.NoError(t, err)
	assert.True(t, pixel.Equal(orig, got))
}

func TestRun_QuotedPath(t *testing.T) {
	dir := t.TempDir()
	in, _ := fixture(t, dir, "cat.png")

	_, err := session(t, `  "`+in+`"  `+"\n2\n7\n")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "cat_decrypted.png"))
	assert.NoError(t, err)
}

func TestRun_OutOfRangeKeyAdvisory(t *testing.T) {
	dir := t.TempDir()
	in, orig := fixture(t, dir, "cat.png")

	out, err := session(t, in+"\n1\n381\n")
	require.NoError(t, err)
	assert.Contains(t, out, msgKeyAdvisory)

	got, _, err := imagefile.Load(filepath.Join(dir, "cat_encrypted.png"))
	require.NoError(t, err)
	expected := orig.Clone()
	pixel.Transform(expected, 125)
	assert.True(t, pixel.Equal(expected, got))
}

func TestRun_Failures(t *testing.T) {
	dir := t.TempDir()
	in, _ := fixture(t, dir, "cat.png")
	notImage := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("plain text"), 0o644))

	tests := []struct {
		name    string
		input   string
		kind    error
		message string
		noFile  string
	}{
		{
			name:    "missing path",
			input:   "/no/such/file.png\n1\n125\n",
			kind:    pxerrors.ErrPathNotFound,
			message: msgFileMissing,
		},
		{
			name:    "directory path",
			input:   dir + "\n1\n125\n",
			kind:    pxerrors.ErrPathNotFound,
			message: msgFileMissing,
		},
		{
			name:    "empty input",
			input:   "",
			kind:    pxerrors.ErrPathNotFound,
			message: msgFileMissing,
		},
		{
			name:    "mode out of set",
			input:   in + "\n3\n125\n",
			kind:    pxerrors.ErrInvalidModeInput,
			message: msgInvalidChoice,
			noFile:  "cat_encrypted.png",
		},
		{
			name:    "mode not a number",
			input:   in + "\nencrypt\n125\n",
			kind:    pxerrors.ErrInvalidModeInput,
			message: msgNotANumber,
			noFile:  "cat_encrypted.png",
		},
		{
			name:    "key not a number",
			input:   in + "\n1\nabc\n",
			kind:    pxerrors.ErrInvalidKeyInput,
			message: msgKeyNotInteger,
			noFile:  "cat_encrypted.png",
		},
		{
			name:    "undecodable file",
			input:   notImage + "\n1\n125\n",
			kind:    pxerrors.ErrImageDecode,
			message: "Error: ",
			noFile:  "notes_encrypted.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := session(t, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, out, tt.message)
			assert.NotContains(t, out, "Success!")
			if tt.noFile != "" {
				_, statErr := os.Stat(filepath.Join(dir, tt.noFile))
				assert.True(t, os.IsNotExist(statErr), "%s should not exist", tt.noFile)
			}
		})
	}
}

func TestRun_MissingPathStopsBeforeMenu(t *testing.T) {
	out, err := session(t, "/no/such/file.png\n1\n125\n")
	assert.ErrorIs(t, err, pxerrors.ErrPathNotFound)
	assert.NotContains(t, out, PromptMode)
	assert.NotContains(t, out, "Opening image")
}

func TestRun_SaveFailureIsUnclassified(t *testing.T) {
	dir := t.TempDir()
	in, _ := fixture(t, dir, "cat.png")
	// a directory where the output file should go
	require.NoError(t, os.Mkdir(filepath.Join(dir, "cat_encrypted.png"), 0o755))

	out, err := session(t, in+"\n1\n125\n")
	assert.ErrorIs(t, err, pxerrors.ErrSaveFailed)
	assert.Equal(t, "UnclassifiedFailure", pxerrors.Kind(err))
	assert.Contains(t, out, msgUnexpected)
	assert.NotContains(t, out, "❌")
}

func TestProcess_WithoutRun(t *testing.T) {
	dir := t.TempDir()
	in, _ := fixture(t, dir, "dog.png")

	var out bytes.Buffer
	r := &Runner{Out: &out, In: strings.NewReader("")}
	path, err := r.Process(in, mode.Decrypt, -1)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dog_decrypted.png"), path)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected mode.Mode
		message  string
	}{
		{input: "1", expected: mode.Encrypt},
		{input: " 2 ", expected: mode.Decrypt},
		{input: "+1", expected: mode.Encrypt},
		{input: "0", message: msgInvalidChoice},
		{input: "3", message: msgInvalidChoice},
		{input: "-1", message: msgInvalidChoice},
		{input: "99999999999999999999999", message: msgInvalidChoice},
		{input: "", message: msgNotANumber},
		{input: "1.0", message: msgNotANumber},
		{input: "one", message: msgNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMode(tt.input)
			if tt.message == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, m)
				return
			}
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.ErrorIs(t, err, pxerrors.ErrInvalidModeInput)
			assert.Equal(t, tt.message, inputErr.Message)
		})
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		input    string
		masked   uint8
		advisory bool
		invalid  bool
	}{
		{input: "125", masked: 125},
		{input: " 0 ", masked: 0},
		{input: "255", masked: 255},
		{input: "256", masked: 0, advisory: true},
		{input: "381", masked: 125, advisory: true},
		{input: "-1", masked: 255, advisory: true},
		{input: "+7", masked: 7},
		{input: "340282366920938463463374607431768211581", masked: 125, advisory: true},
		{input: "-340282366920938463463374607431768211581", masked: 131, advisory: true},
		{input: "abc", invalid: true},
		{input: "12.5", invalid: true},
		{input: "", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, advisory, err := ParseKey(tt.input)
			if tt.invalid {
				assert.ErrorIs(t, err, pxerrors.ErrInvalidKeyInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.masked, pixel.MaskKey(key))
			assert.Equal(t, tt.advisory, advisory)
		})
	}
}

func TestParsePath_StripsQuotes(t *testing.T) {
	dir := t.TempDir()
	in, _ := fixture(t, dir, "it's.png")

	path, err := ParsePath(`'` + in + `'`)
	assert.ErrorIs(t, err, pxerrors.ErrPathNotFound, "apostrophes inside the name are removed too")
	assert.Empty(t, path)

	plain, _ := fixture(t, dir, "plain.png")
	path, err = ParsePath(`"` + plain + `"`)
	require.NoError(t, err)
	assert.Equal(t, plain, path)
}

func TestRun_ConsoleShowsPlainCause(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("plain text"), 0o644))

	out, err := session(t, notImage+"\n1\n125\n")
	require.ErrorIs(t, err, pxerrors.ErrImageDecode)
	assert.Contains(t, out, msgImageDecode+notImage)
	assert.NotContains(t, out, "❌")
}

func TestRun_LogLevelByFailureKind(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("plain text"), 0o644))

	run := func(input string) string {
		var logs bytes.Buffer
		r := &Runner{
			In:     strings.NewReader(input),
			Out:    &bytes.Buffer{},
			Logger: hclog.New(&hclog.LoggerOptions{Name: "runner_test", Level: hclog.Warn, Output: &logs}),
		}
		_ = r.Run()
		return logs.String()
	}

	logs := run("/no/such/file.png\n")
	assert.Contains(t, logs, "[WARN]")
	assert.Contains(t, logs, "Input rejected")
	assert.Contains(t, logs, "kind=PathNotFound")

	logs = run(notImage + "\n1\n125\n")
	assert.Contains(t, logs, "[ERROR]")
	assert.Contains(t, logs, "kind=ImageDecodeFailure")
}
