package runner

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	pxerrors "github.com/provide-io/pixelxor/go/pixelxor/pkg/errors"
	"github.com/provide-io/pixelxor/go/pixelxor/pkg/mode"
)

// Console messages for rejected input and failed operations.
const (
	msgFileMissing   = "Error: File does not exist."
	msgInvalidChoice = "Invalid choice. Please enter 1 or 2."
	msgNotANumber    = "Invalid input. Please enter a number."
	msgKeyNotInteger = "Invalid input. The value must be an integer."
	msgKeyAdvisory   = "Note: A value between 0 and 255 is recommended for standard 8-bit images."
	msgImageDecode   = "Error: The image could not be opened or decoded: "
	msgUnexpected    = "An error occurred: "
)

// InputError is a rejected answer to one of the prompts.
type InputError struct {
	Kind    error // ErrPathNotFound, ErrInvalidModeInput or ErrInvalidKeyInput
	Input   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %q", e.Kind, e.Input)
}

func (e *InputError) Unwrap() error {
	return e.Kind
}

var quoteStripper = strings.NewReplacer(`"`, "", `'`, "")

// ParsePath removes every quote character from the trimmed answer and
// requires the result to name an existing regular file.
func ParsePath(raw string) (string, error) {
	path := quoteStripper.Replace(strings.TrimSpace(raw))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", &InputError{Kind: pxerrors.ErrPathNotFound, Input: path, Message: msgFileMissing}
	}
	return path, nil
}

// ParseMode accepts "1" or "2", with optional sign and surrounding space.
func ParseMode(raw string) (mode.Mode, error) {
	s := strings.TrimSpace(raw)

	n, err := strconv.Atoi(s)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			// a number, just not one on the menu
			return 0, &InputError{Kind: pxerrors.ErrInvalidModeInput, Input: s, Message: msgInvalidChoice}
		}
		return 0, &InputError{Kind: pxerrors.ErrInvalidModeInput, Input: s, Message: msgNotANumber}
	}

	m := mode.Mode(n)
	if !m.Valid() {
		return 0, &InputError{Kind: pxerrors.ErrInvalidModeInput, Input: s, Message: msgInvalidChoice}
	}
	return m, nil
}

// byteMax is both the top of the advisory range and the low-byte mask.
var byteMax = big.NewInt(0xFF)

// ParseKey accepts any base-10 integer. advisory is true when the value lies
// outside 0-255. Values beyond int64 are reduced to their low byte, which
// leaves the masked transform key unchanged.
func ParseKey(raw string) (key int64, advisory bool, err error) {
	s := strings.TrimSpace(raw)

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return 0, false, &InputError{Kind: pxerrors.ErrInvalidKeyInput, Input: s, Message: msgKeyNotInteger}
	}

	advisory = n.Sign() < 0 || n.Cmp(byteMax) > 0
	if n.IsInt64() {
		return n.Int64(), advisory, nil
	}
	return new(big.Int).And(n, byteMax).Int64(), advisory, nil
}
