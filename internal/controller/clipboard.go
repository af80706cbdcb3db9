package controller

import (
	"errors"

	"github.com/atotto/clipboard"
)

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard not supported on this system")
	}
	return clipboard.WriteAll(text)
}
