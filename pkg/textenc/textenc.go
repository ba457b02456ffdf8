// Package textenc decodes Korean text files that may be saved as UTF-8 or
// as legacy CP949 (EUC-KR).
package textenc

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode returns b as UTF-8. Valid UTF-8 input is returned as is, minus a
// leading byte order mark; anything else is decoded as CP949.
func Decode(b []byte) (string, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b), nil
	}
	out, err := korean.EUCKR.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode cp949: %w", err)
	}
	return string(out), nil
}
