// Package template expands inscription payload templates into transaction
// input bytes, substituting the sender address and a running identifier.
package template

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AddressMarker is replaced with the canonical sender address wherever it
// appears in a template.
const AddressMarker = "[address]"

// Expand substitutes the sender address and, when id is non-nil, the current
// identifier value into the template. It is pure: advancing the identifier is
// the caller's job (see ID.Next).
func Expand(data, address string, id *ID) string {
	text := strings.ReplaceAll(data, AddressMarker, address)
	if id != nil {
		text = strings.ReplaceAll(text, id.Marker, strconv.FormatUint(id.Current, 10))
	}
	return text
}

// Payload produces the hex string placed in the transaction's input field.
//
// Templates beginning with "0x" are treated as already-encoded opaque payloads
// and returned verbatim, with both the prefix and all substitution suppressed.
// Otherwise the expanded template is prepended with prefix and hex-encoded.
func Payload(data, prefix, address string, id *ID) string {
	if strings.HasPrefix(data, "0x") {
		return data
	}
	expanded := Expand(data, address, id)
	return hexutil.Encode([]byte(prefix + expanded))
}

// DecodeText decodes a 0x-prefixed hex payload back into UTF-8 text. Used for
// the preflight sanity log showing the plain mint text next to its hex form.
func DecodeText(payload string) (string, error) {
	b, err := hexutil.Decode(payload)
	if err != nil {
		return "", fmt.Errorf("decode payload hex: %w", err)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("payload is not valid UTF-8")
	}
	return string(b), nil
}
