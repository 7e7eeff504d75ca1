package template

import (
	"math"
	"regexp"
	"strconv"
)

// idMarkerRe matches the bracketed identifier range in a payload template:
// [a-b], [a-] or [-b]. The first match in the template wins.
var idMarkerRe = regexp.MustCompile(`\[(\d+)?-(\d+)?]`)

// Unbounded is the range length of a half-open identifier range.
const Unbounded = uint64(math.MaxUint64)

// ID tracks the running identifier substituted into a payload template.
//
// Exactly one of Start/End may be nil. When Start is set the identifier
// ascends from it; when only End is set the identifier descends from it.
type ID struct {
	Current uint64
	Start   *uint64
	End     *uint64

	// Marker is the literal bracketed substring matched in the template,
	// e.g. "[1200-2000]". Substitution replaces this exact text.
	Marker string
}

// Next advances the identifier one step: ascending when Start is present,
// descending otherwise. There is no clamping against End; termination is
// driven by the campaign's effective count.
func (id *ID) Next() {
	if id.Start != nil {
		id.Current++
	} else {
		id.Current--
	}
}

// ParseID scans the template for an identifier marker and returns the seeded
// identifier together with the range length.
//
// Without a marker (or with the degenerate "[-]" form, which carries no
// bounds) it returns nil and an unbounded range. The range length is
// end-start+1 when both bounds are present and Unbounded otherwise.
func ParseID(data string) (*ID, uint64) {
	m := idMarkerRe.FindStringSubmatch(data)
	if m == nil {
		return nil, Unbounded
	}

	start := parseBound(m[1])
	end := parseBound(m[2])
	if start == nil && end == nil {
		// "[-]": both bounds absent, treat as no marker.
		return nil, Unbounded
	}

	id := &ID{Start: start, End: end, Marker: m[0]}
	if start != nil {
		id.Current = *start
	} else {
		id.Current = *end
	}

	rangeLen := Unbounded
	if start != nil && end != nil {
		rangeLen = *end - *start + 1
	}
	return id, rangeLen
}

func parseBound(s string) *uint64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
