// Package nameflag converts between the slash-separated name strings a
// CLI user types and the [][]byte component slices client.Handle takes.
// Nothing in wire or client needs this: the wire grammar never carries a
// string form, this is purely a presentation-layer convenience for
// cmd/ccnpeek and cmd/ccnpoke.
package nameflag

import "strings"

// Parse splits a path like "/a/b/c" into its raw components. A leading
// slash is optional; empty segments (from "//" or a trailing slash) are
// dropped rather than producing a zero-length component.
func Parse(path string) [][]byte {
	parts := strings.Split(path, "/")
	comps := make([][]byte, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		comps = append(comps, []byte(p))
	}
	return comps
}

// Join is Parse's inverse, used to print a matched Interest's name back
// to the user.
func Join(comps [][]byte) string {
	var b strings.Builder
	for _, c := range comps {
		b.WriteByte('/')
		b.Write(c)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
