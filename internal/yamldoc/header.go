package yamldoc

import (
	"bufio"
	"bytes"
	"strings"
)

// unityTagHandle is the tag handle Unity declares in its %TAG directive.
const unityTagHandle = "!u!"

// header is the metadata Unity packs onto a document start line.
type header struct {
	classID  string
	anchor   string
	stripped bool
}

// rewriteHeaders strips directives and Unity header properties from src.
//
// Returned headers align one-to-one with the documents yaml.v3 will produce.
// Line count is preserved so parser error positions still point at the
// original file.
func rewriteHeaders(src []byte) ([]byte, []header) {
	var (
		out     bytes.Buffer
		headers []header
		started bool // a document has begun (explicitly or implicitly)
	)

	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "%"):
			// Directives only apply before the first document.
			if !started {
				out.WriteString("\n")
				continue
			}
		case line == "---" || strings.HasPrefix(line, "--- "):
			h, rest := parseHeader(strings.TrimPrefix(line, "---"))
			headers = append(headers, h)
			started = true
			out.WriteString("---")
			if rest != "" {
				out.WriteString(" ")
				out.WriteString(rest)
			}
			out.WriteString("\n")
			continue
		case !started && trimmed != "" && !strings.HasPrefix(trimmed, "#"):
			// Content before any "---" opens an implicit first document.
			headers = append(headers, header{})
			started = true
		}

		out.WriteString(line)
		out.WriteString("\n")
	}

	return out.Bytes(), headers
}

// parseHeader splits the remainder of a "---" line into Unity properties and
// any inline content that must be left for the YAML parser.
func parseHeader(rest string) (header, string) {
	var (
		h    header
		keep []string
	)
	for _, field := range strings.Fields(rest) {
		switch {
		case strings.HasPrefix(field, unityTagHandle):
			h.classID = strings.TrimPrefix(field, unityTagHandle)
		case strings.HasPrefix(field, "&") && h.anchor == "" && len(keep) == 0:
			h.anchor = strings.TrimPrefix(field, "&")
		case field == "stripped" && len(keep) == 0:
			h.stripped = true
		default:
			keep = append(keep, field)
		}
	}
	return h, strings.Join(keep, " ")
}
