package clidoc

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify turns a heading into an anchor the way the MkDocs toc extension
// does, so links agree between MkDocs and goldmark output.
func Slugify(value string) string {
	value = norm.NFKD.String(value)
	value = strings.Map(func(r rune) rune {
		if r > 127 {
			return -1
		}
		return r
	}, value)
	value = strings.ToLower(strings.TrimSpace(slugStrip.ReplaceAllString(value, "")))
	return slugCollapse.ReplaceAllString(value, "-")
}

// cleanDoc normalises a help text: the first line loses its indentation,
// the common indentation of the other lines is removed and blank lines at
// either end are dropped.
func cleanDoc(src string) []string {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	minIndent := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespace(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	lines[0] = strings.TrimLeft(lines[0], " \t")
	if minIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= minIndent {
				lines[i] = lines[i][minIndent:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " \t")
			}
		}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			count++
			continue
		}
		break
	}
	return count
}
