package directive

import (
	"bufio"
	"io"
	"strings"
)

// ReplaceFunc produces the lines that replace one directive block, given the
// options the block declared.
type ReplaceFunc func(options map[string]string) ([]string, error)

// ReplaceBlocks finds blocks of the form
//
//	::: <title>
//	    :<key1>: <value1>
//	    :<key2>:
//
// and replaces each one, marker and option lines included, with the lines
// returned by replace. A block ends at the first line that is not an option
// line; that line is kept and scanned again, so it may open the next block.
// A block still open at the end of the input is replaced as well.
func ReplaceBlocks(lines []string, title string, replace ReplaceFunc) ([]string, error) {
	out := make([]string, 0, len(lines))
	s := newBlockScanner(title, replace, func(line, _ string) error {
		out = append(out, line)
		return nil
	})
	for _, line := range lines {
		if err := s.feed(line, ""); err != nil {
			return nil, err
		}
	}
	if err := s.close(); err != nil {
		return nil, err
	}
	return out, nil
}

// Scan is the streaming form of ReplaceBlocks. Lines outside blocks are
// written back byte for byte, line endings included, and the output ends
// with a newline only when the input does. Replacement lines take the line
// ending of their block's marker line.
func Scan(r io.Reader, w io.Writer, title string, replace ReplaceFunc) error {
	bw := bufio.NewWriter(w)
	// The ending of the last emitted line is held back until another line
	// follows or the input turns out to end with a newline.
	var pending string
	s := newBlockScanner(title, replace, func(line, ending string) error {
		if _, err := bw.WriteString(pending); err != nil {
			return err
		}
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		pending = ending
		return nil
	})

	br := bufio.NewReader(r)
	terminated := false
	for {
		raw, err := br.ReadString('\n')
		if raw != "" {
			line, ending := splitLineEnding(raw)
			terminated = ending != ""
			if ferr := s.feed(line, ending); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if err := s.close(); err != nil {
		return err
	}
	if terminated {
		if _, err := bw.WriteString(pending); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func splitLineEnding(raw string) (line, ending string) {
	switch {
	case strings.HasSuffix(raw, "\r\n"):
		return raw[:len(raw)-2], "\r\n"
	case strings.HasSuffix(raw, "\n"):
		return raw[:len(raw)-1], "\n"
	}
	return raw, ""
}

type blockScanner struct {
	marker  string
	replace ReplaceFunc
	emit    func(line, ending string) error
	inBlock bool
	ending  string
	options map[string]string
}

func newBlockScanner(title string, replace ReplaceFunc, emit func(line, ending string) error) *blockScanner {
	return &blockScanner{marker: "::: " + title, replace: replace, emit: emit}
}

func (s *blockScanner) feed(line, ending string) error {
	if s.inBlock {
		if key, value, ok := parseOptionLine(line); ok {
			s.options[key] = value
			return nil
		}
		if err := s.flush(); err != nil {
			return err
		}
	}
	if strings.TrimRight(line, " \t") == s.marker {
		s.inBlock = true
		s.ending = ending
		if s.ending == "" {
			s.ending = "\n"
		}
		s.options = make(map[string]string)
		return nil
	}
	return s.emit(line, ending)
}

func (s *blockScanner) close() error {
	if !s.inBlock {
		return nil
	}
	return s.flush()
}

func (s *blockScanner) flush() error {
	s.inBlock = false
	lines, err := s.replace(s.options)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if err := s.emit(line, s.ending); err != nil {
			return err
		}
	}
	return nil
}

// parseOptionLine matches an indented ":key:" or ":key: value" line. Only the
// first whitespace-separated token after the key is kept as the value.
func parseOptionLine(line string) (key, value string, ok bool) {
	rest := strings.TrimLeft(line, " \t")
	if len(rest) == len(line) || !strings.HasPrefix(rest, ":") {
		return "", "", false
	}
	rest = rest[1:]
	end := strings.IndexByte(rest, ':')
	if end <= 0 {
		return "", "", false
	}
	key, rest = rest[:end], rest[end+1:]
	if trimmed := strings.TrimLeft(rest, " \t"); len(trimmed) < len(rest) {
		if fields := strings.Fields(trimmed); len(fields) > 0 {
			value = fields[0]
		}
	}
	return key, value, true
}
