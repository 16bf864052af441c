package vocabulary

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"romatype/internal/spell"
)

// ParseLine parses one vocabulary line of the form
//
//	view:reading1,reading2,...,readingN
//
// The left of the colon is the word as displayed; the right lists one
// reading per view character. View characters that only have a joint
// reading are grouped in square brackets and get a single reading:
//
//	[明日]のジョー:あした,の,じ,ょ,ー
//
// The characters ':', ',', '[', ']' can be escaped with a backslash; a
// literal backslash is written "\\".
func ParseLine(line string) (*Entry, error) {
	if strings.ContainsAny(line, "\n\r") {
		return nil, fmt.Errorf("%w: multiple lines", ErrFormat)
	}

	parts := splitEscaped(line, ':')
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: expected exactly one unescaped ':'", ErrFormat)
	}

	view, counts, err := removeBrackets(parts[0])
	if err != nil {
		return nil, err
	}

	readings := splitEscaped(parts[1], ',')
	for i, r := range readings {
		readings[i] = unescapeBackslashes(r)
	}
	if len(readings) != len(counts) {
		return nil, fmt.Errorf("%w: view has %d parts but %d readings given",
			ErrFormat, len(counts), len(readings))
	}

	elements := make([]SpellElement, len(readings))
	for i, r := range readings {
		sp, err := spell.New(r)
		if err != nil {
			return nil, fmt.Errorf("vocabulary: reading %q: %w", r, err)
		}
		if counts[i] == 1 {
			elements[i] = Normal(sp)
		} else {
			elements[i] = Compound(sp, counts[i])
		}
	}

	return NewEntry(view, elements)
}

// ParseLines parses a whole vocabulary listing, one entry per line.
// Blank lines and lines starting with '#' are skipped.
func ParseLines(r io.Reader) ([]*Entry, error) {
	var entries []*Entry
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("vocabulary: read: %w", err)
	}
	return entries, nil
}

// splitEscaped splits on every unescaped occurrence of sep. An escaped
// separator becomes the separator character itself; every other escape
// is kept for a later stage.
func splitEscaped(s string, sep rune) []string {
	var parts []string
	var part strings.Builder
	escaped := false

	for _, r := range s {
		switch {
		case r == sep:
			if escaped {
				part.WriteRune(r)
				escaped = false
			} else {
				parts = append(parts, part.String())
				part.Reset()
			}
		case r == '\\':
			if escaped {
				part.WriteString(`\\`)
				escaped = false
			} else {
				escaped = true
			}
		default:
			if escaped {
				part.WriteRune('\\')
				escaped = false
			}
			part.WriteRune(r)
		}
	}
	parts = append(parts, part.String())
	return parts
}

// unescapeBackslashes collapses doubled backslashes left by
// splitEscaped.
func unescapeBackslashes(s string) string {
	return strings.ReplaceAll(s, `\\`, `\`)
}

// removeBrackets strips compound brackets from a view string and
// returns, per view part, how many view characters it spans: 1 for an
// ordinary character, the group length for a bracketed run. Escaped
// brackets and backslashes become literal characters.
func removeBrackets(s string) (string, []int, error) {
	var clean []rune
	var counts []int
	escaped := false
	compoundStart := -1

	literal := func(r rune) {
		clean = append(clean, r)
		if compoundStart < 0 {
			counts = append(counts, 1)
		}
	}

	for _, r := range s {
		switch {
		case r == '[' && !escaped:
			if compoundStart >= 0 {
				return "", nil, fmt.Errorf("%w: nested '['", ErrFormat)
			}
			compoundStart = len(clean)
		case r == ']' && !escaped:
			if compoundStart < 0 {
				return "", nil, fmt.Errorf("%w: unmatched ']'", ErrFormat)
			}
			if compoundStart == len(clean) {
				return "", nil, fmt.Errorf("%w: empty compound", ErrFormat)
			}
			counts = append(counts, len(clean)-compoundStart)
			compoundStart = -1
		case r == '\\' && !escaped:
			escaped = true
		default:
			escaped = false
			literal(r)
		}
	}
	if compoundStart >= 0 {
		return "", nil, fmt.Errorf("%w: unmatched '['", ErrFormat)
	}
	if escaped {
		clean = append(clean, '\\')
		counts = append(counts, 1)
	}
	return string(clean), counts, nil
}
