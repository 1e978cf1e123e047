package scanner

import (
	"sort"
	"strings"

	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/samber/lo"
)

// GatherLibraryUsage returns the sorted top-level modules imported by the
// code cells, leaving out the Python standard library.
func GatherLibraryUsage(cells []notebook.Cell) []string {
	var modules []string

	for _, cell := range cells {
		if cell.CellType != notebook.CellTypeCode {
			continue
		}
		modules = append(modules, ParseImports(string(cell.Source))...)
	}

	modules = lo.Uniq(lo.Reject(modules, func(m string, _ int) bool {
		return IsStandardLibrary(m)
	}))
	sort.Strings(modules)

	return modules
}

// ParseImports extracts the top-level module names of import statements in source
func ParseImports(source string) []string {
	var modules []string

	for _, stmt := range statements(source) {
		switch {
		case strings.HasPrefix(stmt, "import "):
			for _, name := range strings.Split(strings.TrimPrefix(stmt, "import "), ",") {
				if m := topLevel(name); m != "" {
					modules = append(modules, m)
				}
			}
		case strings.HasPrefix(stmt, "from "):
			rest := strings.TrimSpace(strings.TrimPrefix(stmt, "from "))
			idx := strings.Index(rest, " import")
			if idx < 0 {
				continue
			}
			// Relative imports refer to local modules
			if strings.HasPrefix(rest, ".") {
				continue
			}
			if m := topLevel(rest[:idx]); m != "" {
				modules = append(modules, m)
			}
		}
	}

	return modules
}

// statements splits source into logical statements, dropping comments,
// string literals, IPython magics and shell escapes
func statements(source string) []string {
	var stmts []string
	var pending, quote string

	for _, line := range strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n") {
		line = stripLiterals(line, &quote)
		line = strings.TrimRight(line, " \t")

		if strings.HasSuffix(line, "\\") {
			pending += strings.TrimSuffix(line, "\\") + " "
			continue
		}
		line = pending + line
		pending = ""

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") || strings.HasPrefix(trimmed, "!") || strings.HasPrefix(trimmed, "?") {
			continue
		}

		for _, stmt := range strings.Split(trimmed, ";") {
			if stmt = strings.TrimSpace(stmt); stmt != "" {
				stmts = append(stmts, stmt)
			}
		}
	}

	return stmts
}

// stripLiterals removes the comment and the contents of string literals from
// line, leaving an empty "" in place of each literal. quote holds the
// delimiter of a triple-quoted string still open at the end of the line.
func stripLiterals(line string, quote *string) string {
	var b strings.Builder

	for i := 0; i < len(line); {
		if *quote != "" {
			end := strings.Index(line[i:], *quote)
			if end < 0 {
				break
			}
			i += end + len(*quote)
			*quote = ""
			b.WriteString(`""`)
			continue
		}

		c := line[i]
		switch {
		case c == '#':
			return b.String()
		case strings.HasPrefix(line[i:], `"""`), strings.HasPrefix(line[i:], "'''"):
			*quote = line[i : i+3]
			i += 3
		case c == '"', c == '\'':
			j := i + 1
			for j < len(line) && line[j] != c {
				if line[j] == '\\' {
					j++
				}
				j++
			}
			b.WriteString(`""`)
			i = j + 1
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

func topLevel(name string) string {
	name = strings.Trim(strings.TrimSpace(name), "()")
	if i := strings.Index(name, " as "); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	if !isIdentifier(name) {
		return ""
	}
	return name
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
