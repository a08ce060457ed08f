// Package translation keeps the gettext catalogs of the website in sync
// with the default language by machine translating missing entries.
package translation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const fuzzyFlag = "fuzzy"

type (
	// Entry is one message of a PO catalog.
	Entry struct {
		// Comments holds translator, extracted, reference and
		// previous-msgid comment lines verbatim, without the flags line.
		Comments  []string
		Flags     []string
		Context   string
		ID        string
		IDPlural  string
		Str       string
		StrPlural []string
		Obsolete  bool

		hasContext bool
	}

	// Catalog is a parsed PO file. The header (the entry with an empty
	// msgid) is kept apart from the messages.
	Catalog struct {
		Header  *Entry
		Entries []*Entry
	}
)

func (e *Entry) IsPlural() bool { return e.IDPlural != "" }

func (e *Entry) IsFuzzy() bool {
	for _, f := range e.Flags {
		if f == fuzzyFlag {
			return true
		}
	}
	return false
}

// SetFuzzy adds or removes the fuzzy flag.
func (e *Entry) SetFuzzy(fuzzy bool) {
	if fuzzy == e.IsFuzzy() {
		return
	}
	if fuzzy {
		e.Flags = append([]string{fuzzyFlag}, e.Flags...)
		return
	}
	flags := e.Flags[:0]
	for _, f := range e.Flags {
		if f != fuzzyFlag {
			flags = append(flags, f)
		}
	}
	e.Flags = flags
}

// SetContext sets msgctxt. An empty context is still written.
func (e *Entry) SetContext(ctx string) {
	e.Context = ctx
	e.hasContext = true
}

// Translated reports whether the entry has a usable, non-fuzzy translation.
func (e *Entry) Translated() bool {
	if e.Obsolete || e.IsFuzzy() {
		return false
	}
	if !e.IsPlural() {
		return e.Str != ""
	}
	if len(e.StrPlural) == 0 {
		return false
	}
	for _, s := range e.StrPlural {
		if s == "" {
			return false
		}
	}
	return true
}

// UntranslatedEntries returns the live entries without a translation,
// including fuzzy ones.
func (c *Catalog) UntranslatedEntries() []*Entry {
	var out []*Entry
	for _, e := range c.Entries {
		if !e.Obsolete && !e.Translated() {
			out = append(out, e)
		}
	}
	return out
}

func (c *Catalog) FuzzyEntries() []*Entry {
	var out []*Entry
	for _, e := range c.Entries {
		if !e.Obsolete && e.IsFuzzy() {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the live entry with the given context and msgid.
func (c *Catalog) Find(ctx, id string) *Entry {
	for _, e := range c.Entries {
		if !e.Obsolete && e.Context == ctx && e.ID == id {
			return e
		}
	}
	return nil
}

func ParseFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cat, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// WriteFile replaces the file at path with the serialized catalog.
func (c *Catalog) WriteFile(path string) error {
	f, err := os.CreateTemp(dirOf(path), ".po-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	w := bufio.NewWriter(f)
	if err := c.Write(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tmp, info.Mode().Perm())
	}
	return os.Rename(tmp, path)
}

func dirOf(path string) string {
	i := strings.LastIndexAny(path, `/\`)
	if i < 0 {
		return "."
	}
	return path[:i+1]
}

// field names the keyword a continuation line belongs to.
type field int

const (
	fieldNone field = iota
	fieldContext
	fieldID
	fieldIDPlural
	fieldStr
	fieldStrPlural
)

type parser struct {
	cat     *Catalog
	cur     *Entry
	seenID  bool
	field   field
	plural  int
	lineNum int
}

// Parse reads a PO catalog.
func Parse(r io.Reader) (*Catalog, error) {
	p := &parser{cat: &Catalog{}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for sc.Scan() {
		p.lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if p.lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if err := p.line(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.lineNum, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	p.flush()
	return p.cat, nil
}

func (p *parser) entry() *Entry {
	if p.cur == nil {
		p.cur = &Entry{}
	}
	return p.cur
}

func (p *parser) flush() {
	e, complete := p.cur, p.seenID
	p.cur, p.seenID, p.field = nil, false, fieldNone
	if e == nil || !complete {
		return
	}
	if p.cat.Header == nil && len(p.cat.Entries) == 0 && !e.Obsolete && e.ID == "" && !e.hasContext {
		p.cat.Header = e
		return
	}
	p.cat.Entries = append(p.cat.Entries, e)
}

func (p *parser) line(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		p.flush()
		return nil
	}

	obsolete := false
	if strings.HasPrefix(trimmed, "#~") && !strings.HasPrefix(trimmed, "#~|") {
		obsolete = true
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "#~"))
		if trimmed == "" {
			return nil
		}
	}

	if strings.HasPrefix(trimmed, "#") {
		// a comment after the strings starts the next entry
		if p.seenID {
			p.flush()
		}
		e := p.entry()
		if strings.HasPrefix(trimmed, "#,") {
			for _, f := range strings.Split(trimmed[2:], ",") {
				if f = strings.TrimSpace(f); f != "" {
					e.Flags = append(e.Flags, f)
				}
			}
			return nil
		}
		e.Comments = append(e.Comments, trimmed)
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		s, err := unquote(trimmed)
		if err != nil {
			return err
		}
		return p.appendValue(s)
	}

	keyword, rest, _ := strings.Cut(trimmed, " ")
	value, err := unquote(strings.TrimSpace(rest))
	if err != nil {
		return err
	}

	switch {
	case keyword == "msgctxt":
		if p.seenID {
			p.flush()
		}
		e := p.entry()
		e.SetContext(value)
		p.field = fieldContext
	case keyword == "msgid":
		if p.seenID {
			p.flush()
		}
		e := p.entry()
		e.ID = value
		p.seenID = true
		p.field = fieldID
	case keyword == "msgid_plural":
		p.entry().IDPlural = value
		p.field = fieldIDPlural
	case keyword == "msgstr":
		p.entry().Str = value
		p.field = fieldStr
	case strings.HasPrefix(keyword, "msgstr["):
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(keyword, "msgstr["), "]"))
		if err != nil || n < 0 {
			return fmt.Errorf("bad plural index in %q", keyword)
		}
		e := p.entry()
		for len(e.StrPlural) <= n {
			e.StrPlural = append(e.StrPlural, "")
		}
		e.StrPlural[n] = value
		p.plural = n
		p.field = fieldStrPlural
	default:
		return fmt.Errorf("unknown keyword %q", keyword)
	}
	p.entry().Obsolete = p.entry().Obsolete || obsolete
	return nil
}

func (p *parser) appendValue(s string) error {
	e := p.entry()
	switch p.field {
	case fieldContext:
		e.Context += s
	case fieldID:
		e.ID += s
	case fieldIDPlural:
		e.IDPlural += s
	case fieldStr:
		e.Str += s
	case fieldStrPlural:
		e.StrPlural[p.plural] += s
	default:
		return fmt.Errorf("string without keyword")
	}
	return nil
}

func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("expected quoted string, got %q", s)
	}
	s = s[1 : len(s)-1]
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"', '\\':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String(), nil
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

// Write serializes the catalog in PO syntax.
func (c *Catalog) Write(w io.Writer) error {
	bw := &errWriter{w: w}
	first := true
	if c.Header != nil {
		writeEntry(bw, c.Header)
		first = false
	}
	for _, e := range c.Entries {
		if !first {
			bw.printf("\n")
		}
		writeEntry(bw, e)
		first = false
	}
	return bw.err
}

func writeEntry(w *errWriter, e *Entry) {
	prefix := ""
	if e.Obsolete {
		prefix = "#~ "
	}
	var previous []string
	for _, c := range e.Comments {
		if strings.HasPrefix(c, "#|") || strings.HasPrefix(c, "#~|") {
			previous = append(previous, c)
			continue
		}
		w.printf("%s\n", c)
	}
	if len(e.Flags) > 0 {
		w.printf("#, %s\n", strings.Join(e.Flags, ", "))
	}
	for _, c := range previous {
		w.printf("%s\n", c)
	}
	if e.hasContext || e.Context != "" {
		writeString(w, prefix, "msgctxt", e.Context)
	}
	writeString(w, prefix, "msgid", e.ID)
	if e.IsPlural() {
		writeString(w, prefix, "msgid_plural", e.IDPlural)
		forms := e.StrPlural
		if len(forms) == 0 {
			forms = []string{"", ""}
		}
		for i, s := range forms {
			writeString(w, prefix, fmt.Sprintf("msgstr[%d]", i), s)
		}
		return
	}
	writeString(w, prefix, "msgstr", e.Str)
}

// writeString wraps multi-line values after each newline, the way
// xgettext lays them out.
func writeString(w *errWriter, prefix, keyword, value string) {
	lines := strings.SplitAfter(value, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) <= 1 {
		w.printf("%s%s \"%s\"\n", prefix, keyword, escaper.Replace(value))
		return
	}
	w.printf("%s%s \"\"\n", prefix, keyword)
	for _, l := range lines {
		w.printf("%s\"%s\"\n", prefix, escaper.Replace(l))
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}
