// Package csvtable reads the word and grammar reference tables from CSV
// exports. Columns are located by their Korean header names, so column
// order does not matter.
package csvtable

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/hangyeol/internal/domain"
	"github.com/heartmarshall/hangyeol/pkg/textenc"
)

// Word table columns.
const (
	colSurface = "어휘"
	colPOS     = "품사"
	colLevel   = "등급"
	colUID     = "전체 번호"
	colGloss   = "길잡이말"
)

// Grammar table columns.
const (
	colCanonical = "대표형"
	colRelated   = "관련형"
	colClass     = "분류"
	colMeaning   = "의미"
)

// Source reads both tables from files on every load.
type Source struct {
	WordPath    string
	GrammarPath string
}

// NewSource creates a CSV source for the given files.
func NewSource(wordPath, grammarPath string) *Source {
	return &Source{WordPath: wordPath, GrammarPath: grammarPath}
}

func (s *Source) LoadWords(_ context.Context) ([]domain.WordRecord, error) {
	r, err := openTable(s.WordPath)
	if err != nil {
		return nil, fmt.Errorf("open word table: %w", err)
	}
	return ParseWords(r)
}

func (s *Source) LoadGrammar(_ context.Context) ([]domain.GrammarRecord, error) {
	r, err := openTable(s.GrammarPath)
	if err != nil {
		return nil, fmt.Errorf("open grammar table: %w", err)
	}
	return ParseGrammar(r)
}

// openTable reads a whole file and decodes it from UTF-8 or CP949.
func openTable(path string) (io.Reader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := textenc.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return strings.NewReader(text), nil
}

// ParseWords reads a word table. Rows without a surface form are skipped.
func ParseWords(r io.Reader) ([]domain.WordRecord, error) {
	t, err := newTable(r, colSurface, colPOS, colLevel, colUID)
	if err != nil {
		return nil, fmt.Errorf("parse word table: %w", err)
	}

	var out []domain.WordRecord
	for {
		row, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse word table: %w", err)
		}
		surface := row.get(colSurface)
		if surface == "" {
			continue
		}
		out = append(out, domain.WordRecord{
			Surface: surface,
			POS:     row.get(colPOS),
			Level:   row.get(colLevel),
			UID:     normalizeUID(row.get(colUID)),
			Gloss:   row.get(colGloss),
		})
	}
	return out, nil
}

// ParseGrammar reads a grammar table. Rows without a canonical form are kept
// when they carry related forms.
func ParseGrammar(r io.Reader) ([]domain.GrammarRecord, error) {
	t, err := newTable(r, colCanonical, colClass, colLevel, colUID)
	if err != nil {
		return nil, fmt.Errorf("parse grammar table: %w", err)
	}

	var out []domain.GrammarRecord
	for {
		row, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse grammar table: %w", err)
		}
		rec := domain.GrammarRecord{
			Canonical: row.get(colCanonical),
			Related:   row.get(colRelated),
			Class:     row.get(colClass),
			Level:     row.get(colLevel),
			UID:       normalizeUID(row.get(colUID)),
			Gloss:     row.get(colGloss),
			Meaning:   row.get(colMeaning),
		}
		if rec.Canonical == "" && rec.Related == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type table struct {
	reader  *csv.Reader
	columns map[string]int
}

type record struct {
	fields  []string
	columns map[string]int
}

func newTable(r io.Reader, required ...string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty table")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return &table{reader: reader, columns: columns}, nil
}

func (t *table) next() (record, error) {
	fields, err := t.reader.Read()
	if err != nil {
		return record{}, err
	}
	return record{fields: fields, columns: t.columns}, nil
}

// get returns the trimmed value of a column, or "" when the row is short or
// the column is absent.
func (r record) get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// normalizeUID turns spreadsheet-exported numbers such as "17.0" into "17".
func normalizeUID(s string) string {
	if head, ok := strings.CutSuffix(s, ".0"); ok && head != "" {
		return head
	}
	return s
}
