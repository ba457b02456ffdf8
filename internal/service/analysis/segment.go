package analysis

import (
	"fmt"
	"sort"

	"github.com/heartmarshall/hangyeol/internal/domain"
)

// Span kinds.
const (
	SpanPlain  = "plain"
	SpanGraded = "graded"
)

const classNoGrade = "text-grade-none"

// Span is one highlight segment of the sentence.
type Span struct {
	ID    string                 `json:"id,omitempty"`
	Text  string                 `json:"text"`
	Type  string                 `json:"type"`
	Class string                 `json:"class,omitempty"`
	Item  *domain.AnnotationItem `json:"info,omitempty"`
}

// Segment partitions sentence into plain gaps and graded spans. Items are
// visited in offset order; overlapping spans only contribute the part not
// already covered, so the concatenated segment texts equal the sentence.
func Segment(sentence string, items []domain.AnnotationItem) []Span {
	runes := []rune(sentence)
	n := len(runes)

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].OffsetStart < items[order[b]].OffsetStart
	})

	var out []Span
	cursor := 0
	for _, idx := range order {
		item := items[idx]
		start := clamp(item.OffsetStart, 0, n)
		end := clamp(item.OffsetEnd(), start, n)

		if start > cursor {
			out = append(out, Span{Text: string(runes[cursor:start]), Type: SpanPlain})
		}
		from := max(start, cursor)
		out = append(out, Span{
			ID:    fmt.Sprintf("seg-%d-%d", idx, item.OffsetStart),
			Text:  string(runes[from:max(from, end)]),
			Type:  SpanGraded,
			Class: gradeClass(item.Level),
			Item:  &items[idx],
		})
		cursor = max(cursor, end)
	}
	if cursor < n {
		out = append(out, Span{Text: string(runes[cursor:]), Type: SpanPlain})
	}
	return out
}

func gradeClass(level string) string {
	if g, ok := gradeOf(level); ok {
		return fmt.Sprintf("text-grade-%d", g)
	}
	return classNoGrade
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
