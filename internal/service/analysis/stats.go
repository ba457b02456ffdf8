package analysis

import (
	"encoding/json"
	"strings"

	"github.com/heartmarshall/hangyeol/internal/domain"
)

// Stats bucket labels.
const (
	LabelNoGrade = "등급 없음"
	LabelOther   = "기타"
	LabelTotal   = "전체"
)

const maxGrade = 6

// GradeStats counts annotation items per grade.
type GradeStats struct {
	Grades  [maxGrade]int
	NoGrade int
	Other   int
	Total   int
}

// ComputeStats buckets items by grade. Symbol-family tags (S*) count as
// 기타 and are excluded from 전체, except numerals (SN) which count in both.
func ComputeStats(items []domain.AnnotationItem) GradeStats {
	var s GradeStats
	for _, item := range items {
		if domain.IsSymbol(item.TagCode) {
			s.Other++
			if item.TagCode == "SN" {
				s.Total++
			}
			continue
		}
		s.Total++

		if g, ok := gradeOf(item.Level); ok {
			s.Grades[g-1]++
		} else {
			s.NoGrade++
		}
	}
	return s
}

func gradeOf(level string) (int, bool) {
	if !strings.Contains(level, domain.LevelSuffix) {
		return 0, false
	}
	g, ok := domain.ParseGrade(level)
	if !ok || g < 1 || g > maxGrade {
		return 0, false
	}
	return g, true
}

// Map returns the counters keyed by their Korean labels.
func (s GradeStats) Map() map[string]int {
	m := make(map[string]int, maxGrade+3)
	for i, n := range s.Grades {
		m[domain.FormatGrade(i+1)] = n
	}
	m[LabelNoGrade] = s.NoGrade
	m[LabelOther] = s.Other
	m[LabelTotal] = s.Total
	return m
}

func (s GradeStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// ChartData is a labels/values pair ready for a bar or pie chart.
type ChartData struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// Chart lists the non-zero buckets in grade order, followed by 등급 없음
// and 기타.
func (s GradeStats) Chart() ChartData {
	c := ChartData{Labels: []string{}, Data: []int{}}
	add := func(label string, n int) {
		if n > 0 {
			c.Labels = append(c.Labels, label)
			c.Data = append(c.Data, n)
		}
	}
	for i, n := range s.Grades {
		add(domain.FormatGrade(i+1), n)
	}
	add(LabelNoGrade, s.NoGrade)
	add(LabelOther, s.Other)
	return c
}
