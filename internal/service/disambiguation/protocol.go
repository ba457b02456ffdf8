package disambiguation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/heartmarshall/hangyeol/internal/domain"
)

const noGloss = "의미 정보 없음"

var (
	codeFence     = strings.NewReplacer("```json", "", "```", "")
	trailingComma = regexp.MustCompile(`,\s*}`)
)

// BuildPrompt lists every ambiguous item with its 0-based position, word
// and candidate uids, and asks for a JSON object keyed by position.
func BuildPrompt(sentence string, items []domain.AmbiguousItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, `당신은 한국어 어휘 분석기입니다. 아래 문맥을 보고 동음이의어 중 가장 적절한 의미를 고르세요.
문맥: "%s"

[분석 대상 목록]
`, sentence)

	for i, item := range items {
		opts := make([]string, 0, len(item.Candidates))
		for _, c := range item.Candidates {
			gloss := c.Gloss()
			if gloss == "" {
				gloss = noGloss
			}
			opts = append(opts, fmt.Sprintf("(ID:%s) %s", c.UID, gloss))
		}
		fmt.Fprintf(&b, "[%d] 단어: '%s' -> 후보: [%s]\n", i, item.Word, strings.Join(opts, ", "))
	}

	b.WriteString(`
[출력 규칙]
1. 반드시 JSON 형식으로만 응답하세요. (마크다운 없이)
2. Key는 위 목록의 [번호]를 사용하세요. (예: "0", "1")
3. Value는 선택한 ID 값만 넣으세요.
4. 예시: {"0": "272", "1": "677"}
`)
	return b.String()
}

// ParseDecisions reads the model reply into key -> uid. Code fences and
// trailing commas are tolerated; numeric uids are accepted as strings.
func ParseDecisions(raw string) (Decisions, error) {
	s := strings.TrimSpace(codeFence.Replace(raw))
	if strings.HasSuffix(s, ",") {
		s = strings.TrimSuffix(s, ",") + "}"
	}
	s = trailingComma.ReplaceAllString(s, "}")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(s[start : end+1])))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}

	out := make(Decisions, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			out[k] = strings.TrimSpace(val)
		case json.Number:
			out[k] = val.String()
		}
	}
	return out, nil
}
