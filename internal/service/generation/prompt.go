package generation

import (
	"fmt"
	"strings"
)

// buildPrompt asks for exactly one practice sentence at or below maxGrade.
// maxGrade 0 means no difficulty target.
func buildPrompt(maxGrade int, keyword, hint string, forbidden []string) string {
	var b strings.Builder
	b.WriteString("당신은 한국어 어휘 및 난이도 전문 출제위원입니다.\n다음 조건에 맞춰 학습용 예문을 단 하나만 작성하세요.\n")

	switch {
	case maxGrade <= 0:
		b.WriteString("- 난이도: 자연스러운 한국어 문장\n")
	case maxGrade <= 2:
		fmt.Fprintf(&b, "\n[난이도 목표]: TOPIK %d급 이하 (엄격 준수)\n", maxGrade)
		b.WriteString("- 어휘: 기초적인 생활 어휘만 사용하세요.\n")
		b.WriteString("- 문장 구조: 단문 위주의 아주 짧고 단순한 문장 (길이 최소화).\n")
		b.WriteString("- 문법: 연결 어미나 파생어를 피하고, 아주 기본적인 조사만 사용하세요.\n")
	case maxGrade <= 4:
		fmt.Fprintf(&b, "\n[난이도 목표]: TOPIK %d급 이하 (엄격 준수)\n", maxGrade)
		b.WriteString("- 어휘: 일상적인 주제의 중급 어휘 사용.\n")
		b.WriteString("- 문장 구조: 너무 복잡한 수식어구는 피하세요.\n")
	default:
		fmt.Fprintf(&b, "\n[난이도 목표]: TOPIK %d급 이하 (엄격 준수)\n", maxGrade)
		b.WriteString("- 어휘: 고급 어휘와 추상적 표현 사용 가능.\n")
	}

	if keyword != "" {
		hintNote := ""
		if hint != "" {
			hintNote = fmt.Sprintf(" (문맥 힌트: %s)", hint)
		}
		fmt.Fprintf(&b, "\n- 필수 포함 단어: '%s'%s\n  * 주의: 형태를 변형하지 말고 그대로 포함하세요.\n", keyword, hintNote)
	}

	if len(forbidden) > 0 {
		fmt.Fprintf(&b, "\n- 절대 사용 금지 단어: %s\n", strings.Join(forbidden, ", "))
	}

	b.WriteString("\n[출력 제약사항]\n1. 설명 금지, 오직 예문 1개만 출력.\n2. 마크다운, 따옴표, 불필요한 기호 사용 금지.\n3. 반드시 한국어 마침표(.)로 끝낼 것.")
	return b.String()
}

var replyCleaner = strings.NewReplacer("**", "", `"`, "", "“", "", "”", "")

// cleanReply strips markdown emphasis and quotes from a model reply.
func cleanReply(s string) string {
	return strings.TrimSpace(replyCleaner.Replace(strings.TrimSpace(s)))
}
