package domain

import "strings"

// Category is the coarse part-of-speech bucket used as the second half of
// every lexicon lookup key.
type Category string

const (
	CategoryNoun          Category = "N"
	CategoryDependentNoun Category = "NB"
	CategoryPredicate     Category = "V"
	CategoryModifier      Category = "M"
	CategoryAdverb        Category = "MA"
	CategoryInterjection  Category = "I"
	CategoryConnective    Category = "EC"
	CategoryFinal         Category = "EF"
	CategoryPrefinal      Category = "EP"
	CategoryTransform     Category = "ET"
	CategoryEnding        Category = "E"
	CategoryParticle      Category = "J"
	CategoryOther         Category = "ETC"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryNoun, CategoryDependentNoun, CategoryPredicate, CategoryModifier,
		CategoryAdverb, CategoryInterjection, CategoryConnective, CategoryFinal,
		CategoryPrefinal, CategoryTransform, CategoryEnding, CategoryParticle, CategoryOther:
		return true
	}
	return false
}

// tagCategories covers the analyzer's closed tag vocabulary. Tags missing
// here (symbols, affixes, roots, foreign text) fall back to CategoryOther.
var tagCategories = map[string]Category{
	"NNG": CategoryNoun, "NNP": CategoryNoun, "NR": CategoryNoun, "NP": CategoryNoun,
	"NNB": CategoryDependentNoun,
	"VV":  CategoryPredicate, "VA": CategoryPredicate, "VX": CategoryPredicate,
	"VCP": CategoryPredicate, "VCN": CategoryPredicate,
	"VV-I": CategoryPredicate, "VA-I": CategoryPredicate, "VX-I": CategoryPredicate,
	"VV-R": CategoryPredicate, "VA-R": CategoryPredicate,
	"MM":  CategoryModifier,
	"MAG": CategoryAdverb, "MAJ": CategoryAdverb,
	"IC":  CategoryInterjection,
	"EC":  CategoryConnective,
	"EF":  CategoryFinal,
	"EP":  CategoryPrefinal,
	"ETN": CategoryTransform, "ETM": CategoryTransform,
	"JKS": CategoryParticle, "JKC": CategoryParticle, "JKG": CategoryParticle,
	"JKO": CategoryParticle, "JKB": CategoryParticle, "JKV": CategoryParticle,
	"JKQ": CategoryParticle, "JX": CategoryParticle, "JC": CategoryParticle,
}

// CategoryOf folds a raw analyzer tag into its coarse category.
func CategoryOf(tag string) Category {
	if c, ok := tagCategories[tag]; ok {
		return c
	}
	return CategoryOther
}

var tagLabels = map[string]string{
	"NNG": "일반 명사", "NNP": "고유 명사", "NNB": "의존 명사", "NR": "수사", "NP": "대명사",
	"VV": "동사", "VA": "형용사", "VX": "보조 용언", "VCP": "긍정 지정사(이다)", "VCN": "부정 지정사",
	"MM": "관형사", "MAG": "일반 부사", "MAJ": "접속 부사", "IC": "감탄사",
	"JKS": "주격 조사", "JKC": "보격 조사", "JKG": "관형격 조사", "JKO": "목적격 조사",
	"JKB": "부사격 조사", "JKV": "호격 조사", "JKQ": "인용격 조사", "JX": "보조사", "JC": "접속 조사",
	"EP": "선어말 어미", "EF": "종결 어미", "EC": "연결 어미", "ETN": "명사형 전성 어미", "ETM": "관형형 전성 어미",
	"XPN": "체언 접두사", "XSN": "명사 파생 접미사", "XSV": "동사 파생 접미사", "XSA": "형용사 파생 접미사", "XR": "어근",
	"SF": "마침표", "SP": "쉼표", "SS": "따옴표/괄호", "SE": "줄임표", "SO": "붙임표", "SW": "기타 기호",
}

// TagLabel returns the Korean display name of a raw tag. Irregular variants
// such as "VV-I" share the label of their base tag; unknown tags are
// returned unchanged.
func TagLabel(tag string) string {
	if l, ok := tagLabels[tag]; ok {
		return l
	}
	if base, _, found := strings.Cut(tag, "-"); found {
		if l, ok := tagLabels[base]; ok {
			return l
		}
	}
	return tag
}

// IsParticleOrEnding reports whether a tag belongs to the particle (J*) or
// ending (E*) families, which are looked up in the grammar table only.
func IsParticleOrEnding(tag string) bool {
	return strings.HasPrefix(tag, "J") || strings.HasPrefix(tag, "E")
}

// IsCopula reports whether a tag denotes the positive copula.
func IsCopula(tag string) bool {
	return strings.HasPrefix(tag, "VCP")
}

// IsSymbol reports whether a tag belongs to the punctuation/symbol family.
func IsSymbol(tag string) bool {
	return strings.HasPrefix(tag, "S")
}

// Source identifies which reference table an entry came from.
type Source string

const (
	SourceWord    Source = "word"
	SourceGrammar Source = "grammar"
)

func (s Source) String() string { return string(s) }

func (s Source) IsValid() bool {
	switch s {
	case SourceWord, SourceGrammar:
		return true
	}
	return false
}

// IDPrefix returns the provenance prefix used in annotation IDs.
func (s Source) IDPrefix() string {
	if s == SourceGrammar {
		return "문법"
	}
	return "단어"
}
