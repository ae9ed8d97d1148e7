package parser

import "strings"

// SkillVocabulary 技能词表：小写技能名到规范形式的映射
// 进程启动时构建一次，之后只读，可安全并发访问
type SkillVocabulary struct {
	canonical    map[string]string
	maxPhraseLen int // 词表中词数最长的短语，决定多词扫描窗口
}

// NewSkillVocabulary 从技能名列表构建词表
// 最小形式下规范形式就是词条本身（恒等映射）
func NewSkillVocabulary(entries []string) *SkillVocabulary {
	v := &SkillVocabulary{
		canonical:    make(map[string]string, len(entries)),
		maxPhraseLen: 1,
	}
	for _, entry := range entries {
		lower := strings.ToLower(strings.TrimSpace(entry))
		if lower == "" {
			continue
		}
		v.canonical[lower] = lower
		if n := len(strings.Fields(lower)); n > v.maxPhraseLen {
			v.maxPhraseLen = n
		}
	}
	return v
}

// DefaultSkillVocabulary 返回内置的默认技能词表
func DefaultSkillVocabulary() *SkillVocabulary {
	return NewSkillVocabulary([]string{
		"python", "machine learning", "sql", "java", "c++", "aws",
	})
}

// Contains 判断小写形式是否在词表中
func (v *SkillVocabulary) Contains(lower string) bool {
	_, ok := v.canonical[lower]
	return ok
}

// Size 词表条目数
func (v *SkillVocabulary) Size() int {
	return len(v.canonical)
}

// 词元两端需要剥离的标点，保留 + 和 # 以支持 c++ / c# 这类技能名
const tokenTrimCutset = ",.;:!?()[]{}<>\"'"

// ExtractSkills 从规范化文本中抽取技能集合
// 单词词元和多词短语各自独立匹配，互相重叠的命中都会保留，
// 仅按精确字符串（区分大小写）去重，因此 "Python" 和 "python" 是两个条目
func ExtractSkills(text string, vocab *SkillVocabulary) []string {
	skills := []string{}
	if vocab == nil || text == "" {
		return skills
	}

	rawTokens := strings.Fields(text)
	tokens := make([]string, len(rawTokens))
	for i, tok := range rawTokens {
		tokens[i] = strings.Trim(tok, tokenTrimCutset)
	}

	seen := make(map[string]struct{})
	add := func(surface string) {
		if _, dup := seen[surface]; dup {
			return
		}
		seen[surface] = struct{}{}
		skills = append(skills, surface)
	}

	// 单词词元
	for _, tok := range tokens {
		if tok != "" && vocab.Contains(strings.ToLower(tok)) {
			add(tok)
		}
	}

	// 多词短语：连续词元窗口，窗口上限取词表最长短语的词数
	for n := 2; n <= vocab.maxPhraseLen; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			phrase := strings.Join(tokens[i:i+n], " ")
			if vocab.Contains(strings.ToLower(phrase)) {
				add(phrase)
			}
		}
	}

	return skills
}
