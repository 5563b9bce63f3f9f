package cleaner

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// RuleSet is the versioned pattern configuration driving noise filtering and
// break detection. All fields are data: replacing a rule set retunes the
// cleaner without touching its control flow.
type RuleSet struct {
	// Version identifies the revision of the tables.
	Version string `json:"version"`

	// HeadingKeywords are domain terms whose presence marks a node as a
	// heading candidate.
	HeadingKeywords []string `json:"heading_keywords"`

	// NumberingPatterns are anchored regular expressions for numbering
	// styles that open a new structural unit.
	NumberingPatterns []string `json:"numbering_patterns"`

	// ListPrefixes are anchored regular expressions for list-item markers.
	ListPrefixes []string `json:"list_prefixes"`

	// FooterPatterns match header/footer boilerplate to be dropped: bare
	// page numbers, copyright lines, separator rules.
	FooterPatterns []string `json:"footer_patterns"`

	// TerminalMarks are the strong sentence-terminal runes. A node ending
	// in one of these completes a sentence.
	TerminalMarks string `json:"terminal_marks"`

	// Connectives are prefixes that continue the previous sentence and
	// therefore suppress the sentence-end break.
	Connectives []string `json:"connectives"`
}

// DefaultRuleSet returns the standard tables, tuned for Chinese technical
// and competition-rule documents.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Version: "1",
		HeadingKeywords: []string{
			"附录", "章", "节", "说明", "流程", "规则", "处罚", "定义",
			"简介", "概述", "总则", "细则", "要求", "标准", "检录",
			"赛前", "赛中", "赛后", "机器人", "场地", "裁判",
		},
		NumberingPatterns: []string{
			`^第[一二三四五六七八九十\d]+章`,
			`^第[一二三四五六七八九十\d]+节`,
			`^\d+\.\d+`,
			`^[（(][一二三四五六七八九十\d]+[）)]`,
			`^[①②③④⑤⑥⑦⑧⑨⑩]`,
		},
		ListPrefixes: []string{
			`^[•\-·]`,
			`^\d+[.、)]`,
			`^[a-zA-Z][.、)]`,
			`^[（(][a-zA-Z\d]+[）)]`,
		},
		FooterPatterns: []string{
			`^\d+\s*©\s*\d{4}.*版权所有`,
			`^©\s*\d{4}.*版权所有\s*\d+`,
			`^\d+\s*①?\s*\d{4}.*版权所有`,
			`^\d+\s*$`,
			`^[-=_]{3,}$`,
		},
		TerminalMarks: "。!?：:；;",
		Connectives:   []string{"但", "若", "如果", "且", "并", "同时"},
	}
}

// compiledRules is a RuleSet with its patterns compiled.
type compiledRules struct {
	source      RuleSet
	numbering   []*regexp.Regexp
	listPrefix  []*regexp.Regexp
	footer      []*regexp.Regexp
	connectives []string
}

// compileRules compiles every pattern in the rule set, reporting the first
// invalid one.
func compileRules(rs RuleSet) (*compiledRules, error) {
	c := &compiledRules{source: rs, connectives: rs.Connectives}

	var err error
	if c.numbering, err = compileAll(rs.NumberingPatterns); err != nil {
		return nil, errors.Wrap(err, "numbering pattern")
	}
	if c.listPrefix, err = compileAll(rs.ListPrefixes); err != nil {
		return nil, errors.Wrap(err, "list prefix pattern")
	}
	if c.footer, err = compileAll(rs.FooterPatterns); err != nil {
		return nil, errors.Wrap(err, "footer pattern")
	}
	return c, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "compiling %q", p)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// matchFirst returns the source pattern of the first regexp matching text.
func matchFirst(res []*regexp.Regexp, text string) (string, bool) {
	for _, re := range res {
		if re.MatchString(text) {
			return re.String(), true
		}
	}
	return "", false
}

// endsWithTerminal reports whether text ends with a strong terminal mark.
func (c *compiledRules) endsWithTerminal(text string) bool {
	runes := []rune(text)
	if len(runes) == 0 {
		return false
	}
	return strings.ContainsRune(c.source.TerminalMarks, runes[len(runes)-1])
}

// startsWithConnective reports whether text opens with a continuation
// connective.
func (c *compiledRules) startsWithConnective(text string) bool {
	for _, conn := range c.connectives {
		if strings.HasPrefix(text, conn) {
			return true
		}
	}
	return false
}

// hasHeadingKeyword returns the first configured keyword found in text.
func (c *compiledRules) hasHeadingKeyword(text string) (string, bool) {
	for _, kw := range c.source.HeadingKeywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}
