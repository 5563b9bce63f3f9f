package segment

import (
	"strings"
	"testing"

	"github.com/tsawler/strata/model"
)

func TestSplitIntoSentences(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "chinese sentences keep delimiters",
			text: "机器人必须通过检录。超时将被取消资格！是否可以申诉？",
			want: []string{"机器人必须通过检录。", "超时将被取消资格！", "是否可以申诉？"},
		},
		{
			name: "newline is a delimiter",
			text: "第一行\n第二行",
			want: []string{"第一行", "第二行"},
		},
		{
			name: "delimiter run stays attached",
			text: "真的吗？！还有呢",
			want: []string{"真的吗？！", "还有呢"},
		},
		{
			name: "trailing text without delimiter",
			text: "这句话没有结尾",
			want: []string{"这句话没有结尾"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SplitIntoSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sentences %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMergeShortSentences(t *testing.T) {
	s := NewWithConfig(Config{MinLength: 10, MaxLength: 500})

	got := s.MergeShortSentences([]string{"短句。", "也短。", "这一句足够长可以单独成段了。", "尾巴"})

	want := []string{"短句。也短。这一句足够长可以单独成段了。", "尾巴"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("merged[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Every unit except possibly the last meets the minimum.
	for i, unit := range got[:len(got)-1] {
		if runeLen(unit) < 10 {
			t.Errorf("unit %d shorter than min: %q", i, unit)
		}
	}
}

func TestSegmentText_ShortInputIsSingleSegment(t *testing.T) {
	s := New()

	got := s.SegmentText("  简短文本  ")
	if len(got) != 1 || got[0] != "简短文本" {
		t.Errorf("SegmentText() = %q, want single trimmed segment", got)
	}
}

func TestSegmentText_EmptyInput(t *testing.T) {
	s := New()

	if got := s.SegmentText("   \n  "); got != nil {
		t.Errorf("SegmentText(whitespace) = %q, want nil", got)
	}
}

func TestSplitLongSegment_RespectsMaxLength(t *testing.T) {
	s := NewWithConfig(Config{MinLength: 15, MaxLength: 30})

	text := strings.Repeat("这是一个完整的句子。", 10)
	got := s.SplitLongSegment(text)

	if len(got) < 2 {
		t.Fatalf("expected multiple segments, got %d", len(got))
	}
	var total int
	for i, seg := range got {
		if runeLen(seg) > 30 {
			t.Errorf("segment %d exceeds max: %d chars", i, runeLen(seg))
		}
		total += runeLen(seg)
	}
	if total != runeLen(text) {
		t.Errorf("content lost: total %d chars, want %d", total, runeLen(text))
	}
}

func TestSplitLongSegment_ForceSplitAtSecondaryPunctuation(t *testing.T) {
	s := NewWithConfig(Config{MinLength: 15, MaxLength: 20})

	// One long run-on sentence with commas but no sentence enders.
	text := "第一部分内容，第二部分内容，第三部分内容，第四部分内容，第五部分内容"
	got := s.SplitLongSegment(text)

	if len(got) < 2 {
		t.Fatalf("expected force-split, got %q", got)
	}
	for i, seg := range got {
		if runeLen(seg) > 20 {
			t.Errorf("segment %d exceeds max: %q", i, seg)
		}
	}
	// Splits land after punctuation marks.
	for _, seg := range got[:len(got)-1] {
		last := []rune(seg)[runeLen(seg)-1]
		if !isSecondaryPunctuation(last) {
			t.Errorf("segment does not end at punctuation: %q", seg)
		}
	}
}

func TestSplitLongSegment_HardCutWithoutPunctuation(t *testing.T) {
	s := NewWithConfig(Config{MinLength: 15, MaxLength: 25})

	text := strings.Repeat("字", 80)
	got := s.SplitLongSegment(text)

	for i, seg := range got {
		if runeLen(seg) > 25 {
			t.Errorf("segment %d exceeds max after hard cut: %d chars", i, runeLen(seg))
		}
	}
	if joined := strings.Join(got, ""); joined != text {
		t.Error("hard cut lost or reordered content")
	}
}

func TestIsHeading(t *testing.T) {
	s := New()

	tests := []struct {
		name        string
		text        string
		fontSize    float64
		avgFontSize float64
		want        bool
	}{
		{"numeric numbering", "1.2 比赛场地", 12, 12, true},
		{"chinese chapter", "第三章 处罚规则", 12, 12, true},
		{"chinese ordinal", "（一）检录流程", 12, 12, true},
		{"letter ordinal", "(a) 特殊情况", 12, 12, true},
		{"appendix prefix", "附录A 技术规范", 12, 12, true},
		{"large font short text", "比赛总则", 16, 12, true},
		{"normal paragraph", "机器人应当在规定时间内完成检录并提交材料。", 12, 12, false},
		{"long text with numbering", "1.1 " + strings.Repeat("规则", 50), 16, 12, false},
		{"empty", "", 16, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsHeading(tt.text, tt.fontSize, tt.avgFontSize); got != tt.want {
				t.Errorf("IsHeading(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestProcessBlocks(t *testing.T) {
	s := New()

	blocks := []Block{
		{Text: "1.1 范围", BBox: model.NewBBox(0, 0, 100, 14), FontSize: 14, Confidence: 1.0},
		{Text: "本标准规定了机器人设计的基本要求。适用于所有参赛队伍的机器人与自动装置。", BBox: model.NewBBox(0, 20, 100, 60), FontSize: 12, Confidence: 0.95},
		{Text: "   ", FontSize: 12},
	}

	got := s.ProcessBlocks(blocks, 12)

	if len(got) != 2 {
		t.Fatalf("got %d blocks, want 2 (empty block skipped)", len(got))
	}

	if got[0].ContentType != model.ContentHeading {
		t.Errorf("block 0 type = %v, want heading", got[0].ContentType)
	}
	if len(got[0].Segments) != 1 || got[0].Segments[0] != "1.1 范围" {
		t.Errorf("heading segments = %q, want the full text", got[0].Segments)
	}

	if got[1].ContentType != model.ContentParagraph {
		t.Errorf("block 1 type = %v, want paragraph", got[1].ContentType)
	}
	if len(got[1].Segments) == 0 {
		t.Error("paragraph should carry segments")
	}
	if got[1].Confidence != 0.95 {
		t.Errorf("confidence not preserved: %v", got[1].Confidence)
	}
	if got[1].BBox.Top != 20 {
		t.Errorf("bbox not preserved: %+v", got[1].BBox)
	}
}
