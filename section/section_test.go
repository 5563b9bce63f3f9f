package section

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/strata/cleaner"
	"github.com/tsawler/strata/model"
)

func chunk(id int, typ model.ContentType, content string, pages ...int) cleaner.Chunk {
	return cleaner.Chunk{
		ID:          id,
		Content:     content,
		Type:        typ,
		SourcePages: pages,
		Confidence:  1.0,
		NodeCount:   1,
	}
}

func TestAggregate_HeadingDelimited(t *testing.T) {
	a := New()

	sections := a.Aggregate([]cleaner.Chunk{
		chunk(1, model.ContentHeading, "第一章 总则", 1),
		chunk(2, model.ContentParagraph, "本章给出比赛的适用范围。", 1),
		chunk(3, model.ContentParagraph, "场地与器材在后续章节说明。", 2),
		chunk(4, model.ContentHeading, "第二章 场地", 2),
	})

	require.Len(t, sections, 2)

	first := sections[0]
	assert.Equal(t, "第一章 总则", first.Heading)
	assert.Equal(t, 2, first.ChunkCount)
	assert.Equal(t, 1, first.HeadingChunkID)
	assert.Equal(t, []int{2, 3}, first.ContentChunkIDs)
	assert.Equal(t, []int{1, 2}, first.SourcePages)
	assert.Equal(t, PageRange{First: 1, Last: 2}, first.PageRange)
	assert.Equal(t, 2, first.ChunkTypes[model.ContentParagraph])

	second := sections[1]
	assert.Equal(t, "第二章 场地", second.Heading)
	assert.Equal(t, 0, second.ChunkCount)
	assert.Equal(t, 4, second.HeadingChunkID)
	assert.Empty(t, second.ContentChunkIDs)
}

func TestAggregate_RendersContent(t *testing.T) {
	a := New()

	sections := a.Aggregate([]cleaner.Chunk{
		chunk(1, model.ContentHeading, "第三章 处罚", 3),
		chunk(2, model.ContentParagraph, "违规行为按下列条目处理。", 3),
		chunk(3, model.ContentListItem, "首次违规给予警告", 3),
		chunk(4, model.ContentListItem, "再次违规取消成绩", 3),
	})

	require.Len(t, sections, 1)
	want := strings.Join([]string{
		"## 第三章 处罚",
		"违规行为按下列条目处理。",
		"- 首次违规给予警告",
		"- 再次违规取消成绩",
	}, "\n\n")
	assert.Equal(t, want, sections[0].Content)
	assert.Equal(t, 2, sections[0].ChunkTypes[model.ContentListItem])
	assert.Equal(t, 1, sections[0].ChunkTypes[model.ContentParagraph])
}

func TestAggregate_PreambleSection(t *testing.T) {
	a := New()

	sections := a.Aggregate([]cleaner.Chunk{
		chunk(1, model.ContentParagraph, "封面说明文字。", 1),
		chunk(2, model.ContentHeading, "第一章 总则", 1),
		chunk(3, model.ContentParagraph, "正文内容。", 1),
	})

	require.Len(t, sections, 2)
	pre := sections[0]
	assert.Equal(t, DefaultPreambleHeading, pre.Heading)
	assert.Equal(t, 0, pre.HeadingChunkID)
	assert.Equal(t, "封面说明文字。", pre.Content)
	assert.NotContains(t, pre.Content, "## ")
}

func TestAggregate_NoHeadings(t *testing.T) {
	a := New()

	sections := a.Aggregate([]cleaner.Chunk{
		chunk(1, model.ContentParagraph, "只有正文没有标题。", 1),
		chunk(2, model.ContentParagraph, "第二段正文。", 2),
	})

	require.Len(t, sections, 1)
	assert.Equal(t, DefaultPreambleHeading, sections[0].Heading)
	assert.Equal(t, []int{1, 2}, sections[0].ContentChunkIDs)
	assert.Equal(t, []int{1, 2}, sections[0].SourcePages)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, New().Aggregate(nil))
}

func TestAggregate_CustomPreamble(t *testing.T) {
	a := NewWithConfig(Config{PreambleHeading: "(文档前言)"})

	sections := a.Aggregate([]cleaner.Chunk{
		chunk(1, model.ContentParagraph, "开头内容。", 1),
	})

	require.Len(t, sections, 1)
	assert.Equal(t, "(文档前言)", sections[0].Heading)
}

func TestAggregate_EveryChunkInExactlyOneSection(t *testing.T) {
	a := New()

	chunks := []cleaner.Chunk{
		chunk(1, model.ContentParagraph, "前言内容。", 1),
		chunk(2, model.ContentHeading, "第一章", 1),
		chunk(3, model.ContentParagraph, "一章内容。", 1),
		chunk(4, model.ContentHeading, "第二章", 2),
		chunk(5, model.ContentListItem, "条目", 2),
		chunk(6, model.ContentHeading, "第三章", 3),
	}

	sections := a.Aggregate(chunks)

	seen := make(map[int]int)
	for _, sec := range sections {
		if sec.HeadingChunkID != 0 {
			seen[sec.HeadingChunkID]++
		}
		for _, id := range sec.ContentChunkIDs {
			seen[id]++
		}
	}

	require.Len(t, seen, len(chunks))
	for _, c := range chunks {
		assert.Equal(t, 1, seen[c.ID], "chunk %d", c.ID)
	}
}
