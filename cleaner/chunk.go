package cleaner

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/strata/model"
)

// Chunk is a merged run of consecutive same-role nodes. Chunks are immutable
// once emitted.
type Chunk struct {
	// ID is the 1-based sequential id in scan order.
	ID int `json:"id"`

	// Content is the concatenated member text with internal whitespace
	// normalized.
	Content string `json:"content"`

	// Type is heading, paragraph, or list_item, decided by the first member.
	Type model.ContentType `json:"type"`

	// SourcePages are the distinct pages the members came from, ascending.
	SourcePages []int `json:"source_pages"`

	// BBox is the union of the member bounding boxes.
	BBox model.BBox `json:"bbox_range"`

	// Confidence is the mean member confidence, rounded to 3 decimals.
	Confidence float64 `json:"confidence_avg"`

	// NodeCount is the number of merged members.
	NodeCount int `json:"node_count"`
}

// IsHeading reports whether the chunk is a heading chunk.
func (c Chunk) IsHeading() bool {
	return c.Type == model.ContentHeading
}

// Length returns the content length in characters.
func (c Chunk) Length() int {
	return len([]rune(c.Content))
}

// Stats summarizes one cleaning run.
type Stats struct {
	// TotalNodes is the number of nodes that survived filtering.
	TotalNodes int `json:"total_nodes"`

	// DroppedNodes is the number of nodes removed with a logged reason.
	DroppedNodes int `json:"dropped_nodes"`

	// TotalChunks is the number of emitted chunks.
	TotalChunks int `json:"total_chunks"`

	// ChunkTypes counts chunks per type.
	ChunkTypes map[model.ContentType]int `json:"chunk_types"`

	// AvgChunkLength is the mean chunk content length in characters.
	AvgChunkLength float64 `json:"avg_chunk_length"`
}

// Result is the output of one cleaning run.
type Result struct {
	// Chunks are the emitted chunks in reading order.
	Chunks []Chunk

	// Stats summarizes the run.
	Stats Stats

	// Audit is the structured trail of every drop and break decision.
	Audit []AuditEvent
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// mergeNodes builds a chunk from a run of member nodes. The chunk id is
// assigned by the caller.
func mergeNodes(members []model.Node, rules *compiledRules) Chunk {
	parts := make([]string, 0, len(members))
	pageSet := make(map[int]struct{}, len(members))
	var bbox model.BBox
	var confidenceSum float64

	for _, n := range members {
		if text := strings.TrimSpace(n.Content); text != "" {
			parts = append(parts, whitespaceRun.ReplaceAllString(text, " "))
		}
		pageSet[n.SourcePage] = struct{}{}
		bbox = bbox.Union(n.BBox)
		confidenceSum += n.Confidence
	}

	pages := make([]int, 0, len(pageSet))
	for p := range pageSet {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	return Chunk{
		Content:     strings.Join(parts, " "),
		Type:        chunkType(members[0], rules),
		SourcePages: pages,
		BBox:        bbox,
		Confidence:  math.Round(confidenceSum/float64(len(members))*1000) / 1000,
		NodeCount:   len(members),
	}
}

// chunkType derives the chunk type from its first member: upstream heading
// classification wins, then a list prefix, then paragraph.
func chunkType(first model.Node, rules *compiledRules) model.ContentType {
	if first.IsHeading() {
		return model.ContentHeading
	}
	if _, ok := matchFirst(rules.listPrefix, strings.TrimSpace(first.Content)); ok {
		return model.ContentListItem
	}
	return model.ContentParagraph
}
