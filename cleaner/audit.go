package cleaner

import "github.com/sirupsen/logrus"

// EventKind distinguishes the two classes of audit event.
type EventKind string

const (
	// EventDrop records a node removed from the stream.
	EventDrop EventKind = "drop"
	// EventBreak records a chunk boundary decision.
	EventBreak EventKind = "break"
)

// ReasonCode is a stable identifier for why a node was dropped or a chunk
// boundary was placed.
type ReasonCode string

const (
	// ReasonPageRawText marks the full-page backup node, always dropped as
	// a duplicate of the page's other nodes.
	ReasonPageRawText ReasonCode = "page_raw_text"
	// ReasonLowConfidence marks OCR output below the confidence threshold.
	ReasonLowConfidence ReasonCode = "low_confidence"
	// ReasonFooterNoise marks header/footer boilerplate.
	ReasonFooterNoise ReasonCode = "footer_noise"

	// ReasonHeading marks a boundary opened by a heading signal.
	ReasonHeading ReasonCode = "heading"
	// ReasonListStart marks a boundary opened by a list-item prefix.
	ReasonListStart ReasonCode = "list_start"
	// ReasonLargeGap marks a boundary opened by a vertical layout gap.
	ReasonLargeGap ReasonCode = "large_gap"
	// ReasonSentenceEnd marks a boundary after a completed sentence.
	ReasonSentenceEnd ReasonCode = "sentence_end"
	// ReasonEndOfDocument marks the final chunk flush.
	ReasonEndOfDocument ReasonCode = "end_of_document"
)

// AuditEvent is one structured entry in the cleaning audit trail.
type AuditEvent struct {
	// Kind is drop or break.
	Kind EventKind `json:"kind"`

	// Reason is the stable reason code.
	Reason ReasonCode `json:"reason"`

	// Detail carries the specific signal, e.g. the matched pattern or the
	// measured gap.
	Detail string `json:"detail,omitempty"`

	// Page is the source page of the node that triggered the event.
	Page int `json:"page"`

	// Preview is a shortened copy of the triggering node's content.
	Preview string `json:"preview,omitempty"`

	// ChunkID is the id of the chunk finalized by a break event, 0 for
	// drops.
	ChunkID int `json:"chunk_id,omitempty"`
}

// previewLimit bounds the content excerpt carried on audit events.
const previewLimit = 30

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit])
}

// auditLog collects events and mirrors them to an optional logger.
type auditLog struct {
	events []AuditEvent
	logger logrus.FieldLogger
}

func (a *auditLog) record(ev AuditEvent) {
	a.events = append(a.events, ev)
	if a.logger == nil {
		return
	}
	fields := logrus.Fields{
		"kind":   ev.Kind,
		"reason": ev.Reason,
		"page":   ev.Page,
	}
	if ev.Detail != "" {
		fields["detail"] = ev.Detail
	}
	if ev.ChunkID != 0 {
		fields["chunk_id"] = ev.ChunkID
	}
	if ev.Preview != "" {
		fields["preview"] = ev.Preview
	}
	switch ev.Kind {
	case EventDrop:
		a.logger.WithFields(fields).Debug("node dropped")
	default:
		a.logger.WithFields(fields).Debug("chunk boundary")
	}
}
