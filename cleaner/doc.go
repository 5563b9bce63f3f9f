// Package cleaner consumes the full ordered node stream of a document,
// drops noise, and incrementally merges the survivors into chunks.
//
// Processing is a single left-to-right scan. Each node is first passed
// through the filter stage (page_raw_text duplicates, low-confidence OCR,
// header/footer boilerplate, empty content), then evaluated against an
// ordered chain of break rules:
//
//  1. heading signal (upstream type, domain keyword, numbering style,
//     short unterminated line, or bounding-box height jump)
//  2. list start
//  3. large vertical gap
//  4. completed sentence not continued by a connective
//
// The first rule that fires closes the open chunk; otherwise the node is
// appended to it. A finalized chunk is never revised.
//
// Every drop and every break is recorded as an [AuditEvent] with a stable
// reason code, and optionally emitted through an injected logrus logger.
//
// The heuristics' pattern tables live in a versioned [RuleSet] so that
// tuning them is a data change, not a control-flow change. The terminal-mark
// and connective lexicons are part of the rule set for the same reason: they
// are language policy, not algorithm.
package cleaner
