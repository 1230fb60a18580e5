package core

import (
	"github.com/secfacts/pipeline/internal/jsonscan"
)

// repairTruncatedJSON recovers a truncated JSON document by finding the
// latest prefix that closes to a structurally valid object and sealing
// whatever brackets were still open at that point.
//
// The scan maintains a bracket stack, a string-mode flag toggled by
// unescaped quotes, and an escape-pending flag. Every time a closing
// bracket matches the top of the stack, the byte offset just past it
// and a snapshot of the (now shorter) stack are recorded as the last
// known-good recovery point. An unmatched closer aborts the scan; the
// last recorded snapshot is used regardless of how much input remains
// unscanned.
func repairTruncatedJSON(raw []byte) (RawDocument, bool) {
	var stack jsonscan.BracketStack
	var lastGoodPos int
	var stackAtGood []byte
	inString := false
	escapeNext := false

	for i := 0; i < len(raw); i++ {
		ch := raw[i]

		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch {
		case jsonscan.IsOpener(ch):
			stack.Push(ch)
		case jsonscan.IsCloser(ch):
			top, ok := stack.Top()
			if !ok || !jsonscan.Matches(top, ch) {
				i = len(raw) // unmatched closer: stop scanning
				continue
			}
			stack.Pop()
			lastGoodPos = i + 1
			stackAtGood = stack.Snapshot()
		}
	}

	if lastGoodPos == 0 {
		return nil, false
	}

	repaired := make([]byte, 0, lastGoodPos+len(stackAtGood))
	repaired = append(repaired, raw[:lastGoodPos]...)
	repaired = append(repaired, jsonscan.ClosersFor(stackAtGood)...)

	doc, err := decodeOrderedDocument(repaired)
	if err != nil {
		return nil, false
	}

	for _, key := range []string{"cik", "entityName", "facts"} {
		if _, ok := doc.Get(key); !ok {
			return nil, false
		}
	}

	return doc, true
}

// recoveredFraction reports what percentage (0-100) of the raw input
// bytes were recovered by the repair, for logging.
func recoveredFraction(recoveredBytes, totalBytes int) float64 {
	if totalBytes == 0 {
		return 0
	}
	return float64(recoveredBytes) / float64(totalBytes) * 100
}
