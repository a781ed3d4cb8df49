package llm

import (
	"bytes"
	"encoding/json"
)

// TrimCodeFence strips a surrounding Markdown code fence such as
// ```json ... ``` from model output. Content without a fence is returned
// trimmed of whitespace.
func TrimCodeFence(raw []byte) json.RawMessage {
	s := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(s, []byte("```")) {
		return json.RawMessage(s)
	}

	// Drop the opening fence line, including any language tag.
	nl := bytes.IndexByte(s, '\n')
	if nl < 0 {
		return json.RawMessage(bytes.TrimSpace(bytes.Trim(s, "`")))
	}
	s = s[nl+1:]

	s = bytes.TrimSpace(s)
	s = bytes.TrimSuffix(s, []byte("```"))
	return json.RawMessage(bytes.TrimSpace(s))
}
