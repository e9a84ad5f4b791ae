package crate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// nodeJSON renders a YAML node as JSON, keeping mapping keys in document order
func nodeJSON(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNodeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNodeJSON(buf, n.Content[0])

	case yaml.AliasNode:
		return writeNodeJSON(buf, n.Alias)

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, child := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.Write(out)
		return nil
	}
	return fmt.Errorf("%s at line %d", ErrMsgUnsupportedYAMLNode, n.Line)
}

// mappingPairs returns the key/value nodes of a mapping, resolving aliases
func mappingPairs(n *yaml.Node) ([][2]*yaml.Node, bool) {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, false
	}
	pairs := make([][2]*yaml.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, [2]*yaml.Node{n.Content[i], n.Content[i+1]})
	}
	return pairs, true
}

// orderedEntry is one element of a JSON array or object, with its key when it came from an object
type orderedEntry struct {
	Key string
	Raw json.RawMessage
}

// decodeOrdered splits a JSON array or object into its elements, preserving object key order
func decodeOrdered(data []byte) ([]orderedEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		entries := make([]orderedEntry, len(list))
		for i, raw := range list {
			entries[i] = orderedEntry{Raw: raw}
		}
		return entries, nil

	case '{':
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var entries []orderedEntry
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := tok.(string)
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, err
			}
			entries = append(entries, orderedEntry{Key: key, Raw: raw})
		}
		return entries, nil
	}
	return nil, fmt.Errorf("%s", ErrMsgRewardsShape)
}
