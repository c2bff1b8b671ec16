// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paramlist

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MarshalXML renders the list as an XML document whose root element is
// named root. Attributes and children are written in sorted order so
// equal lists always produce identical text.
func (l *List) MarshalXML(root string) string {
	var builder strings.Builder
	l.writeElement(&builder, root, 0)
	return builder.String()
}

func (l *List) writeElement(builder *strings.Builder, name string, depth int) {
	indent := strings.Repeat("  ", depth)
	builder.WriteString(indent)
	builder.WriteString("<" + name)
	for _, key := range l.OptionKeys() {
		builder.WriteString(" " + key + `="`)
		writeEscaped(builder, l.options[key])
		builder.WriteString(`"`)
	}

	switch {
	case l.hasBody:
		builder.WriteString(">")
		writeEscaped(builder, l.body)
		builder.WriteString("</" + name + ">\n")
	case len(l.subLists) > 0:
		builder.WriteString(">\n")
		for _, key := range l.SubListKeys() {
			l.subLists[key].writeElement(builder, key, depth+1)
		}
		builder.WriteString(indent + "</" + name + ">\n")
	default:
		builder.WriteString("/>\n")
	}
}

func writeEscaped(builder *strings.Builder, text string) {
	// xml.EscapeText only fails when the writer fails, and a
	// strings.Builder never does.
	_ = xml.EscapeText(builder, []byte(text))
}

// Parse reads the XML text form produced by [List.MarshalXML]. The root
// element's name is not interpreted. Whitespace between child elements is
// ignored; the body of a leaf element is preserved verbatim.
func Parse(text string) (*List, error) {
	decoder := xml.NewDecoder(strings.NewReader(text))
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parsing parameter list: no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("parsing parameter list: %w", err)
		}
		if start, ok := token.(xml.StartElement); ok {
			list, err := parseElement(decoder, start)
			if err != nil {
				return nil, fmt.Errorf("parsing parameter list: %w", err)
			}
			return list, nil
		}
	}
}

func parseElement(decoder *xml.Decoder, start xml.StartElement) (*List, error) {
	list := New()
	for _, attr := range start.Attr {
		if _, exists := list.options[attr.Name.Local]; exists {
			return nil, fmt.Errorf("element <%s>: duplicate attribute %q", start.Name.Local, attr.Name.Local)
		}
		list.options[attr.Name.Local] = attr.Value
	}

	var text strings.Builder
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("element <%s>: %w", start.Name.Local, err)
		}
		switch token := token.(type) {
		case xml.StartElement:
			child, err := parseElement(decoder, token)
			if err != nil {
				return nil, err
			}
			key := token.Name.Local
			if _, exists := list.subLists[key]; exists {
				return nil, fmt.Errorf("element <%s>: duplicate child <%s>", start.Name.Local, key)
			}
			list.subLists[key] = child
		case xml.CharData:
			text.Write(token)
		case xml.EndElement:
			body := text.String()
			if len(list.subLists) > 0 {
				if strings.TrimSpace(body) != "" {
					return nil, fmt.Errorf("element <%s>: %w", start.Name.Local, ErrBodyAndChildren)
				}
				return list, nil
			}
			if body != "" {
				list.body = body
				list.hasBody = true
			}
			return list, nil
		}
	}
}
