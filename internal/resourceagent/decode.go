package resourceagent

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// newXMLDecoder returns a decoder accepting any encoding registered with
// IANA.
func newXMLDecoder(raw string) *xml.Decoder {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	decoder.CharsetReader = charsetReader
	return decoder
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

// decodeXML decodes the root element of raw into v. Anything but whitespace,
// comments and processing instructions after the root element is an error.
func decodeXML(raw string, v any) error {
	decoder := newXMLDecoder(raw)
	if err := decoder.Decode(v); err != nil {
		return err
	}
	return checkDocumentEnd(decoder)
}

func checkDocumentEnd(decoder *xml.Decoder) error {
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			return fmt.Errorf("extra content at the end of the document: element %s", t.Name.Local)
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				return errors.New("extra content at the end of the document: text")
			}
		}
	}
}
