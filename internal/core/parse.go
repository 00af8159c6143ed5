package core

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record is one flat row extracted from an uploaded file. Keys are the
// source field names, values their raw string representations.
type Record map[string]string

// SupportedFileTypes lists the formats ParseRecords understands.
var SupportedFileTypes = []string{"csv", "json", "xml"}

// SupportedFileType reports whether t names a parseable format.
// The check is case insensitive.
func SupportedFileType(t string) bool {
	for _, s := range SupportedFileTypes {
		if strings.EqualFold(t, s) {
			return true
		}
	}
	return false
}

// ParseError reports an unrecoverable problem with an uploaded
// payload. A ParseError fails the whole file; per-record problems
// never produce one.
type ParseError struct {
	Format string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Format, e.Reason)
}

// ParseRecords decodes an uploaded payload into flat records.
func ParseRecords(data []byte, fileType string) ([]Record, error) {
	switch strings.ToLower(fileType) {
	case "csv":
		return parseCSV(data)
	case "json":
		return parseJSON(data)
	case "xml":
		return parseXML(data)
	default:
		return nil, &ParseError{Format: fileType, Reason: "unsupported file type"}
	}
}

// parseCSV reads a header row and maps each following row onto it.
// Header names are lower-cased with spaces replaced by underscores.
// Rows shorter than the header omit the trailing keys; extra cells are
// ignored.
func parseCSV(data []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Format: "csv", Reason: err.Error()}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = normalizeHeader(name)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			rec[header[i]] = cell
		}
		records = append(records, rec)
	}
	return records, nil
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.TrimSpace(name)
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

// parseJSON accepts an array of flat objects. Scalar values are
// stringified (numbers keep their source text); null and nested values
// are dropped. Entries that are not objects are skipped.
func parseJSON(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, &ParseError{Format: "json", Reason: err.Error()}
	}
	if dec.More() {
		return nil, &ParseError{Format: "json", Reason: "trailing data after payload"}
	}
	items, ok := payload.([]any)
	if !ok {
		return nil, &ParseError{Format: "json", Reason: "payload is not an array"}
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec := make(Record, len(obj))
		for k, v := range obj {
			if s, ok := scalarString(v); ok {
				rec[k] = s
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// scalarString renders a decoded JSON scalar as a string. Nulls,
// arrays and nested objects have no string form.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// parseXML walks documents of the shape
//
//	<guarantees>
//	  <guarantee><field>value</field>...</guarantee>
//	</guarantees>
//
// Each <guarantee> child of the root becomes one record keyed by its
// direct child element names, with element text whitespace-trimmed.
// The root element's own name does not matter; depth-1 elements with
// other names are skipped. Any well-formedness error fails the whole
// payload.
func parseXML(data []byte) ([]Record, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var records []Record
	rootSeen := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Format: "xml", Reason: err.Error()}
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !rootSeen {
			rootSeen = true
			continue
		}
		if se.Name.Local != "guarantee" {
			if err := dec.Skip(); err != nil {
				return nil, &ParseError{Format: "xml", Reason: err.Error()}
			}
			continue
		}
		rec, err := decodeGuaranteeElement(dec)
		if err != nil {
			return nil, &ParseError{Format: "xml", Reason: err.Error()}
		}
		records = append(records, rec)
	}
	if !rootSeen {
		return nil, &ParseError{Format: "xml", Reason: "missing root element"}
	}
	return records, nil
}

// decodeGuaranteeElement consumes tokens up to the matching end
// element, collecting the text of each direct child.
func decodeGuaranteeElement(dec *xml.Decoder) (Record, error) {
	rec := Record{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var text string
			if err := dec.DecodeElement(&text, &t); err != nil {
				return nil, err
			}
			rec[t.Name.Local] = strings.TrimSpace(text)
		case xml.EndElement:
			return rec, nil
		}
	}
}
