package svrl

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Namespace is the SVRL default namespace (spec.md §6.4).
const Namespace = "http://purl.oclc.org/dsdl/svrl"

const (
	metadataDctNS  = "http://purl.org/dc/terms/"
	metadataSkosNS = "http://www.w3.org/2004/02/skos/core#"
	metadataRdfNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	metadataToolNS = "tag:go-schematron,2026:metadata"
)

// Write serializes output as an SVRL XML document to w, with the svrl
// namespace as default and namespaces merged in (spec.md §4.7's closing
// paragraph). Attributes whose values are empty are omitted.
func Write(output SchematronOutput, w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	rootAttrs := []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: Namespace}}
	for _, ns := range output.NSPrefixes {
		rootAttrs = append(rootAttrs, xml.Attr{Name: xml.Name{Local: "xmlns:" + ns.Prefix}, Value: ns.URI})
	}
	rootAttrs = appendAttr(rootAttrs, "title", output.Title)
	rootAttrs = appendAttr(rootAttrs, "schemaVersion", output.SchemaVersion)
	rootAttrs = appendAttr(rootAttrs, "phase", output.Phase)

	root := xml.StartElement{Name: xml.Name{Local: "schematron-output"}, Attr: rootAttrs}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	for _, ns := range output.NSPrefixes {
		if err := writeNSPrefix(enc, ns); err != nil {
			return err
		}
	}
	for _, t := range output.Texts {
		if err := writeText(enc, t); err != nil {
			return err
		}
	}
	if err := writeMetaData(enc, output.MetaData); err != nil {
		return err
	}
	for _, ev := range output.ValidationEvents {
		if err := writeEvent(enc, ev); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

func appendAttr(attrs []xml.Attr, name, value string) []xml.Attr {
	if value == "" {
		return attrs
	}
	return append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

func writeNSPrefix(enc *xml.Encoder, ns NSPrefixInAttributeValues) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "ns-prefix-in-attribute-values"},
		Attr: appendAttr(appendAttr(nil, "prefix", ns.Prefix), "uri", ns.URI),
	}
	return writeEmptyElement(enc, start)
}

func writeText(enc *xml.Encoder, t Text) error {
	attrs := appendAttr(appendAttr(appendAttr(nil, "class", t.Class), "id", t.ID), "icon", t.Icon)
	attrs = appendAttr(attrs, "xml:lang", t.XMLLang)
	return writeCharDataElement(enc, "text", attrs, t.Content)
}

func writeMetaData(enc *xml.Encoder, md MetaData) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "metadata"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:dct"}, Value: metadataDctNS},
			{Name: xml.Name{Local: "xmlns:skos"}, Value: metadataSkosNS},
			{Name: xml.Name{Local: "xmlns:rdf"}, Value: metadataRdfNS},
			{Name: xml.Name{Local: "xmlns:tool"}, Value: metadataToolNS},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	creator := xml.StartElement{Name: xml.Name{Local: "dct:creator"}}
	if err := enc.EncodeToken(creator); err != nil {
		return err
	}
	agent := xml.StartElement{Name: xml.Name{Local: "tool:agent"}}
	if err := enc.EncodeToken(agent); err != nil {
		return err
	}
	if err := writeCharDataElement(enc, "tool:name", nil, md.CreatorName); err != nil {
		return err
	}
	if err := writeCharDataElement(enc, "tool:version", nil, md.CreatorVersion); err != nil {
		return err
	}
	if err := enc.EncodeToken(agent.End()); err != nil {
		return err
	}
	if err := enc.EncodeToken(creator.End()); err != nil {
		return err
	}

	if err := writeCharDataElement(enc, "dct:created", nil, md.Created); err != nil {
		return err
	}
	if err := writeCharDataElement(enc, "dct:source", nil, md.Source); err != nil {
		return err
	}

	return enc.EncodeToken(start.End())
}

func writeEvent(enc *xml.Encoder, ev ValidationEvent) error {
	switch v := ev.(type) {
	case ActivePattern:
		attrs := appendAttr(appendAttr(appendAttr(nil, "id", v.ID), "name", v.Name), "documents", v.Documents)
		attrs = appendAttr(appendAttr(attrs, "role", v.Role), "see", v.See)
		return writeEmptyElement(enc, xml.StartElement{Name: xml.Name{Local: "active-pattern"}, Attr: attrs})
	case FiredRule:
		attrs := appendAttr(appendAttr(appendAttr(nil, "context", v.Context), "id", v.ID), "document", v.Document)
		attrs = appendAttr(appendAttr(appendAttr(attrs, "role", v.Role), "see", v.See), "flag", v.Flag)
		return writeEmptyElement(enc, xml.StartElement{Name: xml.Name{Local: "fired-rule"}, Attr: attrs})
	case SuppressedRule:
		attrs := appendAttr(appendAttr(appendAttr(nil, "context", v.Context), "id", v.ID), "document", v.Document)
		return writeEmptyElement(enc, xml.StartElement{Name: xml.Name{Local: "suppressed-rule"}, Attr: attrs})
	case FailedAssert:
		return writeCheckEvent(enc, "failed-assert", v.Test, v.Location, v.ID, v.Role, v.See, v.Flag, v.Subject, v.Text, v.Diagnostics, v.Properties)
	case SuccessfulReport:
		return writeCheckEvent(enc, "successful-report", v.Test, v.Location, v.ID, v.Role, v.See, v.Flag, v.Subject, v.Text, v.Diagnostics, v.Properties)
	default:
		return fmt.Errorf("svrl: unknown validation event type %T", ev)
	}
}

func writeCheckEvent(enc *xml.Encoder, elem, test, location, id, role, see, flag, subject, text string, diags []DiagnosticReference, props []PropertyReference) error {
	attrs := appendAttr(appendAttr(appendAttr(nil, "test", test), "location", location), "id", id)
	attrs = appendAttr(appendAttr(appendAttr(attrs, "role", role), "see", see), "flag", flag)
	attrs = appendAttr(attrs, "subject", subject)

	start := xml.StartElement{Name: xml.Name{Local: elem}, Attr: attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := writeCharDataElement(enc, "text", nil, text); err != nil {
		return err
	}
	for _, d := range diags {
		de := xml.StartElement{Name: xml.Name{Local: "diagnostic-reference"}, Attr: appendAttr(nil, "diagnostic", d.Diagnostic)}
		if err := writeCharDataElement2(enc, de, d.Text); err != nil {
			return err
		}
	}
	for _, p := range props {
		pe := xml.StartElement{
			Name: xml.Name{Local: "property-reference"},
			Attr: appendAttr(appendAttr(nil, "property", p.Property), "role", p.Role),
		}
		if err := writeCharDataElement2(enc, pe, p.Text); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func writeEmptyElement(enc *xml.Encoder, start xml.StartElement) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func writeCharDataElement(enc *xml.Encoder, name string, attrs []xml.Attr, content string) error {
	return writeCharDataElement2(enc, xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}, content)
}

func writeCharDataElement2(enc *xml.Encoder, start xml.StartElement, content string) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if content != "" {
		if err := enc.EncodeToken(xml.CharData(content)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
