package xmlparse

import "github.com/antchfx/xmlquery"

// attr returns the value of el's attribute named name (by local name,
// ignoring namespace prefix), or "" if absent.
func attr(el *xmlquery.Node, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// hasAttr reports whether el carries an attribute named name.
func hasAttr(el *xmlquery.Node, name string) bool {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// xmlLang returns el's xml:lang attribute, if any.
func xmlLang(el *xmlquery.Node) string { return attr(el, "lang") }

// xmlSpace returns el's xml:space attribute, if any.
func xmlSpace(el *xmlquery.Node) string { return attr(el, "space") }
