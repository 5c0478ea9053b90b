package ast

// Schema is the root of the AST, representing a <schema> tag.
type Schema struct {
	Patterns    []Pattern
	Namespaces  []Namespace
	Phases      []Phase
	Diagnostics []Diagnostics
	Properties  []Properties
	Paragraphs  []Paragraph
	Variables   []Variable
	Title       *Title

	DefaultPhase  string
	FPI           string
	Icon          string
	ID            string
	QueryBinding  string
	SchemaVersion string
	See           string
	XMLLang       string
	XMLSpace      string
}

func (s Schema) Children() []Node {
	out := make([]Node, 0, len(s.Patterns)+len(s.Namespaces)+len(s.Phases)+
		len(s.Diagnostics)+len(s.Properties)+len(s.Paragraphs)+len(s.Variables)+1)
	for _, p := range s.Patterns {
		out = append(out, p)
	}
	for _, n := range s.Namespaces {
		out = append(out, n)
	}
	for _, p := range s.Phases {
		out = append(out, p)
	}
	for _, d := range s.Diagnostics {
		out = append(out, d)
	}
	for _, p := range s.Properties {
		out = append(out, p)
	}
	for _, p := range s.Paragraphs {
		out = append(out, p)
	}
	for _, v := range s.Variables {
		out = append(out, v)
	}
	if s.Title != nil {
		out = append(out, *s.Title)
	}
	return out
}

// WithPatterns returns a copy of s with Patterns replaced.
func (s Schema) WithPatterns(patterns []Pattern) Schema {
	s.Patterns = patterns
	return s
}

// WithPhases returns a copy of s with Phases replaced.
func (s Schema) WithPhases(phases []Phase) Schema {
	s.Phases = phases
	return s
}

// Phase represents a <phase id=""> tag: a named, selectable set of patterns.
type Phase struct {
	ID         string
	Active     []ActivePhase
	Variables  []Variable
	Paragraphs []Paragraph
	FPI        string
	Icon       string
	See        string
	XMLLang    string
	XMLSpace   string
}

func (p Phase) Children() []Node {
	out := make([]Node, 0, len(p.Active)+len(p.Variables)+len(p.Paragraphs))
	for _, a := range p.Active {
		out = append(out, a)
	}
	for _, v := range p.Variables {
		out = append(out, v)
	}
	for _, pa := range p.Paragraphs {
		out = append(out, pa)
	}
	return out
}

// Diagnostics represents a <diagnostics> tag: a container of <diagnostic>.
type Diagnostics struct {
	Diagnostics []Diagnostic
}

func (d Diagnostics) Children() []Node {
	out := make([]Node, 0, len(d.Diagnostics))
	for _, di := range d.Diagnostics {
		out = append(out, di)
	}
	return out
}

// Diagnostic represents a <diagnostic id=""> tag.
type Diagnostic struct {
	Content  []RichTextItem
	ID       string
	FPI      string
	Icon     string
	Role     string
	See      string
	XMLLang  string
	XMLSpace string
}

func (d Diagnostic) Children() []Node { return richTextChildren(d.Content) }

// Properties represents a <properties> tag: a container of <property>.
type Properties struct {
	Properties []Property
}

func (p Properties) Children() []Node {
	out := make([]Node, 0, len(p.Properties))
	for _, pr := range p.Properties {
		out = append(out, pr)
	}
	return out
}

// Property represents a <property id=""> tag.
type Property struct {
	Content []RichTextItem
	ID      string
	Role    string
	Scheme  string
}

func (p Property) Children() []Node { return richTextChildren(p.Content) }
