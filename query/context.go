package query

// EvaluationContext carries everything a Query needs to evaluate: the
// document root, the current context item, in-scope namespace bindings, and
// bound variables (spec.md §3.3's evaluation-context concept). It is
// immutable; every With* method returns a new value with structural sharing
// of the unchanged maps, mirroring the ast package's copy-on-write style.
type EvaluationContext struct {
	xmlRoot     *XMLNode
	contextItem *XMLNode
	namespaces  map[string]string
	variables   map[string]interface{}
}

// NewEvaluationContext builds an EvaluationContext rooted at the given
// document node, with no namespaces or variables bound yet.
func NewEvaluationContext(xmlRoot *XMLNode) EvaluationContext {
	return EvaluationContext{xmlRoot: xmlRoot, contextItem: xmlRoot}
}

// XMLRoot returns the document root node.
func (c EvaluationContext) XMLRoot() *XMLNode { return c.xmlRoot }

// ContextItem returns the node a relative query is evaluated against.
func (c EvaluationContext) ContextItem() *XMLNode { return c.contextItem }

// Namespaces returns the in-scope prefix-to-URI bindings.
func (c EvaluationContext) Namespaces() map[string]string { return c.namespaces }

// Variables returns the bound variable values.
func (c EvaluationContext) Variables() map[string]interface{} { return c.variables }

// WithXMLRoot returns a copy with a different document root.
func (c EvaluationContext) WithXMLRoot(root *XMLNode) EvaluationContext {
	c.xmlRoot = root
	return c
}

// WithContextItem returns a copy with a different context item. If item is
// already the current context item, c is returned unchanged (no allocation).
func (c EvaluationContext) WithContextItem(item *XMLNode) EvaluationContext {
	if c.contextItem == item {
		return c
	}
	c.contextItem = item
	return c
}

// WithNamespaces returns a copy with ns merged over the existing bindings.
// Existing prefixes are overwritten by ns; prefixes absent from ns are kept.
func (c EvaluationContext) WithNamespaces(ns map[string]string) EvaluationContext {
	if len(ns) == 0 {
		return c
	}
	merged := make(map[string]string, len(c.namespaces)+len(ns))
	for k, v := range c.namespaces {
		merged[k] = v
	}
	for k, v := range ns {
		merged[k] = v
	}
	c.namespaces = merged
	return c
}

// WithVariables returns a copy with vars merged into the existing variable
// bindings. When overwrite is false, names already bound in c are left
// untouched (first-wins); when overwrite is true, vars replace them. The
// validator binds each scope's lets with overwrite=true, so an inner let
// replaces an enclosing binding of the same name.
func (c EvaluationContext) WithVariables(vars map[string]interface{}, overwrite bool) EvaluationContext {
	if len(vars) == 0 {
		return c
	}
	merged := make(map[string]interface{}, len(c.variables)+len(vars))
	for k, v := range c.variables {
		merged[k] = v
	}
	for k, v := range vars {
		if !overwrite {
			if _, exists := merged[k]; exists {
				continue
			}
		}
		merged[k] = v
	}
	c.variables = merged
	return c
}
