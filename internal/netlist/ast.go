package netlist

// Document is a parsed S-expression file with a single root list
type Document struct {
	Root *List `@@`
}

// List is `(head item...)`
type List struct {
	Head  string  `"(" @Symbol`
	Items []*Expr `@@* ")"`
}

// Expr is either a nested list or an atom
type Expr struct {
	List *List `  @@`
	Atom *Atom `| @@`
}

// Atom is a bare symbol or an unquoted string
type Atom struct {
	Value string `@(String | Symbol)`
}

// Child returns the first nested list named head
func (l *List) Child(head string) *List {
	if l == nil {
		return nil
	}
	for _, item := range l.Items {
		if item.List != nil && item.List.Head == head {
			return item.List
		}
	}
	return nil
}

// Children returns every nested list named head
func (l *List) Children(head string) []*List {
	var lists []*List
	if l == nil {
		return nil
	}
	for _, item := range l.Items {
		if item.List != nil && item.List.Head == head {
			lists = append(lists, item.List)
		}
	}
	return lists
}

// Value returns the first atom of the list
func (l *List) Value() string {
	for _, item := range l.Items {
		if item.Atom != nil {
			return item.Atom.Value
		}
	}
	return ""
}

// ChildValue returns the value of the nested list named head, or "" when
// the list has no such child
func (l *List) ChildValue(head string) string {
	if c := l.Child(head); c != nil {
		return c.Value()
	}
	return ""
}
