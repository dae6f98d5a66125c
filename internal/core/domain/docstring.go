package domain

// Section is one block of a parsed docstring.
type Section struct {
	// Header is the section keyword ("Args", "Returns", ...), empty for free text.
	Header string
	Args   []Arg
	Text   string
}

// Arg is a documented argument, attribute or return value.
type Arg struct {
	Field       string
	Signature   string
	Description string
}
