package domain

// SymbolView is the data handed to symbol templates.
type SymbolView struct {
	// Class is the class name for classes and methods.
	Class string
	// Function is the function or method name; empty for classes.
	Function string
	IsMethod bool
	// Source is the repository link to the declaration, empty when links are disabled.
	Source    string
	Signature string
	Async     bool
	// Language is the code fence language.
	Language string
	Sections []Section
	// Headers lists the section headers present, in order.
	Headers []string
	H2      string
	H3      string
}
