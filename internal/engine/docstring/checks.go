package docstring

import (
	"fmt"
	"strings"

	"go.trai.ch/gendocs/internal/core/domain"
)

// documentedArgs returns the entries of the Args/Arguments sections.
func (d *Docstring) documentedArgs() []domain.Arg {
	var args []domain.Arg
	for _, s := range d.Sections {
		if s.Header == "Args" || s.Header == "Arguments" {
			args = append(args, s.Args...)
		}
	}
	return args
}

// CheckArgs compares the documented arguments with the declared parameters.
// It returns one warning per undocumented parameter and per documented name
// missing from the signature.
func (d *Docstring) CheckArgs(params []domain.Param) []string {
	documented := make(map[string]bool)
	for _, a := range d.documentedArgs() {
		documented[strings.TrimLeft(a.Field, "*")] = true
	}

	declared := make(map[string]bool)
	var warnings []string
	for _, p := range params {
		name := strings.TrimLeft(p.Name, "*")
		if name == "" || name == "/" {
			continue
		}
		declared[name] = true
		if !documented[name] {
			warnings = append(warnings, fmt.Sprintf("argument %q is not documented", name))
		}
	}

	for _, a := range d.documentedArgs() {
		name := strings.TrimLeft(a.Field, "*")
		if !declared[name] {
			warnings = append(warnings, fmt.Sprintf("documented argument %q is not in the signature", name))
		}
	}
	return warnings
}

// CheckAnnotations reports documented argument types that disagree with the
// declared annotations. Arguments without a documented type are ignored.
func (d *Docstring) CheckAnnotations(params []domain.Param) []string {
	annotations := make(map[string]string, len(params))
	for _, p := range params {
		annotations[strings.TrimLeft(p.Name, "*")] = p.Annotation
	}

	var warnings []string
	for _, a := range d.documentedArgs() {
		if a.Signature == "" {
			continue
		}
		name := strings.TrimLeft(a.Field, "*")
		documented := strings.TrimSpace(strings.Trim(a.Signature, "()"))
		declared, ok := annotations[name]
		if !ok || declared == "" || declared == documented {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("argument %q is documented as %s but annotated as %s", name, documented, declared))
	}
	return warnings
}
