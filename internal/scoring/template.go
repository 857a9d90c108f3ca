package scoring

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var templateVariable = regexp.MustCompile(`%[a-z][a-zA-Z0-9]*`)

// PopulateTemplate expands the %variables of a content template. Unknown
// variables are a content bug and return a *TemplateError.
//
// Any "%" directly followed by a lowercase letter starts a variable name, so
// authored text such as "70%des offres" is read as the variable %des and
// fails. A percent sign followed by a space, a digit or punctuation is kept
// as is. check-content reports these sentences before they are imported.
func (p *Project) PopulateTemplate(template string) (string, error) {
	var unknown []string
	populated := templateVariable.ReplaceAllStringFunc(template, func(name string) string {
		variable, ok := p.registry.Variable(name)
		if !ok {
			unknown = append(unknown, name)
			return name
		}
		return variable(p)
	})
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return "", &TemplateError{Template: template, Variables: slices.Compact(unknown)}
	}
	return populated, nil
}

// TemplateVariables lists the %variables a template references.
func TemplateVariables(template string) []string {
	return templateVariable.FindAllString(template, -1)
}

// maybeElide prefixes a French name with a preposition, eliding it before vowels:
// maybeElide("Lyon", "de ", "d'") is "de Lyon", maybeElide("Albi", "de ", "d'") is "d'Albi".
func maybeElide(name, full, elided string) string {
	if name == "" {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(name)
	if strings.ContainsRune("aeiouyhàâéèêëîïôöûüAEIOUYHÀÂÉÈÊËÎÏÔÖÛÜ", first) {
		return elided + name
	}
	return full + name
}

// ofName is "de <name>" with elision.
func ofName(name string) string {
	return maybeElide(name, "de ", "d'")
}

// lowerFirst lowercases the first letter of a job name for use mid-sentence.
func lowerFirst(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(first)) + s[size:]
}

var frenchNumbers = []string{
	"zéro", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf", "dix",
	"onze", "douze", "treize", "quatorze", "quinze", "seize",
}

// frenchNumber spells small numbers out, as content sentences expect.
func frenchNumber(n int) string {
	if n >= 0 && n < len(frenchNumbers) {
		return frenchNumbers[n]
	}
	return strconv.Itoa(n)
}
