package sanitizer

import "strings"

type Strategy func(string) string

// Pipeline applies its strategies left to right.
type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// collapseSpace trims s and joins its words with single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var (
	namePipeline  = Pipeline{collapseSpace}
	emailPipeline = Pipeline{strings.TrimSpace, strings.ToLower}
)

func NormalizeName(name string) string {
	return namePipeline.Apply(name)
}

func NormalizeEmail(email string) string {
	return emailPipeline.Apply(email)
}
