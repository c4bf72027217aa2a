package token

import "tim/internal/source"

// Token is one lexical unit carrying its exact source span.
type Token struct {
	Kind Kind
	Text string
	Span source.Span
}
