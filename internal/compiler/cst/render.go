package cst

import (
	"reflect"
	"sort"
	"strings"
)

// Render reconstructs the exact source text covered by n's range by
// concatenating, in source order, every token reachable from n (§3.4:
// every CST node retains each token it was parsed from, down to braces,
// commas, and keywords). This is what lets a formatter built on top of
// this package reproduce source byte-for-byte, and is the operation §8.1's
// faithful-format round-trip property exercises directly.
//
// Only the first token's own PrecedingTrivia is dropped: that trivia sits
// before n's own Range.Start (it belongs to whatever syntax precedes n,
// not to n), while every other token's PrecedingTrivia falls strictly
// inside n's span and is replayed along with its lexeme.
func Render(n Node) string {
	tokens := collectTokens(reflect.ValueOf(n), nil)
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Range.Start.Less(tokens[j].Range.Start)
	})

	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			b.WriteString(tok.PrecedingTrivia)
		}
		b.WriteString(tok.Lexeme)
	}
	return b.String()
}

var tokenType = reflect.TypeOf(Token{})

// collectTokens walks v and everything reachable from it, appending every
// Token value it finds to out. Field order inside a struct need not match
// source order (e.g. ExprInvocation stores Arguments before OpenToken even
// though `(` precedes the argument list in the source) — Render restores
// source order itself by sorting on each token's Range afterward, so this
// walk only needs to be exhaustive, not ordered.
func collectTokens(v reflect.Value, out []Token) []Token {
	if !v.IsValid() {
		return out
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return out
		}
		return collectTokens(v.Elem(), out)

	case reflect.Struct:
		if v.Type() == tokenType {
			return append(out, v.Interface().(Token))
		}
		for i := 0; i < v.NumField(); i++ {
			out = collectTokens(v.Field(i), out)
		}
		return out

	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			out = collectTokens(v.Index(i), out)
		}
		return out

	default:
		return out
	}
}
