package search

import "strings"

// PrepareQuery turns raw input into the query string handed to the engine.
// The input is split on single spaces and each token passes through
// unchanged; no wildcard or prefix expansion is applied.
func PrepareQuery(text string) string {
	tokens := strings.Split(text, " ")
	for i, token := range tokens {
		tokens[i] = passToken(token)
	}
	return strings.Join(tokens, " ")
}

// passToken is the per-token transform. It is the identity; wrapping tokens
// as "*token*" was considered and left out.
func passToken(token string) string {
	return token
}
