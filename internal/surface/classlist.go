package surface

import (
	"slices"
	"strings"
)

// ClassList is an ordered set of class tokens. Adding a present token or
// removing an absent one does nothing.
type ClassList struct {
	tokens []string
}

// Add appends each token that is not already present
func (c *ClassList) Add(tokens ...string) {
	for _, t := range tokens {
		if t == "" || c.Has(t) {
			continue
		}
		c.tokens = append(c.tokens, t)
	}
}

// Remove drops each token that is present
func (c *ClassList) Remove(tokens ...string) {
	for _, t := range tokens {
		if i := slices.Index(c.tokens, t); i >= 0 {
			c.tokens = slices.Delete(c.tokens, i, i+1)
		}
	}
}

// Has reports whether token is present
func (c *ClassList) Has(token string) bool {
	return slices.Contains(c.tokens, token)
}

// Tokens returns the tokens in insertion order
func (c *ClassList) Tokens() []string {
	return slices.Clone(c.tokens)
}

// Len returns the number of tokens
func (c *ClassList) Len() int {
	return len(c.tokens)
}

// String joins the tokens with single spaces
func (c *ClassList) String() string {
	return strings.Join(c.tokens, " ")
}

// SplitClasses splits a whitespace separated class string into tokens
func SplitClasses(s string) []string {
	return strings.Fields(s)
}
