// Package recipe implements the cipher-pipeline DSL: parsing a recipe
// string into an ordered sequence of steps, applying it front-to-back on
// encrypt and back-to-front on decrypt, and embedding/recovering the
// recipe itself inside the processed image's metadata.
package recipe

import (
	"strconv"
	"strings"

	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
	"github.com/hidenseek-go/imgcrypt/internal/primitives"
)

// Step is one entry in a recipe: a primitive name, a repetition count, and
// an optional override key (falls back to the master password when empty).
type Step struct {
	Algo  string
	Count int
	Param string
}

// Recipe is an ordered sequence of Steps.
type Recipe []Step

// Parse splits a whitespace-delimited recipe string into Steps. Grammar:
//
//	step := algo (":" count)? (":" param)?
//
// count is parsed as a decimal integer >= 1; if the second colon-delimited
// token is not numeric, it is treated as param with an implicit count=1.
// Empty step tokens are skipped. Unknown algo names fail immediately.
func Parse(s string) (Recipe, error) {
	var steps Recipe
	for _, tok := range strings.Fields(s) {
		if tok == "" {
			continue
		}
		step, err := parseStep(tok)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseStep(tok string) (Step, error) {
	parts := strings.Split(tok, ":")
	algo := parts[0]
	if _, ok := primitives.Canonicalize(algo); !ok {
		return Step{}, imgerr.New(imgerr.RecipeInvalid, "unknown primitive %q in step %q", algo, tok)
	}

	step := Step{Algo: algo, Count: 1}
	if len(parts) >= 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil && n >= 1 {
			step.Count = n
			if len(parts) >= 3 {
				step.Param = parts[2]
			}
		} else {
			step.Param = parts[1]
		}
	}
	return step, nil
}

// String serializes a Recipe back into the space-separated algo[:count[:param]] form.
func (r Recipe) String() string {
	toks := make([]string, 0, len(r))
	for _, s := range r {
		tok := s.Algo
		if s.Count != 1 || s.Param != "" {
			tok += ":" + strconv.Itoa(s.Count)
		}
		if s.Param != "" {
			tok += ":" + s.Param
		}
		toks = append(toks, tok)
	}
	return strings.Join(toks, " ")
}

// effectiveKey returns the step's override param if set, else the master password.
func (s Step) effectiveKey(masterPassword string) string {
	if s.Param != "" {
		return s.Param
	}
	return masterPassword
}

// Encrypt applies every step in order, count times each, front-to-back.
// An empty recipe is invalid at encryption time.
func Encrypt(img *imgbuf.Image, r Recipe, masterPassword string) (*imgbuf.Image, error) {
	if len(r) == 0 {
		return nil, imgerr.New(imgerr.RecipeInvalid, "recipe must contain at least one step to encrypt")
	}
	cur := img
	for _, step := range r {
		prim, err := primitives.Lookup(step.Algo)
		if err != nil {
			return nil, err
		}
		key := step.effectiveKey(masterPassword)
		for i := 0; i < step.Count; i++ {
			next, err := prim.Encrypt(cur, key)
			if err != nil {
				return nil, err
			}
			cur = next
		}
	}
	return cur, nil
}

// Decrypt applies every step back-to-front, count times each, using
// primitive.Decrypt.
func Decrypt(img *imgbuf.Image, r Recipe, masterPassword string) (*imgbuf.Image, error) {
	if len(r) == 0 {
		return nil, imgerr.New(imgerr.RecipeInvalid, "recipe must contain at least one step to decrypt")
	}
	cur := img
	for i := len(r) - 1; i >= 0; i-- {
		step := r[i]
		prim, err := primitives.Lookup(step.Algo)
		if err != nil {
			return nil, err
		}
		key := step.effectiveKey(masterPassword)
		for j := 0; j < step.Count; j++ {
			next, err := prim.Decrypt(cur, key)
			if err != nil {
				return nil, err
			}
			cur = next
		}
	}
	return cur, nil
}
