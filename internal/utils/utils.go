package utils

import (
	"strings"
	"time"

	"github.com/goombaio/namegenerator"
)

// GenerateLabel creates a random, memorable label such as "wispy-dust"
func GenerateLabel() string {
	seed := time.Now().UTC().UnixNano()
	nameGenerator := namegenerator.NewNameGenerator(seed)

	// Some names might have underscores; convert to hyphens for consistency
	return strings.ReplaceAll(nameGenerator.Generate(), "_", "-")
}

// Plural returns word with an "s" unless n is 1
func Plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
