package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAllowedOrigins(t *testing.T) {
	assert.Nil(t, parseAllowedOrigins(""))
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://movies.example"},
		parseAllowedOrigins(" http://localhost:3000, ,https://movies.example "),
	)
}
