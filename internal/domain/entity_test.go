package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityString(t *testing.T) {
	root := StorableEntity{UID: "123", Title: "John Doe", Permalink: "john-doe"}

	assert.Equal(t, "<123: John Doe>", Person{Root: root}.String())
	assert.Equal(t, "<123: John Doe>", Movie{Root: root}.String())
}
