package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	en := DetectLanguage("The film was wonderful and the actors were brilliant from start to finish.")
	assert.True(t, en.English())
	assert.False(t, en.Suspicious())

	fr := DetectLanguage("Le film était vraiment magnifique et les acteurs étaient formidables du début à la fin.")
	assert.Equal(t, "fra", fr.Code)
	assert.False(t, fr.English())

	short := DetectLanguage("ok")
	assert.Equal(t, Language{}, short)
	assert.False(t, short.Suspicious())
}
