package i18n

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoad_Embedded(t *testing.T) {
	b, err := Load("it")
	require.NoError(t, err)

	assert.Equal(t, language.Italian, b.Default())
	assert.ElementsMatch(t, []language.Tag{language.Italian, language.English}, b.Supported())
	assert.Equal(t, language.Italian, b.Supported()[0])
}

func TestLoad_UnknownDefault(t *testing.T) {
	_, err := Load("fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default locale fr")
}

func TestLoadFromFS_Errors(t *testing.T) {
	t.Run("no catalogs", func(t *testing.T) {
		_, err := LoadFromFS(fstest.MapFS{}, "it")
		assert.Error(t, err)
	})

	t.Run("empty messages", func(t *testing.T) {
		fsys := fstest.MapFS{"locales/it.yaml": {Data: []byte("locale: it\nmessages: {}\n")}}
		_, err := LoadFromFS(fsys, "it")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "messages map is required")
	})

	t.Run("bad yaml", func(t *testing.T) {
		fsys := fstest.MapFS{"locales/it.yaml": {Data: []byte("locale: [")}}
		_, err := LoadFromFS(fsys, "it")
		assert.Error(t, err)
	})
}

func TestMatch(t *testing.T) {
	b, err := Load("it")
	require.NoError(t, err)

	assert.Equal(t, language.Italian, b.Match())
	assert.Equal(t, language.Italian, b.Match(""))
	assert.Equal(t, language.English, b.Match("en-US,en;q=0.9"))
	assert.Equal(t, language.English, b.Match("", "en"))
	assert.Equal(t, language.Italian, b.Match("it-IT"))
	assert.Equal(t, language.Italian, b.Match("not a language"))
}

func TestSprintf(t *testing.T) {
	b, err := Load("it")
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, "Il titolo è obbligatorio", b.Sprintf(ctx, "validation.title.required"))
	assert.Equal(t, "Il titolo deve essere almeno 5 caratteri", b.Sprintf(ctx, "validation.title.min", 5))

	en := WithTag(ctx, language.English)
	assert.Equal(t, "The title may not be longer than 20 characters", b.Sprintf(en, "validation.title.max", 20))
	assert.Equal(t, "Project updated successfully", b.Sprintf(en, "flash.project.updated"))
	assert.Equal(t, language.English, b.TagFrom(en))
}
