package ingredient

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateIngredientName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		lang string
		want string
	}{
		{name: "finnish", in: "milk", lang: "fi", want: "Maito"},
		{name: "unknown ingredient returned verbatim", in: "xyz-unknown", lang: "fi", want: "xyz-unknown"},
		{name: "case insensitive key", in: "MILK", lang: "sv", want: "Mjölk"},
		{name: "region subtag", in: "garlic", lang: "fi-FI", want: "Valkosipuli"},
		{name: "missing language falls back to english", in: "milk", lang: "de", want: "Milk"},
		{name: "empty language falls back to english", in: "olive oil", lang: "", want: "Olive oil"},
		{name: "empty name", in: "", lang: "fi", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, TranslateIngredientName(tc.in, tc.lang))
		})
	}
}

func TestTableTranslator_FallbackWithoutEnglish(t *testing.T) {
	t.Parallel()

	tr, err := NewTableTranslator([]byte("rye bread:\n  fi: Ruisleipä\n"))
	require.NoError(t, err)

	assert.Equal(t, "Ruisleipä", tr.Translate("Rye Bread", "fi"))
	assert.Equal(t, "Rye Bread", tr.Translate("Rye Bread", "sv"))
	assert.Equal(t, 1, tr.Len())
}

func TestNewTableTranslator_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := NewTableTranslator([]byte("milk: [unterminated"))
	assert.Error(t, err)
}

func TestLoadTableTranslator(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("milk:\n  en: Milk\n  fi: Maito\n"), 0o644))

	tr, err := LoadTableTranslator(path)
	require.NoError(t, err)
	assert.Equal(t, "Maito", tr.Translate("milk", "fi"))

	_, err = LoadTableTranslator(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultTranslator_ConcurrentUse(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "Maito", TranslateIngredientName("milk", "fi"))
		}()
	}
	wg.Wait()
	assert.Greater(t, DefaultTranslator().Len(), 10)
}
