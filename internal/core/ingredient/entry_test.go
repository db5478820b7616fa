package ingredient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("raw is parsed", func(t *testing.T) {
		t.Parallel()
		got := Normalize(Raw("2 cups flour"))
		require.NotNil(t, got.Amount)
		assert.Equal(t, 2.0, *got.Amount)
		assert.Equal(t, "cups", got.Unit)
		assert.Equal(t, "flour", got.Item)
	})

	t.Run("structured skips text parsing", func(t *testing.T) {
		t.Parallel()
		got := Normalize(Structured{Name: "2 cups flour"})
		assert.Nil(t, got.Amount)
		assert.Equal(t, "2 cups flour", got.Item)
	})

	t.Run("structured quantity and unit", func(t *testing.T) {
		t.Parallel()
		got := Normalize(Structured{Name: " sugar ", Quantity: "1 1/2", Unit: "cup"})
		require.NotNil(t, got.Amount)
		assert.Equal(t, 1.5, *got.Amount)
		assert.Equal(t, "1 1/2", got.AmountText)
		assert.Equal(t, "cup", got.Unit)
		assert.Equal(t, "sugar", got.Item)
	})

	t.Run("structured quantity that is not a number", func(t *testing.T) {
		t.Parallel()
		got := Normalize(Structured{Name: "salt", Quantity: "a pinch"})
		assert.Nil(t, got.Amount)
		assert.Equal(t, "a pinch", got.AmountText)
		assert.Equal(t, "salt", got.Item)
	})
}

func TestEntries_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var es Entries
	err := json.Unmarshal([]byte(`[
		"2 cups flour",
		{"name": "milk", "quantity": "1", "unit": "cup"},
		{"name": "eggs", "quantity": 3},
		{"name": "salt", "quantity": null, "unit": null}
	]`), &es)
	require.NoError(t, err)
	require.Len(t, es, 4)

	assert.Equal(t, Raw("2 cups flour"), es[0])
	assert.Equal(t, Structured{Name: "milk", Quantity: "1", Unit: "cup"}, es[1])
	assert.Equal(t, Structured{Name: "eggs", Quantity: "3"}, es[2])
	assert.Equal(t, Structured{Name: "salt"}, es[3])
	assert.Equal(t, []string{"flour", "milk", "eggs", "salt"}, es.Names())
}

func TestEntries_UnmarshalJSON_Errors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{`"flour"`, `[1]`, `[{"name": "x", "quantity": true}]`} {
		var es Entries
		assert.Error(t, json.Unmarshal([]byte(input), &es), input)
	}
}

func TestEntries_MarshalJSON(t *testing.T) {
	t.Parallel()

	es := Entries{Raw("Salt"), Structured{Name: "milk", Quantity: "1", Unit: "l"}}
	data, err := json.Marshal(es)
	require.NoError(t, err)
	assert.JSONEq(t, `["Salt", {"name": "milk", "quantity": "1", "unit": "l"}]`, string(data))
}
