package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		want      string
	}{
		{name: "string", input: `"tt0988824"`, wantValid: true, want: "tt0988824"},
		{name: "numeric string", input: `"46260"`, wantValid: true, want: "46260"},
		{name: "integer", input: `46260`, wantValid: true, want: "46260"},
		{name: "integral float", input: `46260.0`, wantValid: true, want: "46260"},
		{name: "exponent", input: `1e3`, wantValid: true, want: "1000"},
		{name: "fraction", input: `12.5`, wantValid: true, want: "12.5"},
		{name: "null", input: `null`},
		{name: "NULL text", input: `"NULL"`},
		{name: "mixed case null text", input: `"nUlL"`},
		{name: "empty string", input: `""`},
		{name: "blank string", input: `"  "`},
		{name: "padded string", input: `" 12 "`, wantValid: true, want: "12"},
		{name: "boolean", input: `true`},
		{name: "object", input: `{"id": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexString
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.wantValid, got.Valid())
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFlexString_InStruct(t *testing.T) {
	var a Actor
	err := json.Unmarshal([]byte(`{"id": 3, "name": "Mayumi Tanaka", "tmdb_id": "NULL"}`), &a)
	require.NoError(t, err)
	assert.False(t, a.TmdbID.Valid())

	var e Episode
	err = json.Unmarshal([]byte(`{"id": 9, "season_id": 4, "display_episode": "07", "display_season": null}`), &e)
	require.NoError(t, err)

	seasonID, ok := e.SeasonID.Int()
	assert.True(t, ok)
	assert.Equal(t, 4, seasonID)

	display, ok := e.DisplayEpisode.Int()
	assert.True(t, ok)
	assert.Equal(t, 7, display)

	_, ok = e.DisplaySeason.Int()
	assert.False(t, ok)

	_, ok = e.Number()
	assert.False(t, ok)
}

func TestFlexString_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
	}{A: FlexInt(42), B: NewFlexString("null")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": "42", "b": null}`, string(b))
}

func TestFlexString_Int(t *testing.T) {
	_, ok := NewFlexString("tt123").Int()
	assert.False(t, ok)

	v, ok := NewFlexString("-3").Int()
	assert.True(t, ok)
	assert.Equal(t, -3, v)
}

func TestSeries_GenreList(t *testing.T) {
	s := Series{Genres: "Action, Aventure,,  Shonen "}
	assert.Equal(t, []string{"Action", "Aventure", "Shonen"}, s.GenreList())
	assert.Nil(t, Series{}.GenreList())
}
