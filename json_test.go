package either_test

import (
	"encoding/json"
	"testing"

	"github.com/WinPooh32/either"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestEither_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		e    either.Either[string, point]
		want string
	}{
		{"right", either.Right[string](point{1, 2}), `{"right":{"x":1,"y":2}}`},
		{"left", either.Left[string, point]("bad point"), `{"left":"bad point"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.e)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			var got either.Either[string, point]

			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.e, got)
		})
	}
}

func TestEither_MarshalJSON_Field(t *testing.T) {
	t.Parallel()

	type envelope struct {
		ID  int                          `json:"id"`
		Res either.Either[string, []int] `json:"res"`
	}

	in := envelope{ID: 7, Res: either.Right[string]([]int{1, 2, 3})}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"res":{"right":[1,2,3]}}`, string(data))

	var out envelope

	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestEither_MarshalJSON_Absent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    any
	}{
		{"zero pointer left", either.Either[*int, int]{}},
		{"zero slice left", either.Either[[]int, int]{}},
		{"in field", struct {
			Res either.Either[map[string]int, int] `json:"res"`
		}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := json.Marshal(tt.v)
			require.ErrorIs(t, err, either.ErrInvalidArgument)
		})
	}
}

func TestEither_UnmarshalJSON_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"empty object", `{}`, nil},
		{"both keys", `{"left":"a","right":1}`, nil},
		{"unknown key", `{"middle":1}`, nil},
		{"wrong payload type", `{"right":"one"}`, nil},
		{"not an object", `[1]`, nil},
		{"null left", `{"left":null}`, either.ErrInvalidArgument},
		{"null right", `{"right": null}`, either.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var e either.Either[string, int]

			err := json.Unmarshal([]byte(tt.data), &e)
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
