package typematch

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunc(t *testing.T) {
	t.Run("passes assignable arguments", func(t *testing.T) {
		h := Func(func(s string, n int) (int, error) {
			i, err := strconv.Atoi(s)
			return i + n, err
		})

		got, err := h.Call([]any{"12", 4})
		require.NoError(t, err)
		assert.Equal(t, 16, got)
	})

	t.Run("returns handler error", func(t *testing.T) {
		h := Func(func(s string) (int, error) {
			return strconv.Atoi(s)
		})

		_, err := h.Call([]any{"nope"})
		var numErr *strconv.NumError
		assert.ErrorAs(t, err, &numErr)
	})

	t.Run("error only result", func(t *testing.T) {
		boom := errors.New("boom")
		h := Func(func(string) error { return boom })

		got, err := h.Call([]any{"x"})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("no results", func(t *testing.T) {
		called := false
		h := Func(func() { called = true })

		got, err := h.Call(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.True(t, called)
	})

	t.Run("converts between numeric kinds", func(t *testing.T) {
		h := Func(func(x int, y float32) float64 { return float64(x) + float64(y) })

		got, err := h.Call([]any{2.9, 1})
		require.NoError(t, err)
		assert.Equal(t, 3.0, got)
	})

	t.Run("rejects numbers the parameter cannot hold", func(t *testing.T) {
		tests := []struct {
			name string
			fn   any
			arg  any
		}{
			{"int above uint8", func(b uint8) uint8 { return b }, 300},
			{"negative int to uint", func(u uint) uint { return u }, -1},
			{"negative float to uint", func(u uint32) uint32 { return u }, -1.5},
			{"int above int8", func(i int8) int8 { return i }, 128},
			{"int below int8", func(i int8) int8 { return i }, -129},
			{"float above int8", func(i int8) int8 { return i }, 128.0},
			{"uint64 above int64", func(i int64) int64 { return i }, uint64(math.MaxUint64)},
			{"float above int64", func(i int64) int64 { return i }, 1e19},
			{"float above uint64", func(u uint64) uint64 { return u }, 1e20},
			{"NaN to int", func(i int) int { return i }, math.NaN()},
			{"infinity to int", func(i int) int { return i }, math.Inf(1)},
			{"float64 above float32", func(f float32) float32 { return f }, 1e300},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Func(tt.fn).Call([]any{tt.arg})
				require.ErrorIs(t, err, ErrArgument)

				var argErr *ArgumentError
				require.ErrorAs(t, err, &argErr)
				assert.Equal(t, "Number", argErr.Type)
			})
		}
	})

	t.Run("accepts numbers at the parameter's limits", func(t *testing.T) {
		tests := []struct {
			name string
			fn   any
			arg  any
			want any
		}{
			{"uint8 max", func(b uint8) uint8 { return b }, 255, uint8(255)},
			{"int8 min", func(i int8) int8 { return i }, -128, int8(-128)},
			{"float truncates into int8", func(i int8) int8 { return i }, 127.9, int8(127)},
			{"small negative float to uint", func(u uint) uint { return u }, -0.5, uint(0)},
			{"uint to int", func(i int) int { return i }, uint16(7), 7},
			{"int to float32", func(f float32) float32 { return f }, 3, float32(3)},
			{"dispatched uint8", func(b uint8) int { return int(b) + 1 }, 254, 255},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := Match(On("Number", Func(tt.fn))).Call(tt.arg)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("nil becomes zero value of nillable params", func(t *testing.T) {
		h := Func(func(p *MyCtor, m map[string]any, v any) bool {
			return p == nil && m == nil && v == nil
		})

		got, err := h.Call([]any{nil, nil, nil})
		require.NoError(t, err)
		assert.Equal(t, true, got)
	})

	t.Run("passes interface values through", func(t *testing.T) {
		h := Func(func(v any) any { return v })

		got, err := h.Call([]any{MyCtor{X: 3}})
		require.NoError(t, err)
		assert.Equal(t, MyCtor{X: 3}, got)
	})

	t.Run("rejects nil for value params", func(t *testing.T) {
		h := Func(func(x int) int { return x })

		_, err := h.Call([]any{nil})
		require.ErrorIs(t, err, ErrArgument)

		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, 0, argErr.Index)
		assert.Equal(t, "Null", argErr.Type)
		assert.Equal(t, reflect.TypeFor[int](), argErr.Param)
		assert.Equal(t, "invalid argument: argument 0: cannot use Null as int", err.Error())
	})

	t.Run("rejects unconvertible arguments", func(t *testing.T) {
		h := Func(func(x int) int { return x })

		_, err := h.Call([]any{"12"})
		assert.ErrorIs(t, err, ErrArgument)
	})

	t.Run("rejects wrong arity", func(t *testing.T) {
		h := Func(func(x, y int) int { return x + y })

		_, err := h.Call([]any{1})
		assert.ErrorIs(t, err, ErrArgument)
		assert.Contains(t, err.Error(), "want 2 arguments, got 1")
	})

	t.Run("variadic", func(t *testing.T) {
		h := Func(func(prefix string, xs ...int) string {
			return prefix + strconv.Itoa(len(xs))
		})

		got, err := h.Call([]any{"n=", 1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, "n=3", got)

		got, err = h.Call([]any{"n="})
		require.NoError(t, err)
		assert.Equal(t, "n=0", got)

		_, err = h.Call(nil)
		assert.ErrorIs(t, err, ErrArgument)

		_, err = h.Call([]any{"n=", "x"})
		assert.ErrorIs(t, err, ErrArgument)
	})

	t.Run("panics on non-function", func(t *testing.T) {
		assert.Panics(t, func() { Func(42) })
		assert.Panics(t, func() { Func(nil) })
		assert.Panics(t, func() { Func((func())(nil)) })
	})

	t.Run("panics on unsupported results", func(t *testing.T) {
		assert.Panics(t, func() { Func(func() (int, int) { return 0, 0 }) })
		assert.Panics(t, func() { Func(func() (error, int) { return nil, 0 }) })
		assert.Panics(t, func() { Func(func() (int, int, error) { return 0, 0, nil }) })
	})
}

func TestHandlerFunc(t *testing.T) {
	var got []any
	h := HandlerFunc(func(args ...any) (any, error) {
		got = args
		return len(args), nil
	})

	n, err := h.Call([]any{"a", nil, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []any{"a", nil, 3}, got)
}

func TestValue(t *testing.T) {
	got, err := Value("everything else").Call([]any{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "everything else", got)
}

func TestClause(t *testing.T) {
	t.Run("On parses its pattern", func(t *testing.T) {
		c := On("String, Number", Value(nil))
		assert.Equal(t, "String, Number", c.Pattern().String())
		assert.True(t, c.Match(Signature{"String", "Number"}))
		assert.False(t, c.Match(Signature{"String"}))
	})

	t.Run("Otherwise matches everything", func(t *testing.T) {
		c := Otherwise(Value(nil))
		assert.True(t, c.Match(nil))
		assert.True(t, c.Match(Signature{"Null", "Boolean"}))
	})

	t.Run("When accepts any pattern", func(t *testing.T) {
		c := When(Types("Number"), Value(nil))
		assert.True(t, c.Match(Signature{"Number"}))
	})

	t.Run("panics on nil arguments", func(t *testing.T) {
		assert.Panics(t, func() { On("String", nil) })
		assert.Panics(t, func() { Otherwise(nil) })
		assert.Panics(t, func() { When(nil, Value(nil)) })
	})
}
