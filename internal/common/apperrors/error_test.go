package apperrors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("TestError", func(t *testing.T) {
		ErrBaseErr := New("base error")
		assert.Equal(t, "base error", ErrBaseErr.Error())
		assert.Equal(t, "msg", ErrBaseErr.New("msg").Error())
		assert.ErrorIs(t, ErrBaseErr, ErrBaseErr)

		ErrFirstLevel := ErrBaseErr.New("first level")
		assert.Equal(t, "first level", ErrFirstLevel.Error())
		assert.ErrorIs(t, ErrFirstLevel, ErrBaseErr)

		ErrAnotherErr := New("another error")
		ErrWrappedErr := ErrFirstLevel.Err(ErrAnotherErr)
		assert.Equal(t, "first level", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, ErrFirstLevel)
		assert.ErrorIs(t, ErrWrappedErr, ErrAnotherErr)

		err := errors.New("error")
		ErrWrappedErr = ErrFirstLevel.Err(err)
		assert.Equal(t, "first level", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, err)

		ErrWrappedErr = ErrFirstLevel.MsgErr("msg", err)
		assert.Equal(t, "msg", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, err)
	})

	t.Run("kinds are not mutated", func(t *testing.T) {
		ErrKind := New("kind").SetStatusCode(http.StatusConflict)
		_ = ErrKind.Msg("changed").Err(errors.New("x"))
		_ = ErrKind.Prefix("p")
		assert.Equal(t, "kind", ErrKind.Error())
		assert.Empty(t, ErrKind.Unwrap())
		assert.Equal(t, http.StatusConflict, ErrKind.New("child").StatusCode())
	})

	t.Run("unrelated kinds do not match", func(t *testing.T) {
		a := New("same")
		b := New("same")
		assert.NotErrorIs(t, a.Err(errors.New("x")), b)
	})

	t.Run("prefix and expand", func(t *testing.T) {
		e := New("fetch failed").Prefix("tois").Err(errors.New("timeout")).SetExpandError(true)
		assert.Equal(t, "tois: fetch failed", e.Error())
		assert.Equal(t, "tois: fetch failed: timeout", e.ErrorAll())
	})

	t.Run("wrapped with fmt", func(t *testing.T) {
		ErrKind := New("kind")
		wrapped := errors.Wrap(ErrKind.Msg("detail"), "context")
		assert.ErrorIs(t, wrapped, ErrKind)
	})
}
