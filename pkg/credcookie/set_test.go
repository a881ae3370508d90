package credcookie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/memberauth/pkg/credcookie"
	"github.com/dmitrymomot/memberauth/pkg/member"
)

func completeSet() credcookie.Set {
	return credcookie.FromMember(&member.Member{
		ID:       "u1",
		Name:     "Jane",
		Phone:    "010-0000-0000",
		IsWorker: true,
	}, "S1", true)
}

func TestSet_IsComplete(t *testing.T) {
	t.Parallel()

	assert.True(t, completeSet().IsComplete())
	assert.False(t, credcookie.Set{}.IsComplete())

	for _, name := range credcookie.Names {
		t.Run("missing "+name, func(t *testing.T) {
			t.Parallel()
			s := completeSet().With(name, credcookie.Field{})
			assert.False(t, s.IsComplete())
		})
	}

	t.Run("empty values are present", func(t *testing.T) {
		t.Parallel()
		s := completeSet().With(credcookie.NamePhone, credcookie.Some(""))
		assert.True(t, s.IsComplete())
	})
}

func TestSet_Persistent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		field credcookie.Field
		want  bool
	}{
		{value: "true", field: credcookie.Some("true"), want: true},
		{value: "TRUE", field: credcookie.Some("TRUE"), want: true},
		{value: "True", field: credcookie.Some("True"), want: true},
		{value: "false", field: credcookie.Some("false"), want: false},
		{value: "1", field: credcookie.Some("1"), want: false},
		{value: "yes", field: credcookie.Some("yes"), want: false},
		{value: "empty", field: credcookie.Some(""), want: false},
		{value: "missing", field: credcookie.Field{}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			s := credcookie.Set{IsAutoLogin: tt.field}
			assert.Equal(t, tt.want, s.Persistent())
		})
	}
}

func TestFromMember(t *testing.T) {
	t.Parallel()

	s := credcookie.FromMember(&member.Member{ID: "u1", Name: "Jane", Phone: "123", IsAdmin: true}, "S9", false)

	assert.Equal(t, credcookie.Some("u1"), s.ID)
	assert.Equal(t, credcookie.Some("Jane"), s.Name)
	assert.Equal(t, credcookie.Some("123"), s.Phone)
	assert.Equal(t, credcookie.Some("0"), s.IsWorker)
	assert.Equal(t, credcookie.Some("1"), s.IsAdmin)
	assert.Equal(t, credcookie.Some("S9"), s.SessionID)
	assert.Equal(t, credcookie.Some("false"), s.IsAutoLogin)
	assert.False(t, s.Persistent())

	v, ok := s.Get(credcookie.NameSessionID).Get()
	assert.True(t, ok)
	assert.Equal(t, "S9", v)
	assert.Equal(t, credcookie.Field{}, s.Get("unknown"))
}
