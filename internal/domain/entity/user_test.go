package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHandle(t *testing.T) {
	cases := map[string]string{
		"@SomeUser": "someuser",
		"someUser":  "someuser",
		" @User_1 ": "user_1",
		"":          "",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeHandle(input), "input %q", input)
	}
}

func TestUser_Label(t *testing.T) {
	now := time.Now()

	withHandle := NewUser(42, "@Alice_99", now)
	assert.Equal(t, "@alice_99", withHandle.Label())

	withoutHandle := NewUser(123456789, "", now)
	assert.Equal(t, "ID 123456789", withoutHandle.Label())
}
