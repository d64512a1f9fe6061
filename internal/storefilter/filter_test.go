package storefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	t.Run("escapes quotes and backslashes", func(t *testing.T) {
		assert.Equal(t, `"tv 55\" \\ pouces"`, Quote(`tv 55" \ pouces`))
	})

	t.Run("plain string", func(t *testing.T) {
		assert.Equal(t, `"rouge"`, Quote("rouge"))
	})
}

func TestConditions(t *testing.T) {
	assert.Equal(t, `slug = "tele"`, Eq("slug", "tele"))
	assert.Equal(t, `active = true`, Eq("active", true))
	assert.Equal(t, `inView != false`, Ne("inView", false))
	assert.Equal(t, `name ~ "luna"`, Contains("name", "luna"))
	assert.Equal(t, `promoPrice > 0`, Gt("promoPrice", 0))
	assert.Equal(t, `stock < 5`, Lt("stock", 5))
	assert.Equal(t, `price > 19.9`, Gt("price", 19.9))
}

func TestAnd(t *testing.T) {
	t.Run("joins parts", func(t *testing.T) {
		assert.Equal(t, `a = true && b = true`, And(Eq("a", true), Eq("b", true)))
	})

	t.Run("skips empty parts", func(t *testing.T) {
		assert.Equal(t, `a = true`, And("", Eq("a", true), ""))
	})
}

func TestOr(t *testing.T) {
	t.Run("parenthesizes multiple parts", func(t *testing.T) {
		assert.Equal(t, `(a = true || b = true)`, Or(Eq("a", true), Eq("b", true)))
	})

	t.Run("single part stays bare", func(t *testing.T) {
		assert.Equal(t, `a = true`, Or(Eq("a", true)))
	})
}
