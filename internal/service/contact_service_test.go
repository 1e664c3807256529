package service

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWhatsAppLink(t *testing.T) {
	link := BuildWhatsAppLink("911234567890", "Alice", "I need help with module 2")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/911234567890?text="))

	parsed, err := url.Parse(link)
	assert.NoError(t, err)
	assert.Equal(t, "Hello, my name is Alice. I need help with module 2", parsed.Query().Get("text"))
}

func TestBuildWhatsAppLinkEscapesSpecialChars(t *testing.T) {
	link := BuildWhatsAppLink("911234567890", "Bob & Eve", "什么时候有新课? #update")

	parsed, err := url.Parse(link)
	assert.NoError(t, err)
	assert.Equal(t, "Hello, my name is Bob & Eve. 什么时候有新课? #update", parsed.Query().Get("text"))

	// 原文的 # 与 & 不能裸露在链接里
	assert.NotContains(t, link, "#update")
	assert.NotContains(t, link, "Bob & Eve")
}
