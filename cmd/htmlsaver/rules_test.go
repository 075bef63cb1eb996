package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/htmlsaver/pkg/sanitizer"
)

func TestExampleRules(t *testing.T) {
	t.Parallel()

	p, err := sanitizer.LoadRulesFile("rules.example.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Len())

	in := `<div onclick="track()"><p>mail john@example.com</p>` +
		`<span class="api-key">abc</span><p>sk_live_123abc</p>` +
		`<script>alert(1)</script><!-- internal --></div>`

	assert.Equal(t,
		`<div><p>mail j***@example.com</p><span class="api-key">[REDACTED]</span><p>[KEY]</p></div>`,
		p.Sanitize(in))
}
