package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand(t *testing.T) {
	const url = "https://www.tstp.xyz/donate"

	name, args := command("darwin", url)
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{url}, args)

	name, args = command("windows", url)
	assert.Equal(t, "rundll32", name)
	assert.Equal(t, []string{"url.dll,FileProtocolHandler", url}, args)

	name, args = command("linux", url)
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{url}, args)
}
