package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Only shapes that fail before any DNS lookup; resolution itself is the
// resolver's business, not ours.
func TestHasResolvableEmailDomain_Malformed(t *testing.T) {
	for _, email := range []string{
		"",
		"plainaddress",
		"user@",
		"@example.com",
		"@",
	} {
		assert.False(t, HasResolvableEmailDomain(email), email)
	}
}
