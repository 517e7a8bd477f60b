package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFullName(t *testing.T) {
	assert.Equal(t, "Jo B.", FormatFullName("Jo Bauer"))
	assert.Equal(t, "Anna MS.", FormatFullName("Anna Maria Schmidt"))
	assert.Equal(t, "Prince", FormatFullName("Prince"))
	assert.Equal(t, "", FormatFullName(""))
	assert.Equal(t, "Jo B.", FormatFullName("  Jo   Bauer "))
	// Four and more parts fall back to the two-part form.
	assert.Equal(t, "Hans P.", FormatFullName("Hans Peter Maria Huber"))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "JB", Initials("Jo Bauer"))
	assert.Equal(t, "AM", Initials("Anna Maria Schmidt"))
	assert.Equal(t, "P", Initials("Prince"))
	assert.Equal(t, "U", Initials(""))
}

func TestTruncateNames(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	shown, more := TruncateNames(names, MaxRosterNames)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, shown)
	assert.Equal(t, 2, more)
	// Presentation only: the source list is untouched.
	assert.Len(t, names, 8)

	shown, more = TruncateNames(names[:3], MaxRosterNames)
	assert.Equal(t, []string{"a", "b", "c"}, shown)
	assert.Equal(t, 0, more)
}
