package bridge

import (
	"fmt"
	"strings"
)

const redacted = "[REDACTED]"

// Credential is the caller's upstream API key. It only exists for one call and
// never prints its value through fmt, %v, or JSON re-encoding.
type Credential string

// Blank reports whether the credential is empty or whitespace.
func (c Credential) Blank() bool {
	return strings.TrimSpace(string(c)) == ""
}

// Reveal returns the raw secret for the upstream client.
func (c Credential) Reveal() string {
	return string(c)
}

func (c Credential) String() string {
	if c == "" {
		return ""
	}
	return redacted
}

func (c Credential) GoString() string {
	return c.String()
}

// Format keeps %s, %v, %q and %+v from leaking the value.
func (c Credential) Format(f fmt.State, verb rune) {
	fmt.Fprint(f, c.String())
}

func (c Credential) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}
