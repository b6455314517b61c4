package validators

import (
	"net"
	"strings"
)

// HasResolvableEmailDomain reports whether the address has a non-empty local
// part and a domain that resolves in DNS, MX records first and a plain host
// lookup as fallback. It says nothing about the mailbox itself existing.
func HasResolvableEmailDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
