package dns

import (
	"fmt"
	"strings"

	mdns "github.com/miekg/dns"
)

// Apex is the subname denoting the root of a zone.
const Apex = "@"

// Record is one desired record within a zone. Name may be relative
// ("www"), absolute ("www.example.com") or dotted-absolute
// ("www.example.com.").
type Record struct {
	Domain string
	Name   string
	Type   string
	TTL    int
	Values []string
}

// FQDN returns the record's absolute name within its domain, without a
// trailing dot.
func (r Record) FQDN() string {
	return FQDN(r.Domain, r.Name)
}

// Subname returns the record's name relative to the zone apex, with "@"
// for the apex itself.
func (r Record) Subname() (string, error) {
	return Subname(r.Domain, r.Name)
}

// FQDN resolves name against domain. A trailing dot marks a name that is
// already absolute.
func FQDN(domain, name string) string {
	if strings.HasSuffix(name, ".") {
		return strings.TrimRight(name, ".")
	}
	if name == domain {
		return domain
	}
	if strings.HasSuffix(name, "."+domain) {
		return name
	}
	return name + "." + domain
}

// Subname derives the zone-relative label for name within domain. It
// fails when the resolved name does not belong to the domain.
func Subname(domain, name string) (string, error) {
	fqdn := FQDN(domain, name)
	if fqdn == domain {
		return Apex, nil
	}
	suffix := "." + domain
	if !strings.HasSuffix(fqdn, suffix) {
		return "", fmt.Errorf("record %q does not belong to domain %q", name, domain)
	}
	return strings.TrimSuffix(fqdn, suffix), nil
}

// AbsoluteName returns name in absolute presentation form (with a
// trailing dot).
func AbsoluteName(name string) string {
	return mdns.Fqdn(name)
}

// IsKnownType reports whether t is a record type known to the DNS
// registry (A, AAAA, CNAME, TXT, ...).
func IsKnownType(t string) bool {
	_, ok := mdns.StringToType[strings.ToUpper(strings.TrimSpace(t))]
	return ok
}
