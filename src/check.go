package dnscli

import (
	"context"
	"fmt"
	"strings"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

const defaultResolver = "119.29.29.29:53"

// recordType upper-cases t and checks it names a known RR type.
func recordType(t string) (string, error) {
	t = strings.ToUpper(strings.TrimSpace(t))
	if _, ok := dns.StringToType[t]; !ok {
		return "", errors.Errorf("unknown record type %q", t)
	}
	return t, nil
}

// fullDomain joins a sub-domain onto domain; "@" and "" mean the apex.
func fullDomain(subDomain, domain string) string {
	if subDomain == "@" || subDomain == "" {
		return defqdn(domain)
	}
	return defqdn(subDomain) + "." + defqdn(domain)
}

// rrValues renders the answers for name and type the way the API stores
// record values.
func rrValues(rr []dns.RR, name string, rrtype uint16) []string {
	name = dns.Fqdn(name)
	result := make([]string, 0)
	for _, a := range rr {
		if !strings.EqualFold(a.Header().Name, name) || a.Header().Rrtype != rrtype {
			continue
		}
		switch v := a.(type) {
		case *dns.A:
			result = append(result, v.A.String())
		case *dns.AAAA:
			result = append(result, v.AAAA.String())
		case *dns.CNAME:
			result = append(result, v.Target)
		case *dns.TXT:
			result = append(result, strings.Join(v.Txt, ""))
		case *dns.NS:
			result = append(result, v.Ns)
		case *dns.PTR:
			result = append(result, v.Ptr)
		case *dns.MX:
			result = append(result, fmt.Sprintf("%d %s", v.Preference, v.Mx))
		case *dns.SRV:
			result = append(result, fmt.Sprintf("%d %d %d %s", v.Priority, v.Weight, v.Port, v.Target))
		case *dns.CAA:
			result = append(result, fmt.Sprintf("%d %s \"%s\"", v.Flag, v.Tag, v.Value))
		default:
			data := strings.TrimPrefix(a.String(), a.Header().String())
			result = append(result, strings.TrimSpace(data))
		}
	}
	return result
}

// QueryRecord asks server for the records of name and type.
func QueryRecord(ctx context.Context, server, name, t string) ([]string, error) {
	t, err := recordType(t)
	if err != nil {
		return nil, err
	}
	rrtype := dns.StringToType[t]
	m := &dns.Msg{}
	m.SetQuestion(dns.Fqdn(name), rrtype)
	in, err := dns.ExchangeContext(ctx, m, server)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s %s", name, t)
	}
	if in.Rcode != dns.RcodeSuccess && in.Rcode != dns.RcodeNameError {
		return nil, errors.Errorf("query %s %s: %s", name, t, dns.RcodeToString[in.Rcode])
	}
	return rrValues(in.Answer, name, rrtype), nil
}

// normalizeValue makes provider values and wire values comparable.
func normalizeValue(t, value string) string {
	switch t {
	case "CNAME", "NS", "PTR", "MX", "SRV":
		return strings.ToLower(defqdn(value))
	}
	return value
}

func containsValue(values []string, t, want string) bool {
	want = normalizeValue(t, want)
	for _, v := range values {
		if normalizeValue(t, v) == want {
			return true
		}
	}
	return false
}
