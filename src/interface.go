package dnscli

import (
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ifaceSpec is parsed from "name[,4|6[,prefix[,nth]]]".
type ifaceSpec struct {
	Name   string
	Family string
	Prefix string
	Nth    int
}

func parseIfaceSpec(s string) ifaceSpec {
	opts := strings.Split(s, ",")
	for i := range opts {
		opts[i] = strings.TrimSpace(opts[i])
	}
	spec := ifaceSpec{Name: opts[0]}
	if len(opts) >= 2 {
		spec.Family = opts[1]
	}
	if len(opts) >= 3 {
		spec.Prefix = opts[2]
	}
	if len(opts) >= 4 {
		spec.Nth, _ = strconv.Atoi(opts[3])
		if spec.Nth < 0 {
			spec.Nth = 0
		}
	}
	return spec
}

// pick applies the family, prefix and nth filters to the addresses of the
// named interface.
func (s ifaceSpec) pick(addrs []net.IP) (string, bool) {
	n := 0
	for _, ip := range addrs {
		if ip == nil || ip.IsLoopback() {
			continue
		}
		is4 := ip.To4() != nil
		if (s.Family == "4" && !is4) || (s.Family == "6" && is4) {
			continue
		}
		text := ip.String()
		if s.Prefix != "" && !strings.HasPrefix(text, s.Prefix) {
			continue
		}
		if n == s.Nth {
			return text, true
		}
		n++
	}
	return "", false
}

func interfaceIPs(name string) ([]net.IP, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, err
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return nil, err
	}
	ips := make([]net.IP, 0, len(addrs))
	for _, a := range addrs {
		switch v := a.(type) {
		case *net.IPNet:
			ips = append(ips, v.IP)
		case *net.IPAddr:
			ips = append(ips, v.IP)
		}
	}
	return ips, nil
}

// InterfaceIP resolves a value from a local interface address.
func InterfaceIP(spec string) (string, error) {
	s := parseIfaceSpec(spec)
	ips, err := interfaceIPs(s.Name)
	if err != nil {
		return "", errors.Wrapf(err, "No such interface: %s", spec)
	}
	ip, ok := s.pick(ips)
	if !ok {
		return "", errors.Errorf("No such interface: %s", spec)
	}
	return ip, nil
}

// InterfaceOrValue prefers an explicit value over an interface lookup.
func InterfaceOrValue(iface, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	if iface == "" {
		return "", ErrMissingValue
	}
	return InterfaceIP(iface)
}

type InterfaceAddr struct {
	Name string
	Addr string
}

// InterfaceList lists every interface address, or the selected address of
// one interface spec when given.
func InterfaceList(spec string) ([]InterfaceAddr, error) {
	if spec != "" {
		ip, err := InterfaceIP(spec)
		if err != nil {
			return nil, err
		}
		return []InterfaceAddr{{Name: spec, Addr: ip}}, nil
	}
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, errors.Wrap(err, "list interfaces")
	}
	result := make([]InterfaceAddr, 0)
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			result = append(result, InterfaceAddr{Name: iface.Name, Addr: a.String()})
		}
	}
	return result, nil
}
