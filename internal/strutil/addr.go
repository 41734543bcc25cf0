package strutil

const defaultAddress = "0.0.0.0"

// NormalizeAddress fills in the host, if it's omitted. Addresses like ":8080" are
// resolved to all the interfaces.
func NormalizeAddress(addr string) string {
	if len(addr) == 0 {
		return defaultAddress + ":0"
	}

	if addr[0] == ':' {
		addr = defaultAddress + addr
	}

	return addr
}
