// internal/registry/address.go
package registry

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NormalizeAddress formats a wallet address to lowercase 0x-hex so map
// lookups and ownership comparisons are case-insensitive.
func NormalizeAddress(address string) string {
	addr := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(address)), "0x")
	return "0x" + addr
}

func ValidAddress(address string) bool {
	return common.IsHexAddress(strings.TrimSpace(address))
}

func sameAddress(a, b string) bool {
	return NormalizeAddress(a) == NormalizeAddress(b)
}
