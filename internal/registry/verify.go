// internal/registry/verify.go
package registry

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/lancechain/registry_be/internal/models"
)

// Verifier checks that a registration was signed by the address it claims.
// Kept behind an interface so tests can substitute identity schemes.
type Verifier interface {
	Verify(address string, role models.Role, signedAt int64, signature string) error
}

// RegistrationDigest binds (address, role, signedAt) into the canonical
// message a wallet signs to self-attest a registration.
func RegistrationDigest(address string, role models.Role, signedAt int64) []byte {
	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(signedAt))
	addr := common.HexToAddress(address)
	return ethcrypto.Keccak256(addr.Bytes(), []byte(role), ts)
}

// EthVerifier recovers the signer from a secp256k1 signature over the
// personal-sign prefixed registration digest.
type EthVerifier struct{}

func (EthVerifier) Verify(address string, role models.Role, signedAt int64, signature string) error {
	digest := RegistrationDigest(address, role, signedAt)
	prefixed := ethcrypto.Keccak256([]byte("\x19Ethereum Signed Message:\n32"), digest)

	sigHex := strings.TrimSpace(signature)
	if strings.HasPrefix(sigHex, "0x") || strings.HasPrefix(sigHex, "0X") {
		sigHex = sigHex[2:]
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != 65 {
		return &InvalidSignatureError{Reason: "malformed signature"}
	}

	// Wallets emit V as 27/28; go-ethereum expects 0/1.
	if sig[64] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[64] -= 27
	}

	pub, err := ethcrypto.SigToPub(prefixed, sig)
	if err != nil {
		return &InvalidSignatureError{Reason: "signature recovery failed"}
	}

	recovered := ethcrypto.PubkeyToAddress(*pub).Hex()
	if !sameAddress(recovered, address) {
		return &InvalidSignatureError{Reason: "signer does not match claimed address"}
	}
	return nil
}
