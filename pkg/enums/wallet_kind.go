package enums

// WalletKind distinguishes ordinary user wallets from the reserved platform
// wallet that accumulates commission.
type WalletKind string

const (
	WalletKindUser     WalletKind = "user"
	WalletKindPlatform WalletKind = "platform"
)

// IsValid reports whether the value matches a known wallet kind.
func (k WalletKind) IsValid() bool {
	return k == WalletKindUser || k == WalletKindPlatform
}
