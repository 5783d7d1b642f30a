package token

// Catalog is the static token list served to pickers and lookups. Mirrors the
// Solana token registry entries for the majors.
var Catalog = []Token{
	{
		Address:  WrappedSOL,
		ChainID:  101,
		Decimals: 9,
		Name:     "Wrapped SOL",
		Symbol:   "SOL",
		LogoURI:  "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/So11111111111111111111111111111111111111112/logo.png",
		Tags:     []string{"old-registry"},
	},
	{
		Address:  "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		ChainID:  101,
		Decimals: 6,
		Name:     "USD Coin",
		Symbol:   "USDC",
		LogoURI:  "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v/logo.png",
		Tags:     []string{"old-registry", "solana-fm"},
	},
	{
		Address:  "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
		ChainID:  101,
		Decimals: 6,
		Name:     "USDT",
		Symbol:   "USDT",
		LogoURI:  "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB/logo.svg",
		Tags:     []string{"old-registry", "solana-fm"},
	},
	{
		Address:  "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So",
		ChainID:  101,
		Decimals: 9,
		Name:     "Marinade staked SOL (mSOL)",
		Symbol:   "mSOL",
		LogoURI:  "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So/logo.png",
		Tags:     []string{"old-registry"},
	},
	{
		Address:  "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
		ChainID:  101,
		Decimals: 5,
		Name:     "Bonk",
		Symbol:   "Bonk",
		LogoURI:  "https://arweave.net/hQiPZOsRZXGXBJd_82PhVdlM_hACsT_q6wqwf5cSY7I",
		Tags:     []string{"community"},
	},
	{
		Address:  "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN",
		ChainID:  101,
		Decimals: 6,
		Name:     "Jupiter",
		Symbol:   "JUP",
		LogoURI:  "https://static.jup.ag/jup/icon.png",
		Tags:     []string{"community"},
	},
	{
		Address:  "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R",
		ChainID:  101,
		Decimals: 6,
		Name:     "Raydium",
		Symbol:   "RAY",
		LogoURI:  "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R/logo.png",
		Tags:     []string{"old-registry"},
	},
	{
		Address:  "EKpQGSJtjMFqKZ9KQanSqYXRcF8fBopzLHYxdM65zcjm",
		ChainID:  101,
		Decimals: 6,
		Name:     "dogwifhat",
		Symbol:   "$WIF",
		LogoURI:  "https://bafkreibk3covs5ltyqxa272uodhculbr6kea6betidfwy3ajsav2vjzyum.ipfs.nftstorage.link",
		Tags:     []string{"community"},
	},
	{
		Address:  "HZ1JovNiVvGrGNiiYvEozEVgZ58xaU3RKwX8eACQBCt3",
		ChainID:  101,
		Decimals: 6,
		Name:     "Pyth Network",
		Symbol:   "PYTH",
		LogoURI:  "https://pyth.network/token.svg",
		Tags:     []string{"community"},
	},
	{
		Address:  "jtojtomepa8beP8AuQc6eXt5FriJwfFMwQx2v2f9mCL",
		ChainID:  101,
		Decimals: 9,
		Name:     "JITO",
		Symbol:   "JTO",
		LogoURI:  "https://metadata.jito.network/token/jto/image",
		Tags:     []string{"community"},
	},
}
