package token

import "testing"

func TestFindExactMatch(t *testing.T) {
	tok, err := Find("SOL")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if tok.Address != WrappedSOL {
		t.Fatalf("expected wrapped SOL mint got %s", tok.Address)
	}
	if tok.Decimals != 9 {
		t.Fatalf("expected 9 decimals got %d", tok.Decimals)
	}
}

func TestFindIsCaseInsensitive(t *testing.T) {
	tok, err := Find("usdc")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if tok.Symbol != "USDC" {
		t.Fatalf("expected USDC got %s", tok.Symbol)
	}
	if tok.Decimals != 6 {
		t.Fatalf("expected 6 decimals got %d", tok.Decimals)
	}
}

func TestFindExactBeatsPartial(t *testing.T) {
	// "SOL" is a substring of mSOL's symbol; the exact match must win.
	tok, err := Find("SOL")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if tok.Symbol != "SOL" {
		t.Fatalf("expected SOL got %s", tok.Symbol)
	}
}

func TestFindUnknown(t *testing.T) {
	if _, err := Find("NOPE"); err == nil {
		t.Fatal("expected error for unknown symbol")
	}
}

func TestFindByAddress(t *testing.T) {
	tok, err := FindByAddress(USDCMint)
	if err != nil {
		t.Fatalf("find by address: %v", err)
	}
	if tok.Symbol != "USDC" {
		t.Fatalf("expected USDC got %s", tok.Symbol)
	}

	if _, err := FindByAddress("unknown-mint"); err == nil {
		t.Fatal("expected error for unknown address")
	}
}

func TestFilter(t *testing.T) {
	matches := Filter("usd", 0)
	if len(matches) < 2 {
		t.Fatalf("expected at least USDC and USDT, got %d", len(matches))
	}

	limited := Filter("usd", 1)
	if len(limited) != 1 {
		t.Fatalf("expected 1 match with limit, got %d", len(limited))
	}

	if got := Filter("zzz-no-match", 0); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestIsNativeSOL(t *testing.T) {
	sol, _ := FindByAddress(WrappedSOL)
	if !sol.IsNativeSOL() {
		t.Fatal("wrapped SOL mint must report native")
	}

	usdc, _ := FindByAddress(USDCMint)
	if usdc.IsNativeSOL() {
		t.Fatal("USDC must not report native")
	}
}

func TestCatalogHasNoDuplicateAddresses(t *testing.T) {
	seen := make(map[string]bool)
	for _, tok := range Catalog {
		if seen[tok.Address] {
			t.Fatalf("duplicate address %s", tok.Address)
		}
		seen[tok.Address] = true

		if tok.Symbol == "" || tok.Address == "" {
			t.Fatalf("incomplete catalog entry %+v", tok)
		}
	}
}
