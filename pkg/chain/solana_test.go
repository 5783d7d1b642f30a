package chain

import (
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
)

func TestLamportsToBalance(t *testing.T) {
	bal := lamportsToBalance(1500000000, SolDecimals)

	if bal.Amount != "1500000000" {
		t.Fatalf("expected raw 1500000000 got %s", bal.Amount)
	}
	if bal.UIAmountString != "1.5" {
		t.Fatalf("expected 1.5 got %s", bal.UIAmountString)
	}
	if bal.UIAmount != 1.5 {
		t.Fatalf("expected 1.5 got %f", bal.UIAmount)
	}
	if bal.Decimals != SolDecimals {
		t.Fatalf("expected %d decimals got %d", SolDecimals, bal.Decimals)
	}
}

func TestLamportsToBalanceZero(t *testing.T) {
	bal := lamportsToBalance(0, SolDecimals)

	if bal.Amount != "0" || bal.UIAmountString != "0" {
		t.Fatalf("unexpected zero balance %+v", bal)
	}
}

func TestFindByMint(t *testing.T) {
	accounts := []TokenAccount{
		{Mint: "mint-a", Balance: Balance{Amount: "100", UIAmountString: "0.0001"}},
		{Mint: "mint-b", Balance: Balance{Amount: "200", UIAmountString: "0.0002"}},
	}

	bal, ok := FindByMint(accounts, "mint-b")
	if !ok {
		t.Fatal("expected to find mint-b")
	}
	if bal.Amount != "200" {
		t.Fatalf("expected 200 got %s", bal.Amount)
	}

	if _, ok := FindByMint(accounts, "mint-c"); ok {
		t.Fatal("expected mint-c to be absent")
	}

	if _, ok := FindByMint(nil, "mint-a"); ok {
		t.Fatal("expected no match in nil slice")
	}
}

func TestParsedTokenAccountLayout(t *testing.T) {
	raw := []byte(`{
		"parsed": {
			"info": {
				"mint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
				"tokenAmount": {
					"amount": "2000000",
					"decimals": 6,
					"uiAmount": 2.0,
					"uiAmountString": "2"
				}
			},
			"type": "account"
		},
		"program": "spl-token"
	}`)

	var parsed parsedTokenAccount
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if parsed.Parsed.Info.Mint != "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v" {
		t.Fatalf("unexpected mint %s", parsed.Parsed.Info.Mint)
	}
	if parsed.Parsed.Info.TokenAmount.Amount != "2000000" {
		t.Fatalf("unexpected amount %s", parsed.Parsed.Info.TokenAmount.Amount)
	}
	if parsed.Parsed.Info.TokenAmount.Decimals != 6 {
		t.Fatalf("unexpected decimals %d", parsed.Parsed.Info.TokenAmount.Decimals)
	}
}

func TestParseCommitment(t *testing.T) {
	cases := map[string]rpc.CommitmentType{
		"finalized": rpc.CommitmentFinalized,
		"confirmed": rpc.CommitmentConfirmed,
		"processed": rpc.CommitmentProcessed,
		"":          rpc.CommitmentConfirmed,
		"bogus":     rpc.CommitmentConfirmed,
	}

	for input, want := range cases {
		if got := parseCommitment(input); got != want {
			t.Fatalf("parseCommitment(%q): expected %s got %s", input, want, got)
		}
	}
}
