package wallet

import (
	"encoding/base64"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestDecodeBase64Transaction(t *testing.T) {
	payer := solana.NewWallet().PrivateKey.PublicKey()

	tx, err := solana.NewTransaction(nil, solana.Hash{}, solana.TransactionPayer(payer))
	if err != nil {
		t.Fatalf("build transaction: %v", err)
	}

	data, err := tx.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	decoded, err := DecodeBase64Transaction(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !decoded.Message.AccountKeys[0].Equals(payer) {
		t.Fatalf("expected payer %s got %s", payer, decoded.Message.AccountKeys[0])
	}
}

func TestDecodeBase64TransactionInvalid(t *testing.T) {
	if _, err := DecodeBase64Transaction("not base64!!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}

	// Valid base64, garbage payload.
	garbage := base64.StdEncoding.EncodeToString([]byte{0xff, 0xff, 0xff})
	if _, err := DecodeBase64Transaction(garbage); err == nil {
		t.Fatal("expected error for malformed transaction bytes")
	}
}

func TestNewKeypairWalletFromBase58(t *testing.T) {
	key := solana.NewWallet().PrivateKey

	w, err := NewKeypairWalletFromBase58("http://localhost:8899", key.String(), "confirmed")
	if err != nil {
		t.Fatalf("new wallet: %v", err)
	}

	if !w.PublicKey().Equals(key.PublicKey()) {
		t.Fatalf("expected %s got %s", key.PublicKey(), w.PublicKey())
	}
}

func TestNewKeypairWalletFromBase58Invalid(t *testing.T) {
	if _, err := NewKeypairWalletFromBase58("http://localhost:8899", "bogus", "confirmed"); err == nil {
		t.Fatal("expected error for invalid key")
	}
}

func TestNewKeypairWalletMissingConfig(t *testing.T) {
	if _, err := NewKeypairWallet("", "/tmp/key.json", "confirmed"); err == nil {
		t.Fatal("expected error for missing RPC URL")
	}
	if _, err := NewKeypairWallet("http://localhost:8899", "", "confirmed"); err == nil {
		t.Fatal("expected error for missing keypair path")
	}
}
