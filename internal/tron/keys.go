package tron

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

// DerivationPath is the BIP-44 path for TRON (coin type 195).
const DerivationPath = "m/44'/195'/0'/0/0"

// MnemonicLocale is the wordlist locale used for generated phrases.
const MnemonicLocale = "en"

// mnemonicEntropyBits yields 12-word phrases.
const mnemonicEntropyBits = 128

// Mnemonic describes the phrase a keypair was derived from.
type Mnemonic struct {
	Phrase string `json:"phrase"`
	Path   string `json:"path"`
	Locale string `json:"locale"`
}

// Keypair is a freshly generated or recovered account key. Hex fields carry
// no prefix and are upper-cased; the private key is never retained.
type Keypair struct {
	PrivateKey    string
	PublicKey     string
	AddressBase58 string
	AddressHex    string
	Mnemonic      *Mnemonic
}

func keypairFromPrivateKey(priv *btcec.PrivateKey, m *Mnemonic) *Keypair {
	pub := priv.PubKey().SerializeUncompressed()
	base58Addr, hexAddr := AddressFromPublicKey(pub)

	return &Keypair{
		PrivateKey:    strings.ToUpper(hex.EncodeToString(priv.Serialize())),
		PublicKey:     strings.ToUpper(hex.EncodeToString(pub)),
		AddressBase58: base58Addr,
		AddressHex:    hexAddr,
		Mnemonic:      m,
	}
}

// GenerateKeypair creates a new random account keypair.
func GenerateKeypair() (*Keypair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("tron: failed to generate private key: %w", err)
	}
	return keypairFromPrivateKey(priv, nil), nil
}

// GenerateMnemonicKeypair creates a new account from a fresh 12-word
// mnemonic, derived at the TRON BIP-44 path.
func GenerateMnemonicKeypair() (*Keypair, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to generate entropy: %w", err)
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to generate mnemonic: %w", err)
	}

	return RecoverFromMnemonic(phrase)
}

// RecoverFromMnemonic re-derives the account keypair for a mnemonic phrase.
// Returns nil without error when the phrase is not a valid BIP-39 mnemonic:
// absence of a recoverable account is a modeled outcome, not a failure.
func RecoverFromMnemonic(phrase string) (*Keypair, error) {
	phrase = strings.TrimSpace(phrase)
	if !bip39.IsMnemonicValid(phrase) {
		return nil, nil
	}

	seed, err := bip39.NewSeedWithErrorChecking(phrase, "")
	if err != nil {
		return nil, fmt.Errorf("tron: failed to derive seed: %w", err)
	}

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to derive master key: %w", err)
	}

	// m/44'/195'/0'/0/0
	steps := []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + 195,
		hdkeychain.HardenedKeyStart + 0,
		0,
		0,
	}
	for _, step := range steps {
		key, err = key.Derive(step)
		if err != nil {
			return nil, fmt.Errorf("tron: failed to derive child key: %w", err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("tron: failed to extract private key: %w", err)
	}

	return keypairFromPrivateKey(priv, &Mnemonic{
		Phrase: phrase,
		Path:   DerivationPath,
		Locale: MnemonicLocale,
	}), nil
}
