// Package keyfile saves and loads Paillier key material as JSON, with
// the size and field-length bounds the wire format requires to stay a
// safe parsing target for untrusted files.
package keyfile

import (
	"encoding/json"
	"io"
	"math/big"
	"os"
	"strings"

	logging "github.com/ipfs/go-log"
	"github.com/pkg/errors"

	"github.com/wolofshield/paillier-psi/crypterr"
	"github.com/wolofshield/paillier-psi/paillier"
)

var log = logging.Logger("keyfile")

const (
	// maxFileBytes bounds the file a Load will read, ample for even a
	// generously padded 4096-bit key pair.
	maxFileBytes = 32 * 1024
	// maxHexFieldChars bounds any single hex field, ample for a 4096-bit
	// Paillier modulus (n^2 needs at most 2048 hex digits).
	maxHexFieldChars = 3072
)

type publicKeyFile struct {
	N        string `json:"n"`
	G        string `json:"g"`
	NSquared string `json:"n_squared"`
}

type secretKeyFile struct {
	Lambda string `json:"lambda"`
	Mu     string `json:"mu"`
}

type keyFile struct {
	PublicKey publicKeyFile `json:"public_key"`
	SecretKey secretKeyFile `json:"secret_key"`
}

// Save writes kp to path as uppercase-hex JSON.
func Save(path string, kp *paillier.KeyPair) *crypterr.Error {
	doc := keyFile{
		PublicKey: publicKeyFile{
			N:        toHex(kp.PK.N),
			G:        toHex(kp.PK.G),
			NSquared: toHex(kp.PK.NSquare),
		},
		SecretKey: secretKeyFile{
			Lambda: toHex(kp.SK.Lambda),
			Mu:     toHex(kp.SK.Mu),
		},
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return crypterr.Wrap(crypterr.InvalidInput, err)
	}
	if werr := os.WriteFile(path, raw, 0o600); werr != nil {
		return crypterr.Wrap(crypterr.InvalidInput, errors.Wrap(werr, "writing key file"))
	}
	log.Debugw("key file saved", "path", path)
	return nil
}

// Load reads and validates a key file, enforcing the file-size cap, the
// per-field hex-length cap, and the n_squared == n*n coherence check.
func Load(path string) (*paillier.KeyPair, *crypterr.Error) {
	f, oerr := os.Open(path)
	if oerr != nil {
		return nil, crypterr.Wrap(crypterr.InvalidInput, errors.Wrap(oerr, "opening key file"))
	}
	defer f.Close()

	limited := io.LimitReader(f, maxFileBytes+1)
	raw, rerr := io.ReadAll(limited)
	if rerr != nil {
		return nil, crypterr.Wrap(crypterr.InvalidInput, errors.Wrap(rerr, "reading key file"))
	}
	if len(raw) > maxFileBytes {
		log.Warnw("key file rejected: exceeds size bound", "path", path, "bytes", len(raw), "maximum", maxFileBytes)
		return nil, crypterr.FieldTooLong(len(raw), maxFileBytes)
	}

	var doc keyFile
	if jerr := json.Unmarshal(raw, &doc); jerr != nil {
		return nil, crypterr.Wrap(crypterr.HexParseError, jerr)
	}

	fields := []string{doc.PublicKey.N, doc.PublicKey.G, doc.PublicKey.NSquared, doc.SecretKey.Lambda, doc.SecretKey.Mu}
	for _, field := range fields {
		if len(field) > maxHexFieldChars {
			log.Warnw("key file rejected: hex field exceeds length bound", "path", path, "chars", len(field), "maximum", maxHexFieldChars)
			return nil, crypterr.FieldTooLong(len(field), maxHexFieldChars)
		}
	}

	n, err := fromHex(doc.PublicKey.N)
	if err != nil {
		return nil, err
	}
	g, err := fromHex(doc.PublicKey.G)
	if err != nil {
		return nil, err
	}
	nSquared, err := fromHex(doc.PublicKey.NSquared)
	if err != nil {
		return nil, err
	}
	lambda, err := fromHex(doc.SecretKey.Lambda)
	if err != nil {
		return nil, err
	}
	mu, err := fromHex(doc.SecretKey.Mu)
	if err != nil {
		return nil, err
	}

	expected := new(big.Int).Mul(n, n)
	if expected.Cmp(nSquared) != 0 {
		log.Warnw("key file rejected: n_squared does not match n*n", "path", path)
		return nil, crypterr.New(crypterr.KeyCoherenceError)
	}

	log.Debugw("key file loaded", "path", path)
	return &paillier.KeyPair{
		PK: &paillier.PublicKey{N: n, G: g, NSquare: nSquared},
		SK: &paillier.SecretKey{Lambda: lambda, Mu: mu},
	}, nil
}

func toHex(n *big.Int) string {
	return strings.ToUpper(n.Text(16))
}

func fromHex(field string) (*big.Int, *crypterr.Error) {
	if field == "" {
		return nil, crypterr.New(crypterr.HexParseError)
	}
	n, ok := new(big.Int).SetString(field, 16)
	if !ok {
		return nil, crypterr.New(crypterr.HexParseError)
	}
	if n.Sign() < 0 {
		return nil, crypterr.New(crypterr.NegativeConversion)
	}
	return n, nil
}
