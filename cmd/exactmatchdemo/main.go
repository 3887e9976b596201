// Command exactmatchdemo is a thin, non-interactive driver that proves
// the ExactMatch wiring end to end. It is not part of the core
// contract: no menu, no interactive timing display, just two in-memory
// CSV sources run through phases 0-4 and a printed cardinality.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	logging "github.com/ipfs/go-log"

	"github.com/wolofshield/paillier-psi/exactmatch"
)

const demoKeyBits = 256

var log = logging.Logger("exactmatchdemo")

const baseACsv = "name,NSS\nAlice,111-22-3333\nBob,222-33-4444\nCarol,333-44-5555\n"
const baseBCsv = "name,NSS\nBob,222-33-4444\nCarol,333-44-5555\nDave,444-55-6666\n"

func main() {
	if err := os.MkdirAll("keys", 0o700); err != nil {
		log.Fatalw("creating keys directory", "error", err)
	}

	ctx := context.Background()
	params := exactmatch.Params{HashBits: 20}
	hasher := exactmatch.MixHash32{}

	idsA, err := exactmatch.LoadIdentifiers(strings.NewReader(baseACsv))
	if err != nil {
		log.Fatalw("loading base A", "error", err)
	}
	idsB, err := exactmatch.LoadIdentifiers(strings.NewReader(baseBCsv))
	if err != nil {
		log.Fatalw("loading base B", "error", err)
	}

	dbA, derr := exactmatch.NewDatabase(ctx, demoKeyBits)
	if derr != nil {
		log.Fatalw("keygen for database A", "error", derr)
	}
	dbB, derr := exactmatch.NewDatabase(ctx, demoKeyBits)
	if derr != nil {
		log.Fatalw("keygen for database B", "error", derr)
	}

	dbA.Hash(idsA, hasher, params)
	dbB.Hash(idsB, hasher, params)

	pkA, derr := dbA.Registry.PublicKey()
	if derr != nil {
		log.Fatalw("reading public key A", "error", derr)
	}
	pkB, derr := dbB.Registry.PublicKey()
	if derr != nil {
		log.Fatalw("reading public key B", "error", derr)
	}

	bundleA, derr := dbA.PrepareBundle(pkA, pkB)
	if derr != nil {
		log.Fatalw("preparing bundle A", "error", derr)
	}
	bundleB, derr := dbB.PrepareBundle(pkA, pkB)
	if derr != nil {
		log.Fatalw("preparing bundle B", "error", derr)
	}

	var server exactmatch.Server
	l1, l2, serr := server.Compute(dbA, dbB, bundleA, bundleB, pkA, pkB)
	if serr != nil {
		log.Fatalw("server compute", "error", serr)
	}

	cardA, derr := dbA.Decrypt(l1)
	if derr != nil {
		log.Fatalw("decrypting database A result", "error", derr)
	}
	cardB, derr := dbB.Decrypt(l2)
	if derr != nil {
		log.Fatalw("decrypting database B result", "error", derr)
	}

	fmt.Printf("intersection cardinality: A=%d B=%d\n", cardA, cardB)
}
