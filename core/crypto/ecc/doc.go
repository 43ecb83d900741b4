// Package ecc implements elliptic-curve key generation, point compression,
// ECDH and ECDSA over the short Weierstrass curves secp128r1, secp192r1,
// secp256r1 (NIST P-256) and secp384r1 (NIST P-384).
//
// All arithmetic is carried out on math/big integers. Scalar multiplication
// uses a Montgomery ladder with a fixed number of iterations, and scalar
// inversion uses Fermat exponentiation, so the operation sequence does not
// depend on secret scalar bits. math/big itself is not constant-time; callers
// needing hardened P-256/P-384 should prefer crypto/ecdsa and crypto/ecdh.
//
// A Crypto value binds a curve to an optional private scalar and public
// point:
//
//	alice, err := ecc.GenerateKeyPair(ecc.Secp256r1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer alice.Destroy()
//
//	bob, _ := ecc.GenerateKeyPair(ecc.Secp256r1)
//	secret, err := alice.SharedSecret(bob.PublicKey())
//
//	digest := sha256.Sum256([]byte("message"))
//	sig, err := alice.Sign(digest[:])
//	ok, err := alice.Verify(sig, digest[:])
//
// Keys can also be loaded from raw bytes, with the curve inferred from the
// key length:
//
//	c, err := ecc.ForKey(publicKeyBytes)
//
// Hashes are never computed here: Sign and Verify take a digest whose length
// equals the curve's byte length (HashLength).
package ecc
