// Package ecies implements the Elliptic Curve Integrated Encryption Scheme (ECIES)
// over the curves of package ecc.
//
// ECIES is a hybrid encryption scheme that combines elliptic curve key
// agreement with symmetric encryption. This implementation uses:
//   - secp128r1, secp192r1, secp256r1 or secp384r1, chosen by the recipient key
//   - x-only ECDH from package ecc
//   - HKDF-SHA256 for key derivation
//   - AES-256-GCM for authenticated encryption
//
// Every ciphertext records its protocol version and curve, so a recipient
// can tell which key it needs before doing any curve arithmetic.
//
// Example usage:
//
//	privateKey, err := ecies.GenerateKey(ecc.Secp256r1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer privateKey.Destroy()
//
//	ciphertext, err := ecies.Encrypt(privateKey.Public(), []byte("Hello, ECIES!"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decrypted, err := ecies.Decrypt(privateKey, ciphertext)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For key persistence:
//
//	err := ecies.GenerateKeyPair(ecc.Secp192r1,
//	    ecies.WithDirpath("./keys"),
//	    ecies.WithPrivateKeyFilename("my_key.pem"),
//	)
//
//	privateKey, err := ecies.LoadPrivateKey("./keys/my_key.pem")
//	publicKey, err := ecies.LoadPublicKey("./keys/public.pem")
package ecies
