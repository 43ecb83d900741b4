package ecc

// GenerateKeyPair draws a private scalar uniformly from [1, n-1] and derives
// the public point Q = d·G. The public key encoding defaults to compressed.
func GenerateKeyPair(id CurveID, opts ...Option) (*Crypto, error) {
	x, err := New(id, opts...)
	if err != nil {
		return nil, err
	}

	d, err := randomScalar(x.opts.rand, x.curve)
	if err != nil {
		return nil, err
	}

	x.d = d
	x.q = x.curve.ScalarBaseMult(d)
	return x, nil
}
