package veil

// shuffle permutes s so that adjacency in the output does not mirror
// adjacency in the input: the even-indexed codes reversed, then the
// odd-indexed codes reversed. Both piece lengths (ceil(n/2), floor(n/2))
// follow from n alone, so the permutation inverts without side metadata.
func shuffle(s []byte) []byte {
	n := len(s)
	m := (n + 1) / 2
	out := make([]byte, n)
	for k := 0; k < m; k++ {
		out[m-1-k] = s[2*k]
	}
	for k := 0; k < n-m; k++ {
		out[n-1-k] = s[2*k+1]
	}
	return out
}

// unshuffle inverts shuffle: split at ceil(n/2), un-reverse both pieces,
// and re-interleave them back onto even and odd positions.
func unshuffle(c []byte) []byte {
	n := len(c)
	m := (n + 1) / 2
	out := make([]byte, n)
	for k := 0; k < m; k++ {
		out[2*k] = c[m-1-k]
	}
	for k := 0; k < n-m; k++ {
		out[2*k+1] = c[n-1-k]
	}
	return out
}
