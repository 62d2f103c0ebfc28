package stroke

// WildcardMatch reports whether key matches pattern, where each '*' in the
// pattern matches any contiguous run (possibly empty) of the key and every
// other rune must match literally and in order.
//
// dp[i][j] holds whether the first i runes of key match the first j runes of
// pattern. Stroke codes are ASCII, but runes are compared so stray input
// cannot split a multi-byte sequence.
func WildcardMatch(pattern, key string) bool {
	p := []rune(pattern)
	k := []rune(key)

	dp := make([][]bool, len(k)+1)
	for i := range dp {
		dp[i] = make([]bool, len(p)+1)
	}
	dp[0][0] = true

	for j := 1; j <= len(p); j++ {
		if p[j-1] == Wildcard {
			dp[0][j] = dp[0][j-1]
		}
	}

	for i := 1; i <= len(k); i++ {
		for j := 1; j <= len(p); j++ {
			if p[j-1] == Wildcard {
				dp[i][j] = dp[i-1][j] || dp[i][j-1]
			} else {
				dp[i][j] = dp[i-1][j-1] && k[i-1] == p[j-1]
			}
		}
	}
	return dp[len(k)][len(p)]
}
