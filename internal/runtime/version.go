package runtime

import "strings"

// SemverLess compares two runtime semvers (best-effort).
// Returns true if a < b. Pre-releases such as 1.22rc1 sort below 1.22.
func SemverLess(a, b string) bool {
	a = normalizeSemver(a)
	b = normalizeSemver(b)
	if a == "" || b == "" {
		return false
	}
	an, apre := splitPre(a)
	bn, bpre := splitPre(b)
	ap := strings.Split(an, ".")
	bp := strings.Split(bn, ".")
	// pad to length 3
	for len(ap) < 3 {
		ap = append(ap, "0")
	}
	for len(bp) < 3 {
		bp = append(bp, "0")
	}
	for i := 0; i < 3; i++ {
		av := atoiSafe(ap[i])
		bv := atoiSafe(bp[i])
		if av < bv {
			return true
		}
		if av > bv {
			return false
		}
	}
	switch {
	case apre != "" && bpre == "":
		return true
	case apre == "" || bpre == "":
		return false
	}
	return apre < bpre
}

// Newest returns the index of the runtime with the highest semver, or -1 for
// an empty list. Ties keep the earlier runtime.
func Newest(rts []Runtime) int {
	best := -1
	for i, rt := range rts {
		if best < 0 || SemverLess(rts[best].Semver, rt.Semver) {
			best = i
		}
	}
	return best
}

func normalizeSemver(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "go")
	v = strings.TrimPrefix(v, "v")
	return v
}

// splitPre separates "1.22rc1" or "1.22.0-rc.1" into its numeric part and
// pre-release tag.
func splitPre(v string) (string, string) {
	for i, r := range v {
		if r != '.' && (r < '0' || r > '9') {
			return strings.TrimRight(v[:i], "."), strings.TrimLeft(v[i:], "-")
		}
	}
	return v, ""
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
