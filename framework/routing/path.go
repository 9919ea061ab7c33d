package routing

import "strings"

// JoinPath mounts sub under base.
//
//	JoinPath("/users", "/{id}") // "/users/{id}"
//	JoinPath("/users/", "/")    // "/users"
//	JoinPath("", "")            // "/"
//
// Trailing slashes are trimmed from base and surrounding slashes from sub; a
// non-empty base always gets a leading slash.
func JoinPath(base, sub string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	sub = strings.Trim(strings.TrimSpace(sub), "/")

	switch {
	case sub == "" && base == "":
		return "/"
	case sub == "":
		return base
	default:
		return base + "/" + sub
	}
}

// NormalizeVersion turns "1", "v1", " /V1/ " into "v1". Blank input stays
// blank, meaning unversioned.
func NormalizeVersion(version string) string {
	v := strings.Trim(strings.TrimSpace(version), "/")
	if strings.HasPrefix(v, "v") || strings.HasPrefix(v, "V") {
		v = v[1:]
	}
	if v == "" {
		return ""
	}
	return "v" + v
}

// FullPath computes the mount path of a route: base and sub are joined, the
// version segment is prepended, then the global prefix wraps the result.
//
//	FullPath("api", "1", "/users", "/{id}") // "/api/v1/users/{id}"
func FullPath(prefix, version, base, sub string) string {
	p := JoinPath(base, sub)
	if v := NormalizeVersion(version); v != "" {
		p = JoinPath(v, p)
	}
	if pre := strings.Trim(strings.TrimSpace(prefix), "/"); pre != "" {
		p = JoinPath(pre, p)
	}
	return p
}
