package selection

import "strings"

// SubcladePrefix tags subclade selection names so they never collide with
// clade names in the host.
const SubcladePrefix = "Subclade_"

// NormalizeSubclade prefixes a bare subclade name ("C.1" -> "Subclade_C.1").
// Empty input stays empty.
func NormalizeSubclade(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, SubcladePrefix) {
		return name
	}
	return SubcladePrefix + name
}

// StripSubcladePrefix is the inverse of NormalizeSubclade.
func StripSubcladePrefix(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), SubcladePrefix)
}
