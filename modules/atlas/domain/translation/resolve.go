package translation

// Untranslated is the sentinel returned when no translation exists in any
// locale and the entity has no invariant name to fall back to.
const Untranslated = "(untranslated)"

// ResolveDisplayName picks a display name for an entity: the requested
// locale's translation when present, else the fallback locale's, else the
// entity's locale-invariant name, else the Untranslated sentinel.
func ResolveDisplayName(set Set, requested, fallbackLocale, invariantName string) string {
	if record, ok := set[requested]; ok && record.Name != "" {
		return record.Name
	}
	if record, ok := set[fallbackLocale]; ok && record.Name != "" {
		return record.Name
	}
	if invariantName != "" {
		return invariantName
	}
	return Untranslated
}
