package naming

// NormalizeTile strips the leading "T" of an MGRS tile written as "T32ABC".
// Any other input is returned unchanged, so the function is idempotent.
func NormalizeTile(tile string) string {
	if len(tile) == 6 && tile[0] == 'T' && tile[1] >= '0' && tile[1] <= '9' {
		return tile[1:]
	}
	return tile
}
