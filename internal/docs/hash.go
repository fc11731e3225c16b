package docs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// ComputeHash computes a deterministic hash over page names and loaded
// content. Pages whose content was not loaded contribute their name only.
func ComputeHash(pages []Page) string {
	if len(pages) == 0 {
		h := sha256.Sum256([]byte("empty-docs-set"))
		return hex.EncodeToString(h[:])
	}

	entries := make([]string, 0, len(pages))
	for _, p := range pages {
		contentHash := ""
		if len(p.Content) > 0 {
			h := sha256.Sum256(p.Content)
			contentHash = hex.EncodeToString(h[:])
		}
		entries = append(entries, fmt.Sprintf("%s|%t|%s", p.Name, p.Synthetic, contentHash))
	}
	sort.Strings(entries)

	h := sha256.New()
	for _, entry := range entries {
		h.Write([]byte(entry))
		h.Write([]byte("\n"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
