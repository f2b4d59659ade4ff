// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed defaults.json
var defaultsJSON []byte

// LoadDefaults parses the bundled default dictionary. Pages fall back to it
// for every key that has no rows in the store.
func LoadDefaults() (Tree, error) {
	var tree Tree
	if err := json.Unmarshal(defaultsJSON, &tree); err != nil {
		return nil, fmt.Errorf("parsing default translations: %w", err)
	}
	return tree, nil
}
