package twinefile

// Merge combines a base catalog with an overlay, the way multi-file
// builds stack their inputs. A key present in both keeps its position
// from base but takes the overlay's translations wholesale; overlay
// keys new to base are appended in their own order.
func Merge(base, overlay *Catalog) *Catalog {
	result := &Catalog{}
	overlayByName := make(map[string]*Key, len(overlay.Keys))
	for _, k := range overlay.Keys {
		overlayByName[k.Name] = k
	}

	taken := make(map[string]bool, len(base.Keys))
	for _, k := range base.Keys {
		if over, ok := overlayByName[k.Name]; ok {
			result.Keys = append(result.Keys, over)
		} else {
			result.Keys = append(result.Keys, k)
		}
		taken[k.Name] = true
	}

	for _, k := range overlay.Keys {
		if !taken[k.Name] {
			result.Keys = append(result.Keys, k)
		}
	}

	return result
}
