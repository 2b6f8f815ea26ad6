package portal

import "encoding/json"

// BootstrapAccounts is the fixed set of login identities guaranteed present
// after initialization, reproduced field-for-field from the deployed portal.
// They are seeded when no account collection exists yet and re-merged on
// every startup.
func BootstrapAccounts() []Account {
	return []Account{
		{
			ID:              1,
			Email:           "2400030525@kluniversity.in",
			Password:        "12345",
			UserType:        UserTypeStudent,
			ProfileComplete: true,
			Name:            "Ram Char",
			StudentID:       "2498765",
			Phone:           "9856774325",
			AcademicYear:    "2",
			Branch:          "CSE",
			GroupNumber:     "1",
		},
		{
			ID:              2,
			Email:           "ramcharan123@gmail.com",
			Password:        "1234",
			UserType:        UserTypeAdmin,
			ProfileComplete: true,
			Name:            "Rc",
			Phone:           "9876543210",
			Department:      "Faculty",
		},
		{
			ID:              3,
			Email:           "anilpagadala583@gmail.com",
			Password:        "1234",
			UserType:        UserTypeAdmin,
			ProfileComplete: true,
			Name:            "Anil Pagadala",
			Phone:           "9123456789",
			Department:      "Faculty",
		},
		{
			ID:              4,
			Email:           "rahul123@gmail.com",
			Password:        "1234567",
			UserType:        UserTypeAdmin,
			ProfileComplete: true,
			Name:            "Rahul",
			Phone:           "9234567890",
			Department:      "Faculty",
		},
	}
}

// MergeBootstrap folds the bootstrap set into existing accounts: fields
// carried by a matching bootstrap account are overwritten with the bootstrap
// values, fields the bootstrap set does not carry (an admin-assigned grade,
// say) are kept, bootstrap accounts not yet present are appended, and any
// other account survives untouched. The merge is idempotent.
func MergeBootstrap(existing []Account) []Account {
	defaults := BootstrapAccounts()
	if len(existing) == 0 {
		return defaults
	}

	seen := make(map[string]bool, len(existing))
	merged := make([]Account, 0, len(existing)+len(defaults))
	for _, acc := range existing {
		seen[acc.Email] = true
		for _, def := range defaults {
			if def.Email == acc.Email {
				acc = overlayBootstrap(acc, def)
				break
			}
		}
		merged = append(merged, acc)
	}
	for _, def := range defaults {
		if !seen[def.Email] {
			merged = append(merged, def)
		}
	}
	return merged
}

// overlayBootstrap applies def's fields over acc field-wise: def is turned
// into a Patch (only the keys it actually carries) and merged the same way
// record updates are. Marshalling a bootstrap account cannot realistically
// fail; if it somehow does, the bootstrap values win wholesale.
func overlayBootstrap(acc, def Account) Account {
	data, err := json.Marshal(def)
	if err != nil {
		return def
	}
	var patch Patch
	if err = json.Unmarshal(data, &patch); err != nil {
		return def
	}
	if err = ApplyPatch(&acc, patch); err != nil {
		return def
	}
	return acc
}
