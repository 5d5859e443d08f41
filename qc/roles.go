package qc

import (
	"github.com/carbocation/smartchip/dataset"
)

// Role is what a group is used for in an assay's QC.
type Role int

const (
	RoleNonTemplate Role = iota
	RoleNegative
	RoleLowestStandard
)

type roleKey struct {
	assay string
	role  Role
}

// RoleIndex holds each assay's control and standard groups. When several
// groups match a marker, the first one in the assay's group order wins.
type RoleIndex struct {
	roles     map[roleKey]dataset.GroupKey
	standards map[string][]dataset.GroupKey
}

// BuildRoleIndex indexes every assay in ix. A nil index yields an empty
// RoleIndex.
func BuildRoleIndex(ix *dataset.Index, m Markers) RoleIndex {
	out := RoleIndex{
		roles:     make(map[roleKey]dataset.GroupKey),
		standards: make(map[string][]dataset.GroupKey),
	}
	if ix == nil {
		return out
	}

	markers := map[Role]string{
		RoleNonTemplate:    m.NonTemplate,
		RoleNegative:       m.Negative,
		RoleLowestStandard: m.Standard + "1",
	}

	for _, assay := range ix.Assays {
		for _, k := range ix.GroupsOf(assay) {
			for role, marker := range markers {
				rk := roleKey{assay: assay, role: role}
				if _, found := out.roles[rk]; found {
					continue
				}
				if marker != "" && k.Contains(marker) {
					out.roles[rk] = k
				}
			}

			if m.Standard != "" && k.Contains(m.Standard) {
				out.standards[assay] = append(out.standards[assay], k)
			}
		}
	}

	return out
}

// Lookup returns the group playing role in assay.
func (r RoleIndex) Lookup(assay string, role Role) (dataset.GroupKey, bool) {
	k, found := r.roles[roleKey{assay: assay, role: role}]
	return k, found
}

// Standards returns every standard group of assay, in group order.
func (r RoleIndex) Standards(assay string) []dataset.GroupKey {
	return r.standards[assay]
}
