package formula

// Family is a fixed periodic-table grouping used for trend inference. The
// Trend text is a fixed description of the chemical property that varies
// along the family; it is embedded verbatim into relationship reasoning.
type Family struct {
	Name     string
	Elements []string
	Trend    string
}

// Families lists the recognised element families in match order. An element
// belonging to more than one list (the metalloid overlap) is assigned to the
// first family that contains it.
var Families = []Family{
	{
		Name:     "noble_gases",
		Elements: []string{"He", "Ne", "Ar", "Kr", "Xe", "Rn"},
		Trend:    "increasing polarizability and dispersion interaction down the group",
	},
	{
		Name:     "alkali_metals",
		Elements: []string{"Li", "Na", "K", "Rb", "Cs"},
		Trend:    "decreasing ionization energy and increasing atomic radius down the group",
	},
	{
		Name:     "alkaline_earth",
		Elements: []string{"Be", "Mg", "Ca", "Sr", "Ba"},
		Trend:    "decreasing second ionization energy down the group",
	},
	{
		Name: "transition_metals",
		Elements: []string{
			"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
			"Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
			"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
		},
		Trend: "d-electron count and cohesive energy trend across the series",
	},
	{
		Name:     "halogens",
		Elements: []string{"F", "Cl", "Br", "I"},
		Trend:    "decreasing electronegativity and increasing polarizability down the group",
	},
	{
		Name:     "pnictogens",
		Elements: []string{"N", "P", "As", "Sb", "Bi"},
		Trend:    "weakening multiple-bond character down the group",
	},
	{
		Name:     "chalcogens",
		Elements: []string{"O", "S", "Se", "Te", "Po"},
		Trend:    "decreasing electron affinity down the group",
	},
	{
		Name:     "metalloids",
		Elements: []string{"B", "Si", "Ge"},
		Trend:    "increasing metallic character down the group",
	},
	{
		Name:     "post_transition",
		Elements: []string{"Al", "Ga", "In", "Tl", "Sn", "Pb"},
		Trend:    "increasing inert-pair stabilization down the group",
	},
}

// FamilyOf returns the first family containing the element, or nil.
func FamilyOf(element string) *Family {
	for i := range Families {
		for _, member := range Families[i].Elements {
			if member == element {
				return &Families[i]
			}
		}
	}
	return nil
}

// Position returns the index of element within the family list, or -1.
func (f *Family) Position(element string) int {
	for i, member := range f.Elements {
		if member == element {
			return i
		}
	}
	return -1
}
