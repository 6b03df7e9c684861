package astro

var (
	directionNames = [4]string{"West", "North", "East", "South"}
	mahaboteNames  = [7]string{"Binga", "Atun", "Yaza", "Adipati", "Marana", "Thike", "Puti"}
	nakhatNames    = [3]string{"Ogre", "Elf", "Human"}
	yearNames      = [12]string{
		"Hpusha", "Magha", "Phalguni", "Chitra", "Visakha", "Jyeshtha",
		"Ashadha", "Sravana", "Bhadrapaha", "Asvini", "Krittika", "Mrigasiras",
	}
)

// NagahleName returns the English direction of the dragon's head.
func (a Attributes) NagahleName() string {
	return directionNames[mod(a.Nagahle, 4)]
}

// MahaboteName returns the English name of the birth sign.
func (a Attributes) MahaboteName() string {
	return mahaboteNames[mod(a.Mahabote, 7)]
}

// NakhatName returns the English name of the nakhat.
func (a Attributes) NakhatName() string {
	return nakhatNames[mod(a.Nakhat, 3)]
}

// YearNameName returns the English name of the year in the twelve-year cycle.
func (a Attributes) YearNameName() string {
	return yearNames[mod(a.YearName, 12)]
}

// PyathadaName returns "Pyathada", "Afternoon Pyathada" or an empty string.
func (a Attributes) PyathadaName() string {
	switch a.Pyathada {
	case Pyathada:
		return "Pyathada"
	case AfternoonPyathada:
		return "Afternoon Pyathada"
	}
	return ""
}

// SabbathName returns "Sabbath", "Sabbath Eve" or an empty string.
func (a Attributes) SabbathName() string {
	switch a.Sabbath {
	case Sabbath:
		return "Sabbath"
	case SabbathEve:
		return "Sabbath Eve"
	}
	return ""
}

// Markers lists the names of every boolean marker set on the day, in a fixed order.
func (a Attributes) Markers() []string {
	flags := []struct {
		set  bool
		name string
	}{
		{a.Yatyaza, "Yatyaza"},
		{a.Thamanyo, "Thamanyo"},
		{a.Amyeittasote, "Amyeittasote"},
		{a.Warameittugyi, "Warameittugyi"},
		{a.Warameittunge, "Warameittunge"},
		{a.Yatpote, "Yatpote"},
		{a.Thamaphyu, "Thamaphyu"},
		{a.Nagapor, "Nagapor"},
		{a.Yatyotema, "Yatyotema"},
		{a.Mahayatkyan, "Mahayatkyan"},
		{a.Shanyat, "Shanyat"},
	}

	var out []string
	if s := a.SabbathName(); s != "" {
		out = append(out, s)
	}
	if p := a.PyathadaName(); p != "" {
		out = append(out, p)
	}
	for _, f := range flags {
		if f.set {
			out = append(out, f.name)
		}
	}
	return out
}
