package atoms

import "github.com/sirupsen/logrus"

// standardMasses holds IUPAC 2021 standard atomic weights in g/mol for the
// elements this package is commonly used with. The vacancy symbol X has zero
// mass so that placeholder sites never contribute to centers of mass.
var standardMasses = map[string]float64{
	VacancySymbol: 0,
	"H":           1.008,
	"He":          4.002602,
	"Li":          6.94,
	"Be":          9.0121831,
	"B":           10.81,
	"C":           12.011,
	"N":           14.007,
	"O":           15.999,
	"F":           18.998403163,
	"Ne":          20.1797,
	"Na":          22.98976928,
	"Mg":          24.305,
	"Al":          26.9815384,
	"Si":          28.085,
	"P":           30.973761998,
	"S":           32.06,
	"Cl":          35.45,
	"Ar":          39.95,
	"K":           39.0983,
	"Ca":          40.078,
	"Ti":          47.867,
	"Cr":          51.9961,
	"Mn":          54.938043,
	"Fe":          55.845,
	"Co":          58.933194,
	"Ni":          58.6934,
	"Cu":          63.546,
	"Zn":          65.38,
	"Ga":          69.723,
	"Ge":          72.63,
	"Se":          78.971,
	"Br":          79.904,
	"Kr":          83.798,
	"Zr":          91.224,
	"Mo":          95.95,
	"Ru":          101.07,
	"Rh":          102.90549,
	"Pd":          106.42,
	"Ag":          107.8682,
	"Sn":          118.71,
	"W":           183.84,
	"Ir":          192.217,
	"Pt":          195.084,
	"Au":          196.96657,
	"Pb":          207.2,
}

// MassOf returns the standard atomic weight of a chemical symbol in g/mol.
// Unknown symbols are reported once per call and treated as massless.
func MassOf(symbol string) float64 {
	m, ok := standardMasses[symbol]
	if !ok {
		logrus.Warnf("unknown chemical symbol %q, treating as massless", symbol)
		return 0
	}
	return m
}
