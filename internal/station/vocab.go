package station

// FuelTypes returns the closed fuel-type vocabulary, code to display label.
// Callers receive a fresh copy.
func FuelTypes() map[string]string {
	return map[string]string{
		"ELEC": "Electric",
		"E85":  "Ethanol (E85)",
		"LPG":  "Propane (LPG)",
		"CNG":  "Compressed Natural Gas",
		"BD":   "Biodiesel (B20 and above)",
		"RD":   "Renewable Diesel (R20 and above)",
		"HY":   "Hydrogen",
		"LNG":  "Liquefied Natural Gas",
	}
}

// ConnectorTypes returns the closed EV connector vocabulary, code to display
// label. Callers receive a fresh copy.
func ConnectorTypes() map[string]string {
	return map[string]string{
		"J1772":      "J1772",
		"J1772COMBO": "CCS (J1772 Combo)",
		"CHADEMO":    "CHAdeMO",
		"TESLA":      "Tesla (NACS)",
		"NEMA1450":   "NEMA 14-50",
		"NEMA515":    "NEMA 5-15",
		"NEMA520":    "NEMA 5-20",
	}
}
