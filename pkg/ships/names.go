package ships

// shipNames maps substring keys found in vehicle identifiers to full
// display names (manufacturer first). Lookups strip the manufacturer.
var shipNames = map[string]string{
	"cutlass":       "Drake Cutlass",
	"arrow":         "Anvil Arrow",
	"gladius":       "Aegis Gladius",
	"titan":         "Aegis Avenger Titan",
	"freelancer":    "MISC Freelancer",
	"prospector":    "MISC Prospector",
	"600i":          "Origin 600i",
	"890j":          "Origin 890 Jump",
	"carrack":       "Anvil Carrack",
	"mole":          "ARGO MOLE",
	"hercules":      "Crusader Hercules",
	"valkyrie":      "Anvil Valkyrie",
	"vanguard":      "Aegis Vanguard",
	"sabre":         "Aegis Sabre",
	"hornet":        "Anvil Hornet",
	"buccaneer":     "Drake Buccaneer",
	"constellation": "RSI Constellation",
	"caterpillar":   "Drake Caterpillar",
	"mercury":       "Crusader Mercury Star Runner",
	"msr":           "Crusader Mercury Star Runner",
	"nomad":         "Consolidated Outland Nomad",
	"terrapin":      "Anvil Terrapin",
	"reclaimer":     "Aegis Reclaimer",
	"hammerhead":    "Aegis Hammerhead",
	"idris":         "Aegis Idris",
	"javelin":       "Aegis Javelin",
	"retaliator":    "Aegis Retaliator",
	"eclipse":       "Aegis Eclipse",
	"blade":         "Vanduul Blade",
	"glaive":        "Vanduul Glaive",
	"scythe":        "Vanduul Scythe",
	"defender":      "Banu Defender",
	"merchantman":   "Banu Merchantman",
	"kraken":        "Drake Kraken",
	"polaris":       "RSI Polaris",
	"perseus":       "RSI Perseus",
	"cutter":        "Drake Cutter",
	"corsair":       "Drake Corsair",
	"redeemer":      "Aegis Redeemer",
	"inferno":       "Aegis Inferno",
	"ion":           "Aegis Ion",
	"scorpius":      "RSI Scorpius",
	"ares":          "Crusader Ares",
	"spirit":        "Crusader Spirit",
	"c1":            "Crusader C1",
	"a1":            "Crusader A1",
	"c2":            "Crusader C2",
	"m2":            "Crusader M2",
	"a2":            "Crusader A2",
	"raft":          "Argo RAFT",
	"vulture":       "Drake Vulture",
	"reliant":       "MISC Reliant",
	"tana":          "MISC Reliant Tana",
	"kore":          "MISC Reliant Kore",
	"sen":           "MISC Reliant Sen",
	"talon":         "Esperia Talon",
	"shrike":        "Esperia Talon Shrike",
	"prowler":       "Esperia Prowler",
	"khartu":        "Xi'an Khartu-al",
	"navigator":     "Banu Merchantman Navigator",
	"bmm":           "Banu Merchantman",
}
