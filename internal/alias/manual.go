package alias

// DefaultManualAliases maps irregular header strings seen in submitted
// spreadsheets to canonical catalog names. Keys and values are normalized by
// BuildIndex, so entries can be written the way they appear in the field.
// Handed to BuildIndex explicitly by the caller; the resolver itself has no
// built-in table.
var DefaultManualAliases = map[string]string{
	"beras ir64":            "Beras Medium",
	"beras ir 64":           "Beras Medium",
	"gula":                  "Gula Pasir",
	"gula putih":            "Gula Pasir",
	"minyak curah":          "Minyak Goreng Curah",
	"minyak kemasan":        "Minyak Goreng Kemasan",
	"migor curah":           "Minyak Goreng Curah",
	"telur":                 "Telur Ayam Ras",
	"telor ayam":            "Telur Ayam Ras",
	"ayam potong":           "Daging Ayam Ras",
	"ayam ras":              "Daging Ayam Ras",
	"daging":                "Daging Sapi",
	"cabe keriting":         "Cabai Merah Keriting",
	"cabe besar":            "Cabai Merah Besar",
	"rawit":                 "Cabai Rawit",
	"bamer":                 "Bawang Merah",
	"baput":                 "Bawang Putih",
	"terigu":                "Tepung Terigu",
	"tongkol":               "Ikan Tongkol",
	"kembung":               "Ikan Kembung",
}
