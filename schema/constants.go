package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and run tracking.
	DatabaseBackend string

	// ConversionKind names a luminosity conversion.
	ConversionKind string
)

// Column headers every CSV input table must carry.
const (
	VWColumn = "vW (GHz s)"
	LColumn  = "L (Jy kpc^2)"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All conversions supported.
const (
	CGSToAstroKind ConversionKind = "cgs_to_astro"
	AstroToCGSKind ConversionKind = "astro_to_cgs"
	TBKind         ConversionKind = "brightness_temperature"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidImageFormats lists the file extensions the renderer can encode.
var ValidImageFormats = map[string]struct{}{
	".png":  {},
	".pdf":  {},
	".svg":  {},
	".eps":  {},
	".jpg":  {},
	".jpeg": {},
	".tif":  {},
	".tiff": {},
}

// ValidCensusFormats lists the file extensions the census chart can encode.
var ValidCensusFormats = map[string]struct{}{
	".png": {},
	".svg": {},
}
