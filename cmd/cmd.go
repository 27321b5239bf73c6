// Package cmd defines the command-line interface for rtps.
package cmd

import (
	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(censusCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the convert subcommands to the parent convert command
	convertCmd.AddCommand(convertTBCmd)
	convertCmd.AddCommand(convertCGSToAstroCmd)
	convertCmd.AddCommand(convertAstroToCGSCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("data-dir", "d", contract.DefaultDataDir, "Directory holding the source-class tables")
	rootCmd.PersistentFlags().String("inputs-override", "", "Per-class table paths (format: 'pulsars:path/a.csv,frb:path/b.parquet')")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("output-dir", contract.DefaultOutputDir, "Directory figures are written to")
	rootCmd.PersistentFlags().String("basename", contract.DefaultBasename, "Figure file name without extension")
	rootCmd.PersistentFlags().StringSlice("formats", contract.DefaultFormats, "Image formats to write: png, pdf, svg, eps, jpg, tif")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Significant digits for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent table loaders")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.NoneBackend), "Table cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("runs-backend", string(schema.NoneBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for run tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of plotCmd to Viper
	plotCmd.Flags().Bool("show", false, "Open the figure in the system viewer")
	plotCmd.Flags().Bool("save", true, "Write the figure in every configured format")
	plotCmd.Flags().Float64("fig-width", contract.DefaultFigWidth, "Figure width in inches")
	plotCmd.Flags().Float64("fig-height", contract.DefaultFigHeight, "Figure height in inches")
	if err := viper.BindPFlags(plotCmd.Flags()); err != nil {
		contract.LogFatal("Error binding plot flags", err)
	}

	// Bind all flags of convertTBCmd to Viper
	convertTBCmd.Flags().Float64("tb", 1e12, "Brightness temperature in K")
	if err := viper.BindPFlags(convertTBCmd.Flags()); err != nil {
		contract.LogFatal("Error binding convert flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
