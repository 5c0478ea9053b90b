// Command schematron-validate validates one or more XML documents against a
// Schematron schema from the command line (spec.md §6.2).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-schematron/schematron/config"
	"github.com/go-schematron/schematron/logging"
	"github.com/go-schematron/schematron/schematron"
	"github.com/go-schematron/schematron/xmlparse"
)

var (
	phase      string
	svrlOut    string
	configFile string
	logLevel   string
	dumpAST    bool
	workers    int
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "schematron-validate",
		Short: "Validate XML documents against an ISO Schematron schema",
	}

	var validateCmd = &cobra.Command{
		Use:   "validate <xml...> <schema>",
		Short: "Check one or more XML documents against a Schematron schema",
		Long: `validate checks one or more XML documents against a Schematron schema in
direct-validation mode, printing a VALID/INVALID verdict per document and
optionally writing an SVRL report.

Examples:
  schematron-validate validate data.xml schema.sch
  schematron-validate validate a.xml b.xml c.xml schema.sch --svrl-out out.svrl
  schematron-validate validate data.xml schema.sch --phase production`,
		Args: cobra.MinimumNArgs(2),
		RunE: runValidate,
	}

	validateCmd.Flags().StringVarP(&phase, "phase", "p", "", "Phase to validate against (default: schema's #DEFAULT)")
	validateCmd.Flags().StringVar(&svrlOut, "svrl-out", "", "Write SVRL report(s) to this path")
	validateCmd.Flags().StringVar(&configFile, "config", "", "YAML configuration file path")
	validateCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	validateCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "Dump the parsed schema AST as YAML to stderr and exit")
	validateCmd.Flags().IntVar(&workers, "workers", 0, "Worker count for multi-document validation (0 = config default)")

	var generateConfigCmd = &cobra.Command{
		Use:   "generate-config <path>",
		Short: "Write a default YAML configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.GenerateDefaultConfigFile(args[0])
		},
	}

	rootCmd.AddCommand(validateCmd, generateConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runValidate implements the `validate` subcommand (spec.md §6.2): the
// last positional argument is the schema, every argument before it is an
// XML document to check against it.
func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	level := cfg.Output.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger := logging.NewLogger(logging.LoggerConfig{
		Level:  logging.ParseLogLevel(level),
		Format: cfg.Output.LogFormat,
		Output: os.Stderr,
	})

	schemaPath := args[len(args)-1]
	xmlPaths := args[:len(args)-1]

	if dumpAST {
		schema, err := xmlparse.ParseSchemaFile(schemaPath)
		if err != nil {
			return fmt.Errorf("parsing schema: %w", err)
		}
		out, err := yaml.Marshal(schema)
		if err != nil {
			return fmt.Errorf("dumping AST: %w", err)
		}
		_, err = os.Stderr.Write(out)
		return err
	}

	effectivePhase := phase
	if effectivePhase == "" {
		effectivePhase = cfg.Validator.DefaultPhase
	}
	effectiveWorkers := workers
	if effectiveWorkers <= 0 {
		effectiveWorkers = cfg.Validator.Workers
	}

	factory := schematron.NewFactory().SetSchemaFile(schemaPath).SetPhase(effectivePhase).SetLogger(logger)
	if cfg.Cache.Enabled {
		factory = factory.SetCache(schematron.NewMemoryCache(nil))
	}

	validator, err := factory.Build()
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	results, batchErr := validator.ValidateDocuments(xmlPaths, effectiveWorkers)

	allValid := true
	for i, path := range xmlPaths {
		r := results[i]
		if r == nil {
			fmt.Printf("%s ERROR\n", path)
			allValid = false
			continue
		}
		if r.IsValid() {
			fmt.Printf("%s VALID\n", path)
		} else {
			fmt.Printf("%s INVALID\n", path)
			allValid = false
		}

		if svrlOut != "" {
			if err := writeSVRL(r, svrlOut, len(xmlPaths) > 1, path); err != nil {
				return fmt.Errorf("writing SVRL for %s: %w", path, err)
			}
		}
	}

	if batchErr != nil {
		return batchErr
	}
	if !allValid {
		os.Exit(1)
	}
	return nil
}

// writeSVRL writes r's SVRL to target, or to a per-document derivative of
// target (stem + "_" + document stem + extension) when multiple documents
// share one --svrl-out flag (spec.md §6.2).
func writeSVRL(r *schematron.ValidationResult, target string, multiple bool, docPath string) error {
	out := target
	if multiple {
		out = schematron.SVRLFileName(target, docPath)
	}
	content, err := r.WriteSVRL()
	if err != nil {
		return err
	}
	return os.WriteFile(out, []byte(content), 0o644)
}
