// Package cmd implements the geometry command line interface.
package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/soypat/geometry/units"
	"github.com/spf13/cobra"
)

// Version is the version of the geometry command.
const Version = "0.1.0"

var (
	configFile string
	verbose    bool
	jsonLog    bool

	// model is the scene loaded by the root command before any subcommand runs.
	model *Model
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "./scene.toml", "scene file location")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	RootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "log in JSON format")

	evalCmd.Flags().IntVar(&evalSamples, "samples", 4, "number of proportional samples per entity")
	plotCmd.Flags().StringVar(&plotOut, "out", "curves.png", "output image; the extension selects the format")
	plotCmd.Flags().IntVar(&plotSamples, "samples", 128, "number of segments per curve")
	stlCmd.Flags().StringVar(&stlOut, "out", "surfaces.stl", "output STL file")
	stlCmd.Flags().IntVar(&stlNU, "nu", 32, "cells along u per surface")
	stlCmd.Flags().IntVar(&stlNV, "nv", 32, "cells along v per surface")

	projectCmd.Flags().Float64SliceVar(&projectPoint, "point", []float64{0, 0, 0}, "point to project as x,y,z")
	projectCmd.Flags().IntVar(&projectCells, "cells", 16, "mesh cells per direction used to find the nearest surface")

	RootCmd.AddCommand(versionCmd, evalCmd, plotCmd, stlCmd, projectCmd)
}

// RootCmd is the main command.
var RootCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Evaluate, plot and mesh trimmed curves and surfaces.",
	Long: `geometry loads a scene of trimmed curves and surfaces from a TOML file
and evaluates, plots or meshes it.

Default units are read from the GEOMETRY_LENGTH_UNIT and GEOMETRY_ANGLE_UNIT
environment variables and may be overridden by the scene's length_unit and
angle_unit keys.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Startup(configFile)
	},
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Startup configures logging and default units, then loads the scene file.
func Startup(sceneFile string) error {
	log.SetLevel(log.InfoLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	if jsonLog {
		log.SetFormatter(&log.JSONFormatter{})
	}
	cfg, err := units.LoadConfig()
	if err != nil {
		return fmt.Errorf("reading unit configuration: %w", err)
	}
	if err := cfg.Apply(units.DefaultUnits); err != nil {
		return err
	}
	m, err := LoadScene(sceneFile, units.DefaultUnits)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"scene":    sceneFile,
		"curves":   len(m.Curves),
		"surfaces": len(m.Surfaces),
		"length":   m.LengthUnit.Symbol(),
		"angle":    m.AngleUnit.Symbol(),
	}).Debug("scene loaded")
	model = m
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "geometry v%s\n", Version)
	},
	// version needs no scene.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	DisableAutoGenTag: true,
}
