package io

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/gcfg.v1"
)

const (
	ExampleGridFile = `[Grid]

#######################
# Required Parameters #
#######################

# Structure file containing the atoms that will be voxelized.
Input = path/to/structure.pdb
# Prefix of the output files. Channel i is written to <Output>_channel<i>.dx.
Output = path/to/output/grid

# Edge length of a single voxel, in the same units as the atom coordinates.
Resolution = 0.5
# Number of voxels along each side of the (cubic) grid.
Dimension = 48

#######################
# Optional Parameters #
#######################

# Format of Input. Must be one of [ PDB | Table ]. Table files contain one atom
# per line as whitespace-separated "x y z type" columns, where type is the
# channel index. Default is PDB.
# InputFormat = PDB

# Atoms contribute nothing past Radius * RadiusMultiple. Default is 1.5.
# RadiusMultiple = 1.5
# Atoms follow a Gaussian out to Radius * GaussianResolution. Default is 0.5.
# GaussianResolution = 0.5

# By default the grid is centered on the mean atom position. Set FixedCenter
# to use an explicit center instead.
# FixedCenter = true
# CenterX = 40.761002
# CenterY = 17.421
# CenterZ = 12.23

# Image written by -PlotModel.
# PlotFile = model.png

# Output files which are useful for profiling and debugging.
# ProfileFile = prof.out
# LogFile = log.out

#########
# Types #
#########

# Every [Type] section describes one channel. Channels must be numbered
# 0, 1, ..., n-1. PDB atoms are assigned to the type with the longest Prefix
# that their atom name starts with, or to the type with an empty Prefix if
# none match. Types are ignored for Table input except for their radii.

[Type "carbon"]
Channel = 0
Radius = 1.0
Prefix = C

[Type "other"]
Channel = 1
Radius = 1.0`
)

type SharedConfig struct {
	// Required
	Input, Output string
	// Optional
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type GridConfig struct {
	SharedConfig

	// Required
	Resolution float64
	Dimension  int

	// Optional
	InputFormat                        string
	RadiusMultiple, GaussianResolution float64
	FixedCenter                        bool
	CenterX, CenterY, CenterZ          float64
	PlotFile                           string
}

const (
	PDBFormat   = "pdb"
	TableFormat = "table"
)

func (con *GridConfig) ValidResolution() bool {
	return con.Resolution > 0
}
func (con *GridConfig) ValidDimension() bool {
	return con.Dimension > 0
}
func (con *GridConfig) ValidInputFormat() bool {
	f := con.Format()
	return f == PDBFormat || f == TableFormat
}
func (con *GridConfig) ValidRadiusMultiple() bool {
	return con.RadiusMultiple > 0
}
func (con *GridConfig) ValidGaussianResolution() bool {
	return con.GaussianResolution > 0
}
func (con *GridConfig) ValidPlotFile() bool {
	return con.PlotFile != ""
}

// Format returns the normalized input format.
func (con *GridConfig) Format() string {
	return strings.ToLower(strings.TrimSpace(con.InputFormat))
}

// Center returns the fixed grid center, or nil if the atom centroid should
// be used.
func (con *GridConfig) Center() *[3]float64 {
	if !con.FixedCenter {
		return nil
	}
	return &[3]float64{con.CenterX, con.CenterY, con.CenterZ}
}

type TypeConfig struct {
	// Required
	Channel int
	Radius  float64

	// Optional
	Prefix string

	// Optional, "undocumented"
	Name string
}

func (ty *TypeConfig) CheckInit(name string) error {
	if ty.Radius <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Radius for Type '%s'.", name,
		)
	} else if ty.Channel < 0 {
		return fmt.Errorf(
			"Channel of Type '%s' must be non-negative, but is %d.",
			name, ty.Channel,
		)
	}

	ty.Prefix = strings.TrimSpace(ty.Prefix)
	ty.Name = name
	return nil
}

type GridWrapper struct {
	Grid GridConfig
	Type map[string]*TypeConfig
}

func DefaultGridWrapper() *GridWrapper {
	con := GridConfig{}
	con.InputFormat = "PDB"
	con.RadiusMultiple = 1.5
	con.GaussianResolution = 0.5
	return &GridWrapper{Grid: con}
}

// ReadGridConfig reads the [Grid] and [Type] sections of fname and checks
// the types for consistency. The [Grid] section is not validated.
func ReadGridConfig(fname string) (*GridWrapper, error) {
	wrap := DefaultGridWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}

	if _, err := wrap.Types(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// Types returns the configured types ordered by channel. Channels must be
// exactly 0, 1, ..., n-1 and at most one type may have an empty Prefix.
func (wrap *GridWrapper) Types() ([]TypeConfig, error) {
	if len(wrap.Type) == 0 {
		return nil, fmt.Errorf("Need to specify at least one Type.")
	}

	types := make([]TypeConfig, 0, len(wrap.Type))
	for name, ty := range wrap.Type {
		if err := ty.CheckInit(name); err != nil {
			return nil, err
		}
		types = append(types, *ty)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].Channel < types[j].Channel
	})

	fallback := ""
	for i := range types {
		if types[i].Channel != i {
			return nil, fmt.Errorf(
				"Type channels must be numbered 0 to %d without gaps or "+
					"repeats, but Type '%s' has Channel %d.",
				len(types)-1, types[i].Name, types[i].Channel,
			)
		}
		if types[i].Prefix == "" {
			if fallback != "" {
				return nil, fmt.Errorf(
					"Types '%s' and '%s' both have an empty Prefix.",
					fallback, types[i].Name,
				)
			}
			fallback = types[i].Name
		}
	}

	return types, nil
}

// Typer assigns atom names to channels by prefix.
type Typer struct {
	types    []TypeConfig
	fallback int
}

// NewTyper creates a Typer from types ordered by channel.
func NewTyper(types []TypeConfig) *Typer {
	ty := &Typer{types: types, fallback: -1}
	for i := range types {
		if types[i].Prefix == "" {
			ty.fallback = types[i].Channel
		}
	}
	return ty
}

// Channel returns the channel of the type with the longest Prefix that name
// starts with. If no Prefix matches, the type with an empty Prefix is used.
// ok is false if there is no such type either.
func (ty *Typer) Channel(name string) (c int, ok bool) {
	c, best := ty.fallback, 0
	for i := range ty.types {
		p := ty.types[i].Prefix
		if len(p) > best && strings.HasPrefix(name, p) {
			c, best = ty.types[i].Channel, len(p)
		}
	}
	return c, c >= 0
}
